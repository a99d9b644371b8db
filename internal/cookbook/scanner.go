package cookbook

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/gobwas/glob"
)

// ScanFlat returns the files directly inside root/subdir whose base name
// matches pattern. A subdir that is missing or not a directory yields an
// empty map.
func ScanFlat(root, subdir, pattern string) (*CategoryMap, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("compiling glob %q: %w", pattern, err)
	}
	dir := filepath.Join(root, subdir)
	target, err := categoryDir(dir)
	if err != nil {
		return nil, err
	}
	if target == "" {
		return NewCategoryMap(), nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	m := NewCategoryMap()
	for _, e := range entries {
		if !g.Match(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		isDir, err := isDirEntry(path, e)
		if err != nil {
			return nil, err
		}
		if isDir {
			continue
		}
		m.Set(logicalName(root, path), path)
	}
	return m, nil
}

// ScanRecursive returns every file below root/subdir, at any depth, whose base
// name matches pattern. Dot-prefixed files and directories are included.
// A subdir that is a symlink to a directory is followed; links below it are not.
func ScanRecursive(root, subdir, pattern string) (*CategoryMap, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("compiling glob %q: %w", pattern, err)
	}
	dir := filepath.Join(root, subdir)
	target, err := categoryDir(dir)
	if err != nil {
		return nil, err
	}
	if target == "" {
		return NewCategoryMap(), nil
	}

	m := NewCategoryMap()
	err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !g.Match(d.Name()) {
			return nil
		}
		isDir, err := isDirEntry(path, d)
		if err != nil {
			return err
		}
		if isDir {
			return nil
		}
		// keep paths under dir when it was reached through a link
		rel, err := filepath.Rel(target, path)
		if err != nil {
			return err
		}
		path = filepath.Join(dir, rel)
		m.Set(logicalName(root, path), path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return m, nil
}

// categoryDir resolves dir to the directory to enumerate. It returns "" with
// no error when dir is missing or is not a directory.
func categoryDir(dir string) (string, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("checking %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", nil
	}
	target, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	return target, nil
}

// ScanRootFiles returns the files directly inside root, dotfiles included.
func ScanRootFiles(root string) (*CategoryMap, error) {
	return ScanFlat(root, "", "*")
}

// isDirEntry resolves symlinks so a link to a directory is not mistaken for a file.
func isDirEntry(path string, d fs.DirEntry) (bool, error) {
	if d.IsDir() {
		return true, nil
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// dangling link: track it like any other file
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// logicalName strips root and the separator from path, normalized to slashes.
func logicalName(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
