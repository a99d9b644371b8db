package cookbook

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LoadFromPaths loads the cookbook called name from every search path that
// has it and merges the results in search path order, so later paths win.
// When no search path holds the cookbook the returned loader is empty, has not
// been loaded, and has an empty Root.
func LoadFromPaths(name string, searchPaths []string, opts ...Option) (*Loader, error) {
	var merged *Loader
	for _, sp := range searchPaths {
		dir := filepath.Join(sp, name)
		info, err := os.Stat(dir)
		if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.IsDir()) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("checking %s: %w", dir, err)
		}

		l, err := NewLoader(dir, opts...)
		if err != nil {
			return nil, err
		}
		if err := l.Load(); err != nil {
			return nil, fmt.Errorf("loading cookbook %s from %s: %w", name, sp, err)
		}
		if merged == nil {
			merged = l
			continue
		}
		Merge(merged, l)
	}

	if merged == nil {
		l, err := NewLoader(name, opts...)
		if err != nil {
			return nil, err
		}
		l.Name = name
		l.Root = ""
		return l, nil
	}
	return merged, nil
}

// DiscoverNames lists the cookbook directories found across searchPaths,
// de-duplicated and sorted. Dot-directories are skipped and missing search
// paths are ignored.
func DiscoverNames(searchPaths []string) ([]string, error) {
	seen := make(map[string]bool)
	for _, sp := range searchPaths {
		entries, err := os.ReadDir(sp)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading cookbook path %s: %w", sp, err)
		}
		for _, e := range entries {
			if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
				continue
			}
			seen[e.Name()] = true
		}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}
