// Package cookbook discovers the files that make up a cookbook directory and
// sorts them into categories by location and extension.
package cookbook

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// IgnoreBase selects where Load looks for the ignore file.
type IgnoreBase int

const (
	// IgnoreFromRoot resolves the ignore file under the absolute cookbook root.
	IgnoreFromRoot IgnoreBase = iota
	// IgnoreFromName resolves "<cookbook name>/ignore" against the working
	// directory, which only finds the file when the process runs from the
	// cookbook's parent directory.
	IgnoreFromName
)

func (b IgnoreBase) String() string {
	if b == IgnoreFromName {
		return "name"
	}
	return "root"
}

type scanSpec struct {
	category  Category
	subdir    string
	pattern   string
	recursive bool
}

var scanSpecs = []scanSpec{
	{Attributes, "attributes", "*.rb", false},
	{Definitions, "definitions", "*.rb", false},
	{Recipes, "recipes", "*.rb", false},
	{Libraries, "libraries", "*.rb", false},
	{Templates, "templates", "*", true},
	{Files, "files", "*", true},
	{Resources, "resources", "*.rb", true},
	{Providers, "providers", "*.rb", true},
}

// Option configures a Loader.
type Option func(*Loader)

// WithDiagnostics sets the sink for warnings and fatal reports.
func WithDiagnostics(d Diagnostics) Option {
	return func(l *Loader) {
		if d != nil {
			l.diag = d
		}
	}
}

// WithIgnoreBase sets where the ignore file is resolved from.
func WithIgnoreBase(b IgnoreBase) Option {
	return func(l *Loader) { l.ignoreBase = b }
}

// WithIgnoreSyntax sets how the ignore file is compiled.
func WithIgnoreSyntax(s IgnoreSyntax) Option {
	return func(l *Loader) { l.ignoreSyntax = s }
}

// Loader scans one cookbook directory. It is not safe for concurrent use.
// A Loader whose Load returned an error holds partial results and should be
// discarded.
type Loader struct {
	Name string
	Root string

	files         map[Category]*CategoryMap
	metadataFiles []string
	ignoreRules   IgnoreRules

	diag         Diagnostics
	ignoreBase   IgnoreBase
	ignoreSyntax IgnoreSyntax
}

// NewLoader prepares a loader for the cookbook at path. No I/O is done.
func NewLoader(path string, opts ...Option) (*Loader, error) {
	root, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	l := &Loader{
		Name:  filepath.Base(root),
		Root:  root,
		files: make(map[Category]*CategoryMap),
		diag:  Discard,
	}
	for _, c := range Categories() {
		if c == MetadataFiles {
			continue
		}
		l.files[c] = NewCategoryMap()
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// IgnoreFilePath returns the ignore file location for the configured base.
func (l *Loader) IgnoreFilePath() string {
	if l.ignoreBase == IgnoreFromName {
		return filepath.Join(l.Name, IgnoreFileName)
	}
	return filepath.Join(l.Root, IgnoreFileName)
}

// Load scans the cookbook directory and prunes ignored files.
func (l *Loader) Load() error {
	l.ignoreRules = LoadIgnoreFile(l.IgnoreFilePath(), l.ignoreSyntax, l.diag)

	for _, s := range scanSpecs {
		var (
			m   *CategoryMap
			err error
		)
		if s.recursive {
			m, err = ScanRecursive(l.Root, s.subdir, s.pattern)
		} else {
			m, err = ScanFlat(l.Root, s.subdir, s.pattern)
		}
		if err != nil {
			return fmt.Errorf("loading %s for %s: %w", s.category, l.Name, err)
		}
		l.files[s.category].Merge(m)
	}

	roots, err := ScanRootFiles(l.Root)
	if err != nil {
		return fmt.Errorf("loading %s for %s: %w", RootFiles, l.Name, err)
	}
	l.files[RootFiles].Merge(roots)

	metadataPath := filepath.Join(l.Root, MetadataFileName)
	info, err := os.Stat(metadataPath)
	switch {
	case err == nil && !info.IsDir():
		l.metadataFiles = append(l.metadataFiles, metadataPath)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("checking metadata for %s: %w", l.Name, err)
	}

	if l.Empty() {
		l.diag.Warn("found a directory in the cookbook path, but it contains no cookbook files. skipping.",
			"cookbook", l.Name, "path", l.Root)
	}

	l.removeIgnored()
	return nil
}

func (l *Loader) removeIgnored() {
	if l.ignoreRules.Empty() {
		return
	}
	for c, m := range l.files {
		if !c.Ignorable() {
			continue
		}
		m.removeMatching(l.ignoreRules.Matches)
	}
}

// Files returns the map for category c. MetadataFiles has no map and yields
// an empty one.
func (l *Loader) Files(c Category) *CategoryMap {
	if m, ok := l.files[c]; ok {
		return m
	}
	return NewCategoryMap()
}

// MetadataFiles returns the recorded metadata file paths.
func (l *Loader) MetadataFiles() []string {
	return l.metadataFiles
}

// Empty reports whether no category and no metadata file was found.
func (l *Loader) Empty() bool {
	if len(l.metadataFiles) > 0 {
		return false
	}
	for _, m := range l.files {
		if m.Len() > 0 {
			return false
		}
	}
	return true
}

// Metadata builds a fresh metadata object from every recorded metadata file,
// in order. A file that does not parse yields a *MetadataParseError.
func (l *Loader) Metadata() (*Metadata, error) {
	md := NewMetadata(l.Name)
	for _, path := range l.metadataFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading metadata: %w", err)
		}
		if err := md.FromJSON(data); err != nil {
			perr := &MetadataParseError{Path: path, Err: err}
			l.diag.Fatal("couldn't parse JSON in metadata file", "cookbook", l.Name, "path", path, "err", err)
			return nil, perr
		}
	}
	return md, nil
}

// State returns a snapshot of the scanned files, or nil for an empty cookbook.
func (l *Loader) State() *State {
	if l.Empty() {
		return nil
	}
	s := &State{
		Name:          l.Name,
		Root:          l.Root,
		Files:         make(map[Category][]string, len(l.files)),
		MetadataFiles: append([]string(nil), l.metadataFiles...),
	}
	for c, m := range l.files {
		s.Files[c] = m.Paths()
	}
	return s
}
