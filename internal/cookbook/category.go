package cookbook

import "fmt"

// Category identifies a class of cookbook content.
type Category int

const (
	Attributes Category = iota
	Definitions
	Recipes
	Templates
	Files
	Libraries
	Resources
	Providers
	RootFiles
	MetadataFiles
)

var categoryNames = [...]string{
	Attributes:    "attributes",
	Definitions:   "definitions",
	Recipes:       "recipes",
	Templates:     "templates",
	Files:         "files",
	Libraries:     "libraries",
	Resources:     "resources",
	Providers:     "providers",
	RootFiles:     "root_files",
	MetadataFiles: "metadata",
}

// Categories returns every category in declaration order.
func Categories() []Category {
	cats := make([]Category, 0, len(categoryNames))
	for c := range categoryNames {
		cats = append(cats, Category(c))
	}
	return cats
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Ignorable reports whether ignore rules apply to the category.
// Root files and metadata are never filtered.
func (c Category) Ignorable() bool {
	return c != RootFiles && c != MetadataFiles
}

// FileEntry pairs a logical name with the absolute path it was found at.
type FileEntry struct {
	Name string
	Path string
}

// CategoryMap maps logical names to absolute paths, keeping insertion order.
// Setting an existing name replaces its path in place.
type CategoryMap struct {
	keys  []string
	paths map[string]string
}

// NewCategoryMap returns an empty map.
func NewCategoryMap() *CategoryMap {
	return &CategoryMap{paths: make(map[string]string)}
}

// Set records path under name, overwriting any previous path.
func (m *CategoryMap) Set(name, path string) {
	if _, ok := m.paths[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.paths[name] = path
}

// Get returns the path stored under name.
func (m *CategoryMap) Get(name string) (string, bool) {
	p, ok := m.paths[name]
	return p, ok
}

// Delete removes name from the map.
func (m *CategoryMap) Delete(name string) {
	if _, ok := m.paths[name]; !ok {
		return
	}
	delete(m.paths, name)
	for i, k := range m.keys {
		if k == name {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (m *CategoryMap) Len() int {
	return len(m.keys)
}

// Entries returns the entries in insertion order.
func (m *CategoryMap) Entries() []FileEntry {
	out := make([]FileEntry, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, FileEntry{Name: k, Path: m.paths[k]})
	}
	return out
}

// Paths returns the absolute paths in insertion order.
func (m *CategoryMap) Paths() []string {
	out := make([]string, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.paths[k])
	}
	return out
}

// Merge copies every entry of other into m; other wins on conflicts.
func (m *CategoryMap) Merge(other *CategoryMap) {
	for _, k := range other.keys {
		m.Set(k, other.paths[k])
	}
}

// Equal reports whether both maps hold the same name/path pairs, ignoring order.
func (m *CategoryMap) Equal(other *CategoryMap) bool {
	if m.Len() != other.Len() {
		return false
	}
	for k, p := range m.paths {
		if q, ok := other.paths[k]; !ok || q != p {
			return false
		}
	}
	return true
}

// removeMatching deletes every entry for which match returns true.
func (m *CategoryMap) removeMatching(match func(name, path string) bool) int {
	kept := m.keys[:0]
	removed := 0
	for _, k := range m.keys {
		if match(k, m.paths[k]) {
			delete(m.paths, k)
			removed++
			continue
		}
		kept = append(kept, k)
	}
	m.keys = kept
	return removed
}
