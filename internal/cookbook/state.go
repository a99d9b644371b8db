package cookbook

// State is the snapshot of one scanned cookbook handed to whatever builds the
// final cookbook object. Each category holds absolute paths in the order they
// were discovered.
type State struct {
	Name          string
	Root          string
	Files         map[Category][]string
	MetadataFiles []string
}

// Paths returns the paths recorded for c.
func (s *State) Paths(c Category) []string {
	if c == MetadataFiles {
		return s.MetadataFiles
	}
	return s.Files[c]
}
