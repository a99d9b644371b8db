package cookbook

// Merge folds source into target. For every category an entry in source
// replaces the entry with the same logical name in target; metadata file
// lists are concatenated, target first. Target is modified in place.
func Merge(target, source *Loader) {
	for c, m := range source.files {
		tm, ok := target.files[c]
		if !ok {
			tm = NewCategoryMap()
			target.files[c] = tm
		}
		tm.Merge(m)
	}
	target.metadataFiles = append(target.metadataFiles, source.metadataFiles...)
}
