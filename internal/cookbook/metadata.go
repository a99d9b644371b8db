package cookbook

import (
	"encoding/json"
	"fmt"
	"sort"
)

// MetadataFileName is the metadata document recorded from a cookbook root.
const MetadataFileName = "metadata.json"

// MetadataParseError reports a metadata file whose contents are not valid JSON.
type MetadataParseError struct {
	Path string
	Err  error
}

func (e *MetadataParseError) Error() string {
	return fmt.Sprintf("parsing metadata %s: %v", e.Path, e.Err)
}

func (e *MetadataParseError) Unwrap() error {
	return e.Err
}

// Metadata holds the top-level keys of the metadata documents merged so far.
type Metadata struct {
	Name   string
	Fields map[string]json.RawMessage
}

// NewMetadata returns an empty metadata object scoped to a cookbook name.
func NewMetadata(name string) *Metadata {
	return &Metadata{Name: name, Fields: make(map[string]json.RawMessage)}
}

// FromJSON merges the top-level keys of data; later keys win.
func (m *Metadata) FromJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	for k, v := range doc {
		m.Fields[k] = v
	}
	return nil
}

// Get decodes the field key into v. It reports false when the key is absent.
func (m *Metadata) Get(key string, v any) (bool, error) {
	raw, ok := m.Fields[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("decoding metadata field %q: %w", key, err)
	}
	return true, nil
}

// Keys returns the field names, sorted.
func (m *Metadata) Keys() []string {
	keys := make([]string, 0, len(m.Fields))
	for k := range m.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
