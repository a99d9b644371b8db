package cookbook

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// writeTree creates files (relative slash paths) with their contents under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func names(m *CategoryMap) []string {
	var out []string
	for _, e := range m.Entries() {
		out = append(out, e.Name)
	}
	sort.Strings(out)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

type record struct {
	level string
	msg   string
}

// recorder is a Diagnostics that keeps everything it receives.
type recorder struct {
	records []record
}

func (r *recorder) Warn(msg string, keyvals ...any) {
	r.records = append(r.records, record{"warn", fmt.Sprint(msg, keyvals)})
}

func (r *recorder) Fatal(msg string, keyvals ...any) {
	r.records = append(r.records, record{"fatal", fmt.Sprint(msg, keyvals)})
}

func (r *recorder) count(level string) int {
	n := 0
	for _, rec := range r.records {
		if rec.level == level {
			n++
		}
	}
	return n
}
