package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/natefinch/atomic"

	"github.com/user/cbfiles/internal/cookbook"
)

// ManifestVersion is the current manifest format version.
const ManifestVersion = 1

// Manifest is the exported, checksummed file list of one cookbook.
type Manifest struct {
	Version       int                      `json:"version"`
	Name          string                   `json:"name"`
	Root          string                   `json:"root"`
	GeneratedAt   string                   `json:"generatedAt"`
	Files         map[string][]*FileRecord `json:"files"`
	MetadataFiles []string                 `json:"metadataFiles"`
}

// FileRecord is one file of the manifest.
type FileRecord struct {
	Name     string `json:"name"`     // logical name, relative to the root
	Path     string `json:"path"`     // absolute path
	Checksum string `json:"checksum"` // "sha256:<hex>"
}

// BuildManifest hashes every file of state and groups them by category.
// Metadata files are listed but not hashed.
func BuildManifest(state *cookbook.State) (*Manifest, error) {
	m := &Manifest{
		Version:       ManifestVersion,
		Name:          state.Name,
		Root:          state.Root,
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		Files:         make(map[string][]*FileRecord),
		MetadataFiles: append([]string{}, state.MetadataFiles...),
	}
	for _, c := range cookbook.Categories() {
		if c == cookbook.MetadataFiles {
			continue
		}
		paths := state.Paths(c)
		if len(paths) == 0 {
			continue
		}
		records := make([]*FileRecord, 0, len(paths))
		for _, p := range paths {
			sum, err := HashFile(p)
			if err != nil {
				return nil, err
			}
			records = append(records, &FileRecord{
				Name:     RelName(state.Root, p),
				Path:     p,
				Checksum: sum,
			})
		}
		m.Files[c.String()] = records
	}
	return m, nil
}

// ErrExportLocked is returned when another process holds the export lock.
var ErrExportLocked = errors.New("export locked by another process")

// ReadManifest parses an exported manifest. Manifests written by a newer
// format version are rejected.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if m.Version < 1 || m.Version > ManifestVersion {
		return nil, fmt.Errorf("manifest %s: unsupported version %d", path, m.Version)
	}
	if m.Files == nil {
		m.Files = make(map[string][]*FileRecord)
	}
	return &m, nil
}

// WriteManifest replaces the export file at path in one step, so readers
// never observe a half-written manifest.
func WriteManifest(path string, m *Manifest) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encoding manifest for %s: %w", m.Name, err)
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("writing manifest for %s: %w", m.Name, err)
	}
	return nil
}

// ExportLockPath returns the lock guarding exports to path: a hidden
// ".<file>.lock" next to it.
func ExportLockPath(path string) string {
	return filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".lock")
}

// LockExport takes the export lock for path, polling until timeout elapses.
// The returned function releases it.
func LockExport(path string, timeout time.Duration) (release func(), err error) {
	lockPath := ExportLockPath(path)
	fl := flock.New(lockPath)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	ok, err := fl.TryLockContext(ctx, 250*time.Millisecond)
	if errors.Is(err, context.DeadlineExceeded) {
		ok, err = false, nil
	}
	if err != nil {
		return nil, fmt.Errorf("locking export %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s (remove %s if no export is running)", ErrExportLocked, path, lockPath)
	}
	return func() { fl.Unlock() }, nil
}
