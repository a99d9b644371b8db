package core

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// HashFile computes SHA-256 of a file, returns "sha256:<hex>".
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening file for hash: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return "sha256:" + hex.EncodeToString(h.Sum(nil)), nil
}

// RelName converts an absolute path under root to a forward-slash relative name.
// Paths outside root are returned unchanged.
func RelName(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

// VerifyManifest re-hashes every file in m and returns the logical names
// whose content changed or disappeared.
func VerifyManifest(m *Manifest) ([]string, error) {
	var changed []string
	for _, records := range m.Files {
		for _, r := range records {
			sum, err := HashFile(r.Path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					changed = append(changed, r.Name)
					continue
				}
				return nil, err
			}
			if sum != r.Checksum {
				changed = append(changed, r.Name)
			}
		}
	}
	sort.Strings(changed)
	return changed, nil
}
