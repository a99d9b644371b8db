// Package config reads the optional .cbfiles.yml settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/cbfiles/internal/cookbook"
)

// FileName is the settings file looked up in the working directory.
const FileName = ".cbfiles.yml"

// Config holds loader settings shared by every command.
type Config struct {
	CookbookPath []string `yaml:"cookbook_path"`
	IgnoreBase   string   `yaml:"ignore_base"`
	IgnoreSyntax string   `yaml:"ignore_syntax"`
}

// Load reads path. A missing file yields an empty config unless required is set.
func Load(path string, required bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if _, err := ParseIgnoreBase(c.IgnoreBase); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if _, err := ParseIgnoreSyntax(c.IgnoreSyntax); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &c, nil
}

// ParseIgnoreBase maps "root" (or empty) and "name" to an IgnoreBase.
func ParseIgnoreBase(s string) (cookbook.IgnoreBase, error) {
	switch s {
	case "", "root":
		return cookbook.IgnoreFromRoot, nil
	case "name":
		return cookbook.IgnoreFromName, nil
	}
	return 0, fmt.Errorf("unknown ignore base %q (want root or name)", s)
}

// ParseIgnoreSyntax maps "regexp" (or empty) and "gitignore" to an IgnoreSyntax.
func ParseIgnoreSyntax(s string) (cookbook.IgnoreSyntax, error) {
	switch s {
	case "", "regexp":
		return cookbook.SyntaxRegexp, nil
	case "gitignore":
		return cookbook.SyntaxGitignore, nil
	}
	return 0, fmt.Errorf("unknown ignore syntax %q (want regexp or gitignore)", s)
}

// LoaderOptions converts the settings into loader options.
func (c *Config) LoaderOptions() []cookbook.Option {
	base, _ := ParseIgnoreBase(c.IgnoreBase)
	syntax, _ := ParseIgnoreSyntax(c.IgnoreSyntax)
	return []cookbook.Option{
		cookbook.WithIgnoreBase(base),
		cookbook.WithIgnoreSyntax(syntax),
	}
}
