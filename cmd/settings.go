package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/user/cbfiles/internal/config"
	"github.com/user/cbfiles/internal/cookbook"
)

const configFileName = config.FileName

type settings struct {
	cfg    *config.Config
	logger *log.Logger
	opts   []cookbook.Option
}

// loadSettings merges the settings file with command-line flags.
func loadSettings(cmd *cli.Command) (*settings, error) {
	path := cmd.String("config")
	required := path != ""
	if path == "" {
		path = config.FileName
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, err
	}

	if paths := cmd.StringSlice("cookbook-path"); len(paths) > 0 {
		cfg.CookbookPath = paths
	}
	if v := cmd.String("ignore-base"); v != "" {
		if _, err := config.ParseIgnoreBase(v); err != nil {
			return nil, err
		}
		cfg.IgnoreBase = v
	}
	if v := cmd.String("ignore-syntax"); v != "" {
		if _, err := config.ParseIgnoreSyntax(v); err != nil {
			return nil, err
		}
		cfg.IgnoreSyntax = v
	}

	logger := log.NewWithOptions(errWriter(cmd), log.Options{Prefix: "cbfiles"})
	if cmd.Bool("verbose") {
		logger.SetLevel(log.DebugLevel)
	}

	opts := append(cfg.LoaderOptions(), cookbook.WithDiagnostics(cookbook.NewLogDiagnostics(logger)))
	return &settings{cfg: cfg, logger: logger, opts: opts}, nil
}

func (s *settings) searchPaths() ([]string, error) {
	if len(s.cfg.CookbookPath) == 0 {
		return nil, fmt.Errorf("no cookbook path configured (use --cookbook-path or %s)", config.FileName)
	}
	return s.cfg.CookbookPath, nil
}

func outWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

// printFiles writes every category of l with its logical names sorted.
func printFiles(w io.Writer, l *cookbook.Loader) {
	fmt.Fprintf(w, "%s (%s)\n", l.Name, l.Root)
	for _, c := range cookbook.Categories() {
		var names []string
		if c == cookbook.MetadataFiles {
			names = append(names, l.MetadataFiles()...)
		} else {
			for _, e := range l.Files(c).Entries() {
				names = append(names, e.Name)
			}
		}
		if len(names) == 0 {
			continue
		}
		sort.Strings(names)
		fmt.Fprintf(w, "  %s:\n", c)
		for _, n := range names {
			fmt.Fprintf(w, "    %s\n", n)
		}
	}
}
