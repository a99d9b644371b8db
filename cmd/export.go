package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/user/cbfiles/internal/cookbook"
	"github.com/user/cbfiles/internal/core"
)

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Write a checksummed manifest of a cookbook",
		ArgsUsage: "<name>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "out",
				Aliases:  []string{"o"},
				Usage:    "Manifest file to write",
				Required: true,
			},
			&cli.DurationFlag{
				Name:  "lock-timeout",
				Usage: "How long to wait for a concurrent export of the same file",
				Value: 30 * time.Second,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one cookbook name")
			}
			name := cmd.Args().First()
			out := cmd.String("out")

			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			paths, err := s.searchPaths()
			if err != nil {
				return err
			}

			l, err := cookbook.LoadFromPaths(name, paths, s.opts...)
			if err != nil {
				return err
			}
			// Parse metadata up front so a corrupt metadata.json aborts the export.
			if _, err := l.Metadata(); err != nil {
				return err
			}
			state := l.State()
			if state == nil {
				return fmt.Errorf("cookbook %s not found or empty", name)
			}

			manifest, err := core.BuildManifest(state)
			if err != nil {
				return err
			}

			release, err := core.LockExport(out, cmd.Duration("lock-timeout"))
			if err != nil {
				return err
			}
			defer release()

			cleanup := installSignalHandler(release)
			defer cleanup()

			if err := core.WriteManifest(out, manifest); err != nil {
				return err
			}
			fmt.Fprintf(outWriter(cmd), "exported %s to %s\n", name, out)
			return nil
		},
	}
}
