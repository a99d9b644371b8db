package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/user/cbfiles/internal/cookbook"
)

func scanCmd() *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Usage:     "Scan cookbook directories and print their files by category",
		ArgsUsage: "<dir>...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) == 0 {
				return fmt.Errorf("no cookbook directories specified")
			}

			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			w := outWriter(cmd)
			failed := 0
			for _, dir := range args {
				l, err := cookbook.NewLoader(dir, s.opts...)
				if err != nil {
					s.logger.Error("cannot scan", "dir", dir, "err", err)
					failed++
					continue
				}
				// A failed load leaves partial results; the loader is dropped.
				if err := l.Load(); err != nil {
					s.logger.Error("cannot scan", "dir", dir, "err", err)
					failed++
					continue
				}
				if l.Empty() {
					fmt.Fprintf(w, "empty: %s\n", l.Name)
					continue
				}
				printFiles(w, l)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d cookbooks failed to scan", failed, len(args))
			}
			return nil
		},
	}
}
