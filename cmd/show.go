package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/user/cbfiles/internal/cookbook"
)

func showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Assemble a cookbook across the cookbook paths and print it",
		ArgsUsage: "<name>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one cookbook name")
			}
			name := cmd.Args().First()

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
			if l.Empty() {
				return fmt.Errorf("cookbook %s not found or empty", name)
			}

			md, err := l.Metadata()
			if err != nil {
				return err
			}

			w := outWriter(cmd)
			printFiles(w, l)
			if keys := md.Keys(); len(keys) > 0 {
				fmt.Fprintln(w, "  metadata keys:")
				for _, k := range keys {
					fmt.Fprintf(w, "    %s\n", k)
				}
			}
			return nil
		},
	}
}
