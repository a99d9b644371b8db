package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/user/cbfiles/internal/cookbook"
)

func listCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List cookbook names found in the cookbook paths",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			paths, err := s.searchPaths()
			if err != nil {
				return err
			}

			names, err := cookbook.DiscoverNames(paths)
			if err != nil {
				return err
			}

			w := outWriter(cmd)
			if len(names) == 0 {
				fmt.Fprintln(w, "no cookbooks")
				return nil
			}
			for _, n := range names {
				fmt.Fprintln(w, n)
			}
			return nil
		},
	}
}
