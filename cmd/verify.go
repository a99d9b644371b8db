package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/user/cbfiles/internal/core"
)

func verifyCmd() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "Check the files of an exported manifest against their checksums",
		ArgsUsage: "<manifest>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one manifest file")
			}

			// No manifest lock: read-only command
			manifest, err := core.ReadManifest(cmd.Args().First())
			if err != nil {
				return err
			}
			changed, err := core.VerifyManifest(manifest)
			if err != nil {
				return err
			}

			w := outWriter(cmd)
			if len(changed) == 0 {
				fmt.Fprintf(w, "%s: all files match\n", manifest.Name)
				return nil
			}
			for _, n := range changed {
				fmt.Fprintf(w, "changed: %s\n", n)
			}
			return fmt.Errorf("%d files changed since export", len(changed))
		},
	}
}
