package cmd

import (
	"github.com/urfave/cli/v3"
)

// NewApp creates the root cbfiles CLI command with all subcommands.
func NewApp() *cli.Command {
	return &cli.Command{
		Name:  "cbfiles",
		Usage: "Discover and classify the files of cookbook directories",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Settings file (default: ./" + configFileName + " when present)",
			},
			&cli.StringSliceFlag{
				Name:    "cookbook-path",
				Aliases: []string{"p"},
				Usage:   "Directory holding cookbooks; repeat for several, later paths win",
			},
			&cli.StringFlag{
				Name:  "ignore-base",
				Usage: "Resolve the ignore file from the cookbook root or its name (root|name)",
			},
			&cli.StringFlag{
				Name:  "ignore-syntax",
				Usage: "Ignore file syntax (regexp|gitignore)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log debug diagnostics",
			},
		},
		Commands: []*cli.Command{
			scanCmd(),
			showCmd(),
			listCmd(),
			exportCmd(),
			verifyCmd(),
		},
	}
}
