package main

import (
	"github.com/urfave/cli/v3"

	"github.com/satococoa/nbsetup/internal/config"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "nbsetup",
		Usage: "Provision a notebook environment for a project",
		Description: "nbsetup creates the project's Python virtual environment, installs its requirements, " +
			"runs post-install hooks and offers to start JupyterLab.",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"C"},
				Usage:   "Project directory (default: directory of the binary if it holds the requirements file, else cwd)",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to the configuration file (default: <dir>/" + config.ConfigFileName + ")",
			},
			&cli.StringFlag{
				Name:  "python",
				Usage: "Interpreter used to create the virtual environment",
			},
			&cli.StringFlag{
				Name:  "venv",
				Usage: "Virtual environment directory, relative to the project",
			},
			&cli.StringFlag{
				Name:    "requirements",
				Aliases: []string{"r"},
				Usage:   "Requirements file, relative to the project",
			},
			&cli.StringFlag{
				Name:  "launch",
				Usage: "Whether to start the notebook server: ask, always or never",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Start the notebook server without asking (same as --launch always)",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Diagnostic log level: debug, info, warn or error",
				Value: "warn",
			},
		},
		Action: provisionCommand,
		Commands: []*cli.Command{
			NewInitCommand(),
		},
	}
}
