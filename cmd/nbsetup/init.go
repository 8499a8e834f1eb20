package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/satococoa/nbsetup/internal/config"
	"github.com/satococoa/nbsetup/internal/errors"
)

const configFileMode = 0o600

const configTemplate = `# nbsetup configuration
version: "1.0"

# Virtual environment (relative to the project directory)
environment:
  dir: venv
  # Interpreter used to create the environment (default: python3, or python on Windows)
  # python: python3.12

# Dependency file passed to "pip install -r"
requirements: requirements.txt

# Notebook server started after setup
launch:
  # ask, always or never
  mode: ask
  module: jupyter
  args: [lab]

# Hooks that run after the requirements are installed
hooks:
  post_install:
    # Example: Copy environment file
    # - type: copy
    #   from: .env.example
    #   to: .env

    # Example: Register the environment as a Jupyter kernel
    # - type: command
    #   command: python -m ipykernel install --user --name my-project
`

// NewInitCommand creates the init command definition
func NewInitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize configuration file",
		Description: "Creates a " + config.ConfigFileName + " configuration file in the project directory " +
			"with the default settings and example hooks.",
		Action: initCommand,
	}
}

func initCommand(_ context.Context, cmd *cli.Command) error {
	root, err := config.ResolveRoot(cmd.String("dir"), cmd.String("requirements"))
	if err != nil {
		return errors.DirectoryAccessFailed("access project", cmd.String("dir"), err)
	}

	configPath := filepath.Join(root, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		return errors.ConfigAlreadyExists(configPath)
	}

	if err := os.WriteFile(configPath, []byte(configTemplate), configFileMode); err != nil {
		return errors.DirectoryAccessFailed("create configuration file in", root, err)
	}

	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintf(w, "Configuration file created: %s\n", configPath)
	fmt.Fprintln(w, "Edit this file to customize your environment setup.")
	return nil
}
