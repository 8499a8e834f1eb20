package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/satococoa/nbsetup/internal/command"
	"github.com/satococoa/nbsetup/internal/config"
	"github.com/satococoa/nbsetup/internal/errors"
	nbio "github.com/satococoa/nbsetup/internal/io"
	"github.com/satococoa/nbsetup/internal/provision"
	"github.com/satococoa/nbsetup/internal/venv"
)

// Variables to allow mocking in tests
var (
	newShellExecutor = func(logger *log.Logger) command.ShellExecutor {
		return command.NewRealShellExecutor(command.ShellFor(runtime.GOOS), logger)
	}
	newLauncher = func(stdin io.Reader, stdout, stderr io.Writer, logger *log.Logger) command.Launcher {
		return command.NewLauncher(stdin, stdout, stderr, command.DefaultGracePeriod, logger)
	}
)

// provisionCommand is the root action. Provisioning failures are reported on
// the console and do not make the command fail; only problems with flags,
// the project directory or the configuration file do.
func provisionCommand(ctx context.Context, cmd *cli.Command) error {
	w, r, ew := streams(cmd)

	if cmd.Bool("no-color") {
		color.NoColor = true
	}

	logger, err := newLogger(ew, cmd.String("log-level"))
	if err != nil {
		return err
	}

	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}
	logger.Debug("configuration resolved",
		"root", cfg.Root,
		"env", cfg.Environment.Dir,
		"requirements", cfg.Requirements,
		"launch", cfg.Launch.Mode)

	p := provision.New(provision.Options{
		Config:   cfg,
		Platform: venv.PlatformFor(runtime.GOOS),
		Python:   cfg.PythonCommand(runtime.GOOS),
		Shell:    newShellExecutor(logger),
		Launcher: newLauncher(r, w, ew, logger),
		Console:  nbio.NewConsole(w, r),
		Logger:   logger,
	})

	if ok := p.Run(ctx); !ok {
		logger.Debug("provisioning did not complete")
	}
	return nil
}

// loadProjectConfig resolves the project root, loads its configuration file
// and applies command line overrides
func loadProjectConfig(cmd *cli.Command) (*config.Config, error) {
	root, err := config.ResolveRoot(cmd.String("dir"), cmd.String("requirements"))
	if err != nil {
		dir := cmd.String("dir")
		if dir == "" {
			dir = "."
		}
		return nil, errors.DirectoryAccessFailed("access project", dir, err)
	}

	var cfg *config.Config
	if cmd.IsSet("config") {
		configPath, err := filepath.Abs(cmd.String("config"))
		if err != nil {
			return nil, errors.ConfigLoadFailed(cmd.String("config"), err)
		}
		if cfg, err = config.LoadConfigFile(root, configPath); err != nil {
			return nil, errors.ConfigLoadFailed(configPath, err)
		}
	} else if cfg, err = config.LoadConfig(root); err != nil {
		return nil, errors.ConfigLoadFailed(filepath.Join(root, config.ConfigFileName), err)
	}

	if err := applyOverrides(cmd, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyOverrides(cmd *cli.Command, cfg *config.Config) error {
	if cmd.IsSet("python") {
		cfg.Environment.Python = cmd.String("python")
	}
	if cmd.IsSet("venv") {
		cfg.Environment.Dir = cmd.String("venv")
	}
	if cmd.IsSet("requirements") {
		cfg.Requirements = cmd.String("requirements")
	}

	if cmd.IsSet("launch") {
		mode := cmd.String("launch")
		switch mode {
		case config.LaunchModeAsk, config.LaunchModeAlways, config.LaunchModeNever:
			cfg.Launch.Mode = mode
		default:
			return errors.InvalidLaunchMode(mode)
		}
	}
	if cmd.Bool("yes") {
		cfg.Launch.Mode = config.LaunchModeAlways
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

func streams(cmd *cli.Command) (io.Writer, io.Reader, io.Writer) {
	root := cmd.Root()

	w := root.Writer
	if w == nil {
		w = os.Stdout
	}
	r := root.Reader
	if r == nil {
		r = os.Stdin
	}
	ew := root.ErrWriter
	if ew == nil {
		ew = os.Stderr
	}
	return w, r, ew
}
