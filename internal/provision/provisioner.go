// Package provision prepares a project's notebook environment: it creates
// the virtual environment, installs the declared dependencies, runs the
// project's post-install hooks and optionally starts the notebook server.
//
// Every operation reports to the operator through a console and signals
// success with a boolean; nothing is retried and a failure stops the
// remaining sequence.
package provision

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/satococoa/nbsetup/internal/command"
	"github.com/satococoa/nbsetup/internal/config"
	"github.com/satococoa/nbsetup/internal/errors"
	"github.com/satococoa/nbsetup/internal/hooks"
	nbio "github.com/satococoa/nbsetup/internal/io"
	"github.com/satococoa/nbsetup/internal/venv"
)

// Options configures a Provisioner
type Options struct {
	Config   *config.Config
	Platform venv.Platform
	Python   string // Interpreter creating the environment
	Shell    command.ShellExecutor
	Launcher command.Launcher
	Console  *nbio.Console
	Logger   *log.Logger
}

// Provisioner runs the provisioning sequence for one project root
type Provisioner struct {
	config   *config.Config
	platform venv.Platform
	python   string
	layout   venv.Layout
	shell    command.ShellExecutor
	launcher command.Launcher
	hooks    *hooks.Executor
	console  *nbio.Console
	logger   *log.Logger
}

// Step is a single shell command with the description shown while it runs
type Step struct {
	Description string
	Command     command.Command
}

// New creates a Provisioner
func New(opts Options) *Provisioner {
	layout := venv.LayoutFor(opts.Platform, opts.Config.EnvironmentPath())
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Provisioner{
		config:   opts.Config,
		platform: opts.Platform,
		python:   opts.Python,
		layout:   layout,
		shell:    opts.Shell,
		launcher: opts.Launcher,
		hooks:    hooks.NewExecutor(opts.Config, layout, opts.Shell),
		console:  opts.Console,
		logger:   logger,
	}
}

// Run provisions the environment and, once everything succeeded, offers to
// launch the notebook server. It returns false as soon as a step fails.
func (p *Provisioner) Run(ctx context.Context) bool {
	start := time.Now()

	p.console.Status(nbio.StatusStart, "Setting up %s for %s...", p.serverName(), p.projectName())
	p.console.Status(nbio.StatusDir, "Working directory: %s", p.config.Root)

	if !p.EnsureEnvironment(ctx) || !p.InstallDependencies(ctx) || !p.RunHooks(ctx) {
		p.logger.Debug("provisioning aborted", "elapsed", time.Since(start).Round(time.Millisecond))
		return false
	}

	p.PrintInstructions()
	p.logger.Debug("provisioning finished", "elapsed", time.Since(start).Round(time.Millisecond))

	result := p.MaybeLaunch(ctx)
	p.logger.Debug("launch finished", "outcome", result.Outcome, "message", result.Message)
	return true
}

// RunStep executes one shell command, printing its description first and
// its output after. A failing command prints the error and captured stderr
// and returns false.
func (p *Provisioner) RunStep(ctx context.Context, step Step) bool {
	p.console.Status(nbio.StatusRun, "%s...", step.Description)

	result := p.shell.Execute(ctx, step.Command)
	if !result.Success() {
		p.logger.Warn("step failed", "step", step.Description, "line", result.Line, "err", result.Err)
		p.console.Status(nbio.StatusError, "Error: %v",
			errors.StepFailed(step.Description, result.Line, result.Err, result.Stderr))
		if result.Stderr != "" {
			p.console.Println("Error details: " + result.Stderr)
		}
		return false
	}

	if result.Stdout != "" {
		p.console.Println(result.Stdout)
	}
	return true
}

// EnsureEnvironment creates the virtual environment unless its directory
// already exists. It returns false only when creation fails.
func (p *Provisioner) EnsureEnvironment(ctx context.Context) bool {
	p.console.Blank()
	if venv.Exists(p.layout.Dir) {
		p.console.Status(nbio.StatusOK, "Virtual environment already exists")
		return true
	}

	p.console.Status(nbio.StatusCreate, "Creating virtual environment...")
	return p.RunStep(ctx, Step{
		Description: "Creating virtual environment",
		Command:     command.VenvCreate(p.python, p.config.Environment.Dir, p.config.Root),
	})
}

// InstallDependencies upgrades the environment's installer and then installs
// the dependency file, stopping at the first failure
func (p *Provisioner) InstallDependencies(ctx context.Context) bool {
	p.console.Blank()
	p.console.Status(nbio.StatusInstall, "Installing requirements...")

	steps := []Step{
		{
			Description: "Upgrading pip",
			Command:     command.PipUpgrade(p.layout.Pip, p.config.Root),
		},
		{
			Description: "Installing packages from " + p.config.Requirements,
			Command:     command.PipInstallRequirements(p.layout.Pip, p.config.Requirements, p.config.Root),
		},
	}

	for _, step := range steps {
		if !p.RunStep(ctx, step) {
			return false
		}
	}
	return true
}

// RunHooks executes the configured post-install hooks
func (p *Provisioner) RunHooks(ctx context.Context) bool {
	if !p.config.HasHooks() {
		return true
	}

	p.console.Blank()
	p.console.Status(nbio.StatusRun, "Running post-install hooks...")
	if err := p.hooks.ExecutePostInstallHooks(ctx, p.console.Writer()); err != nil {
		p.logger.Warn("post-install hook failed", "err", err)
		p.console.Status(nbio.StatusError, "Error: %v", err)
		return false
	}
	return true
}

// PrintInstructions tells the operator how to use the environment by hand
func (p *Provisioner) PrintInstructions() {
	p.console.Blank()
	p.console.Status(nbio.StatusDone, "Setup complete!")
	p.console.Blank()
	p.console.Status(nbio.StatusNotes, "To start %s:", p.serverName())
	p.console.Println("1. Navigate to: " + p.config.Root)
	p.console.Println("2. Activate virtual environment:")
	p.console.Println("   " + venv.ActivateHint(p.platform, p.config.Environment.Dir))
	p.console.Println("3. Start " + p.serverName() + ":")
	p.console.Println("   " + p.launchHint())
}

// MaybeLaunch asks whether to start the notebook server and, if so, runs it
// in the foreground with the environment's own interpreter. It never fails;
// the outcome is reported on the console and returned.
func (p *Provisioner) MaybeLaunch(ctx context.Context) LaunchResult {
	name := p.serverName()

	switch p.config.Launch.Mode {
	case config.LaunchModeNever:
		return LaunchResult{Outcome: LaunchDeclined}
	case config.LaunchModeAlways:
	default:
		p.console.Blank()
		answer, err := p.console.AskContext(ctx, fmt.Sprintf("Would you like to start %s now? (y/n): ", name))
		if err != nil {
			p.console.Blank()
			p.logger.Debug("no answer to launch prompt", "err", err)
			return LaunchResult{Outcome: LaunchDeclined}
		}
		if !IsAffirmative(answer) {
			return LaunchResult{Outcome: LaunchDeclined}
		}
	}

	p.console.Blank()
	p.console.Status(nbio.StatusStart, "Starting %s...", name)

	cmd := command.PythonModule(p.layout.Python, p.config.Launch.Module, p.config.Launch.Args, p.config.Root)
	err := p.launcher.Launch(ctx, cmd)

	switch {
	case ctx.Err() != nil || command.TerminatedBySignal(err):
		p.console.Blank()
		p.console.Status(nbio.StatusStopped, "%s stopped by user", name)
		return LaunchResult{Outcome: LaunchStopped}
	case err != nil:
		p.logger.Warn("launch failed", "command", cmd.String(), "err", err)
		if status, ok := command.ExitStatus(err); ok {
			p.console.Blank()
			p.console.Status(nbio.StatusError, "%v", errors.ServerExited(name, p.config.Launch.Module, status))
			return LaunchResult{Outcome: LaunchFailed, Message: err.Error()}
		}
		p.console.Status(nbio.StatusError, "Error starting %s: %v", name, errors.LaunchFailed(p.config.Launch.Module, err))
		return LaunchResult{Outcome: LaunchFailed, Message: err.Error()}
	default:
		return LaunchResult{Outcome: LaunchCompleted}
	}
}

// IsAffirmative reports whether an operator answer means yes: "y" or "yes"
// in any case, ignoring surrounding whitespace
func IsAffirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (p *Provisioner) serverName() string {
	launch := p.config.Launch
	if launch.Module == config.DefaultLaunchModule && len(launch.Args) > 0 && launch.Args[0] == "lab" {
		return "JupyterLab"
	}
	return p.launchHint()
}

func (p *Provisioner) launchHint() string {
	return strings.TrimSpace(p.config.Launch.Module + " " + strings.Join(p.config.Launch.Args, " "))
}

func (p *Provisioner) projectName() string {
	name := p.config.Root
	if i := strings.LastIndexAny(name, `/\`); i >= 0 && i < len(name)-1 {
		name = name[i+1:]
	}
	return name
}
