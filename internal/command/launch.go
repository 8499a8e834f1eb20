package command

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultGracePeriod is how long a launched process may take to exit after
// being interrupted before it is killed
const DefaultGracePeriod = 10 * time.Second

// realLauncher implements Launcher using os/exec with inherited stdio
type realLauncher struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	grace  time.Duration
	logger *log.Logger
}

// NewLauncher creates a launcher attached to the given streams
func NewLauncher(stdin io.Reader, stdout, stderr io.Writer, grace time.Duration, logger *log.Logger) Launcher {
	return &realLauncher{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		grace:  grace,
		logger: logger,
	}
}

// Launch runs the command directly, not through the shell, and blocks until
// it exits. Cancelling ctx interrupts the process and, after the grace
// period, kills it.
func (l *realLauncher) Launch(ctx context.Context, cmd Command) error {
	// #nosec G204 - The launched interpreter lives in the project's own environment
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	if cmd.WorkDir != "" {
		c.Dir = cmd.WorkDir
	}
	if len(cmd.Env) > 0 {
		c.Env = overlayEnv(c.Environ(), cmd.Env)
	}
	c.Stdin = l.stdin
	c.Stdout = l.stdout
	c.Stderr = l.stderr
	c.Cancel = func() error { return interrupt(c.Process) }
	c.WaitDelay = l.grace

	l.logger.Debug("launching", "command", cmd.String(), "dir", cmd.WorkDir)
	err := c.Run()
	l.logger.Debug("launched process exited", "err", err)
	return err
}

// interrupt asks the process to stop; platforms without SIGINT delivery
// (Windows) get a kill instead
func interrupt(p *os.Process) error {
	if err := p.Signal(os.Interrupt); err != nil {
		return p.Kill()
	}
	return nil
}

// ExitStatus returns the status of a process that ran and exited on its own
// with a non-zero code. ok is false for start failures and signals.
func ExitStatus(err error) (status int, ok bool) {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode(), true
	}
	return 0, false
}

// TerminatedBySignal reports whether err says the process was ended by a
// signal rather than exiting on its own
func TerminatedBySignal(err error) bool {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode() == -1
	}
	return false
}
