package command

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/syntax"
)

// Shell describes how the host shell is invoked
type Shell struct {
	Path    string // "sh" or "cmd"
	Flag    string // Flag introducing the command line
	Windows bool
}

// ShellFor returns the host shell for a GOOS value
func ShellFor(goos string) Shell {
	if goos == "windows" {
		return Shell{Path: "cmd", Flag: "/C", Windows: true}
	}
	return Shell{Path: "sh", Flag: "-c"}
}

// Quote quotes a single argument so the shell passes it through unchanged
func (s Shell) Quote(arg string) (string, error) {
	if s.Windows {
		return quoteCmd(arg), nil
	}
	return syntax.Quote(arg, syntax.LangPOSIX)
}

// Line renders the command as a single shell line
func (s Shell) Line(cmd Command) (string, error) {
	if cmd.Raw != "" {
		return cmd.Raw, nil
	}
	if cmd.Name == "" {
		return "", fmt.Errorf("empty command")
	}

	words := make([]string, 0, len(cmd.Args)+1)
	for _, w := range append([]string{cmd.Name}, cmd.Args...) {
		quoted, err := s.Quote(w)
		if err != nil {
			return "", fmt.Errorf("cannot quote %q: %w", w, err)
		}
		words = append(words, quoted)
	}
	return strings.Join(words, " "), nil
}

// CommandLine returns the full process command line for a shell line. On
// Windows cmd.exe parses its own command line, so this is what the process
// receives verbatim; /S makes cmd strip exactly the outer pair of quotes.
func (s Shell) CommandLine(line string) string {
	if s.Windows {
		return s.Path + " /S " + s.Flag + ` "` + line + `"`
	}
	return s.Path + " " + s.Flag + " " + line
}

func (s Shell) command(ctx context.Context, line string) *exec.Cmd {
	// #nosec G204 - Command lines are built from flags and the project's own configuration
	c := exec.CommandContext(ctx, s.Path, s.Flag, line)
	if s.Windows {
		setRawCommandLine(c, s.CommandLine(line))
	}
	return c
}

func quoteCmd(arg string) string {
	if arg == "" {
		return `""`
	}
	if !strings.ContainsAny(arg, " \t&|<>^()\"%") {
		return arg
	}
	return `"` + strings.ReplaceAll(arg, `"`, `""`) + `"`
}

// realShellExecutor implements ShellExecutor using the host shell
type realShellExecutor struct {
	shell  Shell
	logger *log.Logger
}

// NewRealShellExecutor creates a new shell executor that executes real commands
func NewRealShellExecutor(shell Shell, logger *log.Logger) ShellExecutor {
	return &realShellExecutor{
		shell:  shell,
		logger: logger,
	}
}

// Execute runs the command line through the shell, capturing stdout and
// stderr separately
func (s *realShellExecutor) Execute(ctx context.Context, cmd Command) Result {
	line, err := s.shell.Line(cmd)
	result := Result{Command: cmd, Line: line}
	if err != nil {
		result.Err = err
		return result
	}

	c := s.shell.command(ctx, line)
	if cmd.WorkDir != "" {
		c.Dir = cmd.WorkDir
	}
	if len(cmd.Env) > 0 {
		c.Env = overlayEnv(c.Environ(), cmd.Env)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	result.Err = c.Run()
	result.Stdout = strings.TrimSpace(stdout.String())
	result.Stderr = strings.TrimSpace(stderr.String())

	s.logger.Debug("shell command finished",
		"line", line,
		"dir", cmd.WorkDir,
		"duration", time.Since(start).Round(time.Millisecond),
		"err", result.Err)

	return result
}

func overlayEnv(base []string, extra map[string]string) []string {
	env := slices.Clone(base)
	for _, key := range slices.Sorted(maps.Keys(extra)) {
		env = append(env, key+"="+extra[key])
	}
	return env
}
