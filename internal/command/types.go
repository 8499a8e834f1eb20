package command

import (
	"context"
	"strings"
)

// Command represents a process to be executed
type Command struct {
	Name    string            // Command name (e.g., "python3")
	Args    []string          // Command arguments
	WorkDir string            // Optional working directory
	Env     map[string]string // Extra environment variables (overlay)
	Raw     string            // Shell line used verbatim instead of Name/Args
}

// String renders the command for humans; use Shell.Line for execution
func (c Command) String() string {
	if c.Raw != "" {
		return c.Raw
	}
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Result represents the outcome of a single command execution
type Result struct {
	Command Command
	Line    string // Shell line that was executed
	Stdout  string
	Stderr  string
	Err     error
}

// Success reports whether the command ran and exited with status zero
func (r Result) Success() bool {
	return r.Err == nil
}

// ShellExecutor runs a command through the host shell and captures its output
type ShellExecutor interface {
	Execute(ctx context.Context, cmd Command) Result
}

// Launcher runs a command in the foreground with the terminal attached
type Launcher interface {
	Launch(ctx context.Context, cmd Command) error
}
