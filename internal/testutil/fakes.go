// Package testutil provides helpers shared across tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/satococoa/nbsetup/internal/command"
	"github.com/satococoa/nbsetup/internal/venv"
)

type rule struct {
	match  string
	stdout string
	stderr string
	err    error
	effect func(cmd command.Command)
}

// RecordingShell is a command.ShellExecutor that records every command and
// answers from rules matched against the command's string form. Commands
// without a matching rule succeed with no output.
type RecordingShell struct {
	Executed []command.Command
	rules    []rule
}

// Respond makes commands containing match produce the given output and error
func (r *RecordingShell) Respond(match, stdout, stderr string, err error) *RecordingShell {
	r.rules = append(r.rules, rule{match: match, stdout: stdout, stderr: stderr, err: err})
	return r
}

// OnCommand runs effect for commands containing match, before answering
func (r *RecordingShell) OnCommand(match string, effect func(cmd command.Command)) *RecordingShell {
	r.rules = append(r.rules, rule{match: match, effect: effect})
	return r
}

// Execute implements command.ShellExecutor
func (r *RecordingShell) Execute(_ context.Context, cmd command.Command) command.Result {
	r.Executed = append(r.Executed, cmd)

	result := command.Result{Command: cmd, Line: cmd.String()}
	for _, rl := range r.rules {
		if !strings.Contains(cmd.String(), rl.match) {
			continue
		}
		if rl.effect != nil {
			rl.effect(cmd)
			continue
		}
		result.Stdout = rl.stdout
		result.Stderr = rl.stderr
		result.Err = rl.err
		break
	}
	return result
}

// Lines returns the string form of every executed command
func (r *RecordingShell) Lines() []string {
	lines := make([]string, 0, len(r.Executed))
	for _, cmd := range r.Executed {
		lines = append(lines, cmd.String())
	}
	return lines
}

// Count returns how many executed commands contain match
func (r *RecordingShell) Count(match string) int {
	n := 0
	for _, line := range r.Lines() {
		if strings.Contains(line, match) {
			n++
		}
	}
	return n
}

// RecordingLauncher is a command.Launcher that records launches. Run, when
// set, stands in for the process and its error is returned.
type RecordingLauncher struct {
	Launched []command.Command
	Run      func(ctx context.Context) error
}

// Launch implements command.Launcher
func (l *RecordingLauncher) Launch(ctx context.Context, cmd command.Command) error {
	l.Launched = append(l.Launched, cmd)
	if l.Run != nil {
		return l.Run(ctx)
	}
	return nil
}

// CreateFakeEnvironment lays out an empty environment tree with the
// interpreter and installer files present, as "python -m venv" would
func CreateFakeEnvironment(t *testing.T, dir string) venv.Layout {
	t.Helper()

	layout := venv.LayoutFor(venv.PlatformUnix, dir)
	if err := os.MkdirAll(layout.BinDir, 0o755); err != nil {
		t.Fatalf("failed to create environment: %v", err)
	}
	for _, exe := range []string{layout.Python, layout.Pip} {
		if err := os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755); err != nil {
			t.Fatalf("failed to create %s: %v", filepath.Base(exe), err)
		}
	}
	return layout
}
