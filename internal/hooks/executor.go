package hooks

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/satococoa/nbsetup/internal/command"
	"github.com/satococoa/nbsetup/internal/config"
	"github.com/satococoa/nbsetup/internal/errors"
	"github.com/satococoa/nbsetup/internal/venv"
)

const (
	directoryPermissions = 0o755
)

// Executor handles post-install hook execution
type Executor struct {
	config *config.Config
	layout venv.Layout
	shell  command.ShellExecutor
}

// NewExecutor creates a new hook executor. Command hooks run through shell
// with the environment described by layout activated.
func NewExecutor(cfg *config.Config, layout venv.Layout, shell command.ShellExecutor) *Executor {
	return &Executor{
		config: cfg,
		layout: layout,
		shell:  shell,
	}
}

// ExecutePostInstallHooks executes all post-install hooks in order, writing
// progress and command output to w. The first failing hook stops the run.
func (e *Executor) ExecutePostInstallHooks(ctx context.Context, w io.Writer) error {
	if !e.config.HasHooks() {
		return nil
	}

	for i, hook := range e.config.Hooks.PostInstall {
		if err := e.executeHook(ctx, w, &hook); err != nil {
			return errors.HookExecutionFailed(i, hook.Type, err)
		}
	}

	return nil
}

func (e *Executor) executeHook(ctx context.Context, w io.Writer, hook *config.Hook) error {
	switch hook.Type {
	case config.HookTypeCopy:
		return e.executeCopyHook(w, hook)
	case config.HookTypeCommand:
		return e.executeCommandHook(ctx, w, hook)
	default:
		return fmt.Errorf("unknown hook type: %s", hook.Type)
	}
}

func (e *Executor) executeCopyHook(w io.Writer, hook *config.Hook) error {
	root := e.config.Root
	srcPath := e.resolve(hook.From)
	dstPath := e.resolve(hook.To)

	srcInfo, err := os.Stat(srcPath)
	if err != nil {
		return fmt.Errorf("source path does not exist: %s", srcPath)
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), directoryPermissions); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	relSrc, _ := filepath.Rel(root, srcPath)
	relDst, _ := filepath.Rel(root, dstPath)
	fmt.Fprintf(w, "  Copying: %s → %s\n", relSrc, relDst)

	if srcInfo.IsDir() {
		return copyDir(srcPath, dstPath)
	}
	return copyFile(srcPath, dstPath)
}

func (e *Executor) executeCommandHook(ctx context.Context, w io.Writer, hook *config.Hook) error {
	workDir := e.config.Root
	if hook.WorkDir != "" {
		workDir = e.resolve(hook.WorkDir)
	}

	fmt.Fprintf(w, "  Running: %s\n", hook.Command)

	result := e.shell.Execute(ctx, command.ShellLine(hook.Command, workDir, e.environment(hook.Env)))
	if result.Stdout != "" {
		fmt.Fprintln(w, result.Stdout)
	}
	if !result.Success() {
		if result.Stderr != "" {
			return fmt.Errorf("command failed: %w\n%s", result.Err, result.Stderr)
		}
		return fmt.Errorf("command failed: %w", result.Err)
	}

	return nil
}

// environment activates the virtual environment for a command hook: its
// bin dir leads PATH and VIRTUAL_ENV points at it. Hook env comes last so
// it can override either.
func (e *Executor) environment(extra map[string]string) map[string]string {
	sep := string(os.PathListSeparator)
	if e.layout.Platform == venv.PlatformWindows {
		sep = ";"
	}

	env := map[string]string{
		"VIRTUAL_ENV":  e.layout.Dir,
		"PATH":         strings.Join([]string{e.layout.BinDir, os.Getenv("PATH")}, sep),
		"NBSETUP_ROOT": e.config.Root,
	}
	for k, v := range extra {
		env[k] = v
	}
	return env
}

func (e *Executor) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(e.config.Root, p)
}

// copyFile copies a single file, keeping its permissions
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer sourceFile.Close()

	srcInfo, err := sourceFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to get source file info: %w", err)
	}

	destFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return fmt.Errorf("failed to copy file: %w", err)
	}

	return destFile.Chmod(srcInfo.Mode().Perm())
}

// copyDir recursively copies a directory
func copyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source directory: %w", err)
	}

	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("failed to read source directory: %w", err)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			err = copyDir(srcPath, dstPath)
		} else {
			err = copyFile(srcPath, dstPath)
		}
		if err != nil {
			return err
		}
	}

	return nil
}
