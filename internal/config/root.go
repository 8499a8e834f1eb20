package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Variables to allow mocking in tests
var (
	osExecutable = os.Executable
	osGetwd      = os.Getwd
)

// ResolveRoot determines the project directory. An explicit dir wins; next
// comes the directory holding the running executable when it carries the
// requirements file, so a binary dropped into a project behaves like a
// script living there; otherwise the current working directory.
func ResolveRoot(dir, requirements string) (string, error) {
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("failed to resolve directory %s: %w", dir, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", err
		}
		if !info.IsDir() {
			return "", fmt.Errorf("not a directory: %s", abs)
		}
		return abs, nil
	}

	if requirements == "" {
		requirements = DefaultRequirementsFile
	}

	if exe, err := osExecutable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		exeDir := filepath.Dir(exe)
		if !filepath.IsAbs(requirements) {
			if _, err := os.Stat(filepath.Join(exeDir, requirements)); err == nil {
				return exeDir, nil
			}
		}
	}

	cwd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Abs(cwd)
}

// PythonCommand returns the interpreter used to create the environment
func (c *Config) PythonCommand(goos string) string {
	if c.Environment.Python != "" {
		return c.Environment.Python
	}
	if goos == "windows" {
		return "python"
	}
	return "python3"
}
