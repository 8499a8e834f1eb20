package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepFailed(t *testing.T) {
	tests := []struct {
		name        string
		description string
		stderr      string
		origErr     error
		expected    []string
	}{
		{
			name:        "missing venv module",
			description: "Creating virtual environment",
			stderr:      "/usr/bin/python3: No module named venv",
			origErr:     fmt.Errorf("exit status 1"),
			expected: []string{
				"creating virtual environment failed: python3 -m venv venv",
				"built without the venv module",
				"python3-venv",
				"Original error: exit status 1",
			},
		},
		{
			name:        "ensurepip missing",
			description: "Creating virtual environment",
			stderr:      "The virtual environment was not created successfully because ensurepip is not available.",
			origErr:     fmt.Errorf("exit status 1"),
			expected:    []string{"venv module"},
		},
		{
			name:        "interpreter not found",
			description: "Creating virtual environment",
			stderr:      "sh: 1: python3: command not found",
			origErr:     fmt.Errorf("exit status 127"),
			expected:    []string{"Cause: Command not found", "--python"},
		},
		{
			name:        "requirements file missing",
			description: "Installing packages from requirements.txt",
			stderr:      "ERROR: Could not open requirements file: [Errno 2] No such file or directory: 'requirements.txt'",
			origErr:     fmt.Errorf("exit status 1"),
			expected:    []string{"Dependency file does not exist", "--requirements"},
		},
		{
			name:        "unresolvable package",
			description: "Installing packages from requirements.txt",
			stderr:      "ERROR: No matching distribution found for pandas==0.0.1",
			origErr:     fmt.Errorf("exit status 1"),
			expected:    []string{"could not be resolved", "version pins"},
		},
		{
			name:        "network failure",
			description: "Upgrading pip",
			stderr:      "WARNING: Retrying after connection broken by 'NewConnectionError'",
			origErr:     fmt.Errorf("exit status 1"),
			expected:    []string{"package index could not be reached"},
		},
		{
			name:        "permission denied",
			description: "Upgrading pip",
			stderr:      "ERROR: Could not install packages due to an OSError: [Errno 13] Permission denied",
			origErr:     fmt.Errorf("exit status 1"),
			expected:    []string{"Cause: Permission denied"},
		},
		{
			name:        "unknown failure",
			description: "Upgrading pip",
			stderr:      "something odd",
			origErr:     fmt.Errorf("exit status 2"),
			expected:    []string{"upgrading pip failed", "Original error: exit status 2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := StepFailed(tt.description, "python3 -m venv venv", tt.origErr, tt.stderr)

			assert.Error(t, err)
			for _, expected := range tt.expected {
				assert.Contains(t, err.Error(), expected)
			}
		})
	}
}

func TestStepFailed_UnknownFailureHasNoCause(t *testing.T) {
	err := StepFailed("Upgrading pip", "pip install --upgrade pip", fmt.Errorf("exit status 2"), "")

	assert.NotContains(t, err.Error(), "Cause:")
}

func TestStepFailed_EmptyDescription(t *testing.T) {
	err := StepFailed("", "true", nil, "")

	assert.Equal(t, "command failed: true", err.Error())
}

func TestLaunchFailed(t *testing.T) {
	t.Run("missing interpreter", func(t *testing.T) {
		err := LaunchFailed("jupyter", fmt.Errorf("fork/exec venv/bin/python: no such file or directory"))

		assert.Contains(t, err.Error(), "failed to start jupyter")
		assert.Contains(t, err.Error(), "interpreter is missing")
	})

	t.Run("unknown failure has no cause", func(t *testing.T) {
		err := LaunchFailed("jupyter", fmt.Errorf("fork/exec venv/bin/python: permission denied"))

		assert.NotContains(t, err.Error(), "Cause:")
		assert.Contains(t, err.Error(), "Original error: fork/exec venv/bin/python: permission denied")
	})
}

func TestServerExited(t *testing.T) {
	err := ServerExited("JupyterLab", "jupyter", 1)

	assert.Contains(t, err.Error(), "JupyterLab exited with status 1")
	assert.Contains(t, err.Error(), `"No module named jupyter"`)
	assert.NotContains(t, err.Error(), "failed to start")
}

func TestConfigLoadFailed(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"yaml error", fmt.Errorf("failed to parse config file: yaml: line 3"), "YAML syntax error"},
		{"invalid value", fmt.Errorf("invalid configuration: invalid launch mode 'x'"), "unsupported value"},
		{"permission", fmt.Errorf("failed to read config file: permission denied"), "Permission denied reading"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ConfigLoadFailed(".nbsetup.yml", tt.err)

			assert.Contains(t, err.Error(), "failed to load configuration from '.nbsetup.yml'")
			assert.Contains(t, err.Error(), tt.expected)
			assert.Contains(t, err.Error(), "Original error:")
		})
	}
}

func TestConfigAlreadyExists(t *testing.T) {
	err := ConfigAlreadyExists("/project/.nbsetup.yml")

	assert.Contains(t, err.Error(), "configuration file already exists: /project/.nbsetup.yml")
	assert.Contains(t, err.Error(), "Options:")
}

func TestInvalidLaunchMode(t *testing.T) {
	err := InvalidLaunchMode("sometimes")

	assert.Contains(t, err.Error(), "invalid launch mode: 'sometimes'")
	for _, mode := range []string{"ask", "always", "never"} {
		assert.Contains(t, err.Error(), mode)
	}
}

func TestDirectoryAccessFailed(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"permission", fmt.Errorf("open /x: permission denied"), "Cause: Permission denied"},
		{"missing", fmt.Errorf("stat /x: no such file or directory"), "Directory does not exist"},
		{"file", fmt.Errorf("not a directory: /x"), "Path is a file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DirectoryAccessFailed("access project", "/x", tt.err)

			assert.True(t, strings.HasPrefix(err.Error(), "failed to access project directory: /x"))
			assert.Contains(t, err.Error(), tt.expected)
		})
	}
}

func TestHookExecutionFailed(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"permission", fmt.Errorf("open .env: permission denied"), "Ensure the command is executable"},
		{"missing source", fmt.Errorf("source path does not exist: .env.example"), "Check file paths in .nbsetup.yml"},
		{"missing command", fmt.Errorf("sh: ipython: command not found"), "Add the package that provides it"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := HookExecutionFailed(1, "command", tt.err)

			assert.Contains(t, err.Error(), "failed to execute command hook #2")
			assert.Contains(t, err.Error(), tt.expected)
		})
	}
}
