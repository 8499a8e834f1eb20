package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Common error messages with helpful context and suggestions

// Provisioning Errors
func StepFailed(description, commandLine string, originalError error, stderr string) error {
	msg := fmt.Sprintf("%s failed: %s", lowerFirst(description), commandLine)

	details := strings.ToLower(stderr)
	if originalError != nil {
		details += "\n" + strings.ToLower(originalError.Error())
	}

	switch {
	case strings.Contains(details, "no module named venv") ||
		strings.Contains(details, "ensurepip is not available"):
		msg += `

Cause: The interpreter was built without the venv module
Solutions:
  • Install the venv package for your interpreter (e.g. 'apt install python3-venv')
  • Point --python at an interpreter that ships venv`
	case strings.Contains(details, "executable file not found") ||
		strings.Contains(details, "command not found") ||
		strings.Contains(details, "exit status 127") ||
		strings.Contains(details, "is not recognized as an internal or external command"):
		msg += `

Cause: Command not found
Solutions:
  • Install Python 3 and make sure it is on PATH
  • Use --python to give the full path of the interpreter
  • Remove a broken environment directory and run nbsetup again`
	case strings.Contains(details, "could not open requirements file"):
		msg += `

Cause: Dependency file does not exist
Solutions:
  • Create the requirements file in the project directory
  • Use --requirements to point at the correct file`
	case strings.Contains(details, "no matching distribution found") ||
		strings.Contains(details, "could not find a version that satisfies"):
		msg += `

Cause: A declared package could not be resolved
Solutions:
  • Check package names and version pins in the requirements file
  • Make sure the pinned versions support your Python version`
	case strings.Contains(details, "connection") || strings.Contains(details, "network is unreachable") ||
		strings.Contains(details, "temporary failure in name resolution"):
		msg += `

Cause: The package index could not be reached
Solutions:
  • Check your network connection or proxy settings
  • Retry once the package index is reachable`
	case strings.Contains(details, "permission denied"):
		msg += `

Cause: Permission denied
Solutions:
  • Check permissions of the project directory
  • Avoid running inside a read-only checkout`
	}

	if originalError != nil {
		msg += fmt.Sprintf("\n\nOriginal error: %v", originalError)
	}
	return errors.New(msg)
}

func LaunchFailed(module string, originalError error) error {
	msg := fmt.Sprintf("failed to start %s", module)

	errorStr := strings.ToLower(originalError.Error())
	if strings.Contains(errorStr, "no such file") || strings.Contains(errorStr, "executable file not found") {
		msg += `

Cause: The environment interpreter is missing
Solution: Remove the environment directory and run nbsetup again to recreate it`
	}

	msg += fmt.Sprintf("\n\nOriginal error: %v", originalError)
	return errors.New(msg)
}

// ServerExited describes a server that started but ended with a non-zero status
func ServerExited(name, module string, status int) error {
	msg := fmt.Sprintf(`%s exited with status %d

Tip: If the output above says "No module named %s", add it to the requirements file`, name, status, module)
	return errors.New(msg)
}

// Configuration Errors
func ConfigLoadFailed(configPath string, parseError error) error {
	msg := fmt.Sprintf("failed to load configuration from '%s'", configPath)

	parseErrorStr := parseError.Error()
	if strings.Contains(parseErrorStr, "yaml") || strings.Contains(parseErrorStr, "unmarshal") ||
		strings.Contains(parseErrorStr, "parse") {
		msg += `

Cause: YAML syntax error in configuration file
Solutions:
  • Check YAML syntax and indentation
  • Validate YAML at https://yamllint.com/
  • Run 'nbsetup init' to recreate the configuration`
	} else if strings.Contains(parseErrorStr, "invalid") {
		msg += `

Cause: Configuration contains an unsupported value
Solution: Compare the file with the template written by 'nbsetup init'`
	} else if strings.Contains(parseErrorStr, "permission denied") {
		msg += `

Cause: Permission denied reading configuration file
Solution: Check file permissions with 'ls -la .nbsetup.yml'`
	}

	msg += fmt.Sprintf("\n\nOriginal error: %v", parseError)
	return errors.New(msg)
}

func ConfigAlreadyExists(configPath string) error {
	msg := fmt.Sprintf(`configuration file already exists: %s

Options:
  • Edit the existing file manually
  • Delete it and run 'nbsetup init' again`, configPath)
	return errors.New(msg)
}

func InvalidLaunchMode(mode string) error {
	msg := fmt.Sprintf(`invalid launch mode: '%s'

Valid modes:
  • ask    - prompt before starting the server (default)
  • always - start the server without asking
  • never  - only provision the environment`, mode)
	return errors.New(msg)
}

// File System Errors
func DirectoryAccessFailed(operation, path string, originalError error) error {
	msg := fmt.Sprintf("failed to %s directory: %s", operation, path)

	errorStr := originalError.Error()
	if strings.Contains(errorStr, "permission denied") {
		msg += `

Cause: Permission denied
Solutions:
  • Check directory permissions
  • Run with appropriate privileges
  • Ensure you own the directory`
	} else if strings.Contains(errorStr, "no such file or directory") {
		msg += `

Cause: Directory does not exist
Solutions:
  • Check the path spelling
  • Use an absolute path with --dir`
	} else if strings.Contains(errorStr, "not a directory") {
		msg += `

Cause: Path is a file
Solution: Pass the project directory, not a file inside it`
	}

	msg += fmt.Sprintf("\n\nOriginal error: %v", originalError)
	return errors.New(msg)
}

// Hook Errors
func HookExecutionFailed(hookIndex int, hookType string, originalError error) error {
	msg := fmt.Sprintf("failed to execute %s hook #%d", hookType, hookIndex+1)

	errorStr := originalError.Error()
	if strings.Contains(errorStr, "permission denied") {
		msg += `

Cause: Permission denied
Solutions:
  • Check file permissions
  • Ensure the command is executable
  • Check source/destination path permissions`
	} else if strings.Contains(errorStr, "no such file") || strings.Contains(errorStr, "does not exist") {
		msg += `

Cause: File or command not found
Solutions:
  • Check file paths in .nbsetup.yml
  • Ensure the command exists in the environment or on PATH
  • Use absolute paths for files`
	} else if strings.Contains(errorStr, "command not found") {
		msg += `

Cause: Command not found
Solutions:
  • Add the package that provides it to the requirements file
  • Check command spelling in .nbsetup.yml`
	}

	msg += fmt.Sprintf("\n\nOriginal error: %v", originalError)
	return errors.New(msg)
}

func lowerFirst(s string) string {
	if s == "" {
		return "command"
	}
	return strings.ToLower(s[:1]) + s[1:]
}
