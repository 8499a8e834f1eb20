package framework

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func AssertSetupComplete(t *testing.T, output string) {
	t.Helper()
	if !strings.Contains(output, "🎉 Setup complete!") {
		t.Errorf("Expected setup to complete, got: %s", output)
	}
}

func AssertSetupAborted(t *testing.T, output string) {
	t.Helper()
	if strings.Contains(output, "Setup complete!") {
		t.Errorf("Expected setup to stop before completing, got: %s", output)
	}
	if strings.Contains(output, "Would you like to start") {
		t.Errorf("Expected no launch prompt after a failure, got: %s", output)
	}
}

func AssertOutputContains(t *testing.T, output, expected string) {
	t.Helper()
	assert.Contains(t, output, expected, "Expected output containing '%s', got: %s", expected, output)
}

func AssertOutputNotContains(t *testing.T, output, unexpected string) {
	t.Helper()
	assert.NotContains(t, output, unexpected, "Expected output without '%s', got: %s", unexpected, output)
}

func AssertHelpfulError(t *testing.T, output string) {
	t.Helper()

	helpfulElements := []string{
		"Solutions:",
		"Solution:",
		"Cause:",
		"Tip:",
		"•",
		"Options:",
	}

	found := false
	for _, element := range helpfulElements {
		if strings.Contains(output, element) {
			found = true
			break
		}
	}

	if !found {
		t.Errorf("Error message does not appear to be helpful. Got: %s", output)
	}
}

func AssertMultipleStringsInOutput(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, exp := range expected {
		assert.Contains(t, output, exp, "Expected output to contain '%s', got: %s", exp, output)
	}
}

func AssertNoError(t *testing.T, err error) {
	t.Helper()
	assert.NoError(t, err)
}

func AssertError(t *testing.T, err error) {
	t.Helper()
	assert.Error(t, err)
}

func AssertFileExists(t *testing.T, project *TestProject, path string) {
	t.Helper()
	assert.True(t, project.HasFile(path), "Expected file '%s' to exist", path)
}

func AssertFileNotExists(t *testing.T, project *TestProject, path string) {
	t.Helper()
	assert.False(t, project.HasFile(path), "Expected file '%s' not to exist", path)
}

func AssertFileContains(t *testing.T, project *TestProject, path, content string) {
	t.Helper()
	assert.True(t, project.HasFile(path), "File '%s' does not exist", path)
	if project.HasFile(path) {
		fileContent := project.ReadFile(path)
		assert.Contains(t, fileContent, content, "Expected file '%s' to contain '%s', got: %s", path, content, fileContent)
	}
}

func AssertEqual(t *testing.T, expected, actual any) {
	t.Helper()
	assert.Equal(t, expected, actual)
}

func AssertTrue(t *testing.T, condition bool, message string) {
	t.Helper()
	assert.True(t, condition, message)
}
