package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satococoa/nbsetup/internal/config"
)

func TestNewInitCommand(t *testing.T) {
	cmd := NewInitCommand()

	assert.NotNil(t, cmd)
	assert.Equal(t, "init", cmd.Name)
	assert.Equal(t, "Initialize configuration file", cmd.Usage)
	assert.NotEmpty(t, cmd.Description)
	assert.NotNil(t, cmd.Action)
}

func TestConfigFileMode(t *testing.T) {
	assert.Equal(t, os.FileMode(0o600), os.FileMode(configFileMode))
}

func TestInitCommand_CreatesConfig(t *testing.T) {
	root := t.TempDir()
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf

	err := app.Run(context.Background(), []string{"nbsetup", "--dir", root, "init"})

	require.NoError(t, err)
	configPath := filepath.Join(root, config.ConfigFileName)
	assert.Contains(t, buf.String(), "Configuration file created: "+configPath)

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	if os.PathSeparator == '/' {
		assert.Equal(t, os.FileMode(configFileMode), info.Mode().Perm())
	}

	cfg, err := config.LoadConfig(root)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultEnvironmentDir, cfg.Environment.Dir)
	assert.Equal(t, config.DefaultRequirementsFile, cfg.Requirements)
	assert.Equal(t, config.LaunchModeAsk, cfg.Launch.Mode)
	assert.Equal(t, []string{"lab"}, cfg.Launch.Args)
	assert.False(t, cfg.HasHooks())
}

func TestInitCommand_ConfigAlreadyExists(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(root, config.ConfigFileName)
	existing := []byte("requirements: mine.txt\n")
	require.NoError(t, os.WriteFile(configPath, existing, 0o600))

	app := newApp()
	app.Writer = &bytes.Buffer{}

	err := app.Run(context.Background(), []string{"nbsetup", "--dir", root, "init"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration file already exists")

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, existing, content)
}

func TestInitCommand_MissingDirectory(t *testing.T) {
	app := newApp()
	app.Writer = &bytes.Buffer{}

	err := app.Run(context.Background(), []string{"nbsetup", "--dir", filepath.Join(t.TempDir(), "missing"), "init"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to access project directory")
}
