package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// Config represents the nbsetup configuration
type Config struct {
	Version      string      `yaml:"version"`
	Environment  Environment `yaml:"environment,omitempty"`
	Requirements string      `yaml:"requirements,omitempty"`
	Launch       Launch      `yaml:"launch,omitempty"`
	Hooks        Hooks       `yaml:"hooks,omitempty"`

	// Root is the resolved project directory every path is relative to (not in YAML)
	Root string `yaml:"-"`
}

// Environment represents virtual environment settings
type Environment struct {
	Dir    string `yaml:"dir,omitempty"`    // Relative to the project root
	Python string `yaml:"python,omitempty"` // Interpreter used to create the environment
}

// Launch represents notebook server settings
type Launch struct {
	Mode   string   `yaml:"mode,omitempty"` // "ask", "always" or "never"
	Module string   `yaml:"module,omitempty"`
	Args   []string `yaml:"args,omitempty"`
}

// Hooks represents the post-install hooks configuration
type Hooks struct {
	PostInstall []Hook `yaml:"post_install,omitempty"`
}

// Hook represents a single hook configuration
type Hook struct {
	Type    string            `yaml:"type"` // "copy" or "command"
	From    string            `yaml:"from,omitempty"`
	To      string            `yaml:"to,omitempty"`
	Command string            `yaml:"command,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`
	WorkDir string            `yaml:"work_dir,omitempty"`
}

const (
	ConfigFileName          = ".nbsetup.yml"
	CurrentVersion          = "1.0"
	DefaultEnvironmentDir   = "venv"
	DefaultRequirementsFile = "requirements.txt"
	DefaultLaunchModule     = "jupyter"
	LaunchModeAsk           = "ask"
	LaunchModeAlways        = "always"
	LaunchModeNever         = "never"
	HookTypeCopy            = "copy"
	HookTypeCommand         = "command"
)

// DefaultLaunchArgs are passed to the launch module when none are configured
var DefaultLaunchArgs = []string{"lab"}

// Default returns the configuration used when no config file exists
func Default(root string) *Config {
	cfg := &Config{Root: root}
	// Validate only fills defaults on an empty config
	_ = cfg.Validate()
	return cfg
}

// LoadConfig loads configuration from .nbsetup.yml in the project root
func LoadConfig(root string) (*Config, error) {
	return LoadConfigFile(root, filepath.Join(root, ConfigFileName))
}

// LoadConfigFile loads configuration from an explicit path. A missing file
// yields the default configuration.
func LoadConfigFile(root, configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(root), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	config.Root = root
	return &config, nil
}

// Validate validates the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.Version == "" {
		c.Version = CurrentVersion
	}

	if c.Environment.Dir == "" {
		c.Environment.Dir = DefaultEnvironmentDir
	}
	if filepath.IsAbs(c.Environment.Dir) {
		return fmt.Errorf("environment dir must be relative to the project root: %s", c.Environment.Dir)
	}

	if c.Requirements == "" {
		c.Requirements = DefaultRequirementsFile
	}

	switch c.Launch.Mode {
	case "":
		c.Launch.Mode = LaunchModeAsk
	case LaunchModeAsk, LaunchModeAlways, LaunchModeNever:
	default:
		return fmt.Errorf("invalid launch mode '%s', must be 'ask', 'always' or 'never'", c.Launch.Mode)
	}

	if c.Launch.Module == "" {
		c.Launch.Module = DefaultLaunchModule
	}
	if len(c.Launch.Args) == 0 {
		c.Launch.Args = append([]string(nil), DefaultLaunchArgs...)
	}

	for i, hook := range c.Hooks.PostInstall {
		if err := hook.Validate(); err != nil {
			return fmt.Errorf("invalid hook %d: %w", i+1, err)
		}
	}

	return nil
}

// Validate validates a single hook configuration
func (h *Hook) Validate() error {
	switch h.Type {
	case HookTypeCopy:
		if h.From == "" || h.To == "" {
			return fmt.Errorf("copy hook requires both 'from' and 'to' fields")
		}
		if h.Command != "" {
			return fmt.Errorf("copy hook should not have 'command' field")
		}
	case HookTypeCommand:
		if h.Command == "" {
			return fmt.Errorf("command hook requires 'command' field")
		}
		if h.From != "" || h.To != "" {
			return fmt.Errorf("command hook should not have 'from' or 'to' fields")
		}
	default:
		return fmt.Errorf("invalid hook type '%s', must be 'copy' or 'command'", h.Type)
	}

	return nil
}

// HasHooks returns true if the configuration has any post-install hooks
func (c *Config) HasHooks() bool {
	return len(c.Hooks.PostInstall) > 0
}

// EnvironmentPath returns the absolute path of the virtual environment
func (c *Config) EnvironmentPath() string {
	return filepath.Join(c.Root, c.Environment.Dir)
}
