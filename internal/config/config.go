// Package config loads pomo settings from YAML files and POMO_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config is the effective pomo configuration. Timer durations are session
// settings and are not part of it.
type Config struct {
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
	Notify  NotifyConfig  `yaml:"notify" mapstructure:"notify"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

type StorageConfig struct {
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`
	// Backend is "json" (one file per collection) or "sqlite".
	Backend      string `yaml:"backend" mapstructure:"backend"`
	TasksFile    string `yaml:"tasks_file" mapstructure:"tasks_file"`
	SessionsFile string `yaml:"sessions_file" mapstructure:"sessions_file"`
	Database     string `yaml:"database" mapstructure:"database"`
}

type NotifyConfig struct {
	// Backend is auto, darwin, linux, windows, console or none.
	Backend string `yaml:"backend" mapstructure:"backend"`
	Sound   bool   `yaml:"sound" mapstructure:"sound"`
}

type LoggingConfig struct {
	// File is relative to the data directory unless absolute. Empty
	// disables logging.
	File  string `yaml:"file" mapstructure:"file"`
	Level string `yaml:"level" mapstructure:"level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			DataDir:      "data",
			Backend:      BackendJSON,
			TasksFile:    "tasks.json",
			SessionsFile: "sessions.json",
			Database:     "pomo.db",
		},
		Notify: NotifyConfig{
			Backend: "auto",
			Sound:   true,
		},
		Logging: LoggingConfig{
			File:  "pomo.log",
			Level: "info",
		},
	}
}

var envBindings = map[string]string{
	"storage.data_dir":      "POMO_DATA_DIR",
	"storage.backend":       "POMO_STORAGE_BACKEND",
	"storage.tasks_file":    "POMO_TASKS_FILE",
	"storage.sessions_file": "POMO_SESSIONS_FILE",
	"storage.database":      "POMO_DATABASE",
	"notify.backend":        "POMO_NOTIFY_BACKEND",
	"notify.sound":          "POMO_SOUND",
	"logging.file":          "POMO_LOG_FILE",
	"logging.level":         "POMO_LOG_LEVEL",
}

// Load reads ~/.pomo/config.yaml, then ./pomo.yaml, then the environment.
func Load() (*Config, error) {
	return LoadFiles(DefaultPaths()...)
}

// DefaultPaths lists the config files Load consults, lowest precedence first.
func DefaultPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".pomo", "config.yaml"))
	}
	paths = append(paths, "pomo.yaml")
	return paths
}

// LoadFiles merges the given YAML files over the defaults, later files
// winning, and applies POMO_* environment overrides. Missing files are
// skipped.
func LoadFiles(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	def := DefaultConfig()
	v.SetDefault("storage.data_dir", def.Storage.DataDir)
	v.SetDefault("storage.backend", def.Storage.Backend)
	v.SetDefault("storage.tasks_file", def.Storage.TasksFile)
	v.SetDefault("storage.sessions_file", def.Storage.SessionsFile)
	v.SetDefault("storage.database", def.Storage.Database)
	v.SetDefault("notify.backend", def.Notify.Backend)
	v.SetDefault("notify.sound", def.Notify.Sound)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.level", def.Logging.Level)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendJSON, BackendSQLite, c.Storage.Backend)
	}
	if strings.TrimSpace(c.Storage.DataDir) == "" {
		return fmt.Errorf("storage.data_dir must not be empty")
	}
	return nil
}

// Resolve joins a path from the config with the data directory unless it is
// already absolute.
func (c *Config) Resolve(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Storage.DataDir, name)
}

func (c *Config) TasksPath() string    { return c.Resolve(c.Storage.TasksFile) }
func (c *Config) SessionsPath() string { return c.Resolve(c.Storage.SessionsFile) }
func (c *Config) DatabasePath() string { return c.Resolve(c.Storage.Database) }
func (c *Config) LogPath() string      { return c.Resolve(c.Logging.File) }

// YAML renders the config the way it would be written to a file.
func (c *Config) YAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	return string(out), nil
}
