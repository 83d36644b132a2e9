package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mmcdole/minitube/internal/nav"
)

// Config holds all application configuration
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Library LibraryConfig `mapstructure:"library"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StorageConfig holds durable store configuration
type StorageConfig struct {
	Dir         string        `mapstructure:"dir"`          // Database directory ("" = memory only)
	LockTimeout time.Duration `mapstructure:"lock_timeout"` // Wait for another process to release the db
}

// LibraryConfig holds collection policy
type LibraryConfig struct {
	HistoryLimit int `mapstructure:"history_limit"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	StartRoute string `mapstructure:"start_route"` // "/library" or "/subscriptions"
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Dir:         defaultDataPath(),
			LockTimeout: time.Second,
		},
		Library: LibraryConfig{
			HistoryLimit: 100,
		},
		UI: UIConfig{
			StartRoute: nav.Library,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultStatePath(), "minitube.log"),
			Level: "INFO",
		},
	}
}

// defaultStatePath returns the per-OS directory for logs
func defaultStatePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "minitube")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "minitube")
	}
}

// defaultDataPath returns the per-OS directory for the collections database
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "minitube", "data")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "minitube", "data")
	}
}

// DefaultConfigPath returns the default config directory for the current OS
func DefaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "minitube")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "minitube")
	}
}

// newViper returns a viper instance with defaults and env binding applied
func newViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()

	v.SetDefault("storage.dir", def.Storage.Dir)
	v.SetDefault("storage.lock_timeout", def.Storage.LockTimeout)
	v.SetDefault("library.history_limit", def.Library.HistoryLimit)
	v.SetDefault("ui.start_route", def.UI.StartRoute)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.level", def.Logging.Level)

	// Environment variable overrides (MINITUBE_STORAGE_DIR, ...)
	v.SetEnvPrefix("MINITUBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig loads configuration from file and environment. An explicit
// file must exist; otherwise config.yaml is looked up in the config dir and
// the working directory, and a missing file means defaults.
func LoadConfig(file string) (*Config, error) {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := newViper()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigPath())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Storage.Dir = ExpandHome(cfg.Storage.Dir)
	return cfg, nil
}

// Validate checks values that would otherwise be silently misused
func (c *Config) Validate() error {
	if c.Library.HistoryLimit <= 0 {
		return fmt.Errorf("library.history_limit must be positive, got %d", c.Library.HistoryLimit)
	}
	if c.Storage.LockTimeout < 0 {
		return fmt.Errorf("storage.lock_timeout must not be negative, got %s", c.Storage.LockTimeout)
	}
	switch c.UI.StartRoute {
	case nav.Library, nav.Subscriptions:
	default:
		return fmt.Errorf("ui.start_route must be %q or %q, got %q", nav.Library, nav.Subscriptions, c.UI.StartRoute)
	}
	return nil
}

// DefaultConfigFile returns the config file looked up when none is given
func DefaultConfigFile() string {
	return filepath.Join(DefaultConfigPath(), "config.yaml")
}

// SaveConfig writes cfg as YAML to path (DefaultConfigFile when path is
// empty) and returns the path written
func SaveConfig(cfg *Config, path string) (string, error) {
	if path == "" {
		path = DefaultConfigFile()
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("storage.dir", cfg.Storage.Dir)
	v.Set("storage.lock_timeout", cfg.Storage.LockTimeout.String())
	v.Set("library.history_limit", cfg.Library.HistoryLimit)
	v.Set("ui.start_route", cfg.UI.StartRoute)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}

// ExpandHome expands a leading ~ in path
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
