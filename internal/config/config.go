// Package config loads front-end settings from a TOML file and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"piquant-gui/internal/errors"
	"piquant-gui/internal/log"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName names the config directory.
	AppName = "piquant-gui"
	// FileName is the config file name inside the config directory.
	FileName = "config.toml"
	// EnvPrefix prefixes environment overrides, e.g. PIQUANT_GUI_EXECUTABLE.
	EnvPrefix = "PIQUANT_GUI"
)

// Config holds the effective settings.
type Config struct {
	Executable string        `mapstructure:"executable"`  // PIQUANT path; empty means the bundled one
	WorkingDir string        `mapstructure:"working_dir"` // Directory PIQUANT runs in
	StartDir   string        `mapstructure:"start_dir"`   // Initial directory for file dialogs
	LogLevel   string        `mapstructure:"log_level"`
	LogFile    string        `mapstructure:"log_file"`
	Timeout    time.Duration `mapstructure:"timeout"` // Zero means no limit
}

// Default returns the built-in settings.
func Default() Config {
	return Config{LogLevel: "warn"}
}

// Dir returns the per-user config directory.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// DefaultPath returns the config file path inside Dir.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads settings. An explicit path must exist; otherwise the default
// file is used when present and built-in defaults when not. Environment
// variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("executable", d.Executable)
	v.SetDefault("working_dir", d.WorkingDir)
	v.SetDefault("start_dir", d.StartDir)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("timeout", d.Timeout)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.NewFileError("stat", path, errors.ErrFileNotFound)
		}
	} else if def, err := DefaultPath(); err == nil {
		if _, err := os.Stat(def); err == nil {
			path = def
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewFileError("read", path, err)
		}
		log.Debug("Loaded config", log.String("path", path))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return nil, errors.NewValidationError("log_level", err.Error())
	}
	if cfg.Timeout < 0 {
		return nil, errors.NewValidationError("timeout", "must not be negative")
	}
	return &cfg, nil
}

// Level returns the parsed log level.
func (c *Config) Level() log.Level {
	l, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.LevelWarn
	}
	return l
}

// fileView is the on-disk shape; durations are written as strings.
type fileView struct {
	Executable string `toml:"executable"`
	WorkingDir string `toml:"working_dir"`
	StartDir   string `toml:"start_dir"`
	LogLevel   string `toml:"log_level"`
	LogFile    string `toml:"log_file"`
	Timeout    string `toml:"timeout"`
}

// Render encodes the settings as TOML.
func (c *Config) Render() ([]byte, error) {
	return toml.Marshal(fileView{
		Executable: c.Executable,
		WorkingDir: c.WorkingDir,
		StartDir:   c.StartDir,
		LogLevel:   c.LogLevel,
		LogFile:    c.LogFile,
		Timeout:    c.Timeout.String(),
	})
}

// ApplyLogging installs a file logger when LogFile is set.
func (c *Config) ApplyLogging() error {
	if c.LogFile == "" {
		return nil
	}
	if err := log.EnableFileLogging(c.LogFile, c.Level()); err != nil {
		return errors.NewFileError("open", c.LogFile, err)
	}
	return nil
}
