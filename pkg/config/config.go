package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	History HistoryConfig `mapstructure:"history"`
	Plugins PluginsConfig `mapstructure:"plugins"`
	Logging LoggingConfig `mapstructure:"logging"`
	Audit   AuditConfig   `mapstructure:"audit"`
}

// HistoryConfig holds calculation history configuration
type HistoryConfig struct {
	FilePath string `mapstructure:"file_path"` // CSV file backing the calculation history
}

// PluginsConfig holds external plugin discovery configuration
type PluginsConfig struct {
	Path string `mapstructure:"path"` // Directory scanned for command plugins
}

// LoggingConfig holds diagnostic logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
	File  string `mapstructure:"file"`  // Log file path; stdout stays user-facing
}

// AuditConfig holds the REPL command audit log configuration
type AuditConfig struct {
	DatabasePath string `mapstructure:"database_path"` // SQLite database for dispatched commands
}

// Load loads the configuration from file and environment variables
func Load() (*Config, error) {
	config := &Config{}

	setDefaults()

	if err := viper.Unmarshal(config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := expandPaths(config); err != nil {
		return nil, errors.Wrap(err, "failed to expand paths")
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return config, nil
}

// ValidLogLevels is the list of accepted logging.level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ValidateLogLevel validates that a log level is supported.
func ValidateLogLevel(level string) error {
	if level == "" {
		return nil // Empty is allowed, will use default
	}
	for _, valid := range ValidLogLevels {
		if strings.EqualFold(level, valid) {
			return nil
		}
	}
	return errors.Newf("invalid log level %q: must be one of: debug, info, warn, error", level)
}

// Validate validates the configuration and returns any validation errors.
func (c *Config) Validate() error {
	if err := ValidateLogLevel(c.Logging.Level); err != nil {
		return errors.Wrap(err, "logging.level")
	}
	if c.History.FilePath == "" {
		return errors.New("history.file_path must not be empty")
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// History defaults
	viper.SetDefault("history.file_path", filepath.Join("data", "calculation_history.csv"))

	// Plugin defaults
	viper.SetDefault("plugins.path", filepath.Join("app", "plugins"))

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", filepath.Join("logs", "tally.log"))

	// Audit defaults
	viper.SetDefault("audit.database_path", filepath.Join("data", "command_audit.db"))
}

// expandPaths expands ~ in configured paths
func expandPaths(config *Config) error {
	var err error

	config.History.FilePath, err = expandPath(config.History.FilePath)
	if err != nil {
		return err
	}

	config.Plugins.Path, err = expandPath(config.Plugins.Path)
	if err != nil {
		return err
	}

	config.Logging.File, err = expandPath(config.Logging.File)
	if err != nil {
		return err
	}

	config.Audit.DatabasePath, err = expandPath(config.Audit.DatabasePath)
	if err != nil {
		return err
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, path[1:]), nil
}
