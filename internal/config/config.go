// Package config provides configuration management for the journal.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"crypto-journal/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Database    DatabaseConfig `mapstructure:"database"`
	UI          UIConfig       `mapstructure:"ui"`
	Logging     LoggingConfig  `mapstructure:"logging"`
	Audit       AuditConfig    `mapstructure:"audit"`
	Credentials Credentials    `mapstructure:"-"` // Loaded separately
}

// DatabaseConfig holds storage configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path"` // sqlite database file, empty for default
}

// UIConfig holds output-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
	Currency     string `mapstructure:"currency"`
}

// LoggingConfig holds log file configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"` // debug, info, warn, error
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// AuditConfig holds AI audit configuration.
type AuditConfig struct {
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

// Credentials holds API credentials.
type Credentials struct {
	OpenAI OpenAICredentials `mapstructure:"openai"`
}

// OpenAICredentials holds OpenAI API credentials.
type OpenAICredentials struct {
	APIKey string `mapstructure:"api_key"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/crypto-journal"
	}
	return filepath.Join(home, ".config", "crypto-journal")
}

// DefaultDatabasePath returns the default sqlite location under the config
// directory.
func DefaultDatabasePath(configDir string) string {
	return filepath.Join(configDir, "journal.db")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory. Missing files
// are replaced with templates and defaults; the journal must stay usable
// before any configuration exists.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	if err := loadConfigFile(configDir, "config", cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	if err := loadCredentials(configDir, &cfg.Credentials); err != nil {
		return nil, fmt.Errorf("loading credentials.toml: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg, configDir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir, name string, target interface{}) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "02-Jan-2006")
	v.SetDefault("ui.currency", "$")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 30)
	v.SetDefault("audit.model", "gpt-4o")
	v.SetDefault("audit.max_tokens", 4096)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if werr := createTemplateConfig(configDir, name); werr != nil {
				return werr
			}
			return v.Unmarshal(target)
		}
		return err
	}

	return v.Unmarshal(target)
}

func loadCredentials(configDir string, creds *Credentials) error {
	v := viper.New()
	v.SetConfigName("credentials")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Audits are simply unavailable until a key is supplied.
			return createTemplateCredentials(configDir)
		}
		return err
	}

	return v.Unmarshal(creds)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Credentials.OpenAI.APIKey = v
	}
	if v := os.Getenv("JOURNAL_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("JOURNAL_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

func applyDefaults(cfg *Config, configDir string) {
	if cfg.Database.Path == "" {
		cfg.Database.Path = DefaultDatabasePath(configDir)
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.Wrapf(errors.ErrConfigInvalid, "log level %q (must be debug, info, warn or error)", c.Logging.Level)
	}

	if c.Audit.MaxTokens < 0 {
		return errors.Wrapf(errors.ErrConfigInvalid, "audit max_tokens must be non-negative, got %d", c.Audit.MaxTokens)
	}

	return nil
}

// HasAuditCredentials reports whether an OpenAI key is configured.
func (c *Config) HasAuditCredentials() bool {
	return c.Credentials.OpenAI.APIKey != ""
}
