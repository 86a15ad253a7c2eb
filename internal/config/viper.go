// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable override (EIP_LOG_LEVEL...).
const EnvPrefix = "EIP"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Data struct {
		Directory       string `mapstructure:"directory" yaml:"directory"`
		ExportDirectory string `mapstructure:"export_directory" yaml:"export_directory"`
	} `mapstructure:"data" yaml:"data"`

	Rules struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"rules" yaml:"rules"`

	Ledger struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"ledger" yaml:"ledger"`
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	return []rune(c.CSV.Delimiter)[0]
}

// LedgerPath returns the ledger database path, defaulting to orders.db in
// the data directory.
func (c *Config) LedgerPath() string {
	if c.Ledger.File != "" {
		return c.Ledger.File
	}
	return filepath.Join(c.Data.Directory, "orders.db")
}

// NewViper returns a Viper instance with defaults, config file locations and
// environment overrides set up, and the config file read. An explicit
// configFile must exist; otherwise a missing config.yaml is fine.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.eip")
		v.AddConfigPath(".eip")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return v, nil
}

// FromViper unmarshals and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// InitializeConfig loads configuration from defaults, the config file and
// the environment.
func InitializeConfig(configFile string) (*Config, error) {
	v, err := NewViper(configFile)
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("data.directory", "Saved_Lists")
	v.SetDefault("data.export_directory", defaultExportDirectory())

	v.SetDefault("rules.file", "rules.yaml")
	v.SetDefault("ledger.file", "")
}

func defaultExportDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "exported_electronics_lists"
	}
	return filepath.Join(home, "Downloads", "exported_electronics_lists")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if strings.TrimSpace(config.Data.Directory) == "" {
		return fmt.Errorf("data.directory must not be empty")
	}

	return nil
}
