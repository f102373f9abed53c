// Package config provides Viper-based hierarchical configuration management:
// defaults, then an optional config.yaml, then TXEXTRACT_ environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"finize/txextract/internal/logging"
	"finize/txextract/internal/parsererror"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "TXEXTRACT"

// LogConfig holds the logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CSVConfig holds the CSV output settings.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// TaxonomyConfig points at the taxonomy YAML file.
type TaxonomyConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// ExtractionConfig tunes batch extraction.
type ExtractionConfig struct {
	Workers             int `mapstructure:"workers" yaml:"workers"`
	SequentialThreshold int `mapstructure:"sequential_threshold" yaml:"sequential_threshold"`
}

// AIConfig holds the settings of the optional AI categorization fallback.
type AIConfig struct {
	Enabled           bool   `mapstructure:"enabled" yaml:"enabled"`
	Model             string `mapstructure:"model" yaml:"model"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	APIKey            string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
}

// LedgerConfig holds the in-memory ledger settings.
type LedgerConfig struct {
	AllowZeroAmount bool `mapstructure:"allow_zero_amount" yaml:"allow_zero_amount"`
}

// Config represents the complete application configuration
type Config struct {
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	CSV        CSVConfig        `mapstructure:"csv" yaml:"csv"`
	Taxonomy   TaxonomyConfig   `mapstructure:"taxonomy" yaml:"taxonomy"`
	Extraction ExtractionConfig `mapstructure:"extraction" yaml:"extraction"`
	AI         AIConfig         `mapstructure:"ai" yaml:"ai"`
	Ledger     LedgerConfig     `mapstructure:"ledger" yaml:"ledger"`
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	return []rune(c.CSV.Delimiter)[0]
}

// InitializeConfig loads the configuration from the default locations.
func InitializeConfig() (*Config, error) {
	return load("")
}

// InitializeConfigFromFile loads the configuration using configFile instead
// of searching the default locations. An empty path behaves like
// InitializeConfig.
func InitializeConfigFromFile(configFile string) (*Config, error) {
	return load(configFile)
}

func load(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.txextract")
		v.AddConfigPath(".txextract")
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
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 5. The API key is read from its conventional, unprefixed variable
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("taxonomy.file", "")

	v.SetDefault("extraction.workers", 4)
	v.SetDefault("extraction.sequential_threshold", 100)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-1.5-flash")
	v.SetDefault("ai.requests_per_minute", 10)
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("ai.api_key", "")

	v.SetDefault("ledger.allow_zero_amount", false)
}

func invalid(format string, args ...interface{}) error {
	return &parsererror.ValidationError{Subject: "config", Reason: fmt.Sprintf(format, args...)}
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return invalid("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return invalid("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return invalid("CSV delimiter must be a single character, got: %q", config.CSV.Delimiter)
	}

	if config.Extraction.Workers < 1 || config.Extraction.Workers > 256 {
		return invalid("extraction.workers must be between 1 and 256, got: %d", config.Extraction.Workers)
	}

	if config.Extraction.SequentialThreshold < 0 {
		return invalid("extraction.sequential_threshold must not be negative, got: %d", config.Extraction.SequentialThreshold)
	}

	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return invalid("GEMINI_API_KEY required when AI is enabled")
		}

		if config.AI.RequestsPerMinute < 1 || config.AI.RequestsPerMinute > 1000 {
			return invalid("ai.requests_per_minute must be between 1 and 1000, got: %d", config.AI.RequestsPerMinute)
		}

		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return invalid("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	return nil
}

// NewLoggerFromConfig builds the application logger from the log section.
func NewLoggerFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}
