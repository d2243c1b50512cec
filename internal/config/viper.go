// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"fjacquet/statement-insights/internal/currencyutils"
	"fjacquet/statement-insights/internal/models"
	"fjacquet/statement-insights/internal/validation"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "INSIGHTS"

// LogConfig configures the application logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CSVConfig configures transaction CSV files.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// AIConfig configures the extraction service.
type AIConfig struct {
	Model             string `mapstructure:"model" yaml:"model"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	MaxRetries        int    `mapstructure:"max_retries" yaml:"max_retries"`
	APIKey            string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
}

// Config represents the complete application configuration
type Config struct {
	Log LogConfig `mapstructure:"log" yaml:"log"`
	CSV CSVConfig `mapstructure:"csv" yaml:"csv"`
	AI  AIConfig  `mapstructure:"ai" yaml:"ai"`

	Budgets struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"budgets" yaml:"budgets"`

	Currency struct {
		Code string `mapstructure:"code" yaml:"code"`
	} `mapstructure:"currency" yaml:"currency"`

	Validation struct {
		Policy string `mapstructure:"policy" yaml:"policy"`
	} `mapstructure:"validation" yaml:"validation"`

	Categories struct {
		Labels []string `mapstructure:"labels" yaml:"labels"`
	} `mapstructure:"categories" yaml:"categories"`

	Batch struct {
		Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
	} `mapstructure:"batch" yaml:"batch"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return InitializeConfigFromFile("")
}

// InitializeConfigFromFile is InitializeConfig with an explicit config file.
// An empty path searches the default locations.
func InitializeConfigFromFile(path string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.statement-insights")
		v.AddConfigPath(".statement-insights")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	// 5. The API key is read from the unprefixed variable
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

	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.requests_per_minute", 10)
	v.SetDefault("ai.timeout_seconds", 60)
	v.SetDefault("ai.max_retries", 3)

	v.SetDefault("budgets.file", "budgets.yaml")
	v.SetDefault("currency.code", currencyutils.DefaultCurrencyCode)
	v.SetDefault("validation.policy", string(validation.PolicyDrop))
	v.SetDefault("categories.labels", models.DefaultCategorySet().Strings())
	v.SetDefault("batch.concurrency", 2)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.AI.RequestsPerMinute < 1 || config.AI.RequestsPerMinute > 1000 {
		return fmt.Errorf("ai.requests_per_minute must be between 1 and 1000, got: %d", config.AI.RequestsPerMinute)
	}

	if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
		return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
	}

	if config.AI.MaxRetries < 1 || config.AI.MaxRetries > 10 {
		return fmt.Errorf("ai.max_retries must be between 1 and 10, got: %d", config.AI.MaxRetries)
	}

	if _, err := validation.ParsePolicy(config.Validation.Policy); err != nil {
		return err
	}

	if _, ok := currencyutils.Lookup(config.Currency.Code); !ok {
		return fmt.Errorf("unsupported currency code: %s (supported: %s)",
			config.Currency.Code, strings.Join(currencyutils.Codes(), ", "))
	}

	if strings.TrimSpace(config.Budgets.File) == "" {
		return fmt.Errorf("budgets.file must not be empty")
	}

	if config.Batch.Concurrency < 1 || config.Batch.Concurrency > 16 {
		return fmt.Errorf("batch.concurrency must be between 1 and 16, got: %d", config.Batch.Concurrency)
	}

	return nil
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	return r
}

// CategorySet returns the configured label set, or the default set when none is configured.
func (c *Config) CategorySet() models.CategorySet {
	if len(c.Categories.Labels) == 0 {
		return models.DefaultCategorySet()
	}
	return models.NewCategorySet(c.Categories.Labels)
}

// Policy returns the parsed validation policy.
func (c *Config) Policy() validation.Policy {
	policy, err := validation.ParsePolicy(c.Validation.Policy)
	if err != nil {
		return validation.PolicyDrop
	}
	return policy
}
