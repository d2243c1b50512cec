package config

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/statement-insights/internal/models"
	"fjacquet/statement-insights/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.Equal(t, ',', config.Delimiter())
	assert.Equal(t, "gemini-2.0-flash", config.AI.Model)
	assert.Equal(t, 10, config.AI.RequestsPerMinute)
	assert.Equal(t, 60, config.AI.TimeoutSeconds)
	assert.Equal(t, 3, config.AI.MaxRetries)
	assert.Equal(t, "budgets.yaml", config.Budgets.File)
	assert.Equal(t, "INR", config.Currency.Code)
	assert.Equal(t, validation.PolicyDrop, config.Policy())
	assert.Equal(t, 2, config.Batch.Concurrency)
	assert.Len(t, config.Categories.Labels, len(models.DefaultCategories))
	assert.True(t, config.CategorySet().Contains("Groceries"))
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	testEnvVars := map[string]string{
		"INSIGHTS_LOG_LEVEL":              "debug",
		"INSIGHTS_LOG_FORMAT":             "json",
		"INSIGHTS_CSV_DELIMITER":          ";",
		"INSIGHTS_AI_MODEL":               "gemini-1.5-pro",
		"INSIGHTS_AI_REQUESTS_PER_MINUTE": "15",
		"INSIGHTS_CURRENCY_CODE":          "eur",
		"INSIGHTS_VALIDATION_POLICY":      "fail",
		"INSIGHTS_BATCH_CONCURRENCY":      "4",
		"GEMINI_API_KEY":                  "test-api-key",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ';', config.Delimiter())
	assert.Equal(t, "gemini-1.5-pro", config.AI.Model)
	assert.Equal(t, 15, config.AI.RequestsPerMinute)
	assert.Equal(t, "eur", config.Currency.Code)
	assert.Equal(t, validation.PolicyFail, config.Policy())
	assert.Equal(t, 4, config.Batch.Concurrency)
	assert.Equal(t, "test-api-key", config.AI.APIKey)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configContent := `
log:
  level: "warn"
  format: "json"
csv:
  delimiter: "|"
ai:
  model: "gemini-1.0-pro"
  requests_per_minute: 20
budgets:
  file: "my-budgets.yaml"
categories:
  labels:
    - Rent
    - Groceries
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0600))
	chdir(t, tempDir)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "|", config.CSV.Delimiter)
	assert.Equal(t, "gemini-1.0-pro", config.AI.Model)
	assert.Equal(t, 20, config.AI.RequestsPerMinute)
	assert.Equal(t, "my-budgets.yaml", config.Budgets.File)

	categories := config.CategorySet()
	assert.Equal(t, []models.Category{"Rent", "Groceries", models.CategoryMisc}, categories.Labels())
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configContent := `
log:
  level: "warn"
csv:
  delimiter: "|"
ai:
  requests_per_minute: 20
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0600))

	t.Setenv("INSIGHTS_LOG_LEVEL", "error")
	t.Setenv("INSIGHTS_AI_REQUESTS_PER_MINUTE", "25")
	t.Setenv("GEMINI_API_KEY", "env-api-key")
	chdir(t, tempDir)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)       // env var wins
	assert.Equal(t, "|", config.CSV.Delimiter)       // config file value
	assert.Equal(t, 25, config.AI.RequestsPerMinute) // env var wins
	assert.Equal(t, "env-api-key", config.AI.APIKey)
}

func TestInitializeConfigFromFile(t *testing.T) {
	clearTestEnvVars(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("currency:\n  code: CHF\n"), 0600))

	config, err := InitializeConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "CHF", config.Currency.Code)

	_, err = InitializeConfigFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInitializeConfig_InvalidFile(t *testing.T) {
	clearTestEnvVars(t)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("batch:\n  concurrency: 0\n"), 0600))

	_, err := InitializeConfigFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch.concurrency")
}

func validConfig() *Config {
	config := &Config{
		Log: LogConfig{Level: "info", Format: "text"},
		CSV: CSVConfig{Delimiter: ","},
		AI:  AIConfig{Model: "gemini-2.0-flash", RequestsPerMinute: 10, TimeoutSeconds: 60, MaxRetries: 3},
	}
	config.Budgets.File = "budgets.yaml"
	config.Currency.Code = "INR"
	config.Validation.Policy = "drop"
	config.Batch.Concurrency = 2
	return config
}

func TestValidateConfig(t *testing.T) {
	require.NoError(t, validateConfig(validConfig()))

	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{"invalid log level", func(c *Config) { c.Log.Level = "invalid" }, "invalid log level"},
		{"invalid log format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"invalid CSV delimiter", func(c *Config) { c.CSV.Delimiter = "abc" }, "CSV delimiter must be a single character"},
		{"empty CSV delimiter", func(c *Config) { c.CSV.Delimiter = "" }, "CSV delimiter must be a single character"},
		{"invalid requests per minute", func(c *Config) { c.AI.RequestsPerMinute = 0 }, "ai.requests_per_minute must be between 1 and 1000"},
		{"invalid timeout seconds", func(c *Config) { c.AI.TimeoutSeconds = 0 }, "ai.timeout_seconds must be between 1 and 300"},
		{"invalid max retries", func(c *Config) { c.AI.MaxRetries = 0 }, "ai.max_retries must be between 1 and 10"},
		{"invalid policy", func(c *Config) { c.Validation.Policy = "ignore" }, "invalid validation policy"},
		{"unknown currency", func(c *Config) { c.Currency.Code = "JPY" }, "unsupported currency code"},
		{"empty budgets file", func(c *Config) { c.Budgets.File = " " }, "budgets.file must not be empty"},
		{"invalid concurrency", func(c *Config) { c.Batch.Concurrency = 17 }, "batch.concurrency must be between 1 and 16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestConfig_CategorySetDefault(t *testing.T) {
	config := validConfig()
	assert.Equal(t, models.DefaultCategorySet().Labels(), config.CategorySet().Labels())
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
}

// clearTestEnvVars isolates a test from overrides set in the developer's shell
// and from any config in their home directory.
func clearTestEnvVars(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{
		"INSIGHTS_LOG_LEVEL",
		"INSIGHTS_LOG_FORMAT",
		"INSIGHTS_CSV_DELIMITER",
		"INSIGHTS_AI_MODEL",
		"INSIGHTS_AI_REQUESTS_PER_MINUTE",
		"INSIGHTS_AI_TIMEOUT_SECONDS",
		"INSIGHTS_AI_MAX_RETRIES",
		"INSIGHTS_BUDGETS_FILE",
		"INSIGHTS_CURRENCY_CODE",
		"INSIGHTS_VALIDATION_POLICY",
		"INSIGHTS_CATEGORIES_LABELS",
		"INSIGHTS_BATCH_CONCURRENCY",
		"GEMINI_API_KEY",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}
