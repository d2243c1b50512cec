package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/statement-insights/internal/config"
	"fjacquet/statement-insights/internal/container"
	"fjacquet/statement-insights/internal/extractor"
	"fjacquet/statement-insights/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `id,date,description,amount,type,category
1,2024-01-01,Salary,3000,CREDIT,Salary
2,2024-01-02,Supermarket,500,DEBIT,Groceries
3,2024-01-02,Dinner,250,DEBIT,Dining Out
`

func newTestContainer(t *testing.T, budgets string) *container.Container {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Log: config.LogConfig{Level: "info", Format: "text"},
		CSV: config.CSVConfig{Delimiter: ","},
		AI:  config.AIConfig{RequestsPerMinute: 10, TimeoutSeconds: 30, MaxRetries: 1},
	}
	cfg.Budgets.File = filepath.Join(dir, "budgets.yaml")
	cfg.Currency.Code = "INR"
	cfg.Batch.Concurrency = 1
	if budgets != "" {
		require.NoError(t, os.WriteFile(cfg.Budgets.File, []byte(budgets), 0600))
	}
	c, err := container.NewContainerWithClient(cfg, extractor.NewMockClient(nil, nil), logging.NewMockLogger())
	require.NoError(t, err)
	return c
}

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "january.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0600))
	return path
}

func TestCommand_Metadata(t *testing.T) {
	assert.Equal(t, "summary", Cmd.Use)
	assert.NotNil(t, Cmd.RunE)
	formatFlag := Cmd.Flags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "f", formatFlag.Shorthand)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestRun_JSON(t *testing.T) {
	c := newTestContainer(t, "budgets:\n  Groceries: 600\n")
	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), c, writeCSV(t), "json", &out))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "january.csv", doc["source"])
	assert.Equal(t, "3000", doc["totalIncome"])
	assert.Equal(t, "750", doc["totalExpenses"])
	assert.Equal(t, "2250", doc["netBalance"])
	assert.Equal(t, float64(3), doc["transactionCount"])

	day := doc["highestSpendingDay"].(map[string]interface{})
	assert.Equal(t, "2024-01-02", day["date"])
	assert.Equal(t, "750", day["amount"])

	budgets := doc["budgets"].([]interface{})
	require.Len(t, budgets, 1)
	row := budgets[0].(map[string]interface{})
	assert.Equal(t, "Groceries", row["category"])
	assert.Equal(t, "83.33", row["percent"])
	assert.Equal(t, "near_limit", row["status"])
}

func TestRun_Text(t *testing.T) {
	c := newTestContainer(t, "")
	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), c, writeCSV(t), "", &out))

	text := out.String()
	assert.Contains(t, text, "Statement: january.csv")
	assert.Contains(t, text, "Spending by category")
	assert.Contains(t, text, "Groceries")
	assert.NotContains(t, text, "Budgets")
}

func TestRun_Errors(t *testing.T) {
	c := newTestContainer(t, "")

	err := Run(context.Background(), c, writeCSV(t), "xml", &bytes.Buffer{})
	assert.ErrorContains(t, err, "unsupported report format")

	err = Run(context.Background(), c, filepath.Join(t.TempDir(), "missing.csv"), "text", &bytes.Buffer{})
	assert.ErrorContains(t, err, "does not exist")

	err = Run(context.Background(), nil, writeCSV(t), "text", &bytes.Buffer{})
	assert.Error(t, err)
}
