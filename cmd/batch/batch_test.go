package batch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/statement-insights/internal/batch"
	"fjacquet/statement-insights/internal/config"
	"fjacquet/statement-insights/internal/container"
	"fjacquet/statement-insights/internal/extractor"
	"fjacquet/statement-insights/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContainer(t *testing.T) *container.Container {
	t.Helper()
	cfg := &config.Config{
		Log: config.LogConfig{Level: "info", Format: "text"},
		CSV: config.CSVConfig{Delimiter: ","},
		AI:  config.AIConfig{RequestsPerMinute: 10, TimeoutSeconds: 30, MaxRetries: 1},
	}
	cfg.Budgets.File = filepath.Join(t.TempDir(), "budgets.yaml")
	cfg.Currency.Code = "INR"
	cfg.Batch.Concurrency = 2
	client := extractor.NewMockClient([]extractor.RawRecord{
		{
			Date:        extractor.String("2024-06-01"),
			Description: extractor.String("Rent"),
			Amount:      extractor.Number("15000"),
			Type:        extractor.String("DEBIT"),
			Category:    extractor.String("Home Improvement"),
		},
	}, nil)
	c, err := container.NewContainerWithClient(cfg, client, logging.NewMockLogger())
	require.NoError(t, err)
	return c
}

func TestCommand_Flags(t *testing.T) {
	assert.Equal(t, "batch", Cmd.Use)
	assert.NotNil(t, Cmd.Flags().Lookup("input-dir"))
	assert.NotNil(t, Cmd.Flags().Lookup("output-dir"))
}

func TestRun(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "june.pdf"), []byte("%PDF-1.5\n"), 0600))

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), newTestContainer(t), inputDir, outputDir, &out))

	assert.Contains(t, out.String(), "june.pdf -> june.csv (1 transactions)")
	assert.Contains(t, out.String(), "Processed 1 statements, 0 failed")
	assert.FileExists(t, filepath.Join(outputDir, "june.csv"))
}

func TestRun_ReportsFailures(t *testing.T) {
	inputDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "good.pdf"), []byte("%PDF-1.5\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "bad.pdf"), []byte("plain text"), 0600))

	var out bytes.Buffer
	err := Run(context.Background(), newTestContainer(t), inputDir, t.TempDir(), &out)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 statements failed")
	assert.Contains(t, out.String(), "FAILED  bad.pdf")
	assert.Contains(t, out.String(), "OK      good.pdf")
}

func TestRun_RequiresDirectories(t *testing.T) {
	err := Run(context.Background(), newTestContainer(t), "", "", &bytes.Buffer{})
	assert.ErrorContains(t, err, "must be specified")
}

func TestWriteResult(t *testing.T) {
	tests := []struct {
		name     string
		result   batch.FileResult
		expected string
	}{
		{
			name:     "success",
			result:   batch.FileResult{InputFile: "in/jan.pdf", OutputFile: "out/jan.csv", Count: 12},
			expected: "OK      jan.pdf -> jan.csv (12 transactions)\n",
		},
		{
			name:     "failure",
			result:   batch.FileResult{InputFile: "in/feb.pdf", Err: errors.New("quota exhausted")},
			expected: "FAILED  feb.pdf: quota exhausted\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, writeResult(&out, tt.result))
			assert.Equal(t, tt.expected, out.String())
		})
	}
}
