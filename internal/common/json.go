package common

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/statement-insights/internal/fileutils"
	"fjacquet/statement-insights/internal/logging"
	"fjacquet/statement-insights/internal/models"
)

// batchFile is the on-disk JSON layout of a batch.
type batchFile struct {
	ID           string           `json:"id,omitempty"`
	Source       string           `json:"source,omitempty"`
	Transactions []TransactionRow `json:"transactions"`
}

// WriteJSONFile writes batch to path as indented JSON.
func (f *TransactionFiles) WriteJSONFile(batch models.Batch, path string) error {
	data, err := json.MarshalIndent(batchFile{
		ID:           batch.ID,
		Source:       batch.Source,
		Transactions: ToRows(batch.Transactions),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}

	if err := fileutils.WriteFile(path, append(data, '\n'), models.PermissionReportFile); err != nil {
		return err
	}
	f.logger.Info("Successfully wrote transactions to JSON file",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: batch.Len()})
	return nil
}

// ReadJSONFile reads a batch written by WriteJSONFile. A bare JSON array of
// rows is accepted too, including the extraction-service shape with numeric amounts.
func (f *TransactionFiles) ReadJSONFile(path string) (models.Batch, error) {
	data, err := fileutils.ReadFile(path)
	if err != nil {
		return models.Batch{}, err
	}

	var file batchFile
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		err = json.Unmarshal([]byte(trimmed), &file.Transactions)
	} else {
		err = json.Unmarshal([]byte(trimmed), &file)
	}
	if err != nil {
		return models.Batch{}, fmt.Errorf("error parsing JSON file %s: %w", path, err)
	}

	transactions, _, err := FromRows(file.Transactions, f.validator, filepath.Base(path))
	if err != nil {
		return models.Batch{}, err
	}

	source := file.Source
	if source == "" {
		source = filepath.Base(path)
	}
	return models.Batch{ID: file.ID, Source: source, Transactions: transactions}, nil
}
