// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/statement-insights/internal/container"
	"fjacquet/statement-insights/internal/dashboard"
	"fjacquet/statement-insights/internal/fileutils"
	"fjacquet/statement-insights/internal/logging"
	"fjacquet/statement-insights/internal/models"

	"github.com/google/uuid"
)

// LoadBatch reads transactions from a PDF statement, a CSV file or a JSON
// file, chosen by extension. PDF statements go through the extraction service.
func LoadBatch(ctx context.Context, c *container.Container, path string) (models.Batch, error) {
	if path == "" {
		return models.Batch{}, fmt.Errorf("input file must be specified with --input")
	}
	if !fileutils.FileExists(path) {
		return models.Batch{}, fmt.Errorf("input file does not exist: %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		parser, err := c.GetParser(ctx)
		if err != nil {
			return models.Batch{}, err
		}
		batch, result, err := parser.ParseFile(ctx, path)
		if err != nil {
			return models.Batch{}, err
		}
		if len(result.Rejected) > 0 {
			c.GetLogger().Warn("Some extracted records were dropped",
				logging.Field{Key: logging.FieldRejected, Value: len(result.Rejected)},
				logging.Field{Key: logging.FieldFile, Value: path})
		}
		return batch, nil
	case ".csv":
		transactions, err := c.GetTransactionFiles().ReadCSVFile(path)
		if err != nil {
			return models.Batch{}, err
		}
		return models.Batch{
			ID:           uuid.NewString(),
			Source:       filepath.Base(path),
			Transactions: transactions,
		}, nil
	case ".json":
		batch, err := c.GetTransactionFiles().ReadJSONFile(path)
		if err != nil {
			return models.Batch{}, err
		}
		if batch.ID == "" {
			batch.ID = uuid.NewString()
		}
		if batch.Source == "" {
			batch.Source = filepath.Base(path)
		}
		return batch, nil
	default:
		return models.Batch{}, fmt.Errorf("unsupported input file type %q: expected .pdf, .csv or .json", ext)
	}
}

// LoadSession loads the batch at path into the container's dashboard session.
func LoadSession(ctx context.Context, c *container.Container, path string) (*dashboard.Session, error) {
	batch, err := LoadBatch(ctx, c, path)
	if err != nil {
		return nil, err
	}
	session := c.GetSession()
	session.Load(batch)
	return session, nil
}
