// Package pdfparser loads bank statement PDFs and turns them into a validated
// transaction batch using the extraction service.
package pdfparser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"fjacquet/statement-insights/internal/extractor"
	"fjacquet/statement-insights/internal/logging"
	"fjacquet/statement-insights/internal/models"
	"fjacquet/statement-insights/internal/parsererror"
	"fjacquet/statement-insights/internal/validation"

	"github.com/google/uuid"
)

// pdfMagic is the header every PDF file starts with.
var pdfMagic = []byte("%PDF-")

// MaxStatementSize bounds the bytes sent inline to the extraction service.
const MaxStatementSize = 20 << 20

// Parser extracts and validates the transactions of one statement.
type Parser struct {
	client    extractor.Client
	validator *validation.Validator
	logger    logging.Logger
}

// NewParser creates a Parser with its collaborators injected.
func NewParser(client extractor.Client, validator *validation.Validator, logger logging.Logger) *Parser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Parser{client: client, validator: validator, logger: logger}
}

// ValidateFormat reports whether data looks like a PDF document.
func ValidateFormat(data []byte, source string) error {
	if len(data) == 0 {
		return &parsererror.InvalidFormatError{Path: source, Expected: "PDF", Reason: "file is empty"}
	}
	if len(data) > MaxStatementSize {
		return &parsererror.InvalidFormatError{
			Path:     source,
			Expected: "PDF",
			Reason:   fmt.Sprintf("file exceeds %d bytes", MaxStatementSize),
		}
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		snippet := data
		if len(snippet) > 16 {
			snippet = snippet[:16]
		}
		return &parsererror.InvalidFormatError{
			Path:     source,
			Expected: "PDF",
			Reason:   "missing PDF header",
			Snippet:  string(snippet),
		}
	}
	return nil
}

// ParseFile reads the statement at path and parses it.
func (p *Parser) ParseFile(ctx context.Context, path string) (models.Batch, validation.Result, error) {
	file, err := os.Open(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return models.Batch{}, validation.Result{}, fmt.Errorf("error opening input file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			p.logger.WithError(err).Warn("Failed to close input file",
				logging.Field{Key: logging.FieldFile, Value: path})
		}
	}()

	return p.Parse(ctx, file, path)
}

// Parse extracts transactions from the PDF read from r. source names the
// statement in errors and in the returned batch.
func (p *Parser) Parse(ctx context.Context, r io.Reader, source string) (models.Batch, validation.Result, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxStatementSize+1))
	if err != nil {
		return models.Batch{}, validation.Result{}, fmt.Errorf("failed to read statement: %w", err)
	}
	if err := ValidateFormat(data, source); err != nil {
		return models.Batch{}, validation.Result{}, err
	}

	log := p.logger.WithField(logging.FieldFile, source)
	log.Info("Extracting transactions from statement")
	start := time.Now()

	records, err := p.client.Extract(ctx, data)
	if err != nil {
		return models.Batch{}, validation.Result{}, &parsererror.ExtractionError{
			FilePath: source,
			Reason:   "extraction service",
			Err:      err,
		}
	}

	result, err := p.validator.Validate(records)
	if err != nil {
		return models.Batch{}, validation.Result{}, fmt.Errorf("%s: %w", source, err)
	}

	batch := models.Batch{
		ID:           uuid.NewString(),
		Source:       filepath.Base(source),
		Transactions: result.Transactions,
	}

	log.Info("Statement parsed",
		logging.Field{Key: logging.FieldBatchID, Value: batch.ID},
		logging.Field{Key: logging.FieldCount, Value: batch.Len()},
		logging.Field{Key: logging.FieldRejected, Value: len(result.Rejected)},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
	return batch, result, nil
}
