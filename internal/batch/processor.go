// Package batch provides functionality for converting a directory of PDF
// statements into per-statement CSV files.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"fjacquet/statement-insights/internal/common"
	"fjacquet/statement-insights/internal/dateutils"
	"fjacquet/statement-insights/internal/fileutils"
	"fjacquet/statement-insights/internal/logging"
	"fjacquet/statement-insights/internal/models"
	"fjacquet/statement-insights/internal/pdfparser"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of statements extracted at once.
const DefaultConcurrency = 2

// DateRange represents a date range for transactions
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the range as "YYYY-MM-DD_YYYY-MM-DD", or "" when empty.
func (dr DateRange) String() string {
	if dr.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%s", dateutils.ToISODate(dr.Start), dateutils.ToISODate(dr.End))
}

// IsZero reports whether the range is unset.
func (dr DateRange) IsZero() bool {
	return dr.Start.IsZero() && dr.End.IsZero()
}

// RangeOf returns the span of transaction dates.
func RangeOf(transactions []models.Transaction) DateRange {
	dates := make([]time.Time, len(transactions))
	for i, tx := range transactions {
		dates[i] = tx.Date
	}
	first, last, ok := dateutils.Span(dates)
	if !ok {
		return DateRange{}
	}
	return DateRange{Start: first, End: last}
}

// FileResult is the outcome of converting one statement.
type FileResult struct {
	InputFile  string
	OutputFile string
	BatchID    string
	Count      int
	Rejected   int
	Range      DateRange
	Err        error
}

// OK reports whether the statement was converted.
func (r FileResult) OK() bool {
	return r.Err == nil
}

// Processor extracts every PDF statement in a directory and writes one CSV per statement.
type Processor struct {
	parser      *pdfparser.Parser
	files       *common.TransactionFiles
	concurrency int
	logger      logging.Logger
}

// NewProcessor creates a Processor. concurrency below one falls back to DefaultConcurrency.
func NewProcessor(parser *pdfparser.Parser, files *common.TransactionFiles, concurrency int, logger logging.Logger) *Processor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Processor{
		parser:      parser,
		files:       files,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Process converts every .pdf file directly inside inputDir. A statement that
// fails is reported in its FileResult and does not stop the others; the
// returned error is set only when listing fails or ctx is cancelled.
// Results are in input file order.
func (p *Processor) Process(ctx context.Context, inputDir, outputDir string) ([]FileResult, error) {
	files, err := fileutils.ListFilesWithExtension(inputDir, ".pdf")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		p.logger.Warn("No PDF statements found", logging.Field{Key: logging.FieldInputFile, Value: inputDir})
		return []FileResult{}, nil
	}
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return nil, err
	}

	p.logger.Info("Processing statements",
		logging.Field{Key: logging.FieldCount, Value: len(files)},
		logging.Field{Key: logging.FieldInputFile, Value: inputDir},
		logging.Field{Key: logging.FieldOutputFile, Value: outputDir})

	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = FileResult{InputFile: file, Err: err}
				return err
			}
			results[i] = p.processFile(gctx, file, outputDir)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	p.logger.Info("Finished processing statements",
		logging.Field{Key: logging.FieldCount, Value: len(results) - failed},
		logging.Field{Key: logging.FieldRejected, Value: failed})
	return results, nil
}

func (p *Processor) processFile(ctx context.Context, file, outputDir string) FileResult {
	result := FileResult{InputFile: file}
	log := p.logger.WithField(logging.FieldInputFile, filepath.Base(file))

	batch, validated, err := p.parser.ParseFile(ctx, file)
	if err != nil {
		log.WithError(err).Error("Failed to process statement")
		result.Err = err
		return result
	}

	result.BatchID = batch.ID
	result.Count = batch.Len()
	result.Rejected = len(validated.Rejected)
	result.Range = RangeOf(batch.Transactions)
	result.OutputFile = filepath.Join(outputDir, fileutils.ReplaceExtension(file, ".csv"))

	if err := p.files.WriteCSVFile(batch.Transactions, result.OutputFile); err != nil {
		log.WithError(err).Error("Failed to write statement CSV")
		result.Err = err
		return result
	}

	log.Info("Converted statement",
		logging.Field{Key: logging.FieldOutputFile, Value: result.OutputFile},
		logging.Field{Key: logging.FieldCount, Value: result.Count},
		logging.Field{Key: "range", Value: result.Range.String()})
	return result
}
