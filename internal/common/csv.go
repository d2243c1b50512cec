package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fjacquet/statement-insights/internal/fileutils"
	"fjacquet/statement-insights/internal/logging"
	"fjacquet/statement-insights/internal/models"
	"fjacquet/statement-insights/internal/validation"

	"github.com/gocarina/gocsv"
)

// DefaultDelimiter is used when configuration leaves csv.delimiter empty.
const DefaultDelimiter = ','

// TransactionFiles reads and writes transaction files. Rows read back are
// checked by validator.
type TransactionFiles struct {
	delimiter rune
	validator *validation.Validator
	logger    logging.Logger
}

// NewTransactionFiles creates a TransactionFiles. A zero delimiter means
// DefaultDelimiter and a nil validator uses the default labels with PolicyDrop.
func NewTransactionFiles(delimiter rune, validator *validation.Validator, logger logging.Logger) *TransactionFiles {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if validator == nil {
		validator = validation.NewValidator(models.DefaultCategorySet(), validation.PolicyDrop, logger)
	}
	return &TransactionFiles{delimiter: delimiter, validator: validator, logger: logger}
}

// ReadCSV decodes rows of any gocsv-tagged struct type using delimiter.
func ReadCSV[TCSVRow any](r io.Reader, delimiter rune) ([]TCSVRow, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true

	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV data: %w", err)
	}
	return rows, nil
}

// ReadCSVFile reads transactions from a CSV file written by WriteCSVFile or
// prepared by hand with the same header.
func (f *TransactionFiles) ReadCSVFile(path string) ([]models.Transaction, error) {
	log := f.logger.WithField(logging.FieldFile, path)
	log.Info("Reading CSV file")

	file, err := os.Open(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	rows, err := ReadCSV[TransactionRow](file, f.delimiter)
	if err != nil {
		return nil, err
	}
	transactions, result, err := FromRows(rows, f.validator, filepath.Base(path))
	if err != nil {
		return nil, err
	}

	log.Info("Successfully read CSV data",
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
		logging.Field{Key: logging.FieldRejected, Value: len(result.Rejected)})
	return transactions, nil
}

// WriteCSV writes transactions to w.
func (f *TransactionFiles) WriteCSV(transactions []models.Transaction, w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = f.delimiter

	if err := gocsv.MarshalCSV(ToRows(transactions), gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteCSVFile writes transactions to path, creating parent directories.
func (f *TransactionFiles) WriteCSVFile(transactions []models.Transaction, path string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}
	log := f.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
	)

	if err := fileutils.EnsureDirectoryExists(filepath.Dir(path)); err != nil {
		return err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, models.PermissionReportFile) // #nosec G304 G302
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := f.WriteCSV(transactions, file); err != nil {
		log.WithError(err).Error("Failed to marshal transactions to CSV")
		return err
	}

	log.Info("Successfully wrote transactions to CSV file")
	return nil
}
