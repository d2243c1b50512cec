// Package common provides the transaction file formats shared by the commands.
package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"fjacquet/statement-insights/internal/currencyutils"
	"fjacquet/statement-insights/internal/dateutils"
	"fjacquet/statement-insights/internal/extractor"
	"fjacquet/statement-insights/internal/models"
	"fjacquet/statement-insights/internal/parsererror"
	"fjacquet/statement-insights/internal/validation"
)

// Amount is the textual amount of a stored row. In JSON it may be written
// either as a string or as a bare number.
type Amount string

// UnmarshalJSON accepts "12.50", 12.50 and null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a number or a string: %w", err)
	}
	*a = Amount(n.String())
	return nil
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (a Amount) MarshalCSV() (string, error) { return string(a), nil }

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (a *Amount) UnmarshalCSV(s string) error {
	*a = Amount(s)
	return nil
}

// TransactionRow is the flat form of a transaction used in CSV and JSON files.
type TransactionRow struct {
	ID          string `csv:"id" json:"id"`
	Date        string `csv:"date" json:"date"`
	Description string `csv:"description" json:"description"`
	Amount      Amount `csv:"amount" json:"amount"`
	Type        string `csv:"type" json:"type"`
	Category    string `csv:"category" json:"category"`
}

// ToRows converts transactions to rows with ISO dates. Amounts keep their
// full precision.
func ToRows(transactions []models.Transaction) []TransactionRow {
	rows := make([]TransactionRow, len(transactions))
	for i, tx := range transactions {
		rows[i] = TransactionRow{
			ID:          tx.ID,
			Date:        tx.DateKey(),
			Description: tx.Description,
			Amount:      Amount(tx.Amount.String()),
			Type:        string(tx.Type),
			Category:    string(tx.Category),
		}
	}
	return rows
}

// rawRecord maps a hand-editable row onto the extraction record shape. Dates
// in any import layout become ISO and amount formatting noise is stripped;
// anything that still does not parse is left for the validator to reject.
func (row TransactionRow) rawRecord() extractor.RawRecord {
	raw := extractor.RawRecord{
		ID:          optional(row.ID),
		Date:        optional(row.Date),
		Description: optional(row.Description),
		Type:        optional(row.Type),
		Category:    optional(row.Category),
	}
	if date, err := dateutils.ParseDate(row.Date); err == nil {
		raw.Date = extractor.String(dateutils.ToISODate(date))
	}
	if amount := strings.TrimSpace(string(row.Amount)); amount != "" {
		if standardized := currencyutils.StandardizeAmount(amount); standardized != "" {
			amount = standardized
		}
		raw.Amount = extractor.Number(amount)
	}
	return raw
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return extractor.String(s)
}

func isBlankRow(row TransactionRow) bool {
	return strings.TrimSpace(row.ID+row.Date+row.Description+string(row.Amount)+row.Type+row.Category) == ""
}

// FromRows converts rows read from a file into transactions through the same
// validator that guards extracted records, so the configured drop or fail
// policy applies to files too. Blank rows are skipped. Under the fail policy
// the error is a *parsererror.ParseError naming the file row.
func FromRows(rows []TransactionRow, validator *validation.Validator, source string) ([]models.Transaction, validation.Result, error) {
	records := make([]extractor.RawRecord, 0, len(rows))
	lines := make([]int, 0, len(rows))
	for i, row := range rows {
		if isBlankRow(row) {
			continue
		}
		records = append(records, row.rawRecord())
		lines = append(lines, i+1)
	}

	result, err := validator.Validate(records)
	if err != nil {
		var vErr *parsererror.ValidationError
		if !errors.As(err, &vErr) || vErr.Index >= len(lines) {
			return nil, validation.Result{}, fmt.Errorf("%s: %w", source, err)
		}
		return nil, validation.Result{}, &parsererror.ParseError{
			Source: fmt.Sprintf("%s row %d", source, lines[vErr.Index]),
			Field:  vErr.Field,
			Value:  vErr.Value,
			Err:    err,
		}
	}
	return result.Transactions, result, nil
}
