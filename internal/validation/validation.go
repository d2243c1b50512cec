// Package validation converts raw extraction records into transactions,
// rejecting malformed records before they reach the aggregation engine.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"fjacquet/statement-insights/internal/dateutils"
	"fjacquet/statement-insights/internal/extractor"
	"fjacquet/statement-insights/internal/logging"
	"fjacquet/statement-insights/internal/models"
	"fjacquet/statement-insights/internal/parsererror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrBatchRejected is returned under PolicyFail when any record is malformed.
var ErrBatchRejected = errors.New("batch rejected: malformed transaction record")

// Policy decides what happens to a batch that contains malformed records.
type Policy string

const (
	// PolicyDrop keeps the valid records and reports the rejected ones.
	PolicyDrop Policy = "drop"
	// PolicyFail rejects the whole batch on the first malformed record.
	PolicyFail Policy = "fail"
)

// ParsePolicy maps a configuration value to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyDrop, PolicyFail:
		return p, nil
	case "":
		return PolicyDrop, nil
	default:
		return "", fmt.Errorf("invalid validation policy %q: must be %q or %q", s, PolicyDrop, PolicyFail)
	}
}

// Result is the outcome of validating one batch.
type Result struct {
	Transactions []models.Transaction
	Rejected     []*parsererror.ValidationError
	// Recategorized counts records whose category was outside the label set
	// and was replaced with Misc.
	Recategorized int
}

// Validator checks raw records against the transaction invariants.
type Validator struct {
	categories models.CategorySet
	policy     Policy
	logger     logging.Logger
	idSuffix   func() string
}

// NewValidator creates a Validator for the given label set and policy.
func NewValidator(categories models.CategorySet, policy Policy, logger logging.Logger) *Validator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if policy == "" {
		policy = PolicyDrop
	}
	return &Validator{
		categories: categories,
		policy:     policy,
		logger:     logger,
		idSuffix:   randomSuffix,
	}
}

func randomSuffix() string {
	return uuid.NewString()[:8]
}

// Validate converts records in order. Under PolicyFail the first malformed
// record aborts the batch with an error wrapping both ErrBatchRejected and
// the record's *parsererror.ValidationError.
func (v *Validator) Validate(records []extractor.RawRecord) (Result, error) {
	result := Result{Transactions: make([]models.Transaction, 0, len(records))}

	for i, raw := range records {
		tx, known, vErr := v.Record(i, raw)
		if vErr != nil {
			if v.policy == PolicyFail {
				return Result{}, fmt.Errorf("%w: %w", ErrBatchRejected, vErr)
			}
			v.logger.Warn("Dropping malformed record",
				logging.Field{Key: logging.FieldRecordIndex, Value: i},
				logging.Field{Key: logging.FieldReason, Value: vErr.Error()})
			result.Rejected = append(result.Rejected, vErr)
			continue
		}
		if !known {
			result.Recategorized++
		}
		result.Transactions = append(result.Transactions, tx)
	}

	if len(result.Rejected) > 0 {
		v.logger.Info("Validated extraction batch",
			logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)},
			logging.Field{Key: logging.FieldRejected, Value: len(result.Rejected)},
			logging.Field{Key: logging.FieldPolicy, Value: string(v.policy)})
	}
	return result, nil
}

// Record validates a single raw record at position index. known is false
// when the category label was replaced with Misc. A record without an ID gets
// one of the form <date>-<index>-<8 hex chars>.
func (v *Validator) Record(index int, raw extractor.RawRecord) (tx models.Transaction, known bool, vErr *parsererror.ValidationError) {
	invalid := func(field, value, reason string) (models.Transaction, bool, *parsererror.ValidationError) {
		return models.Transaction{}, false, &parsererror.ValidationError{Index: index, Field: field, Value: value, Reason: reason}
	}

	if raw.Date == nil || strings.TrimSpace(*raw.Date) == "" {
		return invalid("date", "", "missing")
	}
	date, err := dateutils.ParseISODate(*raw.Date)
	if err != nil {
		return invalid("date", *raw.Date, "expected YYYY-MM-DD")
	}

	if raw.Description == nil || strings.TrimSpace(*raw.Description) == "" {
		return invalid("description", "", "missing")
	}
	description := strings.TrimSpace(*raw.Description)

	if raw.Amount == nil || raw.Amount.String() == "" {
		return invalid("amount", "", "missing")
	}
	amount, err := decimal.NewFromString(raw.Amount.String())
	if err != nil {
		return invalid("amount", raw.Amount.String(), "not a number")
	}

	if raw.Type == nil {
		return invalid("type", "", "missing")
	}
	txType, ok := models.ParseTransactionType(strings.ToUpper(strings.TrimSpace(*raw.Type)))
	if !ok {
		return invalid("type", *raw.Type, "must be DEBIT or CREDIT")
	}

	label := ""
	if raw.Category != nil {
		label = *raw.Category
	}
	category, known := v.categories.Normalize(label)

	id := ""
	if raw.ID != nil {
		id = strings.TrimSpace(*raw.ID)
	}
	if id == "" {
		id = fmt.Sprintf("%s-%d-%s", date.Format(models.DateLayout), index, v.idSuffix())
	}
	return models.Transaction{
		ID:          id,
		Date:        date,
		Description: description,
		Amount:      amount.Abs(),
		Type:        txType,
		Category:    category,
	}, known, nil
}
