// Package models provides the data structures used throughout the application.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date layout used for every transaction date.
const DateLayout = "2006-01-02"

// TransactionType carries the direction of a transaction. Amounts are always
// non-negative magnitudes; the type says whether money left or entered the account.
type TransactionType string

const (
	// Debit is an outflow (expense).
	Debit TransactionType = "DEBIT"
	// Credit is an inflow (income).
	Credit TransactionType = "CREDIT"
)

// IsValid reports whether t is one of the two known transaction types.
func (t TransactionType) IsValid() bool {
	return t == Debit || t == Credit
}

// ParseTransactionType maps a type label to a TransactionType.
func ParseTransactionType(label string) (TransactionType, bool) {
	t := TransactionType(label)
	return t, t.IsValid()
}

// Transaction is one ledger entry extracted from a statement.
// Records are created once per extraction batch and never modified afterwards.
type Transaction struct {
	ID          string          `json:"id" yaml:"id"`
	Date        time.Time       `json:"date" yaml:"date"`
	Description string          `json:"description" yaml:"description"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Type        TransactionType `json:"type" yaml:"type"`
	Category    Category        `json:"category" yaml:"category"`
}

// DateKey returns the transaction date as YYYY-MM-DD.
func (t Transaction) DateKey() string {
	return t.Date.Format(DateLayout)
}

// IsDebit returns true if the transaction is an expense
func (t Transaction) IsDebit() bool {
	return t.Type == Debit
}

// IsCredit returns true if the transaction is income
func (t Transaction) IsCredit() bool {
	return t.Type == Credit
}

// Batch is the set of transactions produced by one extraction. A new statement
// or a session reset replaces the whole batch; there are no partial updates.
type Batch struct {
	ID           string        `json:"id" yaml:"id"`
	Source       string        `json:"source" yaml:"source"`
	Transactions []Transaction `json:"transactions" yaml:"transactions"`
}

// Len returns the number of transactions in the batch.
func (b Batch) Len() int {
	return len(b.Transactions)
}
