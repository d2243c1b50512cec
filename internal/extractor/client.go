// Package extractor turns a bank statement PDF into raw transaction records by
// asking a generative model for structured output.
package extractor

import (
	"context"
	"encoding/json"
)

// RawRecord is one transaction as returned by the extraction service, before
// validation. Every field is optional so that missing values can be detected.
// ID is only set for records re-read from a stored transaction file.
type RawRecord struct {
	ID          *string      `json:"id,omitempty"`
	Date        *string      `json:"date,omitempty"`
	Description *string      `json:"description,omitempty"`
	Amount      *json.Number `json:"amount,omitempty"`
	Type        *string      `json:"type,omitempty"`
	Category    *string      `json:"category,omitempty"`
}

// Client extracts raw transaction records from the bytes of a PDF statement.
// Records are returned in the order the service produced them.
type Client interface {
	Extract(ctx context.Context, pdf []byte) ([]RawRecord, error)
}

// String returns a pointer to s, for building records in code.
func String(s string) *string {
	return &s
}

// Number returns a pointer to the JSON number literal n.
func Number(n string) *json.Number {
	num := json.Number(n)
	return &num
}
