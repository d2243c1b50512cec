package models

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Budget maps a category to its monthly spending limit. A zero, negative or
// missing entry means no budget is set for that category.
type Budget map[Category]decimal.Decimal

// Limit returns the limit for c, or zero when none is set.
func (b Budget) Limit(c Category) decimal.Decimal {
	if limit, ok := b[c]; ok {
		return limit
	}
	return decimal.Zero
}

// Categories returns the budgeted categories sorted by name.
func (b Budget) Categories() []Category {
	out := make([]Category, 0, len(b))
	for c := range b {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Fingerprint returns a stable string identifying the budget contents.
func (b Budget) Fingerprint() string {
	var sb strings.Builder
	for _, c := range b.Categories() {
		sb.WriteString(string(c))
		sb.WriteByte('=')
		sb.WriteString(b[c].String())
		sb.WriteByte(';')
	}
	return sb.String()
}

// Clone returns an independent copy of b.
func (b Budget) Clone() Budget {
	out := make(Budget, len(b))
	for c, limit := range b {
		out[c] = limit
	}
	return out
}
