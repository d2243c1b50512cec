package stats

import "github.com/shopspring/decimal"

// Totals sums decimal amounts per key. Lookups of absent keys return zero and
// keys are reported in the order they were first added.
type Totals[K comparable] struct {
	order []K
	sums  map[K]decimal.Decimal
}

// NewTotals returns an empty accumulator.
func NewTotals[K comparable]() *Totals[K] {
	return &Totals[K]{sums: make(map[K]decimal.Decimal)}
}

// Add accumulates amount under key.
func (t *Totals[K]) Add(key K, amount decimal.Decimal) {
	current, seen := t.sums[key]
	if !seen {
		t.order = append(t.order, key)
		current = decimal.Zero
	}
	t.sums[key] = current.Add(amount)
}

// Get returns the sum for key, or zero if nothing was added under it.
func (t *Totals[K]) Get(key K) decimal.Decimal {
	if sum, ok := t.sums[key]; ok {
		return sum
	}
	return decimal.Zero
}

// Keys returns the keys in first-seen order.
func (t *Totals[K]) Keys() []K {
	out := make([]K, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of distinct keys.
func (t *Totals[K]) Len() int {
	return len(t.order)
}

// Map returns a copy of the sums.
func (t *Totals[K]) Map() map[K]decimal.Decimal {
	out := make(map[K]decimal.Decimal, len(t.sums))
	for k, v := range t.sums {
		out[k] = v
	}
	return out
}
