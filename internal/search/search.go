// Package search filters and orders transactions for the transaction table.
package search

import (
	"fmt"
	"sort"
	"strings"

	"fjacquet/statement-insights/internal/models"
)

// Order is the direction of a date sort.
type Order string

const (
	Ascending  Order = "asc"
	Descending Order = "desc"
)

// ParseOrder maps a flag value to an Order. Empty means Descending.
func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case Ascending, Descending:
		return o, nil
	case "":
		return Descending, nil
	default:
		return "", fmt.Errorf("invalid sort order %q: must be %q or %q", s, Ascending, Descending)
	}
}

// Filter returns the transactions whose description or category contains
// term, ignoring case. An empty term keeps everything.
func Filter(transactions []models.Transaction, term string) []models.Transaction {
	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if needle == "" ||
			strings.Contains(strings.ToLower(tx.Description), needle) ||
			strings.Contains(strings.ToLower(string(tx.Category)), needle) {
			out = append(out, tx)
		}
	}
	return out
}

// SortByDate returns a copy of transactions ordered by date. Transactions on
// the same date keep their original relative order.
func SortByDate(transactions []models.Transaction, order Order) []models.Transaction {
	out := make([]models.Transaction, len(transactions))
	copy(out, transactions)

	sort.SliceStable(out, func(i, j int) bool {
		if order == Ascending {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Query applies Filter then SortByDate.
func Query(transactions []models.Transaction, term string, order Order) []models.Transaction {
	return SortByDate(Filter(transactions, term), order)
}
