// Package stats folds a batch of categorized transactions into the summary
// figures shown on the dashboard. Every function here is pure and never rounds;
// formatting is left to the caller.
package stats

import (
	"fjacquet/statement-insights/internal/models"

	"github.com/shopspring/decimal"
)

// SpendingDay is a calendar date with the DEBIT total booked on it.
type SpendingDay struct {
	Date   string          `json:"date" yaml:"date"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
}

// NoSpendingDay is reported as the highest spending day when there are no expenses.
var NoSpendingDay = SpendingDay{Date: models.HighestDayNone, Amount: decimal.Zero}

// Found reports whether d refers to an actual date.
func (d SpendingDay) Found() bool {
	return d.Date != "" && d.Date != models.HighestDayNone
}

// SummaryStats is derived from a batch on every read and never stored.
type SummaryStats struct {
	TotalIncome         decimal.Decimal                     `json:"totalIncome" yaml:"totalIncome"`
	TotalExpenses       decimal.Decimal                     `json:"totalExpenses" yaml:"totalExpenses"`
	NetBalance          decimal.Decimal                     `json:"netBalance" yaml:"netBalance"`
	TransactionCount    int                                 `json:"transactionCount" yaml:"transactionCount"`
	ExpenseDays         int                                 `json:"expenseDays" yaml:"expenseDays"`
	AverageDailyExpense decimal.Decimal                     `json:"averageDailyExpense" yaml:"averageDailyExpense"`
	HighestSpendingDay  SpendingDay                         `json:"highestSpendingDay" yaml:"highestSpendingDay"`
	CategoryTotals      map[models.Category]decimal.Decimal `json:"categoryTotals" yaml:"categoryTotals"`
}

// ComputeSummary aggregates transactions into SummaryStats. Input order does not
// affect the totals; it only decides which day wins a tie for highest spending day.
//
// The daily average divides by the number of distinct dates that carry at least
// one DEBIT, not by the calendar length of the statement.
func ComputeSummary(transactions []models.Transaction) SummaryStats {
	summary := SummaryStats{
		TotalIncome:         decimal.Zero,
		TotalExpenses:       decimal.Zero,
		NetBalance:          decimal.Zero,
		AverageDailyExpense: decimal.Zero,
		HighestSpendingDay:  NoSpendingDay,
		CategoryTotals:      make(map[models.Category]decimal.Decimal),
	}
	if len(transactions) == 0 {
		return summary
	}

	daily := NewTotals[string]()
	categories := NewTotals[models.Category]()

	for _, tx := range transactions {
		switch tx.Type {
		case models.Credit:
			summary.TotalIncome = summary.TotalIncome.Add(tx.Amount)
		case models.Debit:
			summary.TotalExpenses = summary.TotalExpenses.Add(tx.Amount)
			daily.Add(tx.DateKey(), tx.Amount)
			categories.Add(tx.Category, tx.Amount)
		}
	}

	summary.TransactionCount = len(transactions)
	summary.NetBalance = summary.TotalIncome.Sub(summary.TotalExpenses)
	summary.ExpenseDays = daily.Len()
	if daily.Len() > 0 {
		summary.AverageDailyExpense = summary.TotalExpenses.Div(decimal.NewFromInt(int64(daily.Len())))
	}
	summary.HighestSpendingDay = highestDay(daily)
	summary.CategoryTotals = categories.Map()

	return summary
}

// highestDay scans the per-day totals in first-seen order; the first day
// holding the maximum wins. A day must be strictly above zero to count.
func highestDay(daily *Totals[string]) SpendingDay {
	best := NoSpendingDay
	for _, date := range daily.Keys() {
		amount := daily.Get(date)
		if amount.GreaterThan(best.Amount) {
			best = SpendingDay{Date: date, Amount: amount}
		}
	}
	return best
}
