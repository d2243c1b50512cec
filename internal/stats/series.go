package stats

import (
	"sort"

	"fjacquet/statement-insights/internal/models"

	"github.com/shopspring/decimal"
)

// ForecastDays is the month length used to project the daily average.
const ForecastDays = 30

// ChartDays is how many of the most recent expense days the daily chart shows.
const ChartDays = 7

var hundred = decimal.NewFromInt(100)

// CategoryShare is one slice of the expense breakdown.
type CategoryShare struct {
	Category models.Category `json:"category" yaml:"category"`
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
	Percent  decimal.Decimal `json:"percent" yaml:"percent"`
}

// CategoryBreakdown lists the category totals from largest to smallest, ties
// ordered by name, with each category's share of total expenses.
func CategoryBreakdown(summary SummaryStats) []CategoryShare {
	shares := make([]CategoryShare, 0, len(summary.CategoryTotals))
	for category, amount := range summary.CategoryTotals {
		percent := decimal.Zero
		if summary.TotalExpenses.IsPositive() {
			percent = amount.Div(summary.TotalExpenses).Mul(hundred)
		}
		shares = append(shares, CategoryShare{Category: category, Amount: amount, Percent: percent})
	}

	sort.Slice(shares, func(i, j int) bool {
		if cmp := shares[i].Amount.Cmp(shares[j].Amount); cmp != 0 {
			return cmp > 0
		}
		return shares[i].Category < shares[j].Category
	})
	return shares
}

// DailyExpenses returns the DEBIT total for every date that has one, oldest first.
func DailyExpenses(transactions []models.Transaction) []SpendingDay {
	daily := NewTotals[string]()
	for _, tx := range transactions {
		if tx.IsDebit() {
			daily.Add(tx.DateKey(), tx.Amount)
		}
	}

	days := make([]SpendingDay, 0, daily.Len())
	for _, date := range daily.Keys() {
		days = append(days, SpendingDay{Date: date, Amount: daily.Get(date)})
	}
	// ISO dates sort chronologically as strings
	sort.SliceStable(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

// RecentDays keeps the last n entries of a chronological series.
func RecentDays(series []SpendingDay, n int) []SpendingDay {
	if n <= 0 {
		return []SpendingDay{}
	}
	if len(series) <= n {
		return series
	}
	return series[len(series)-n:]
}

// MonthlyForecast projects the average daily expense over ForecastDays.
func MonthlyForecast(summary SummaryStats) decimal.Decimal {
	return summary.AverageDailyExpense.Mul(decimal.NewFromInt(ForecastDays))
}
