// Package budget compares category spending against user-defined limits.
package budget

import (
	"sort"

	"fjacquet/statement-insights/internal/models"

	"github.com/shopspring/decimal"
)

// Utilization thresholds, in percent of the limit.
var (
	NearLimitThreshold  = decimal.NewFromInt(80)
	OverBudgetThreshold = decimal.NewFromInt(100)
)

var hundred = decimal.NewFromInt(100)

// Status classifies how much of a budget has been used.
type Status string

const (
	StatusWithinLimits Status = "within_limits"
	StatusNearLimit    Status = "near_limit"
	StatusOverBudget   Status = "over_budget"
)

// Classify maps a utilization percentage to a Status:
// above 100 is over budget, above 80 up to 100 is near the limit, anything else is within limits.
func Classify(percent decimal.Decimal) Status {
	switch {
	case percent.GreaterThan(OverBudgetThreshold):
		return StatusOverBudget
	case percent.GreaterThan(NearLimitThreshold):
		return StatusNearLimit
	default:
		return StatusWithinLimits
	}
}

// Progress is the utilization of one budgeted category.
type Progress struct {
	Category models.Category `json:"category" yaml:"category"`
	Limit    decimal.Decimal `json:"limit" yaml:"limit"`
	Spent    decimal.Decimal `json:"spent" yaml:"spent"`
	Percent  decimal.Decimal `json:"percent" yaml:"percent"`
	Status   Status          `json:"status" yaml:"status"`
}

// Evaluate returns one Progress per category with a positive limit, highest
// utilization first. Categories with equal utilization are ordered by name.
// A budgeted category with no spending is reported with zero spent.
func Evaluate(categoryTotals map[models.Category]decimal.Decimal, budgets models.Budget) []Progress {
	progress := make([]Progress, 0, len(budgets))
	for _, category := range budgets.Categories() {
		limit := budgets[category]
		if !limit.IsPositive() {
			continue
		}

		spent, ok := categoryTotals[category]
		if !ok {
			spent = decimal.Zero
		}
		percent := spent.Div(limit).Mul(hundred)

		progress = append(progress, Progress{
			Category: category,
			Limit:    limit,
			Spent:    spent,
			Percent:  percent,
			Status:   Classify(percent),
		})
	}

	sort.SliceStable(progress, func(i, j int) bool {
		return progress[i].Percent.GreaterThan(progress[j].Percent)
	})
	return progress
}

// Remaining returns how much of the limit is left; negative when overspent.
func (p Progress) Remaining() decimal.Decimal {
	return p.Limit.Sub(p.Spent)
}
