package budget

import (
	"math/rand"
	"testing"

	"fjacquet/statement-insights/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		percent  string
		expected Status
	}{
		{"0", StatusWithinLimits},
		{"79.99", StatusWithinLimits},
		{"80", StatusWithinLimits},
		{"80.01", StatusNearLimit},
		{"100", StatusNearLimit},
		{"100.0001", StatusOverBudget},
		{"500", StatusOverBudget},
	}

	for _, tt := range tests {
		t.Run(tt.percent, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(d(tt.percent)))
		})
	}
}

func TestEvaluate_NearLimit(t *testing.T) {
	progress := Evaluate(
		map[models.Category]decimal.Decimal{models.CategoryGroceries: d("500")},
		models.Budget{models.CategoryGroceries: d("600")},
	)

	require.Len(t, progress, 1)
	p := progress[0]
	assert.Equal(t, models.CategoryGroceries, p.Category)
	assert.True(t, d("600").Equal(p.Limit))
	assert.True(t, d("500").Equal(p.Spent))
	assert.Equal(t, "83.33", p.Percent.StringFixed(2))
	assert.Equal(t, StatusNearLimit, p.Status)
	assert.True(t, d("100").Equal(p.Remaining()))
}

func TestEvaluate_ZeroLimitExcluded(t *testing.T) {
	progress := Evaluate(
		map[models.Category]decimal.Decimal{models.CategoryGroceries: d("500")},
		models.Budget{models.CategoryTravel: decimal.Zero, models.CategoryGroceries: d("100")},
	)

	require.Len(t, progress, 1)
	assert.Equal(t, models.CategoryGroceries, progress[0].Category)
	assert.True(t, d("500").Equal(progress[0].Percent))
	assert.Equal(t, StatusOverBudget, progress[0].Status)
	assert.True(t, d("-400").Equal(progress[0].Remaining()))
}

func TestEvaluate_NegativeLimitExcluded(t *testing.T) {
	progress := Evaluate(nil, models.Budget{models.CategoryTravel: d("-50")})
	assert.Empty(t, progress)
}

func TestEvaluate_BudgetWithoutSpending(t *testing.T) {
	progress := Evaluate(
		map[models.Category]decimal.Decimal{},
		models.Budget{models.CategoryHealthcare: d("250")},
	)

	require.Len(t, progress, 1)
	assert.True(t, progress[0].Spent.IsZero())
	assert.True(t, progress[0].Percent.IsZero())
	assert.Equal(t, StatusWithinLimits, progress[0].Status)
}

func TestEvaluate_OrderedByUtilization(t *testing.T) {
	totals := map[models.Category]decimal.Decimal{
		models.CategoryGroceries:     d("450"),
		models.CategoryTravel:        d("1200"),
		models.CategoryEntertainment: d("10"),
		models.CategoryDiningOut:     d("50"),
	}
	budgets := models.Budget{
		models.CategoryGroceries:     d("500"),  // 90
		models.CategoryTravel:        d("1000"), // 120
		models.CategoryEntertainment: d("100"),  // 10
		models.CategoryDiningOut:     d("500"),  // 10
		models.CategoryEducation:     d("300"),  // 0
	}

	progress := Evaluate(totals, budgets)

	var order []models.Category
	for _, p := range progress {
		order = append(order, p.Category)
	}
	assert.Equal(t, []models.Category{
		models.CategoryTravel,
		models.CategoryGroceries,
		models.CategoryDiningOut,
		models.CategoryEntertainment,
		models.CategoryEducation,
	}, order)
}

func TestEvaluate_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	categories := models.DefaultCategories

	for i := 0; i < 200; i++ {
		totals := map[models.Category]decimal.Decimal{}
		budgets := models.Budget{}
		for _, c := range categories {
			if r.Intn(2) == 0 {
				totals[c] = decimal.New(r.Int63n(100000), -2)
			}
			if r.Intn(2) == 0 {
				budgets[c] = decimal.New(r.Int63n(3)*r.Int63n(50000), -2)
			}
		}

		progress := Evaluate(totals, budgets)

		for j, p := range progress {
			assert.True(t, p.Limit.IsPositive(), "zero limits never appear")
			if j > 0 {
				assert.True(t, progress[j-1].Percent.GreaterThanOrEqual(p.Percent), "sorted non-increasing")
			}
		}
	}
}

func TestEvaluate_DoesNotMutateInputs(t *testing.T) {
	totals := map[models.Category]decimal.Decimal{models.CategoryGroceries: d("10")}
	budgets := models.Budget{models.CategoryGroceries: d("20"), models.CategoryTravel: decimal.Zero}

	_ = Evaluate(totals, budgets)

	assert.Len(t, totals, 1)
	assert.Len(t, budgets, 2)
}
