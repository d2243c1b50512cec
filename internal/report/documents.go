package report

import (
	"fjacquet/statement-insights/internal/budget"
	"fjacquet/statement-insights/internal/dashboard"
	"fjacquet/statement-insights/internal/models"
	"fjacquet/statement-insights/internal/stats"
)

// Machine-readable documents. Amounts are rendered as exact decimal strings
// so consumers never see binary floating point.

type summaryDocument struct {
	Source              string          `json:"source,omitempty" yaml:"source,omitempty"`
	TotalIncome         string          `json:"totalIncome" yaml:"totalIncome"`
	TotalExpenses       string          `json:"totalExpenses" yaml:"totalExpenses"`
	NetBalance          string          `json:"netBalance" yaml:"netBalance"`
	TransactionCount    int             `json:"transactionCount" yaml:"transactionCount"`
	AverageDailyExpense string          `json:"averageDailyExpense" yaml:"averageDailyExpense"`
	HighestSpendingDay  dayRow          `json:"highestSpendingDay" yaml:"highestSpendingDay"`
	CategoryTotals      []shareRow      `json:"categoryTotals" yaml:"categoryTotals"`
	RecentDays          []dayRow        `json:"recentDays" yaml:"recentDays"`
	MonthlyForecast     string          `json:"monthlyForecast" yaml:"monthlyForecast"`
	Budgets             []budgetRow     `json:"budgets" yaml:"budgets"`
	Overview            budget.Overview `json:"overview" yaml:"overview"`
}

type dayRow struct {
	Date   string `json:"date" yaml:"date"`
	Amount string `json:"amount" yaml:"amount"`
}

type shareRow struct {
	Category string `json:"category" yaml:"category"`
	Amount   string `json:"amount" yaml:"amount"`
	Percent  string `json:"percent" yaml:"percent"`
}

type budgetRow struct {
	Category string `json:"category" yaml:"category"`
	Limit    string `json:"limit" yaml:"limit"`
	Spent    string `json:"spent" yaml:"spent"`
	Percent  string `json:"percent" yaml:"percent"`
	Status   string `json:"status" yaml:"status"`
}

type budgetDocument struct {
	Budgets  []budgetRow     `json:"budgets" yaml:"budgets"`
	Overview budget.Overview `json:"overview" yaml:"overview"`
}

type transactionRow struct {
	ID          string `json:"id" yaml:"id"`
	Date        string `json:"date" yaml:"date"`
	Description string `json:"description" yaml:"description"`
	Amount      string `json:"amount" yaml:"amount"`
	Type        string `json:"type" yaml:"type"`
	Category    string `json:"category" yaml:"category"`
}

type transactionDocument struct {
	Count        int              `json:"count" yaml:"count"`
	Transactions []transactionRow `json:"transactions" yaml:"transactions"`
}

func newSummaryDocument(view dashboard.View) summaryDocument {
	s := view.Summary
	doc := summaryDocument{
		Source:              view.Source,
		TotalIncome:         s.TotalIncome.String(),
		TotalExpenses:       s.TotalExpenses.String(),
		NetBalance:          s.NetBalance.String(),
		TransactionCount:    s.TransactionCount,
		AverageDailyExpense: s.AverageDailyExpense.String(),
		HighestSpendingDay:  newDayRow(s.HighestSpendingDay),
		CategoryTotals:      make([]shareRow, 0, len(view.Breakdown)),
		RecentDays:          make([]dayRow, 0, len(view.RecentDays)),
		MonthlyForecast:     view.Forecast.String(),
		Budgets:             newBudgetRows(view.Budgets),
		Overview:            view.Overview,
	}
	for _, share := range view.Breakdown {
		doc.CategoryTotals = append(doc.CategoryTotals, shareRow{
			Category: string(share.Category),
			Amount:   share.Amount.String(),
			Percent:  share.Percent.StringFixed(2),
		})
	}
	for _, day := range view.RecentDays {
		doc.RecentDays = append(doc.RecentDays, newDayRow(day))
	}
	return doc
}

func newDayRow(day stats.SpendingDay) dayRow {
	return dayRow{Date: day.Date, Amount: day.Amount.String()}
}

func newBudgetRows(progress []budget.Progress) []budgetRow {
	rows := make([]budgetRow, len(progress))
	for i, p := range progress {
		rows[i] = budgetRow{
			Category: string(p.Category),
			Limit:    p.Limit.String(),
			Spent:    p.Spent.String(),
			Percent:  p.Percent.StringFixed(2),
			Status:   string(p.Status),
		}
	}
	return rows
}

func newTransactionRows(transactions []models.Transaction) []transactionRow {
	rows := make([]transactionRow, len(transactions))
	for i, tx := range transactions {
		rows[i] = transactionRow{
			ID:          tx.ID,
			Date:        tx.DateKey(),
			Description: tx.Description,
			Amount:      tx.Amount.String(),
			Type:        string(tx.Type),
			Category:    string(tx.Category),
		}
	}
	return rows
}
