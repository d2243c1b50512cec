// Package report renders dashboard views for the terminal or as machine-readable documents.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"fjacquet/statement-insights/internal/budget"
	"fjacquet/statement-insights/internal/currencyutils"
	"fjacquet/statement-insights/internal/dashboard"
	"fjacquet/statement-insights/internal/dateutils"
	"fjacquet/statement-insights/internal/logging"
	"fjacquet/statement-insights/internal/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Format is an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a flag value to a Format. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported report format: %s", s)
	}
}

// Decimal places for table cells and headline figures.
const (
	tablePlaces = 2
	panelPlaces = 0
)

// ReportGenerator renders views in one currency.
type ReportGenerator struct {
	currency currencyutils.CurrencyConfig
	logger   logging.Logger
}

// NewReportGenerator creates a ReportGenerator for the given currency.
func NewReportGenerator(currency currencyutils.CurrencyConfig, logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &ReportGenerator{currency: currency, logger: logger}
}

func (g *ReportGenerator) money(amount decimal.Decimal, places int32) string {
	return currencyutils.FormatAmount(amount, g.currency, places)
}

// encode renders v as JSON or YAML.
func (g *ReportGenerator) encode(v interface{}, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal JSON report")
			return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
		}
		return append(out, '\n'), nil
	case FormatYAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal YAML report")
			return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// Summary renders the statistics, category breakdown, recent days and budget panel.
func (g *ReportGenerator) Summary(view dashboard.View, format Format) ([]byte, error) {
	if format != FormatText {
		return g.encode(newSummaryDocument(view), format)
	}

	var buf bytes.Buffer
	s := view.Summary
	if view.Source != "" {
		fmt.Fprintf(&buf, "Statement: %s\n\n", view.Source)
	}

	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Total income\t%s\n", g.money(s.TotalIncome, tablePlaces))
	fmt.Fprintf(w, "Total expenses\t%s\n", g.money(s.TotalExpenses, tablePlaces))
	fmt.Fprintf(w, "Net balance\t%s\n", g.money(s.NetBalance, tablePlaces))
	fmt.Fprintf(w, "Transactions\t%d\n", s.TransactionCount)
	fmt.Fprintf(w, "Average daily expense\t%s\n", g.money(s.AverageDailyExpense, tablePlaces))
	if s.HighestSpendingDay.Found() {
		fmt.Fprintf(w, "Highest spending day\t%s (%s)\n",
			dateutils.FormatISO(s.HighestSpendingDay.Date, dateutils.DateLayoutDisplay),
			g.money(s.HighestSpendingDay.Amount, tablePlaces))
	} else {
		fmt.Fprintf(w, "Highest spending day\t%s\n", models.HighestDayNone)
	}
	fmt.Fprintf(w, "Monthly forecast\t%s\n", g.money(view.Forecast, panelPlaces))
	if err := w.Flush(); err != nil {
		return nil, err
	}

	if len(view.Breakdown) > 0 {
		buf.WriteString("\nSpending by category\n")
		w = tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
		for _, share := range view.Breakdown {
			fmt.Fprintf(w, "%s\t%s\t%s%%\t\n", share.Category, g.money(share.Amount, tablePlaces), share.Percent.StringFixed(1))
		}
		if err := w.Flush(); err != nil {
			return nil, err
		}
	}

	if len(view.RecentDays) > 0 {
		buf.WriteString("\nRecent spending\n")
		w = tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
		for _, day := range view.RecentDays {
			fmt.Fprintf(w, "%s\t%s\n", dateutils.FormatISO(day.Date, dateutils.DateLayoutShort), g.money(day.Amount, tablePlaces))
		}
		if err := w.Flush(); err != nil {
			return nil, err
		}
	}

	if len(view.Budgets) > 0 {
		buf.WriteString("\n")
		if err := g.writeBudgetTable(&buf, budget.Top(view.Budgets, budget.PanelSize), view.Overview); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// Budgets renders every evaluated budget with its status.
func (g *ReportGenerator) Budgets(progress []budget.Progress, overview budget.Overview, format Format) ([]byte, error) {
	if format != FormatText {
		return g.encode(budgetDocument{Budgets: newBudgetRows(progress), Overview: overview}, format)
	}

	var buf bytes.Buffer
	if len(progress) == 0 {
		buf.WriteString("No budgets set. Use 'budget set <category> <limit>' to add one.\n")
		return buf.Bytes(), nil
	}
	if err := g.writeBudgetTable(&buf, progress, overview); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *ReportGenerator) writeBudgetTable(buf *bytes.Buffer, progress []budget.Progress, overview budget.Overview) error {
	buf.WriteString("Budgets\n")
	w := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tSPENT\tLIMIT\tUSED\tSTATUS")
	for _, p := range progress {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s%%\t%s\n",
			p.Category,
			g.money(p.Spent, panelPlaces),
			g.money(p.Limit, panelPlaces),
			p.Percent.StringFixed(0),
			statusLabel(p.Status))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	switch {
	case overview.AnyOverBudget:
		fmt.Fprintf(buf, "\n%d of %d budgets exceeded.\n", overview.ByStatus[budget.StatusOverBudget], overview.Budgeted)
	case overview.AllWithinLimits():
		buf.WriteString("\nAll budgets are within limits.\n")
	}
	return nil
}

func statusLabel(status budget.Status) string {
	switch status {
	case budget.StatusOverBudget:
		return "Over budget"
	case budget.StatusNearLimit:
		return "Near limit"
	default:
		return "Within limits"
	}
}

// Transactions renders the transaction table.
func (g *ReportGenerator) Transactions(transactions []models.Transaction, format Format) ([]byte, error) {
	if format != FormatText {
		return g.encode(transactionDocument{Count: len(transactions), Transactions: newTransactionRows(transactions)}, format)
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tDESCRIPTION\tCATEGORY\tAMOUNT")
	for _, tx := range transactions {
		sign := "+"
		if tx.IsDebit() {
			sign = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s%s\n",
			tx.DateKey(), tx.Description, tx.Category, sign, g.money(tx.Amount, tablePlaces))
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	fmt.Fprintf(&buf, "\n%d transactions\n", len(transactions))
	return buf.Bytes(), nil
}
