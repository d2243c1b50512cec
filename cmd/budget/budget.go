// Package budget handles the budget evaluation and budget editing commands
package budget

import (
	"context"
	"fmt"
	"io"

	"fjacquet/statement-insights/cmd/common"
	"fjacquet/statement-insights/cmd/root"
	"fjacquet/statement-insights/internal/budget"
	"fjacquet/statement-insights/internal/container"
	"fjacquet/statement-insights/internal/currencyutils"
	"fjacquet/statement-insights/internal/logging"
	"fjacquet/statement-insights/internal/report"

	"github.com/spf13/cobra"
)

var format string

// Cmd represents the budget command
var Cmd = &cobra.Command{
	Use:   "budget",
	Short: "Compare spending with monthly budgets",
	Long: `Compare the expenses of a statement with the monthly budgets in the budgets file.

Budgets are sorted by utilization, highest first. A budget above 80% is near its
limit and one above 100% is over budget.

Example:
  statement-insights budget -i transactions.csv --budgets budgets.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), root.GetContainer(), root.SharedFlags.Input, format, cmd.OutOrStdout())
	},
}

// SetCmd represents the budget set command
var SetCmd = &cobra.Command{
	Use:   "set <category> <limit>",
	Short: "Set the monthly budget for a category",
	Long: `Set the monthly budget for a category. The category must be one of the
configured labels; a limit of 0 disables the budget.

Example:
  statement-insights budget set Groceries 6000`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Set(root.GetContainer(), args[0], args[1], cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", string(report.FormatText), "Output format: text, json or yaml")
	Cmd.AddCommand(SetCmd)
}

// Run loads input and writes the budget evaluation to w.
func Run(ctx context.Context, c *container.Container, input, formatName string, w io.Writer) error {
	if c == nil {
		return fmt.Errorf("container not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	f, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

	session, err := common.LoadSession(ctx, c, input)
	if err != nil {
		return err
	}
	progress, err := session.Budgets()
	if err != nil {
		return err
	}
	out, err := c.GetReportGenerator().Budgets(progress, budget.Summarize(progress), f)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// Set stores limit for category in the budgets file.
func Set(c *container.Container, category, limit string, w io.Writer) error {
	if c == nil {
		return fmt.Errorf("container not initialized")
	}
	amount, err := currencyutils.ParseAmount(limit)
	if err != nil {
		return fmt.Errorf("invalid budget limit %q: %w", limit, err)
	}

	stored, err := c.GetBudgetStore().Set(category, amount)
	if err != nil {
		return err
	}

	c.GetLogger().Info("Budget updated",
		logging.Field{Key: logging.FieldCategory, Value: string(stored)},
		logging.Field{Key: "limit", Value: amount.String()})

	if amount.IsZero() {
		_, err = fmt.Fprintf(w, "Budget for %s disabled\n", stored)
		return err
	}
	_, err = fmt.Fprintf(w, "Budget for %s set to %s\n", stored, amount.String())
	return err
}
