// Package summary handles the spending summary command
package summary

import (
	"context"
	"fmt"
	"io"

	"fjacquet/statement-insights/cmd/common"
	"fjacquet/statement-insights/cmd/root"
	"fjacquet/statement-insights/internal/container"
	"fjacquet/statement-insights/internal/report"

	"github.com/spf13/cobra"
)

var format string

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize spending for a statement",
	Long: `Summarize income, expenses and savings for a statement, with the category
breakdown, the last seven days of spending, a 30-day forecast and the budget panel.

The input may be a PDF statement or a CSV/JSON file written by the extract command.

Example:
  statement-insights summary -i transactions.csv --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), root.GetContainer(), root.SharedFlags.Input, format, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", string(report.FormatText), "Output format: text, json or yaml")
}

// Run loads input and writes its dashboard view to w.
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
	view, err := session.View()
	if err != nil {
		return err
	}
	out, err := c.GetReportGenerator().Summary(view, f)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
