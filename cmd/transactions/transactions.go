// Package transactions handles the transaction table command
package transactions

import (
	"context"
	"fmt"
	"io"

	"fjacquet/statement-insights/cmd/common"
	"fjacquet/statement-insights/cmd/root"
	"fjacquet/statement-insights/internal/container"
	"fjacquet/statement-insights/internal/report"
	"fjacquet/statement-insights/internal/search"

	"github.com/spf13/cobra"
)

// Options are the transaction table flags.
type Options struct {
	Search string
	Sort   string
	Format string
}

var opts Options

// Cmd represents the transactions command
var Cmd = &cobra.Command{
	Use:   "transactions",
	Short: "List the transactions of a statement",
	Long: `List the transactions of a statement, optionally filtered by a search term
matched against description and category.

Example:
  statement-insights transactions -i transactions.csv --search grocer --sort asc`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), root.GetContainer(), root.SharedFlags.Input, opts, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "Only show transactions whose description or category contains this text")
	Cmd.Flags().StringVar(&opts.Sort, "sort", string(search.Descending), "Date order: asc or desc")
	Cmd.Flags().StringVarP(&opts.Format, "format", "f", string(report.FormatText), "Output format: text, json or yaml")
}

// Run loads input and writes the matching transactions to w.
func Run(ctx context.Context, c *container.Container, input string, opts Options, w io.Writer) error {
	if c == nil {
		return fmt.Errorf("container not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	f, err := report.ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	order, err := search.ParseOrder(opts.Sort)
	if err != nil {
		return err
	}

	session, err := common.LoadSession(ctx, c, input)
	if err != nil {
		return err
	}
	out, err := c.GetReportGenerator().Transactions(session.Search(opts.Search, order), f)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
