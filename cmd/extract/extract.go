// Package extract handles PDF statement extraction commands
package extract

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"fjacquet/statement-insights/cmd/root"
	"fjacquet/statement-insights/internal/container"
	"fjacquet/statement-insights/internal/fileutils"
	"fjacquet/statement-insights/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract transactions from a PDF statement",
	Long: `Extract transactions from a bank statement PDF and write them to CSV or JSON.

The output format follows the extension of --output. Without --output the
transactions are written next to the statement as a CSV file.

Example:
  statement-insights extract -i statement.pdf -o transactions.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), root.GetContainer(), root.SharedFlags.Input, root.SharedFlags.Output, cmd.OutOrStdout())
	},
}

// Run extracts input and writes the transactions to output.
func Run(ctx context.Context, c *container.Container, input, output string, w io.Writer) error {
	if c == nil {
		return fmt.Errorf("container not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if input == "" {
		return fmt.Errorf("input file must be specified with --input")
	}
	if !strings.EqualFold(filepath.Ext(input), ".pdf") {
		return fmt.Errorf("extract expects a PDF statement, got %s", filepath.Base(input))
	}
	if output == "" {
		output = filepath.Join(filepath.Dir(input), fileutils.ReplaceExtension(input, ".csv"))
	}

	parser, err := c.GetParser(ctx)
	if err != nil {
		return err
	}
	batch, result, err := parser.ParseFile(ctx, input)
	if err != nil {
		return err
	}

	files := c.GetTransactionFiles()
	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".json":
		err = files.WriteJSONFile(batch, output)
	case ".csv":
		err = files.WriteCSVFile(batch.Transactions, output)
	default:
		return fmt.Errorf("unsupported output file type %q: expected .csv or .json", ext)
	}
	if err != nil {
		return err
	}

	c.GetLogger().Info("Extraction completed",
		logging.Field{Key: logging.FieldInputFile, Value: input},
		logging.Field{Key: logging.FieldOutputFile, Value: output})

	if _, err := fmt.Fprintf(w, "Extracted %d transactions to %s\n", batch.Len(), output); err != nil {
		return err
	}
	if len(result.Rejected) > 0 {
		if _, err := fmt.Fprintf(w, "%d records could not be read and were skipped\n", len(result.Rejected)); err != nil {
			return err
		}
	}
	return nil
}
