// Package batch handles batch processing of statement directories
package batch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"fjacquet/statement-insights/cmd/root"
	"fjacquet/statement-insights/internal/batch"
	"fjacquet/statement-insights/internal/container"

	"github.com/spf13/cobra"
)

var (
	inputDir  string
	outputDir string
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Extract every PDF statement in a directory",
	Long: `Extract every PDF statement in the input directory and write one CSV file per
statement to the output directory. Statements are processed concurrently up to
batch.concurrency; a failing statement is reported and does not stop the others.

Example:
  statement-insights batch --input-dir statements/ --output-dir csv/`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), root.GetContainer(), inputDir, outputDir, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVar(&inputDir, "input-dir", "", "Directory containing PDF statements")
	Cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for the CSV files")
}

// Run processes inputDir and prints one line per statement to w. It returns
// an error when any statement failed.
func Run(ctx context.Context, c *container.Container, inputDir, outputDir string, w io.Writer) error {
	if c == nil {
		return fmt.Errorf("container not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if inputDir == "" || outputDir == "" {
		return fmt.Errorf("input and output directories must be specified")
	}

	processor, err := c.GetBatchProcessor(ctx)
	if err != nil {
		return err
	}
	results, err := processor.Process(ctx, inputDir, outputDir)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
		if err := writeResult(w, r); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Processed %d statements, %d failed\n", len(results), failed); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d statements failed", failed, len(results))
	}
	return nil
}

func writeResult(w io.Writer, r batch.FileResult) error {
	name := filepath.Base(r.InputFile)
	if !r.OK() {
		_, err := fmt.Fprintf(w, "FAILED  %s: %v\n", name, r.Err)
		return err
	}
	_, err := fmt.Fprintf(w, "OK      %s -> %s (%d transactions)\n", name, filepath.Base(r.OutputFile), r.Count)
	return err
}
