// Package batch assigns every customer in a CSV file to a segment
package batch

import (
	"context"
	"io"
	"os"

	"fjacquet/customer-grouper/cmd/root"
	"fjacquet/customer-grouper/internal/batch"
	"fjacquet/customer-grouper/internal/logging"
	"fjacquet/customer-grouper/internal/report"

	"github.com/spf13/cobra"
)

// Options holds the batch command flags.
type Options struct {
	Input   string
	Output  string
	Summary string
	Format  string
}

var opts Options

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch assign customers from a CSV file",
	Long: `Batch assign every customer in a CSV file to a segment.

The input file uses the training data columns (Customer ID, Age, Annual Income (k$),
Spending Score (1-100), Estimated Savings (k$), Credit Score, Loyalty Years, Gender,
Preferred Category). Rows that fail validation are skipped and reported; a segment
id missing from the catalog stops the run.

Example:
  customer-grouper batch -i customers.csv -o assignments.csv --summary summary.json`,
	Run: batchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Input customer CSV file")
	Cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output assignments CSV file")
	Cmd.Flags().StringVar(&opts.Summary, "summary", "", "Write a summary report to this file (format from extension)")
	Cmd.Flags().StringVar(&opts.Format, "format", report.FormatText, "Summary format printed to stdout (text, json, yaml)")
	_ = Cmd.MarkFlagRequired("input")
	_ = Cmd.MarkFlagRequired("output")
}

func batchFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Batch command called")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	c := root.MustContainer(ctx)
	defer func() {
		if err := c.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close container")
		}
	}()

	if err := Run(ctx, c.GetBatchProcessor(), c.GetReportGenerator(), opts, os.Stdout, root.Log); err != nil {
		root.Log.Fatalf("Batch assignment failed: %v", err)
	}
}

// Run processes o.Input into o.Output, writes the optional summary file and
// prints the summary to w.
func Run(ctx context.Context, p *batch.Processor, g *report.ReportGenerator, o Options, w io.Writer, logger logging.Logger) error {
	summary, err := p.ProcessFile(ctx, o.Input, o.Output)
	if err != nil {
		return err
	}

	if o.Summary != "" {
		if err := g.WriteReport(summary, report.FormatFromPath(o.Summary), o.Summary); err != nil {
			return err
		}
	}

	data, err := g.GenerateReport(summary, o.Format)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}

	if summary.Invalid > 0 {
		logger.Warn("Some customers were skipped",
			logging.Field{Key: "invalid", Value: summary.Invalid})
	}
	return nil
}
