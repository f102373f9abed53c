// Package batch handles batch extraction of message files
package batch

import (
	"fmt"
	"os"

	"finize/txextract/cmd/common"
	"finize/txextract/cmd/root"
	"finize/txextract/internal/batch"
	iocommon "finize/txextract/internal/common"
	"finize/txextract/internal/logging"
	"finize/txextract/internal/models"
	"finize/txextract/internal/validation"

	"github.com/spf13/cobra"
)

var (
	format   string
	skipZero bool
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Extract transactions from a file of messages",
	Long: `Extract transactions from a file with one message per line, or a CSV
file with a "message" column, and write them as CSV or JSON.

Large files are processed by a worker pool; output keeps the input order.
Blank lines are skipped.

Example:
  txextract batch -i messages.txt -o transactions.csv
  txextract batch -i messages.csv --format json`,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().StringVar(&format, "format", common.FormatCSV, "Output format: csv or json")
	Cmd.Flags().BoolVar(&skipZero, "skip-zero", false, "Drop records without a detected amount")
}

func batchFunc(cmd *cobra.Command, args []string) error {
	if err := validation.IsValidOutputFormat(format, common.FormatCSV, common.FormatJSON); err != nil {
		return err
	}

	input := root.SharedFlags.Input
	output := root.SharedFlags.Output
	if err := validation.IsValidInputFile(input); err != nil {
		return err
	}
	if format == common.FormatCSV && output == "" {
		return fmt.Errorf("output file must be specified with --output for CSV")
	}

	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("container not initialized")
	}
	logger := c.GetLogger()

	messages, err := iocommon.ReadMessages(input)
	if err != nil {
		return fmt.Errorf("failed to read messages: %w", err)
	}

	results := c.GetProcessor().Process(cmd.Context(), messages)
	if err := cmd.Context().Err(); err != nil {
		return fmt.Errorf("batch interrupted: %w", err)
	}

	records := make([]models.ExtractedTransaction, 0, len(results))
	skipped := 0
	for _, r := range batch.Transactions(results) {
		if skipZero && !r.AmountDetected {
			skipped++
			continue
		}
		if root.AIAvailable() {
			r = common.RefineRecord(cmd.Context(), c, r)
		}
		records = append(records, r)
	}

	batch.Summarize(results).LogSummary(logger, input)
	if skipped > 0 {
		logger.Info("Records without amount dropped", logging.Field{Key: logging.FieldCount, Value: skipped})
	}

	if format == common.FormatJSON {
		if output == "" {
			return iocommon.WriteTransactionsJSON(records, cmd.OutOrStdout())
		}
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("error creating output file: %w", err)
		}
		if err := iocommon.WriteTransactionsJSON(records, f); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	}

	if err := iocommon.WriteTransactionsToCSV(records, output, c.GetConfig().Delimiter()); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d transactions written to %s\n", len(records), output)
	return err
}
