// Package extract handles single-message extraction
package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"finize/txextract/cmd/common"
	"finize/txextract/cmd/root"
	iocommon "finize/txextract/internal/common"
	"finize/txextract/internal/models"
	"finize/txextract/internal/validation"

	"github.com/spf13/cobra"
)

var (
	file   string
	format string
	add    bool
)

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract [text...]",
	Short: "Extract a transaction from one message",
	Long: `Extract a structured transaction from a single free-text message.

The message is taken from the arguments, from --file (plain text or an HTML
receipt) or from standard input.

Examples:
  txextract extract "Paid 500 at Starbucks"
  txextract extract --format text "2.5 lakh rent to landlord"
  txextract extract --file receipt.html --ai`,
	RunE: extractFunc,
}

func init() {
	Cmd.Flags().StringVarP(&file, "file", "f", "", "Read the message from a file (.html receipts are converted to text)")
	Cmd.Flags().StringVar(&format, "format", common.FormatJSON, "Output format: json or text")
	Cmd.Flags().BoolVar(&add, "add", false, "Add the record to the ledger and print its id")
}

type ledgerEntry struct {
	ID          string                      `json:"id"`
	Transaction models.ExtractedTransaction `json:"transaction"`
}

func extractFunc(cmd *cobra.Command, args []string) error {
	if err := validation.IsValidOutputFormat(format, common.FormatJSON, common.FormatText); err != nil {
		return err
	}

	text, err := readMessage(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("container not initialized")
	}

	rec := common.ExtractMessage(cmd.Context(), c, text, root.AIAvailable())
	if rec == nil {
		return fmt.Errorf("no message text to extract from")
	}

	out := cmd.OutOrStdout()
	if !add {
		return common.WriteTransactions(out, []models.ExtractedTransaction{*rec}, format)
	}

	id, err := c.GetLedger().Add(rec)
	if err != nil {
		return fmt.Errorf("failed to add transaction: %w", err)
	}
	if format == common.FormatText {
		_, err = fmt.Fprintf(out, "%s\nledger id: %s\n", common.FormatRecord(*rec), id)
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(ledgerEntry{ID: id, Transaction: *rec})
}

// readMessage returns the message from args, the --file flag or stdin, in
// that order.
func readMessage(stdin io.Reader, args []string) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case file != "":
		return iocommon.ReadText(file)
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("error reading standard input: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
}
