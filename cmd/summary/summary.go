// Package summary loads extracted messages into the ledger and reports totals
package summary

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"finize/txextract/cmd/common"
	"finize/txextract/cmd/root"
	"finize/txextract/internal/batch"
	iocommon "finize/txextract/internal/common"
	"finize/txextract/internal/currencyutils"
	"finize/txextract/internal/logging"
	"finize/txextract/internal/parsererror"
	"finize/txextract/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	month  string
	format string
)

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize spending from a file of messages",
	Long: `Extract every message of a file into the ledger and print totals per
category, overall debits and credits, and the spend of one month.

Messages without an amount are not added to the ledger unless
ledger.allow_zero_amount is set.

Example:
  txextract summary -i messages.txt --month 2024-03`,
	RunE: summaryFunc,
}

func init() {
	Cmd.Flags().StringVar(&month, "month", "", "Month for the spend total, as YYYY-MM (default: month of the newest record)")
	Cmd.Flags().StringVar(&format, "format", common.FormatText, "Output format: text or json")
}

type categoryJSON struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

type summaryJSON struct {
	Count        int             `json:"count"`
	Rejected     int             `json:"rejected"`
	TotalDebit   decimal.Decimal `json:"totalDebit"`
	TotalCredit  decimal.Decimal `json:"totalCredit"`
	Net          decimal.Decimal `json:"net"`
	Month        string          `json:"month,omitempty"`
	MonthlySpend decimal.Decimal `json:"monthlySpend"`
	ByCategory   []categoryJSON  `json:"byCategory"`
}

func summaryFunc(cmd *cobra.Command, args []string) error {
	if err := validation.IsValidOutputFormat(format, common.FormatJSON, common.FormatText); err != nil {
		return err
	}
	if month != "" {
		if err := validation.IsValidMonth(month); err != nil {
			return err
		}
	}
	input := root.SharedFlags.Input
	if err := validation.IsValidInputFile(input); err != nil {
		return err
	}

	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("container not initialized")
	}

	messages, err := iocommon.ReadMessages(input)
	if err != nil {
		return fmt.Errorf("failed to read messages: %w", err)
	}

	l := c.GetLedger()
	rejected := 0
	for _, rec := range batch.Transactions(c.GetProcessor().Process(cmd.Context(), messages)) {
		if root.AIAvailable() {
			rec = common.RefineRecord(cmd.Context(), c, rec)
		}
		if _, err := l.Add(&rec); err != nil {
			var validationErr *parsererror.ValidationError
			if !errors.As(err, &validationErr) {
				return err
			}
			rejected++
			c.GetLogger().Debug("Record not added to ledger",
				logging.Field{Key: logging.FieldError, Value: err.Error()})
		}
	}

	reportMonth := month
	if reportMonth == "" {
		if entries := l.List(); len(entries) > 0 {
			reportMonth = entries[0].Transaction.Month()
		}
	}

	s := l.Summary()
	report := summaryJSON{
		Count:        s.Count,
		Rejected:     rejected,
		TotalDebit:   s.TotalDebit,
		TotalCredit:  s.TotalCredit,
		Net:          s.Net(),
		Month:        reportMonth,
		MonthlySpend: l.MonthlySpend(reportMonth),
		ByCategory:   make([]categoryJSON, 0, len(s.ByCategory)),
	}
	for _, ct := range s.ByCategory {
		report.ByCategory = append(report.ByCategory, categoryJSON(ct))
	}

	if format == common.FormatJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(report)
	}
	return writeText(cmd.OutOrStdout(), report)
}

func writeText(w io.Writer, r summaryJSON) error {
	amount := func(d decimal.Decimal) string { return currencyutils.FormatAmount(d, "") }

	if _, err := fmt.Fprintf(w, "Transactions: %d (rejected: %d)\n", r.Count, r.Rejected); err != nil {
		return err
	}
	fmt.Fprintf(w, "Total debit:  %s\n", amount(r.TotalDebit))
	fmt.Fprintf(w, "Total credit: %s\n", amount(r.TotalCredit))
	fmt.Fprintf(w, "Net:          %s\n", amount(r.Net))
	if r.Month != "" {
		fmt.Fprintf(w, "Spend %s: %s\n", r.Month, amount(r.MonthlySpend))
	}
	fmt.Fprintln(w, "\nBy category:")
	for _, ct := range r.ByCategory {
		fmt.Fprintf(w, "  %-20s %14s  (%d)\n", ct.Category, amount(ct.Total), ct.Count)
	}
	return nil
}
