// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"

	"finize/txextract/internal/common"
	"finize/txextract/internal/container"
	"finize/txextract/internal/currencyutils"
	"finize/txextract/internal/logging"
	"finize/txextract/internal/models"
)

// Output formats accepted by the --format flags.
const (
	FormatJSON = "json"
	FormatText = "text"
	FormatCSV  = "csv"
)

// ExtractMessage extracts text and, when useAI is set, asks the AI strategy
// to categorize a record the keywords left as General. It returns nil for
// blank text.
func ExtractMessage(ctx context.Context, c *container.Container, text string, useAI bool) *models.ExtractedTransaction {
	rec := c.GetExtractor().Extract(text)
	if rec == nil || !useAI {
		return rec
	}
	refined := RefineRecord(ctx, c, *rec)
	return &refined
}

// RefineRecord runs the categorizer on a General record and logs failed
// strategies. The record is returned unchanged when nothing better is found.
func RefineRecord(ctx context.Context, c *container.Container, rec models.ExtractedTransaction) models.ExtractedTransaction {
	refined, results := c.GetCategorizer().Refine(ctx, rec)
	for _, err := range results.GetErrors() {
		c.GetLogger().WithError(err).Warn("Categorization strategy failed")
	}
	if refined.Category != rec.Category {
		c.GetLogger().Debug("Record recategorized",
			logging.Field{Key: logging.FieldCategory, Value: refined.Category},
			logging.Field{Key: logging.FieldStrategy, Value: results.Summary()})
	}
	return refined
}

// FormatRecord renders a record on one line for terminal output.
func FormatRecord(tx models.ExtractedTransaction) string {
	amount := "-"
	if tx.AmountDetected {
		amount = currencyutils.FormatAmount(tx.Amount, tx.Currency)
	}
	line := fmt.Sprintf("%s  %-6s  %12s  %-18s  %s", tx.Date, tx.Type, amount, tx.Category, tx.Merchant)
	if tx.Reference != "" {
		line += "  ref:" + tx.Reference
	}
	return line
}

// WriteTransactions writes records to w as JSON or one line of text each.
func WriteTransactions(w io.Writer, records []models.ExtractedTransaction, format string) error {
	if format == FormatJSON {
		return common.WriteTransactionsJSON(records, w)
	}
	for _, tx := range records {
		if _, err := fmt.Fprintln(w, FormatRecord(tx)); err != nil {
			return err
		}
	}
	return nil
}
