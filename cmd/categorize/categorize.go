// Package categorize handles transaction categorization commands
package categorize

import (
	"encoding/json"
	"fmt"
	"strings"

	"finize/txextract/cmd/common"
	"finize/txextract/cmd/root"
	"finize/txextract/internal/categorizer"
	"finize/txextract/internal/logging"
	"finize/txextract/internal/models"
	"finize/txextract/internal/validation"

	"github.com/spf13/cobra"
)

var (
	text     string
	merchant string
	format   string
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a transaction text",
	Long: `Categorize a transaction text and classify it as debit or credit.

Keywords of the taxonomy are tried in priority order. With --ai, or when
ai.enabled is set, texts the keywords cannot place are sent to Gemini.`,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&text, "text", "t", "", "Transaction text to categorize")
	Cmd.Flags().StringVarP(&merchant, "merchant", "m", "", "Merchant name (optional)")
	Cmd.Flags().StringVar(&format, "format", common.FormatText, "Output format: text or json")
	_ = Cmd.MarkFlagRequired("text")
}

type result struct {
	Category   string                 `json:"category"`
	Type       models.TransactionType `json:"type"`
	Strategies string                 `json:"strategies"`
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	if err := validation.IsValidOutputFormat(format, common.FormatJSON, common.FormatText); err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text is required for categorization")
	}

	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("container not initialized")
	}

	category, results := c.GetCategorizer().CategorizeTransaction(cmd.Context(), categorizer.Transaction{
		Text:     text,
		Merchant: merchant,
	})
	for _, err := range results.GetErrors() {
		root.Log.WithError(err).Warn("Categorization strategy failed")
	}
	txType := categorizer.NewTypeClassifier().Classify(text, category.Name)

	root.Log.Debug("Transaction categorized",
		logging.Field{Key: logging.FieldCategory, Value: category.Name},
		logging.Field{Key: logging.FieldStrategy, Value: results.Summary()})

	out := cmd.OutOrStdout()
	if format == common.FormatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(result{Category: category.Name, Type: txType, Strategies: results.Summary()})
	}
	_, err := fmt.Fprintf(out, "Category: %s\nType: %s\n", category.Name, txType)
	return err
}
