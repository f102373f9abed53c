package common

import (
	"encoding/json"
	"fmt"
	"io"

	"finize/txextract/internal/models"
)

// WriteTransactionsJSON writes transactions to w as an indented JSON array.
func WriteTransactionsJSON(transactions []models.ExtractedTransaction, w io.Writer) error {
	if transactions == nil {
		transactions = []models.ExtractedTransaction{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(transactions); err != nil {
		return fmt.Errorf("error encoding transactions: %w", err)
	}
	return nil
}

// WriteTransactionJSON writes one transaction to w as indented JSON.
func WriteTransactionJSON(tx *models.ExtractedTransaction, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tx); err != nil {
		return fmt.Errorf("error encoding transaction: %w", err)
	}
	return nil
}
