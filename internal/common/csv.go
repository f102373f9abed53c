// Package common provides the file input and output shared by the commands:
// reading message files and writing extracted transactions as CSV or JSON.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"finize/txextract/internal/logging"
	"finize/txextract/internal/models"

	"github.com/gocarina/gocsv"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger
func SetLogger(logger logging.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

// TransactionRow is the CSV layout of an extracted transaction.
type TransactionRow struct {
	Date           string `csv:"date"`
	Type           string `csv:"type"`
	Amount         string `csv:"amount"`
	Currency       string `csv:"currency"`
	Merchant       string `csv:"merchant"`
	Category       string `csv:"category"`
	Reference      string `csv:"reference"`
	AmountDetected bool   `csv:"amount_detected"`
	RawText        string `csv:"raw_text"`
}

// NewTransactionRow converts a record to its CSV row. Amounts always carry
// two decimal places.
func NewTransactionRow(tx models.ExtractedTransaction) TransactionRow {
	return TransactionRow{
		Date:           tx.Date,
		Type:           string(tx.Type),
		Amount:         tx.Amount.StringFixed(2),
		Currency:       tx.Currency,
		Merchant:       tx.Merchant,
		Category:       tx.Category,
		Reference:      tx.Reference,
		AmountDetected: tx.AmountDetected,
		RawText:        tx.RawText,
	}
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
// TCSVRow is the struct type that maps to the CSV columns.
func ReadCSVFile[TCSVRow any](filePath string) ([]TCSVRow, error) {
	log.Debug("Reading CSV file", logging.Field{Key: logging.FieldFile, Value: filePath})

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []TCSVRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.Debug("Successfully read CSV data", logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return rows, nil
}

// WriteTransactionsToCSV writes transactions to csvFile using delimiter,
// creating parent directories as needed.
func WriteTransactionsToCSV(transactions []models.ExtractedTransaction, csvFile string, delimiter rune) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
	).Info("Writing transactions to CSV file")

	if dir := filepath.Dir(csvFile); dir != "." {
		if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	rows := make([]TransactionRow, len(transactions))
	for i, tx := range transactions {
		rows[i] = NewTransactionRow(tx)
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV: %w", err)
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("error flushing CSV: %w", err)
	}

	log.Info("Successfully wrote transactions to CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile})
	return nil
}
