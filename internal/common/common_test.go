package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"finize/txextract/internal/models"
	"finize/txextract/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTransactions() []models.ExtractedTransaction {
	return []models.ExtractedTransaction{
		{
			Amount:         decimal.NewFromInt(250),
			AmountDetected: true,
			Merchant:       "Starbucks",
			Category:       models.CategoryFood,
			Type:           models.TransactionTypeDebit,
			Date:           "2024-03-05",
			RawText:        "paid 250 at starbucks",
		},
		{
			Amount:         decimal.RequireFromString("45000.5"),
			AmountDetected: true,
			Currency:       "INR",
			Merchant:       models.CategoryIncome,
			Category:       models.CategoryIncome,
			Type:           models.TransactionTypeCredit,
			Date:           "2024-03-01",
			Reference:      "UTR12345",
			RawText:        "salary credited INR 45000.50, utr UTR12345",
		},
	}
}

func TestWriteTransactionsToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "transactions.csv")
	require.NoError(t, WriteTransactionsToCSV(sampleTransactions(), path, ';'))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date;type;amount;currency;merchant;category;reference;amount_detected;raw_text", lines[0])
	assert.Equal(t, "2024-03-05;debit;250.00;;Starbucks;Food & Dining;;true;paid 250 at starbucks", lines[1])
	assert.Contains(t, lines[2], ";45000.50;INR;")
}

func TestWriteTransactionsToCSV_Nil(t *testing.T) {
	err := WriteTransactionsToCSV(nil, filepath.Join(t.TempDir(), "x.csv"), ',')
	assert.Error(t, err)
}

func TestReadCSVFile_RoundTripsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, WriteTransactionsToCSV(sampleTransactions(), path, ','))

	rows, err := ReadCSVFile[TransactionRow](path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Salary/Income", rows[1].Category)
	assert.Equal(t, "salary credited INR 45000.50, utr UTR12345", rows[1].RawText)
}

func TestWriteTransactionsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactionsJSON(sampleTransactions(), &buf))

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Food & Dining", decoded[0]["category"])
	assert.Equal(t, "debit", decoded[0]["type"])
	assert.Equal(t, true, decoded[0]["amountDetected"])
	assert.NotContains(t, decoded[0], "reference")
	assert.Equal(t, "UTR12345", decoded[1]["reference"])
}

func TestWriteTransactionsJSON_NilIsEmptyArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactionsJSON(nil, &buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestReadMessages_Lines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.txt")
	require.NoError(t, os.WriteFile(path, []byte("paid 250 at starbucks\r\n\nuber 300\n"), 0600))

	messages, err := ReadMessages(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"paid 250 at starbucks", "", "uber 300"}, messages)
}

func TestReadMessages_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.csv")
	content := "id,message\n1,paid 250 at starbucks\n2,\"rent 15000, june\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	messages, err := ReadMessages(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"paid 250 at starbucks", "rent 15000, june"}, messages)
}

func TestReadMessages_CSVWithoutMessageColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,text\n1,paid 250\n"), 0600))

	_, err := ReadMessages(path)
	var formatErr *parsererror.InvalidFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, path, formatErr.FilePath)
}

func TestReadMessages_HTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipt.html")
	content := "<html><head><title>Receipt</title></head><body><p>Paid 450</p><p>at Dominos</p></body></html>"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	messages, err := ReadMessages(path)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Paid 450 at Dominos", messages[0])
}

func TestReadMessages_MissingFile(t *testing.T) {
	_, err := ReadMessages(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestReadText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "message.txt")
	require.NoError(t, os.WriteFile(path, []byte("  swiggy 320\n"), 0600))

	text, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "swiggy 320", text)
}
