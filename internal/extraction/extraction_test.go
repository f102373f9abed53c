package extraction

import (
	"sync"
	"testing"
	"time"

	"finize/txextract/internal/logging"
	"finize/txextract/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, time.October, 12, 18, 30, 0, 0, time.UTC)
}

func newTestExtractor(opts ...Option) *Extractor {
	return New(nil, append([]Option{WithClock(fixedClock)}, opts...)...)
}

func TestExtract_EmptyInput(t *testing.T) {
	e := newTestExtractor()
	assert.Nil(t, e.Extract(""))
	assert.Nil(t, e.Extract("   \n\t"))
}

func TestExtract_Scenarios(t *testing.T) {
	tests := []struct {
		name             string
		text             string
		expectedAmount   string
		expectedDetected bool
		expectedCurrency string
		expectedMerchant string
		expectedCategory string
		expectedType     models.TransactionType
	}{
		{
			name:             "BankDebitSMS",
			text:             "Your A/C XXXX1234 debited with Rs. 1,250.00 at Starbucks on 12-10-2024",
			expectedAmount:   "1250.00",
			expectedDetected: true,
			expectedCurrency: "Rs",
			expectedMerchant: "Starbucks",
			expectedCategory: models.CategoryFood,
			expectedType:     models.TransactionTypeDebit,
		},
		{
			name:             "SalaryCredit",
			text:             "Received salary credited Rs 50000",
			expectedAmount:   "50000",
			expectedDetected: true,
			expectedCurrency: "Rs",
			expectedMerchant: "Salary",
			expectedCategory: models.CategoryIncome,
			expectedType:     models.TransactionTypeCredit,
		},
		{
			name:             "VoiceTranscript",
			text:             "sent two lakh to my fathr for his surgery",
			expectedAmount:   "200000",
			expectedDetected: true,
			expectedMerchant: "Father",
			expectedCategory: models.CategoryFamilySupport,
			expectedType:     models.TransactionTypeDebit,
		},
		{
			name:             "PaidAt",
			text:             "Paid 500 at Starbucks",
			expectedAmount:   "500",
			expectedDetected: true,
			expectedMerchant: "Starbucks",
			expectedCategory: models.CategoryFood,
			expectedType:     models.TransactionTypeDebit,
		},
		{
			name:             "RoundedToCents",
			text:             "paid 100.456 at starbucks",
			expectedAmount:   "100.46",
			expectedDetected: true,
			expectedMerchant: "Starbucks",
			expectedCategory: models.CategoryFood,
			expectedType:     models.TransactionTypeDebit,
		},
		{
			// "coffee" contains the Education keyword "fee", and Education
			// comes before Food & Dining in the priority list.
			name:             "SubstringMatchFollowsPriority",
			text:             "paid 100.456 at cafe coffee day",
			expectedAmount:   "100.46",
			expectedDetected: true,
			expectedMerchant: "Cafe Coffee Day",
			expectedCategory: models.CategoryEducation,
			expectedType:     models.TransactionTypeDebit,
		},
		{
			name:             "NothingUnderstood",
			text:             "hello there",
			expectedAmount:   "0",
			expectedMerchant: models.UnknownMerchant,
			expectedCategory: models.CategoryGeneral,
			expectedType:     models.TransactionTypeDebit,
		},
	}

	e := newTestExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.Extract(tt.text)
			require.NotNil(t, rec)

			assert.True(t, decimal.RequireFromString(tt.expectedAmount).Equal(rec.Amount),
				"amount: expected %s, got %s", tt.expectedAmount, rec.Amount)
			assert.Equal(t, tt.expectedDetected, rec.AmountDetected)
			assert.Equal(t, tt.expectedCurrency, rec.Currency)
			assert.Equal(t, tt.expectedMerchant, rec.Merchant)
			assert.Equal(t, tt.expectedCategory, rec.Category)
			assert.Equal(t, tt.expectedType, rec.Type)
			assert.Equal(t, "2024-10-12", rec.Date)
			assert.Equal(t, tt.text, rec.RawText)
			assert.NoError(t, rec.Validate())
		})
	}
}

func TestExtract_Reference(t *testing.T) {
	rec := newTestExtractor().Extract("Rs 450 debited to Swiggy UPI Ref No 412345678901")
	require.NotNil(t, rec)
	assert.Equal(t, "412345678901", rec.Reference)
}

func TestExtract_Deterministic(t *testing.T) {
	e := newTestExtractor()
	text := "Your A/C XXXX1234 debited with Rs. 1,250.00 at Starbucks on 12-10-2024"
	assert.Equal(t, e.Extract(text), e.Extract(text))
}

func TestExtract_ConcurrentUse(t *testing.T) {
	e := newTestExtractor()
	inputs := []string{
		"Your A/C XXXX1234 debited with Rs. 1,250.00 at Starbucks on 12-10-2024",
		"Received salary credited Rs 50000",
		"10k to landlord for rent",
	}
	expected := make([]*models.ExtractedTransaction, len(inputs))
	for i, in := range inputs {
		expected[i] = e.Extract(in)
	}

	var wg sync.WaitGroup
	for w := 0; w < 16; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, in := range inputs {
				assert.Equal(t, expected[i], e.Extract(in))
			}
		}()
	}
	wg.Wait()
}

func TestExtract_LogsSteps(t *testing.T) {
	logger := logging.NewMockLogger()
	e := newTestExtractor(WithLogger(logger))

	e.Extract("Paid 500 at Starbucks")
	entries := logger.GetEntriesByLevel("DEBUG")
	require.NotEmpty(t, entries)
	assert.True(t, logger.HasEntry("DEBUG", "Message extracted"))
}
