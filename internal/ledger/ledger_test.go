package ledger

import (
	"sync"
	"testing"

	"finize/txextract/internal/models"
	"finize/txextract/internal/parsererror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(amount int64, category string, txType models.TransactionType, date string) *models.ExtractedTransaction {
	return &models.ExtractedTransaction{
		Amount:         decimal.NewFromInt(amount),
		AmountDetected: amount != 0,
		Merchant:       "Test Merchant",
		Category:       category,
		Type:           txType,
		Date:           date,
		RawText:        "test",
	}
}

func TestAdd_AssignsUniqueIDs(t *testing.T) {
	l := New(Options{}, nil)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := l.Add(record(100, models.CategoryFood, models.TransactionTypeDebit, "2024-10-12"))
		require.NoError(t, err)
		_, parseErr := uuid.Parse(id)
		assert.NoError(t, parseErr)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Equal(t, 50, l.Len())
}

func TestAdd_StoresCopy(t *testing.T) {
	l := New(Options{}, nil)
	tx := record(100, models.CategoryFood, models.TransactionTypeDebit, "2024-10-12")
	id, err := l.Add(tx)
	require.NoError(t, err)

	tx.Category = models.CategoryTravel
	entry, ok := l.Get(id)
	require.True(t, ok)
	assert.Equal(t, models.CategoryFood, entry.Transaction.Category)

	_, ok = l.Get("missing")
	assert.False(t, ok)
}

func TestAdd_Rejects(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		tx   *models.ExtractedTransaction
	}{
		{name: "Nil", tx: nil},
		{name: "ZeroAmount", tx: record(0, models.CategoryGeneral, models.TransactionTypeDebit, "2024-10-12")},
		{name: "InvalidType", opts: Options{AllowZeroAmount: true}, tx: record(5, models.CategoryGeneral, "gift", "2024-10-12")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.opts, nil)
			_, err := l.Add(tt.tx)
			var vErr *parsererror.ValidationError
			assert.ErrorAs(t, err, &vErr)
			assert.Equal(t, 0, l.Len())
		})
	}
}

func TestAdd_AllowZeroAmount(t *testing.T) {
	l := New(Options{AllowZeroAmount: true}, nil)
	_, err := l.Add(record(0, models.CategoryGeneral, models.TransactionTypeDebit, "2024-10-12"))
	assert.NoError(t, err)
}

func TestSubscribe(t *testing.T) {
	l := New(Options{}, nil)

	var order []string
	unsubscribeFirst := l.Subscribe(func(e Entry) { order = append(order, "first:"+e.Transaction.Category) })
	l.Subscribe(func(e Entry) { order = append(order, "second:"+e.Transaction.Category) })

	_, err := l.Add(record(100, models.CategoryRent, models.TransactionTypeDebit, "2024-10-01"))
	require.NoError(t, err)
	assert.Equal(t, []string{"first:Rent", "second:Rent"}, order)

	unsubscribeFirst()
	unsubscribeFirst()
	_, err = l.Add(record(100, models.CategoryTravel, models.TransactionTypeDebit, "2024-10-02"))
	require.NoError(t, err)
	assert.Equal(t, []string{"first:Rent", "second:Rent", "second:Travel"}, order)
}

func TestSubscribe_ListenerMayReadLedger(t *testing.T) {
	l := New(Options{}, nil)
	var seen int
	l.Subscribe(func(Entry) { seen = l.Len() })

	_, err := l.Add(record(100, models.CategoryRent, models.TransactionTypeDebit, "2024-10-01"))
	require.NoError(t, err)
	assert.Equal(t, 1, seen)
}

func TestList_NewestFirst(t *testing.T) {
	l := New(Options{}, nil)
	for _, date := range []string{"2024-10-01", "2024-10-03", "2024-10-02", "2024-10-03"} {
		_, err := l.Add(record(1, models.CategoryFood, models.TransactionTypeDebit, date))
		require.NoError(t, err)
	}

	entries := l.List()
	require.Len(t, entries, 4)
	assert.Equal(t, "2024-10-03", entries[0].Transaction.Date)
	assert.Equal(t, 3, entries[0].seq, "later insert first on equal dates")
	assert.Equal(t, "2024-10-03", entries[1].Transaction.Date)
	assert.Equal(t, "2024-10-02", entries[2].Transaction.Date)
	assert.Equal(t, "2024-10-01", entries[3].Transaction.Date)
}

func TestMonthlySpend_ExcludesIncome(t *testing.T) {
	l := New(Options{}, nil)
	adds := []*models.ExtractedTransaction{
		record(1250, models.CategoryFood, models.TransactionTypeDebit, "2024-10-12"),
		record(15000, models.CategoryRent, models.TransactionTypeDebit, "2024-10-01"),
		record(50000, models.CategoryIncome, models.TransactionTypeCredit, "2024-10-01"),
		record(300, models.CategoryShopping, models.TransactionTypeCredit, "2024-10-05"),
		record(999, models.CategoryFood, models.TransactionTypeDebit, "2024-09-30"),
	}
	for _, tx := range adds {
		_, err := l.Add(tx)
		require.NoError(t, err)
	}

	assert.True(t, decimal.NewFromInt(16250).Equal(l.MonthlySpend("2024-10")))
	assert.True(t, decimal.NewFromInt(999).Equal(l.MonthlySpend("2024-09")))
	assert.True(t, l.MonthlySpend("2023-01").IsZero())
}

func TestSummary(t *testing.T) {
	l := New(Options{}, nil)
	adds := []*models.ExtractedTransaction{
		record(200, models.CategoryFood, models.TransactionTypeDebit, "2024-10-12"),
		record(300, models.CategoryFood, models.TransactionTypeDebit, "2024-10-13"),
		record(500, models.CategoryRent, models.TransactionTypeDebit, "2024-10-01"),
		record(2000, models.CategoryIncome, models.TransactionTypeCredit, "2024-10-01"),
	}
	for _, tx := range adds {
		_, err := l.Add(tx)
		require.NoError(t, err)
	}

	s := l.Summary()
	assert.Equal(t, 4, s.Count)
	assert.True(t, decimal.NewFromInt(1000).Equal(s.TotalDebit))
	assert.True(t, decimal.NewFromInt(2000).Equal(s.TotalCredit))
	assert.True(t, decimal.NewFromInt(1000).Equal(s.Net()))

	require.Len(t, s.ByCategory, 3)
	assert.Equal(t, models.CategoryIncome, s.ByCategory[0].Category)
	assert.Equal(t, models.CategoryFood, s.ByCategory[1].Category)
	assert.Equal(t, 2, s.ByCategory[1].Count)
	assert.Equal(t, models.CategoryRent, s.ByCategory[2].Category)
}

func TestConcurrentAdds(t *testing.T) {
	l := New(Options{}, nil)
	var notified sync.Map
	l.Subscribe(func(e Entry) { notified.Store(e.ID, true) })

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				_, err := l.Add(record(10, models.CategoryFood, models.TransactionTypeDebit, "2024-10-12"))
				assert.NoError(t, err)
				_ = l.List()
				_ = l.Summary()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 200, l.Len())
	count := 0
	notified.Range(func(_, _ any) bool { count++; return true })
	assert.Equal(t, 200, count)
}
