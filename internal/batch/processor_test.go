package batch

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"finize/txextract/internal/extraction"
	"finize/txextract/internal/logging"
	"finize/txextract/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoExtractor stores the message length as amount and counts calls.
type echoExtractor struct {
	calls atomic.Int64
}

func (e *echoExtractor) Extract(text string) *models.ExtractedTransaction {
	e.calls.Add(1)
	return &models.ExtractedTransaction{Amount: decimal.NewFromInt(int64(len(text))), RawText: text}
}

func messages(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("paid %d at shop %d", i, i)
	}
	return out
}

func TestProcess_Sequential(t *testing.T) {
	ex := &echoExtractor{}
	p := NewProcessor(ex, Options{}, logging.NewMockLogger())

	results := p.Process(context.Background(), []string{"one", "", "three"})
	require.Len(t, results, 3)
	assert.Equal(t, "one", results[0].Transaction.RawText)
	assert.True(t, results[1].Skipped)
	assert.Nil(t, results[1].Transaction)
	assert.Equal(t, 2, results[2].Index)
	assert.Equal(t, int64(2), ex.calls.Load())
}

func TestProcess_ConcurrentPreservesOrder(t *testing.T) {
	ex := &echoExtractor{}
	p := NewProcessor(ex, Options{Workers: 8, SequentialThreshold: 10}, nil)

	input := messages(500)
	results := p.Process(context.Background(), input)

	require.Len(t, results, len(input))
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		require.NotNil(t, r.Transaction)
		assert.Equal(t, input[i], r.Transaction.RawText)
	}
	assert.Equal(t, int64(500), ex.calls.Load())
}

func TestProcess_RealExtractorMatchesSequential(t *testing.T) {
	ex := extraction.New(nil, extraction.WithClock(func() time.Time {
		return time.Date(2024, 10, 12, 0, 0, 0, 0, time.UTC)
	}))
	input := append(messages(150), "Received salary credited Rs 50000", "  ")

	sequential := NewProcessor(ex, Options{Workers: 1}, nil).Process(context.Background(), input)
	concurrent := NewProcessor(ex, Options{Workers: 6, SequentialThreshold: 1}, nil).Process(context.Background(), input)

	assert.Equal(t, sequential, concurrent)
	assert.Equal(t, models.CategoryIncome, concurrent[150].Transaction.Category)
	assert.True(t, concurrent[151].Skipped)
}

func TestProcess_CancelledContext(t *testing.T) {
	ex := &echoExtractor{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, opts := range []Options{{}, {Workers: 4, SequentialThreshold: 1}} {
		results := NewProcessor(ex, opts, nil).Process(ctx, messages(20))
		require.Len(t, results, 20)
		for _, r := range results {
			assert.ErrorIs(t, r.Err, context.Canceled)
			assert.Nil(t, r.Transaction)
		}
	}
	assert.Equal(t, int64(0), ex.calls.Load())
}

func TestTransactions(t *testing.T) {
	results := []Result{
		{Transaction: &models.ExtractedTransaction{RawText: "a"}},
		{Skipped: true},
		{Transaction: &models.ExtractedTransaction{RawText: "c"}, Err: context.Canceled},
		{Transaction: &models.ExtractedTransaction{RawText: "d"}},
	}
	txs := Transactions(results)
	require.Len(t, txs, 2)
	assert.Equal(t, "a", txs[0].RawText)
	assert.Equal(t, "d", txs[1].RawText)
}
