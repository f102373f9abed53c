// Package ledger keeps extracted transactions in memory and notifies
// subscribers when new ones arrive. It is the boundary where a persistent
// store would plug in; nothing here touches disk.
package ledger

import (
	"sort"
	"sync"

	"finize/txextract/internal/logging"
	"finize/txextract/internal/models"
	"finize/txextract/internal/parsererror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry is a stored transaction with its ledger id.
type Entry struct {
	ID          string
	Transaction models.ExtractedTransaction
	seq         int
}

// Listener is called synchronously after every successful Add.
type Listener func(Entry)

// Options configures a Ledger.
type Options struct {
	// AllowZeroAmount accepts records whose amount is zero. By default they
	// are rejected, as a zero amount means no amount was found.
	AllowZeroAmount bool
}

// Ledger is a concurrency-safe in-memory list of transactions.
type Ledger struct {
	mu        sync.RWMutex
	entries   []Entry
	listeners map[int]Listener
	nextSub   int
	opts      Options
	logger    logging.Logger
}

// New creates an empty Ledger.
func New(opts Options, logger logging.Logger) *Ledger {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Ledger{
		listeners: make(map[int]Listener),
		opts:      opts,
		logger:    logger,
	}
}

// Add validates and stores a copy of tx, then notifies subscribers in
// subscription order. It returns the new entry's id.
func (l *Ledger) Add(tx *models.ExtractedTransaction) (string, error) {
	if tx == nil {
		return "", &parsererror.ValidationError{Subject: "ledger", Reason: "transaction is nil"}
	}
	if !l.opts.AllowZeroAmount && tx.Amount.IsZero() {
		return "", &parsererror.ValidationError{Subject: "ledger", Reason: "transaction has no amount"}
	}
	if err := tx.Validate(); err != nil {
		return "", &parsererror.ValidationError{Subject: "ledger", Reason: err.Error()}
	}

	l.mu.Lock()
	entry := Entry{ID: uuid.NewString(), Transaction: *tx, seq: len(l.entries)}
	l.entries = append(l.entries, entry)
	listeners := l.orderedListeners()
	l.mu.Unlock()

	l.logger.Debug("Transaction added to ledger",
		logging.Field{Key: logging.FieldID, Value: entry.ID},
		logging.Field{Key: logging.FieldCategory, Value: tx.Category})

	for _, fn := range listeners {
		fn(entry)
	}
	return entry.ID, nil
}

// Subscribe registers fn and returns a function that removes it.
func (l *Ledger) Subscribe(fn Listener) (unsubscribe func()) {
	l.mu.Lock()
	id := l.nextSub
	l.nextSub++
	l.listeners[id] = fn
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.listeners, id)
			l.mu.Unlock()
		})
	}
}

// orderedListeners must be called with the lock held.
func (l *Ledger) orderedListeners() []Listener {
	ids := make([]int, 0, len(l.listeners))
	for id := range l.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Listener, len(ids))
	for i, id := range ids {
		out[i] = l.listeners[id]
	}
	return out
}

// Get returns the entry with id.
func (l *Ledger) Get(id string) (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, e := range l.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// List returns all entries, newest first. Entries with the same date keep
// reverse insertion order.
func (l *Ledger) List() []Entry {
	l.mu.RLock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	l.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Transaction.Date != out[j].Transaction.Date {
			return out[i].Transaction.Date > out[j].Transaction.Date
		}
		return out[i].seq > out[j].seq
	})
	return out
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// MonthlySpend sums the debits of month (YYYY-MM), leaving out income.
func (l *Ledger) MonthlySpend(month string) decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := decimal.Zero
	for _, e := range l.entries {
		tx := e.Transaction
		if tx.Month() != month || !tx.IsDebit() || tx.Category == models.CategoryIncome {
			continue
		}
		total = total.Add(tx.Amount)
	}
	return total
}

// CategoryTotal is the sum of one category's transactions.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Count    int
}

// Summary aggregates the ledger.
type Summary struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Count       int
	// ByCategory is sorted by descending total, then by name.
	ByCategory []CategoryTotal
}

// Net returns credits minus debits.
func (s Summary) Net() decimal.Decimal {
	return s.TotalCredit.Sub(s.TotalDebit)
}

// Summary totals debits, credits and amounts per category.
func (l *Ledger) Summary() Summary {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s := Summary{TotalDebit: decimal.Zero, TotalCredit: decimal.Zero, Count: len(l.entries)}
	index := make(map[string]int)
	for _, e := range l.entries {
		tx := e.Transaction
		if tx.IsCredit() {
			s.TotalCredit = s.TotalCredit.Add(tx.Amount)
		} else {
			s.TotalDebit = s.TotalDebit.Add(tx.Amount)
		}

		i, ok := index[tx.Category]
		if !ok {
			i = len(s.ByCategory)
			index[tx.Category] = i
			s.ByCategory = append(s.ByCategory, CategoryTotal{Category: tx.Category, Total: decimal.Zero})
		}
		s.ByCategory[i].Total = s.ByCategory[i].Total.Add(tx.Amount)
		s.ByCategory[i].Count++
	}

	sort.Slice(s.ByCategory, func(i, j int) bool {
		if c := s.ByCategory[i].Total.Cmp(s.ByCategory[j].Total); c != 0 {
			return c > 0
		}
		return s.ByCategory[i].Category < s.ByCategory[j].Category
	})
	return s
}
