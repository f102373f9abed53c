// Package extraction turns a free-text financial message into an
// ExtractedTransaction.
//
// The pipeline is: amount, seed categorization of the text alone, merchant
// extraction guided by the seed category, refinement categorization of text
// plus merchant, then debit/credit classification. Every step is total: a
// message the pipeline cannot understand yields a record with a zero amount,
// the General category and an Unknown Merchant rather than an error.
package extraction

import (
	"strings"
	"time"

	"finize/txextract/internal/categorizer"
	"finize/txextract/internal/currencyutils"
	"finize/txextract/internal/logging"
	"finize/txextract/internal/merchant"
	"finize/txextract/internal/models"
	"finize/txextract/internal/taxonomy"
	"finize/txextract/internal/textutils"
)

// Clock returns the processing time stamped on records.
type Clock func() time.Time

// Option configures an Extractor.
type Option func(*Extractor)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(clock Clock) Option {
	return func(e *Extractor) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithLogger sets the logger used for step-by-step debug output.
func WithLogger(logger logging.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Extractor runs the extraction pipeline. It holds only read-only state and
// is safe for concurrent use.
type Extractor struct {
	amounts    *currencyutils.AmountParser
	merchants  *merchant.Extractor
	keywords   *categorizer.KeywordStrategy
	classifier *categorizer.TypeClassifier
	clock      Clock
	logger     logging.Logger
}

// New creates an Extractor over tax. A nil taxonomy selects the built-in one.
func New(tax *taxonomy.Taxonomy, opts ...Option) *Extractor {
	if tax == nil {
		tax = taxonomy.Default()
	}
	e := &Extractor{
		amounts:    currencyutils.NewAmountParser(tax),
		merchants:  merchant.NewExtractor(tax),
		classifier: categorizer.NewTypeClassifier(),
		clock:      time.Now,
		logger:     logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.keywords = categorizer.NewKeywordStrategy(tax, e.logger)
	return e
}

// Extract builds a record from text. It returns nil when text is empty or
// only whitespace.
func (e *Extractor) Extract(text string) *models.ExtractedTransaction {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	amount, detected := e.amounts.ParseAmount(text)
	seed := e.keywords.CategorizeText(text, "")
	name := e.merchants.Extract(text, seed)
	category := e.keywords.CategorizeText(text, name)
	txType := e.classifier.Classify(text, category)

	rec := &models.ExtractedTransaction{
		Amount:         amount.Round(2),
		AmountDetected: detected,
		Currency:       currencyutils.DetectCurrency(text),
		Merchant:       name,
		Category:       category,
		Type:           txType,
		Date:           e.clock().Format(models.DateFormat),
		Reference:      textutils.ExtractReference(text),
		RawText:        text,
	}

	e.logger.Debug("Message extracted",
		logging.Field{Key: logging.FieldAmount, Value: rec.Amount.StringFixed(2)},
		logging.Field{Key: logging.FieldMerchant, Value: rec.Merchant},
		logging.Field{Key: "seed_category", Value: seed},
		logging.Field{Key: logging.FieldCategory, Value: rec.Category},
		logging.Field{Key: logging.FieldType, Value: string(rec.Type)},
	)

	return rec
}
