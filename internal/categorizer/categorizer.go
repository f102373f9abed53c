// Package categorizer assigns categories and debit/credit types to messages.
//
// The keyword strategy and the type classifier are pure and are what the
// extraction pipeline uses. The Categorizer chains strategies, keyword first
// and then an optional AI strategy, for callers that want to refine records
// the keyword tables could not place.
package categorizer

import (
	"context"
	"strings"

	"finize/txextract/internal/logging"
	"finize/txextract/internal/models"
	"finize/txextract/internal/taxonomy"
)

// Transaction is the view of a message that strategies work on.
type Transaction struct {
	Text     string
	Merchant string
	Amount   string
}

// TransactionFromRecord builds a strategy input from an extracted record.
func TransactionFromRecord(rec models.ExtractedTransaction) Transaction {
	return Transaction{
		Text:     rec.RawText,
		Merchant: rec.Merchant,
		Amount:   rec.Amount.StringFixed(2),
	}
}

// Categorizer runs strategies in order until one of them finds a category.
type Categorizer struct {
	strategies []CategorizationStrategy
	classifier *TypeClassifier
	logger     logging.Logger
}

// NewCategorizer creates a Categorizer with the keyword strategy followed by
// the AI strategy when aiClient is not nil.
func NewCategorizer(tax *taxonomy.Taxonomy, aiClient AIClient, opts AIOptions, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	strategies := []CategorizationStrategy{NewKeywordStrategy(tax, logger)}
	if aiClient != nil {
		strategies = append(strategies, NewAIStrategy(aiClient, tax, opts, logger))
	}
	return NewCategorizerWithStrategies(logger, strategies...)
}

// NewCategorizerWithStrategies creates a Categorizer from explicit strategies.
func NewCategorizerWithStrategies(logger logging.Logger, strategies ...CategorizationStrategy) *Categorizer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Categorizer{
		strategies: strategies,
		classifier: NewTypeClassifier(),
		logger:     logger,
	}
}

// Strategies returns the names of the configured strategies in order.
func (c *Categorizer) Strategies() []string {
	names := make([]string, 0, len(c.strategies))
	for _, s := range c.strategies {
		names = append(names, s.Name())
	}
	return names
}

// CategorizeTransaction runs the strategy chain. The category is General
// when no strategy succeeds; the results describe every attempt.
func (c *Categorizer) CategorizeTransaction(ctx context.Context, tx Transaction) (models.Category, StrategyResults) {
	var results StrategyResults
	for _, s := range c.strategies {
		if err := ctx.Err(); err != nil {
			results.Add(s.Name(), models.Category{}, false, err)
			break
		}
		category, found, err := s.Categorize(ctx, tx)
		results.Add(s.Name(), category, found, err)
		if found && err == nil {
			break
		}
	}

	category, ok := results.GetBestResult()
	if !ok {
		category = models.Category{Name: models.CategoryGeneral, Description: categoryDescriptionFromName(models.CategoryGeneral)}
	}

	c.logger.WithFields(
		logging.Field{Key: logging.FieldCategory, Value: category.Name},
		logging.Field{Key: logging.FieldStatus, Value: results.Summary()},
	).Debug("Categorization finished")

	return category, results
}

// Refine re-categorizes a record left as General. Any other record is
// returned unchanged. When a new category is found the type is classified
// again, since income categories imply credit.
func (c *Categorizer) Refine(ctx context.Context, rec models.ExtractedTransaction) (models.ExtractedTransaction, StrategyResults) {
	if rec.Category != models.CategoryGeneral {
		return rec, StrategyResults{}
	}

	category, results := c.CategorizeTransaction(ctx, TransactionFromRecord(rec))
	if category.Name == models.CategoryGeneral {
		return rec, results
	}

	refined := rec.WithCategory(category.Name)
	refined.Type = c.classifier.Classify(rec.RawText, category.Name)
	if refined.Merchant == models.UnknownMerchant {
		refined.Merchant = category.Name
	}
	return refined, results
}

func categoryDescriptionFromName(name string) string {
	return "Transactions related to " + strings.ToLower(name)
}
