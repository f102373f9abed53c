package categorizer

import (
	"context"
	"strings"

	"finize/txextract/internal/logging"
	"finize/txextract/internal/models"
	"finize/txextract/internal/taxonomy"
	"finize/txextract/internal/textutils"
)

// KeywordStrategy assigns the first category, in taxonomy priority order,
// that has a keyword occurring in the message or the merchant name.
type KeywordStrategy struct {
	normalizer *textutils.Normalizer
	ordered    []models.CategoryConfig
	logger     logging.Logger
}

// NewKeywordStrategy creates a new KeywordStrategy instance. A nil taxonomy
// selects the built-in one and a nil logger discards output.
func NewKeywordStrategy(tax *taxonomy.Taxonomy, logger logging.Logger) *KeywordStrategy {
	if tax == nil {
		tax = taxonomy.Default()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	ordered := make([]models.CategoryConfig, 0, len(tax.Priority()))
	for _, name := range tax.Priority() {
		ordered = append(ordered, models.CategoryConfig{Name: name, Keywords: tax.Keywords(name)})
	}
	return &KeywordStrategy{
		normalizer: textutils.NewNormalizer(tax),
		ordered:    ordered,
		logger:     logger,
	}
}

// Name returns the name of this strategy for logging and debugging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// CategorizeText returns the category of a message, or General when no
// keyword matches. merchant may be empty.
func (s *KeywordStrategy) CategorizeText(text, merchant string) string {
	category, _ := s.match(text, merchant)
	return category
}

// Categorize implements CategorizationStrategy.
func (s *KeywordStrategy) Categorize(_ context.Context, tx Transaction) (models.Category, bool, error) {
	name, keyword := s.match(tx.Text, tx.Merchant)
	if name == models.CategoryGeneral {
		return models.Category{}, false, nil
	}

	s.logger.WithFields(
		logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
		logging.Field{Key: logging.FieldKeyword, Value: keyword},
		logging.Field{Key: logging.FieldCategory, Value: name},
	).Debug("Transaction categorized using keyword matching")

	return models.Category{Name: name, Description: categoryDescriptionFromName(name)}, true, nil
}

func (s *KeywordStrategy) match(text, merchant string) (category, keyword string) {
	combined := s.normalizer.Normalize(text + " " + merchant)
	for _, c := range s.ordered {
		for _, k := range c.Keywords {
			if strings.Contains(combined, k) {
				return c.Name, k
			}
		}
	}
	return models.CategoryGeneral, ""
}
