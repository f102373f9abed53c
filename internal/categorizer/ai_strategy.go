package categorizer

import (
	"context"
	"errors"
	"strings"
	"time"

	"finize/txextract/internal/logging"
	"finize/txextract/internal/models"
	"finize/txextract/internal/parsererror"
	"finize/txextract/internal/taxonomy"

	"golang.org/x/time/rate"
)

// AIOptions tunes the AI strategy.
type AIOptions struct {
	RequestsPerMinute int
	Timeout           time.Duration
}

// AIStrategy implements categorization using AI services.
// It uses the AIClient interface to interact with external AI services and
// only accepts answers that name a category of the taxonomy.
type AIStrategy struct {
	aiClient AIClient
	tax      *taxonomy.Taxonomy
	limiter  *rate.Limiter
	timeout  time.Duration
	logger   logging.Logger
}

// NewAIStrategy creates a new AIStrategy instance.
func NewAIStrategy(aiClient AIClient, tax *taxonomy.Taxonomy, opts AIOptions, logger logging.Logger) *AIStrategy {
	if tax == nil {
		tax = taxonomy.Default()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	limit := rate.Inf
	burst := 1
	if opts.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(opts.RequestsPerMinute))
	}

	return &AIStrategy{
		aiClient: aiClient,
		tax:      tax,
		limiter:  rate.NewLimiter(limit, burst),
		timeout:  opts.Timeout,
		logger:   logger,
	}
}

// Name returns the name of this strategy for logging and debugging.
func (s *AIStrategy) Name() string {
	return "AI"
}

// Categorize attempts to categorize a transaction using AI services.
func (s *AIStrategy) Categorize(ctx context.Context, tx Transaction) (models.Category, bool, error) {
	if s.aiClient == nil {
		s.logger.Debug("AI client not available, skipping AI categorization",
			logging.Field{Key: logging.FieldStrategy, Value: s.Name()})
		return models.Category{}, false, nil
	}
	if strings.TrimSpace(tx.Text) == "" {
		return models.Category{}, false, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return models.Category{}, false, s.fail(tx, err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	allowed := s.allowedCategories()
	name, err := s.aiClient.Categorize(ctx, tx, allowed)
	if err != nil {
		return models.Category{}, false, s.fail(tx, err)
	}

	name = strings.TrimSpace(name)
	if name == "" || name == models.CategoryGeneral || !s.tax.Has(name) {
		s.logger.WithFields(
			logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
			logging.Field{Key: "ai_category", Value: name},
		).Debug("AI returned a category outside the taxonomy")
		return models.Category{}, false, nil
	}

	s.logger.WithFields(
		logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
		logging.Field{Key: logging.FieldMerchant, Value: tx.Merchant},
		logging.Field{Key: logging.FieldCategory, Value: name},
	).Debug("Transaction categorized using AI")

	return models.Category{Name: name, Description: categoryDescriptionFromName(name)}, true, nil
}

func (s *AIStrategy) allowedCategories() []string {
	names := s.tax.Names()
	return names[:len(names)-1]
}

func (s *AIStrategy) fail(tx Transaction, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		s.logger.WithError(err).Warn("AI categorization timed out")
	} else {
		s.logger.WithError(err).Warn("AI categorization failed")
	}
	return &parsererror.CategorizationError{Text: tx.Text, Strategy: s.Name(), Err: err}
}
