package categorizer

import (
	"context"

	"finize/txextract/internal/models"
)

// CategorizationStrategy defines a method for categorizing transactions.
// Each strategy implements a specific approach to categorization (keywords, AI).
type CategorizationStrategy interface {
	// Categorize attempts to categorize a transaction using this strategy.
	// Returns the category, a boolean indicating if categorization was successful,
	// and any error encountered during the process.
	Categorize(ctx context.Context, tx Transaction) (models.Category, bool, error)

	// Name returns the name of this strategy for logging and debugging purposes.
	Name() string
}
