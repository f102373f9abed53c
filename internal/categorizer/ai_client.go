package categorizer

import "context"

// AIClient defines the interface for AI-based categorization services.
// This abstraction allows the categorization logic to be tested independently
// of external API calls.
type AIClient interface {
	// Categorize asks the service to pick one of categories for tx and
	// returns the name it chose, unvalidated.
	Categorize(ctx context.Context, tx Transaction, categories []string) (string, error)
}
