package categorizer

import (
	"fmt"
	"strings"

	"finize/txextract/internal/models"
)

// StrategyResult represents the result of a categorization strategy attempt
type StrategyResult struct {
	Strategy string
	Category models.Category
	Found    bool
	Error    error
}

// StrategyResults aggregates results from multiple strategies
type StrategyResults struct {
	Results []StrategyResult
}

// Add records the outcome of one strategy.
func (sr *StrategyResults) Add(strategy string, category models.Category, found bool, err error) {
	sr.Results = append(sr.Results, StrategyResult{
		Strategy: strategy,
		Category: category,
		Found:    found,
		Error:    err,
	})
}

// GetBestResult returns the first successful result.
func (sr StrategyResults) GetBestResult() (models.Category, bool) {
	for _, r := range sr.Results {
		if r.Found && r.Error == nil {
			return r.Category, true
		}
	}
	return models.Category{}, false
}

// GetErrors returns all errors encountered during strategy execution
func (sr StrategyResults) GetErrors() []error {
	var errs []error
	for _, result := range sr.Results {
		if result.Error != nil {
			errs = append(errs, fmt.Errorf("%s strategy: %w", result.Strategy, result.Error))
		}
	}
	return errs
}

// Summary returns a human-readable summary of all strategy attempts
func (sr StrategyResults) Summary() string {
	parts := make([]string, 0, len(sr.Results))
	for _, result := range sr.Results {
		status := "failed"
		if result.Found {
			status = "success"
		} else if result.Error == nil {
			status = "no_match"
		}
		parts = append(parts, fmt.Sprintf("%s:%s", result.Strategy, status))
	}
	return strings.Join(parts, ", ")
}
