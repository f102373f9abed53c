package categorizer

import (
	"strings"

	"finize/txextract/internal/models"
)

// creditWords mark money coming in.
var creditWords = []string{"received", "credited", "got", "income", "refund", "deposit"}

// TypeClassifier decides between debit and credit.
type TypeClassifier struct{}

// NewTypeClassifier creates a TypeClassifier.
func NewTypeClassifier() *TypeClassifier {
	return &TypeClassifier{}
}

// Classify returns credit for income categories or when the message
// contains a credit word, debit otherwise. Words are matched as substrings
// of the lowercased text, the raw message rather than its normalized form.
func (TypeClassifier) Classify(text, category string) models.TransactionType {
	if category == models.CategoryIncome {
		return models.TransactionTypeCredit
	}
	lower := strings.ToLower(text)
	for _, w := range creditWords {
		if strings.Contains(lower, w) {
			return models.TransactionTypeCredit
		}
	}
	return models.TransactionTypeDebit
}
