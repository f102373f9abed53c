package textutils

import (
	"strings"

	"finize/txextract/internal/taxonomy"
)

// Normalizer lowercases text and applies the taxonomy's typo corrections.
type Normalizer struct {
	typos []taxonomy.TypoEntry
}

// NewNormalizer creates a Normalizer for tax. A nil taxonomy selects the built-in one.
func NewNormalizer(tax *taxonomy.Taxonomy) *Normalizer {
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &Normalizer{typos: tax.Typos()}
}

// Normalize lowercases text, then replaces every occurrence of each
// misspelling in table order. Replacements are literal substrings, so
// "lack" inside a longer word is rewritten too.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}
	out := strings.ToLower(text)
	for _, typo := range n.typos {
		if strings.Contains(out, typo.Misspelling) {
			out = strings.ReplaceAll(out, typo.Misspelling, typo.Canonical)
		}
	}
	return out
}
