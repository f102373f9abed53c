// Package merchant finds the counterparty of a transaction in free text:
// the shop, service or person the money went to or came from.
package merchant

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"finize/txextract/internal/currencyutils"
	"finize/txextract/internal/models"
	"finize/txextract/internal/taxonomy"
	"finize/txextract/internal/textutils"
)

// minKeywordLength is the shortest keyword accepted as a merchant by the
// keyword scan; shorter keywords ("ola", "kfc") match inside other words.
const minKeywordLength = 4

const stopWords = `(?:\s+(?:for|on|using|by|in)\b|$)`

// minMerchantLength is the shortest accepted name. A shorter capture means
// the text names no usable merchant.
const minMerchantLength = 2

// anchorWords never start a merchant name; "paid to x" captures "to x".
var anchorWords = map[string]struct{}{"at": {}, "to": {}, "from": {}, "via": {}, "paid": {}}

// anchorPatterns are tried in order; the first one that yields a usable
// candidate wins, so "paid 500 at starbucks" resolves through "at".
var anchorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)\bat\s+(.+?)` + stopWords),
	regexp.MustCompile(`(?m)\b(?:to|from|via)\s+(.+?)` + stopWords),
	regexp.MustCompile(`(?m)\bpaid\s+(.+?)` + stopWords),
}

// Extractor finds merchant names.
type Extractor struct {
	normalizer *textutils.Normalizer
	tax        *taxonomy.Taxonomy
	keywords   []string
}

// NewExtractor creates an Extractor. A nil taxonomy selects the built-in one.
func NewExtractor(tax *taxonomy.Taxonomy) *Extractor {
	if tax == nil {
		tax = taxonomy.Default()
	}

	var keywords []string
	seen := make(map[string]struct{})
	for _, c := range tax.Categories() {
		for _, k := range c.Keywords {
			if utf8.RuneCountInString(k) < minKeywordLength || tax.IsGeneric(k) {
				continue
			}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			keywords = append(keywords, k)
		}
	}

	return &Extractor{
		normalizer: textutils.NewNormalizer(tax),
		tax:        tax,
		keywords:   keywords,
	}
}

// Extract returns the merchant named in text. category is the caller's
// current guess and names the merchant when nothing better is found. The
// result is never empty: it is a title-cased name, the category, or
// models.UnknownMerchant.
func (e *Extractor) Extract(text, category string) string {
	normalized := e.normalizer.Normalize(text)

	candidate, tooShort := e.anchored(normalized)
	if candidate != "" {
		return textutils.TitleCase(candidate)
	}
	if tooShort {
		return models.UnknownMerchant
	}
	if keyword := e.firstKeyword(normalized); keyword != "" {
		return textutils.TitleCase(keyword)
	}
	if category != "" && category != models.CategoryGeneral {
		return category
	}
	return models.UnknownMerchant
}

// anchored returns the first usable preposition-anchored candidate. When
// none is usable, tooShort reports whether some capture was non-empty but
// shorter than minMerchantLength.
func (e *Extractor) anchored(text string) (candidate string, tooShort bool) {
	for _, re := range anchorPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			c := e.clean(m[1])
			if utf8.RuneCountInString(c) >= minMerchantLength {
				return c, false
			}
			if c != "" {
				tooShort = true
			}
		}
	}
	return "", tooShort
}

// firstKeyword scans the taxonomy in declaration order.
func (e *Extractor) firstKeyword(text string) string {
	for _, k := range e.keywords {
		if strings.Contains(text, k) {
			return k
		}
	}
	return ""
}

// clean cuts a candidate at the first clause separator, drops surrounding
// punctuation, then removes leading filler words, anchor words and bare
// amounts.
func (e *Extractor) clean(candidate string) string {
	if i := strings.IndexAny(candidate, ",;!?()"); i >= 0 {
		candidate = candidate[:i]
	}

	words := strings.Fields(candidate)
	for len(words) > 0 {
		w := trimPunct(words[0])
		switch {
		case w == "" || e.tax.IsFiller(w) || isAnchorWord(w):
			words = words[1:]
		case currencyutils.IsAmountToken(w):
			words = words[1:]
			if len(words) > 0 && currencyutils.IsScaleWord(trimPunct(words[0])) {
				words = words[1:]
			}
		default:
			return trimPunct(strings.Join(words, " "))
		}
	}
	return ""
}

func isAnchorWord(w string) bool {
	_, ok := anchorWords[w]
	return ok
}

func trimPunct(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) && r != '&'
	})
}
