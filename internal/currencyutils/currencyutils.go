// Package currencyutils finds monetary amounts and currency markers in free
// text and formats amounts for display.
package currencyutils

import (
	"regexp"
	"strings"
	"unicode"

	"finize/txextract/internal/taxonomy"
	"finize/txextract/internal/textutils"

	"github.com/shopspring/decimal"
)

// unitMultipliers are the scale words accepted after a number.
var unitMultipliers = map[string]int64{
	"hundred":  100,
	"k":        1000,
	"thousand": 1000,
	"lakh":     100000,
	"lac":      100000,
	"crore":    10000000,
}

var (
	scaledNumeralRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(k|thousand|lakh|lac|crore|hundred)s?\b`)
	scaledWordRe    = regexp.MustCompile(`\b([a-z]+)\s*(hundred|thousand|lakh|lac|crore)s?\b`)
	dateLikeRe      = regexp.MustCompile(`\d{2}[-/]\d{2}`)
	plainNumberRe   = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
	firstNumberRe   = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// alphaMarkers are currency words that may be glued to a number token.
var alphaMarkers = []string{"rupees", "rupee", "rs", "inr", "usd", "eur", "gbp"}

// AmountParser extracts the transaction amount from a message.
type AmountParser struct {
	normalizer *textutils.Normalizer
	tax        *taxonomy.Taxonomy
}

// NewAmountParser creates an AmountParser. A nil taxonomy selects the built-in one.
func NewAmountParser(tax *taxonomy.Taxonomy) *AmountParser {
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &AmountParser{
		normalizer: textutils.NewNormalizer(tax),
		tax:        tax,
	}
}

// ParseAmount returns the amount mentioned in text and whether one was found.
// The first rule that matches wins:
//
//  1. a number followed by a scale unit ("2.5 lakh", "10k", "50 thousand")
//  2. a number word followed by a scale unit ("two lakh", "fifty thousand")
//  3. the first standalone numeric token that is not a date, a mobile number or a year
//  4. the first digit sequence anywhere in the text
//
// Text is normalized first, so raw and normalized input give the same result.
func (p *AmountParser) ParseAmount(text string) (decimal.Decimal, bool) {
	text = p.normalizer.Normalize(text)
	if text == "" {
		return decimal.Zero, false
	}

	if m := scaledNumeralRe.FindStringSubmatch(text); m != nil {
		if v, err := decimal.NewFromString(m[1]); err == nil {
			return v.Mul(decimal.NewFromInt(unitMultipliers[m[2]])), true
		}
	}

	for _, m := range scaledWordRe.FindAllStringSubmatch(text, -1) {
		if n, ok := p.tax.NumberWord(m[1]); ok && n < 100 {
			return decimal.NewFromInt(n * unitMultipliers[m[2]]), true
		}
	}

	withoutCommas := strings.ReplaceAll(text, ",", "")
	for _, token := range strings.Fields(withoutCommas) {
		if dateLikeRe.MatchString(token) {
			continue
		}
		raw := stripCurrencyMarkers(token)
		if !plainNumberRe.MatchString(raw) || isPhoneNumber(raw) || isYear(raw) {
			continue
		}
		if v, err := decimal.NewFromString(raw); err == nil {
			return v, true
		}
	}

	if m := firstNumberRe.FindString(withoutCommas); m != "" {
		if v, err := decimal.NewFromString(m); err == nil {
			return v, true
		}
	}

	return decimal.Zero, false
}

// ParseAmountValue is ParseAmount with zero standing in for "no amount".
func (p *AmountParser) ParseAmountValue(text string) decimal.Decimal {
	v, _ := p.ParseAmount(text)
	return v
}

// stripCurrencyMarkers removes currency symbols, currency words and
// surrounding punctuation from a single token: "rs.500" and "₹500/-" both
// become "500". Letters that are not a currency marker are kept, so
// "xxxx1234" stays as it is.
func stripCurrencyMarkers(token string) string {
	t := strings.TrimSuffix(token, "/-")
	t = trimSymbols(t)
	for _, marker := range alphaMarkers {
		if strings.HasPrefix(t, marker) {
			t = trimSymbols(t[len(marker):])
			break
		}
	}
	for _, marker := range alphaMarkers {
		if strings.HasSuffix(t, marker) {
			t = trimSymbols(t[:len(t)-len(marker)])
			break
		}
	}
	return strings.TrimSuffix(t, "/-")
}

func trimSymbols(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// isPhoneNumber matches ten-digit Indian mobile numbers.
func isPhoneNumber(raw string) bool {
	return len(raw) == 10 && raw[0] >= '6' && raw[0] <= '9'
}

// isYear matches four-digit years of this and the next decade.
func isYear(raw string) bool {
	return len(raw) == 4 && (strings.HasPrefix(raw, "202") || strings.HasPrefix(raw, "203"))
}

var scaledTokenRe = regexp.MustCompile(`^\d+(?:\.\d+)?(?:k|thousand|lakh|lac|crore|hundred)s?$`)

// IsAmountToken reports whether a single word is a bare amount such as
// "500", "rs.500", "₹1,250.00" or "10k".
func IsAmountToken(token string) bool {
	raw := stripCurrencyMarkers(strings.ReplaceAll(strings.ToLower(token), ",", ""))
	return raw != "" && (plainNumberRe.MatchString(raw) || scaledTokenRe.MatchString(raw))
}

// IsScaleWord reports whether word is a scale unit such as "lakh" or "thousand".
func IsScaleWord(word string) bool {
	_, ok := unitMultipliers[strings.TrimSuffix(strings.ToLower(word), "s")]
	return ok
}
