package currencyutils

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	// Indian grouping pairs digits above the thousands: 12,50,000.
	indianPrinter  = message.NewPrinter(language.MustParse("en-IN"))
	westernPrinter = message.NewPrinter(language.English)

	prefixCurrencyRe = regexp.MustCompile(`(?i)(?:^|[^a-z])(₹|rs\.?|inr|usd|eur|gbp|\$|€|£)\s*\d`)
	suffixCurrencyRe = regexp.MustCompile(`(?i)\d\s*(rupees|rupee|rs|inr|usd|eur|gbp)\b`)
)

// DetectCurrency returns the first currency marker written next to a number
// in text, as written but without a trailing dot ("Rs. 500" gives "Rs").
// It returns "" when the text carries no marker.
func DetectCurrency(text string) string {
	prefix := prefixCurrencyRe.FindStringSubmatchIndex(text)
	suffix := suffixCurrencyRe.FindStringSubmatchIndex(text)

	var start, end int
	switch {
	case prefix == nil && suffix == nil:
		return ""
	case suffix == nil || (prefix != nil && prefix[2] < suffix[2]):
		start, end = prefix[2], prefix[3]
	default:
		start, end = suffix[2], suffix[3]
	}
	return strings.TrimSuffix(text[start:end], ".")
}

// currencySymbol maps the ways a currency is written to its display symbol.
func currencySymbol(currency string) (string, bool) {
	switch strings.ToLower(strings.TrimSuffix(currency, ".")) {
	case "₹", "rs", "inr", "rupee", "rupees":
		return "₹", true
	case "$", "usd":
		return "$", true
	case "€", "eur":
		return "€", true
	case "£", "gbp":
		return "£", true
	default:
		return "", false
	}
}

// FormatAmount formats an amount with two decimal places and thousands
// separators for display, prefixed by the currency symbol. Rupee amounts use
// Indian digit grouping ("₹12,50,000.00"), everything else groups by three.
// Unknown currencies are written as a code prefix ("CHF 1,250.00").
func FormatAmount(amount decimal.Decimal, currency string) string {
	symbol, known := currencySymbol(currency)

	fixed := amount.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")
	printer := westernPrinter
	if symbol == "₹" {
		printer = indianPrinter
	}
	grouped := groupDigits(printer, intPart)

	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}

	body := grouped + "." + fracPart
	switch {
	case known:
		return sign + symbol + body
	case currency != "":
		return sign + currency + " " + body
	default:
		return sign + body
	}
}

// groupDigits inserts the printer's locale group separators into digits.
// Integer parts beyond int64 are returned ungrouped.
func groupDigits(p *message.Printer, digits string) string {
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return digits
	}
	return p.Sprintf("%d", n)
}
