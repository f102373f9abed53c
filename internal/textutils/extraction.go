// Package textutils provides the text handling shared by the extraction
// pipeline: typo normalization, title casing, reference extraction and
// HTML-to-text conversion for pasted e-mail receipts.
package textutils

import (
	"regexp"
	"strings"
	"unicode"
)

var referencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:utr|rrn)(?:\s*no\.?)?[:\s#.-]+([a-z0-9]+)`),
	regexp.MustCompile(`(?i)\b(?:upi\s*ref|ref(?:erence)?|txn(?:\s*id)?|transaction\s*id)(?:\s*no\.?)?[:\s#.-]+([a-z0-9]+)`),
	regexp.MustCompile(`(?i)\bid[:\s#]+([a-z0-9]+)`),
}

// ExtractReference returns the bank reference, UTR or transaction id found in
// text, or "" when there is none. Candidates without a digit are ignored so
// that phrases like "ref to the bill" do not produce a reference.
func ExtractReference(text string) string {
	for _, re := range referencePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if len(m) > 1 && len(m[1]) >= 4 && strings.IndexFunc(m[1], unicode.IsDigit) >= 0 {
				return m[1]
			}
		}
	}
	return ""
}
