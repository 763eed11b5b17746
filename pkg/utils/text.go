package utils

import "strings"

// NormalizeWhitespace collapses runs of whitespace into single spaces and trims the result.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// DigitsOnly strips every non-digit character from s.
// Used for phone number comparisons where formatting varies.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
