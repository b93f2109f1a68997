package components

import (
	"regexp"
	"strings"
)

// giinPattern is the registered-FFI GIIN format: XXXXXX.XXXXX.XX.XXX.
var giinPattern = regexp.MustCompile(`^[A-Z0-9]{6}\.[A-Z0-9]{5}\.[A-Z0-9]{2}\.[A-Z0-9]{3}$`)

// ValidGIIN reports whether s matches the Global Intermediary Identification
// Number format. Matching is case-insensitive; the canonical form is upper.
func ValidGIIN(s string) bool {
	return giinPattern.MatchString(strings.ToUpper(strings.TrimSpace(s)))
}

// ValidUSTIN reports whether s is a plausible US Tax Identification Number:
// nine to eleven digits, separators ignored.
func ValidUSTIN(s string) bool {
	n := len(DigitsOnly(s))
	return n >= 9 && n <= 11
}
