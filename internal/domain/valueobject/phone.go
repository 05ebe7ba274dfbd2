// Package valueobject contains immutable domain value objects.
package valueobject

import (
	"strings"

	"github.com/shopspring/decimal"
)

// countryCodePrefix is the dialing prefix stripped from 12-digit numbers.
const countryCodePrefix = "91"

// NormalizePhone canonicalizes a raw customer phone identifier into the
// stable key used across all ledger operations.
//
// POS exports carry phone numbers either as digit strings or as numeric
// cells with float formatting noise (e.g. "9198765432.0", "9.1987654321e+11").
// The raw value is coerced to an integer-valued digit string (any fractional
// part truncated). If the result has exactly 12 digits and starts with "91",
// the prefix is stripped, leaving the 10-digit subscriber number. Any other
// length is returned unchanged rather than rejected, so malformed numbers
// stay visible instead of being silently dropped.
//
// Numbers with a different country code or leading zeros are not normalized
// and may yield duplicate identities for the same subscriber. That matches
// the upstream data contract and is covered by tests; callers must not
// re-normalize a value already used as a persisted key.
//
// The second return value is false when the input is missing or contains no
// parseable number. Normalization is pure and deterministic.
func NormalizePhone(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	digits := coerceToDigits(s)
	if digits == "" {
		return "", false
	}

	if len(digits) == 12 && strings.HasPrefix(digits, countryCodePrefix) {
		digits = digits[len(countryCodePrefix):]
	}

	return digits, true
}

// coerceToDigits turns the raw representation into an integer-valued digit
// string, or "" when the input is not a number.
func coerceToDigits(s string) string {
	if isDigits(s) {
		return s
	}

	// Numeric cell noise: decimal points and exponent notation.
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return ""
	}

	return d.Truncate(0).String()
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
