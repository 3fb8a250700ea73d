package tables

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money coerces a raw cell to a decimal amount. Unparsable values become
// zero, never an error: reconciliation must proceed even with dirty upstream
// data, and a bad cell surfaces as a zero in the downstream totals.
// Currency symbols and thousand separators are stripped first.
func Money(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	s = strings.ReplaceAll(s, "₹", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	// Accounting-style negatives: (123.45)
	if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		s = "-" + s[1:len(s)-1]
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Identifier coerces a raw cell to a join key: trimmed, and with the float
// artifact a spreadsheet round-trip leaves on numeric ids ("4513780110.0")
// stripped, so ids join exactly regardless of whether the source stored them
// as text or numbers.
func Identifier(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if dot := strings.Index(s, "."); dot > 0 {
		head, tail := s[:dot], s[dot+1:]
		if isDigits(head) && isZeros(tail) {
			return head
		}
	}
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isZeros(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '0' {
			return false
		}
	}
	return true
}
