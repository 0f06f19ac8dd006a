package factsource

import (
	"strconv"
	"strings"
)

// parseNumeric extracts a numeric value from a reported cell string.
// Handles thousands separators, currency symbols, and accountant-style
// parenthesized negatives. Dashes and empty strings are absent values.
func parseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" || s == "—" || strings.EqualFold(s, "n/a") {
		return 0, false
	}

	s = strings.NewReplacer(",", "", "$", "", " ", "").Replace(s)

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.Trim(s, "()")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}
