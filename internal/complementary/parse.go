package complementary

import (
	"math"
	"strconv"
	"strings"
)

// blankValues are provider placeholders for "no data"
var blankValues = map[string]bool{
	"":     true,
	"-":    true,
	"--":   true,
	"—":    true,
	"n/a":  true,
	"na":   true,
	"nan":  true,
	"null": true,
}

// ParseNumber parses a provider string ("12,5%", "1.234,56", "R$ 30,10").
// Blank or unparsable strings are absent, never zero.
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if blankValues[strings.ToLower(s)] {
		return 0, false
	}

	for _, token := range []string{"R$", "US$", "$", "%", "x", "X"} {
		s = strings.ReplaceAll(s, token, "")
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0 && lastComma > lastDot:
		// 1.234,56 → 1234.56
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastComma >= 0 && lastDot >= 0:
		// 1,234.56 → 1234.56
		s = strings.ReplaceAll(s, ",", "")
	case lastComma >= 0 && strings.Count(s, ",") > 1:
		// 1,234,567 → 1234567
		s = ungroup(s, ",")
	case lastComma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	case lastDot >= 0 && (strings.Count(s, ".") > 1 || isGrouped(s, ".")):
		// 1.234.567 and 250.000 are thousands; 12.5 and 0.125 stay decimals
		s = ungroup(s, ".")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(v) {
		return 0, false
	}
	return v, true
}

// isGrouped reports whether s is digits in thousands groups split by sep:
// a leading group of 1-3 digits without a leading zero, then groups of exactly 3
func isGrouped(s, sep string) bool {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
	groups := strings.Split(s, sep)
	if len(groups) < 2 {
		return false
	}
	head := groups[0]
	if len(head) == 0 || len(head) > 3 || head[0] == '0' || !allDigits(head) {
		return false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 || !allDigits(g) {
			return false
		}
	}
	return true
}

// ungroup drops thousands separators, leaving malformed groupings unparsable
func ungroup(s, sep string) string {
	if !isGrouped(s, sep) {
		return s
	}
	return strings.ReplaceAll(s, sep, "")
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
