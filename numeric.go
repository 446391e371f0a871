package xdom

import (
	"regexp"
	"strconv"
)

var numericLiteralPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// parseNumericLiteral applies the parser's numeric-auto-typing rule: the
// full trimmed text must match an optional sign, digits, optional decimal
// part.
func parseNumericLiteral(s string) (float64, bool) {
	if !numericLiteralPattern.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
