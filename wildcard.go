package xdom

import (
	"regexp"
	"strings"
)

// wildcardToRegex translates a shell-style `*` pattern into an anchored,
// case-insensitive regexp (C2). All regex metacharacters other than `*` are
// escaped before `*` is expanded, so user patterns never leak regex syntax.
func wildcardToRegex(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("(?i)^")
	for _, r := range pattern {
		if r == '*' {
			b.WriteString(".*")
			continue
		}
		b.WriteString(regexp.QuoteMeta(string(r)))
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}
