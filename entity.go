package xdom

import (
	"strconv"
	"strings"
)

// named entities recognized on decode (C1). Encoding reverses the same five.
var namedEntities = map[string]string{
	"&lt;":   "<",
	"&gt;":   ">",
	"&amp;":  "&",
	"&quot;": `"`,
	"&apos;": "'",
}

var entityEncodeOrder = []struct{ from, to string }{
	// order matters: & must be encoded first so later replacements are not
	// re-escaped.
	{"&", "&amp;"},
	{"<", "&lt;"},
	{">", "&gt;"},
	{`"`, "&quot;"},
	{"'", "&apos;"},
}

// decodeEntities decodes the five named entities and numeric/hex character
// references. Unknown entity references (`&foo;`) are left verbatim.
func decodeEntities(s string) string {
	if !strings.ContainsRune(s, '&') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '&' {
			b.WriteByte(s[i])
			i++
			continue
		}
		semi := strings.IndexByte(s[i:], ';')
		if semi < 0 {
			b.WriteByte(s[i])
			i++
			continue
		}
		ref := s[i : i+semi+1] // includes leading & and trailing ;
		if repl, ok := namedEntities[ref]; ok {
			b.WriteString(repl)
			i += len(ref)
			continue
		}
		if strings.HasPrefix(ref, "&#x") || strings.HasPrefix(ref, "&#X") {
			if code, err := strconv.ParseInt(ref[3:len(ref)-1], 16, 32); err == nil {
				b.WriteRune(rune(code))
				i += len(ref)
				continue
			}
		} else if strings.HasPrefix(ref, "&#") {
			if code, err := strconv.ParseInt(ref[2:len(ref)-1], 10, 32); err == nil {
				b.WriteRune(rune(code))
				i += len(ref)
				continue
			}
		}
		// unknown reference: left verbatim
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// encodeEntities reverses the five named entities for XML output. No
// numeric encoding is produced.
func encodeEntities(s string) string {
	for _, pair := range entityEncodeOrder {
		if strings.Contains(s, pair.from) {
			s = strings.ReplaceAll(s, pair.from, pair.to)
		}
	}
	return s
}
