package xdom

import (
	"strings"
	"unicode"
)

// ParserOptions configures the recursive-descent parser (C3). The zero
// value is not a valid default; use DefaultParserOptions.
type ParserOptions struct {
	TrimValues      bool
	ParseNumbers    bool
	ParseBooleans   bool
	PreserveRawText bool
	MaxDepth        *int
}

// DefaultParserOptions returns the parser's documented defaults:
// TrimValues, ParseNumbers and ParseBooleans on, PreserveRawText off, no
// MaxDepth limit.
func DefaultParserOptions() ParserOptions {
	return ParserOptions{
		TrimValues:    true,
		ParseNumbers:  true,
		ParseBooleans: true,
	}
}

// Parse parses a complete XML document and returns a QuerySet wrapping its
// root Element, using DefaultParserOptions.
func Parse(document string) (QuerySet, error) {
	return ParseWithOptions(document, DefaultParserOptions())
}

// ParseWithOptions is like Parse but with explicit ParserOptions.
func ParseWithOptions(document string, opts ParserOptions) (QuerySet, error) {
	body, err := stripProlog(document)
	if err != nil {
		return QuerySet{}, err
	}
	if body == "" {
		return QuerySet{}, newError(ParseError, "empty input")
	}
	if body[0] != '<' {
		return QuerySet{}, newError(ParseError, "expected '<' at document start, got %q", string(body[0]))
	}
	root, _, err := parseElement(body, 0, nil, 0, opts)
	if err != nil {
		return QuerySet{}, err
	}
	return newQuerySet([]*Element{root}), nil
}

// stripProlog removes exactly one leading XML declaration and one DOCTYPE,
// then skips any prolog-level comments, returning what remains trimmed.
func stripProlog(document string) (string, error) {
	s := strings.TrimSpace(document)
	if strings.HasPrefix(s, "<?xml") {
		idx := strings.Index(s, "?>")
		if idx < 0 {
			return "", newError(ParseError, "unterminated XML declaration")
		}
		s = strings.TrimSpace(s[idx+2:])
	}
	if hasCaseInsensitivePrefix(s, "<!DOCTYPE") {
		end, err := scanDoctypeEnd(s)
		if err != nil {
			return "", err
		}
		s = strings.TrimSpace(s[end:])
	}
	for strings.HasPrefix(s, "<!--") {
		idx := strings.Index(s, "-->")
		if idx < 0 {
			return "", newError(ParseError, "unterminated comment in document prolog")
		}
		s = strings.TrimSpace(s[idx+3:])
	}
	return s, nil
}

func hasCaseInsensitivePrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func scanDoctypeEnd(s string) (int, error) {
	i := len("<!DOCTYPE")
	depth := 0
	for i < len(s) {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		case '>':
			if depth <= 0 {
				return i + 1, nil
			}
		}
		i++
	}
	return 0, newError(ParseError, "unterminated DOCTYPE declaration")
}

func isNameStartByte(b byte) bool {
	return unicode.IsLetter(rune(b)) || b == '_' || b == ':'
}

func isNameByte(b byte) bool {
	return isNameStartByte(b) || unicode.IsDigit(rune(b)) || b == '-' || b == '.'
}

// parseElement parses one element (and its subtree) starting at src[pos],
// which must be '<'. parent is the already-linked parent (nil for the
// root); depth is this element's depth. Returns the element and the
// position right after its closing tag (or after its own '/>').
func parseElement(src string, pos int, parent *Element, depth int, opts ParserOptions) (*Element, int, error) {
	if pos >= len(src) || src[pos] != '<' {
		return nil, pos, newError(ParseError, "expected '<' while parsing element")
	}
	i := pos + 1
	nameStart := i
	for i < len(src) && !isSpaceByte(src[i]) && src[i] != '/' && src[i] != '>' {
		i++
	}
	if i == nameStart {
		return nil, pos, newError(ParseError, "unterminated opening tag at offset %d", pos)
	}
	name := src[nameStart:i]

	elem := newElement(name)
	elem.Parent = parent
	if parent == nil {
		elem.Depth = 0
		elem.Path = elem.Name
	} else {
		elem.Depth = depth
		elem.Path = parent.Path + "/" + elem.Name
	}

	var err error
	i, err = parseAttributes(src, i, elem)
	if err != nil {
		return nil, pos, err
	}

	resolveElementNamespace(elem)

	if i >= len(src) {
		return nil, pos, newError(ParseError, "unterminated opening tag for <%s>", name)
	}
	if src[i] == '/' {
		if i+1 >= len(src) || src[i+1] != '>' {
			return nil, pos, newError(ParseError, "malformed self-closing tag for <%s>", name)
		}
		return elem, i + 2, nil
	}
	if src[i] != '>' {
		return nil, pos, newError(ParseError, "unterminated opening tag for <%s>", name)
	}
	contentStart := i + 1

	atMaxDepth := opts.MaxDepth != nil && depth >= *opts.MaxDepth

	contentEnd, afterClose, err := findClosingTag(src, contentStart, name)
	if err != nil {
		return nil, pos, err
	}

	if atMaxDepth {
		return elem, afterClose, nil
	}

	content := src[contentStart:contentEnd]
	if !looksLikeMixedContent(content) {
		decoded := decodeEntities(content)
		text := decoded
		if opts.TrimValues {
			text = strings.TrimSpace(text)
		}
		elem.Text = text
		elem.hasText = true
		if opts.PreserveRawText {
			elem.RawText = content
			elem.rawKept = true
		}
		elem.Numeric, elem.Boolean = parseAutoTypes(text, opts.ParseNumbers, opts.ParseBooleans)
		return elem, afterClose, nil
	}

	if err := parseMixedContent(content, elem, depth, opts); err != nil {
		return nil, pos, err
	}
	return elem, afterClose, nil
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// parseAttributes parses `name = "value"` pairs starting at src[pos] up to
// (not including) the terminating '/' or '>'. Namespace declarations
// (xmlns, xmlns:prefix) are recorded in elem.XmlnsDeclarations as well as
// elem.Attributes, for round-tripping.
func parseAttributes(src string, pos int, elem *Element) (int, error) {
	i := pos
	for {
		for i < len(src) && isSpaceByte(src[i]) {
			i++
		}
		if i >= len(src) || src[i] == '/' || src[i] == '>' {
			return i, nil
		}
		nameStart := i
		for i < len(src) && !isSpaceByte(src[i]) && src[i] != '=' && src[i] != '/' && src[i] != '>' {
			i++
		}
		if i == nameStart {
			return i, newError(ParseError, "malformed attribute near offset %d", pos)
		}
		attrName := src[nameStart:i]
		for i < len(src) && isSpaceByte(src[i]) {
			i++
		}
		if i >= len(src) || src[i] != '=' {
			return i, newError(ParseError, "malformed attribute %q: missing '='", attrName)
		}
		i++
		for i < len(src) && isSpaceByte(src[i]) {
			i++
		}
		if i >= len(src) || (src[i] != '"' && src[i] != '\'') {
			return i, newError(ParseError, "malformed attribute %q: missing quote", attrName)
		}
		quote := src[i]
		i++
		valueStart := i
		for i < len(src) && src[i] != quote {
			i++
		}
		if i >= len(src) {
			return i, newError(ParseError, "malformed attribute %q: unterminated quoted value", attrName)
		}
		rawValue := src[valueStart:i]
		i++ // skip closing quote

		value := decodeEntities(rawValue)
		elem.Attributes = append(elem.Attributes, Attribute{Name: attrName, Value: value})

		if attrName == "xmlns" {
			elem.SetNamespaceDeclaration(reservedDefaultNS, value)
		} else if strings.HasPrefix(attrName, "xmlns:") {
			elem.SetNamespaceDeclaration(attrName[len("xmlns:"):], value)
		}
	}
}

func resolveElementNamespace(elem *Element) {
	prefix := elem.Prefix
	if uri, ok := resolveNamespaceURI(elem, prefix); ok && uri != "" {
		elem.NamespaceURI = uri
	}
}

// looksLikeMixedContent reports whether content contains a child element
// open tag, a comment, or a CDATA section - the trigger for mixed-content
// parsing rather than the pure-text fast path.
func looksLikeMixedContent(content string) bool {
	for i := 0; i < len(content); i++ {
		if content[i] != '<' {
			continue
		}
		rest := content[i:]
		if strings.HasPrefix(rest, "<!--") || strings.HasPrefix(rest, "<![CDATA[") {
			return true
		}
		if i+1 < len(content) && isNameStartByte(content[i+1]) {
			return true
		}
	}
	return false
}

// findClosingTag scans forward from pos (just after the parent's opening
// '>') counting nested same-name opens/closes, skipping over comments,
// CDATA sections, and quoted attribute values, to locate the matching
// closing tag. Returns the offset where content ends (start of "</name")
// and the offset right after the closing tag's '>'.
func findClosingTag(src string, pos int, tagName string) (contentEnd int, afterClose int, err error) {
	depth := 1
	i := pos
	for i < len(src) {
		if src[i] != '<' {
			i++
			continue
		}
		if strings.HasPrefix(src[i:], "<![CDATA[") {
			end := strings.Index(src[i:], "]]>")
			if end < 0 {
				return 0, 0, newError(ParseError, "unterminated CDATA section")
			}
			i += end + 3
			continue
		}
		if strings.HasPrefix(src[i:], "<!--") {
			end := strings.Index(src[i:], "-->")
			if end < 0 {
				return 0, 0, newError(ParseError, "unterminated comment")
			}
			i += end + 3
			continue
		}
		if i+1 < len(src) && src[i+1] == '/' {
			nameStart := i + 2
			j := nameStart
			for j < len(src) && !isSpaceByte(src[j]) && src[j] != '>' {
				j++
			}
			closeName := src[nameStart:j]
			gt := strings.IndexByte(src[j:], '>')
			if gt < 0 {
				return 0, 0, newError(ParseError, "unterminated closing tag </%s", closeName)
			}
			if closeName == tagName {
				depth--
				if depth == 0 {
					return i, j + gt + 1, nil
				}
			}
			i = j + gt + 1
			continue
		}
		if i+1 < len(src) && isNameStartByte(src[i+1]) {
			nameStart := i + 1
			j := nameStart
			for j < len(src) && !isSpaceByte(src[j]) && src[j] != '/' && src[j] != '>' {
				j++
			}
			openName := src[nameStart:j]
			selfClosing, end, scanErr := scanTagEnd(src, j)
			if scanErr != nil {
				return 0, 0, scanErr
			}
			i = end
			if openName == tagName && !selfClosing {
				depth++
			}
			continue
		}
		i++
	}
	return 0, 0, newError(ParseError, "missing matching closing tag for <%s>", tagName)
}

// scanTagEnd scans from just after a tag's name (or into its attribute
// list) to the position right after its terminating '>', respecting
// quoted attribute values that may contain '<' or '>'. Reports whether the
// tag is self-closing.
func scanTagEnd(src string, pos int) (selfClosing bool, after int, err error) {
	i := pos
	var inQuote byte
	for i < len(src) {
		c := src[i]
		if inQuote != 0 {
			if c == inQuote {
				inQuote = 0
			}
			i++
			continue
		}
		switch c {
		case '"', '\'':
			inQuote = c
		case '>':
			return selfClosing, i + 1, nil
		case '/':
			if i+1 < len(src) && src[i+1] == '>' {
				selfClosing = true
			}
		}
		i++
	}
	return false, 0, newError(ParseError, "unterminated opening tag")
}

// parseMixedContent walks content accumulating text into a buffer, flushing
// it into elem.TextNodes on comments/CDATA/child elements, and recursing
// into child elements. elem.Depth is depth.
func parseMixedContent(content string, elem *Element, depth int, opts ParserOptions) error {
	var buf strings.Builder
	fragmentCount := 0

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		raw := buf.String()
		buf.Reset()
		decoded := decodeEntities(raw)
		if strings.TrimSpace(decoded) == "" {
			return
		}
		elem.TextNodes = append(elem.TextNodes, decoded)
		elem.contentOrder = append(elem.contentOrder, contentPiece{text: decoded})
		fragmentCount++
	}

	i := 0
	for i < len(content) {
		if content[i] != '<' {
			buf.WriteByte(content[i])
			i++
			continue
		}
		rest := content[i:]
		switch {
		case strings.HasPrefix(rest, "<!--"):
			flush()
			end := strings.Index(rest, "-->")
			if end < 0 {
				return newError(ParseError, "unterminated comment")
			}
			elem.Comments = append(elem.Comments, rest[4:end])
			i += end + 3
		case strings.HasPrefix(rest, "<![CDATA["):
			flush()
			end := strings.Index(rest, "]]>")
			if end < 0 {
				return newError(ParseError, "unterminated CDATA section")
			}
			body := rest[len("<![CDATA["):end]
			elem.TextNodes = append(elem.TextNodes, body)
			elem.contentOrder = append(elem.contentOrder, contentPiece{text: body})
			fragmentCount++
			if !elem.hasText {
				elem.Text = body
				elem.hasText = true
				if opts.PreserveRawText {
					elem.RawText = body
					elem.rawKept = true
				}
			}
			i += end + 3
		case i+1 < len(content) && isNameStartByte(content[i+1]):
			flush()
			child, next, err := parseElement(content, i, elem, depth+1, opts)
			if err != nil {
				return err
			}
			elem.Children = append(elem.Children, child)
			elem.contentOrder = append(elem.contentOrder, contentPiece{child: child, isChild: true})
			i = next
		default:
			buf.WriteByte(content[i])
			i++
		}
	}
	flush()

	if fragmentCount <= 1 && len(elem.Children) == 0 && len(elem.Comments) == 0 {
		elem.TextNodes = nil
		elem.contentOrder = nil
	}

	reindex(elem)
	return nil
}
