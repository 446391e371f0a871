package xdom

import (
	"bytes"
	"strings"
)

// ToXmlOptions configures Element.ToXml. The zero value serializes without
// an XML declaration and without indentation.
type ToXmlOptions struct {
	IncludeDeclaration bool
	Indent             string
	IndentLevel        int // recursion-internal; callers normally leave this 0
	SelfClosing        bool
}

// ToXml serializes e and its subtree to XML text (C4). It never fails.
func (e *Element) ToXml(opts ToXmlOptions) string {
	var buf bytes.Buffer
	if opts.IncludeDeclaration && opts.IndentLevel == 0 {
		buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	}
	writeElementXML(&buf, e, opts)
	return buf.String()
}

func writeElementXML(buf *bytes.Buffer, e *Element, opts ToXmlOptions) {
	buf.WriteByte('<')
	buf.WriteString(e.Name)

	printed := make(map[string]bool, len(e.Attributes))
	for _, a := range e.Attributes {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		buf.WriteString(encodeEntities(a.Value))
		buf.WriteByte('"')
		if a.Name == "xmlns" {
			printed[reservedDefaultNS] = true
		} else if strings.HasPrefix(a.Name, "xmlns:") {
			printed[a.Name[len("xmlns:"):]] = true
		}
	}
	for _, prefix := range e.xmlnsOrder {
		if printed[prefix] {
			continue
		}
		name := "xmlns"
		if prefix != "" {
			name = "xmlns:" + prefix
		}
		buf.WriteByte(' ')
		buf.WriteString(name)
		buf.WriteString(`="`)
		buf.WriteString(encodeEntities(e.XmlnsDeclarations[prefix]))
		buf.WriteByte('"')
	}

	empty := e.Text == "" && len(e.TextNodes) == 0 && len(e.Children) == 0
	if empty {
		if opts.SelfClosing {
			buf.WriteString("/>")
		} else {
			buf.WriteString("></")
			buf.WriteString(e.Name)
			buf.WriteByte('>')
		}
		return
	}
	buf.WriteByte('>')

	if e.Text != "" {
		buf.WriteString(encodeEntities(e.Text))
	}
	for _, tn := range e.TextNodes {
		buf.WriteString(encodeEntities(tn))
	}

	childOpts := opts
	childOpts.IncludeDeclaration = false
	childOpts.IndentLevel = opts.IndentLevel + 1
	for _, c := range e.Children {
		if opts.Indent != "" {
			buf.WriteByte('\n')
			buf.WriteString(strings.Repeat(opts.Indent, childOpts.IndentLevel))
		}
		writeElementXML(buf, c, childOpts)
	}
	if opts.Indent != "" && len(e.Children) > 0 {
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(opts.Indent, opts.IndentLevel))
	}

	buf.WriteString("</")
	buf.WriteString(e.Name)
	buf.WriteByte('>')
}
