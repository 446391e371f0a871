package xdom

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Map applies fn to every element in q and returns the collected results.
func (q QuerySet) Map(fn func(*Element) any) []any {
	out := make([]any, len(q.elements))
	for i, e := range q.elements {
		out[i] = fn(e)
	}
	return out
}

// Each calls fn once per element in q, in order.
func (q QuerySet) Each(fn func(*Element)) {
	for _, e := range q.elements {
		fn(e)
	}
}

// Reduce folds q's elements left-to-right starting from initial.
func (q QuerySet) Reduce(initial any, fn func(acc any, e *Element) any) any {
	acc := initial
	for _, e := range q.elements {
		acc = fn(acc, e)
	}
	return acc
}

// ToMap builds a map from keyFn(e); when valueFn is nil, e itself is the
// value. Later elements overwrite earlier ones on key collision.
func (q QuerySet) ToMap(keyFn func(*Element) string, valueFn func(*Element) any) map[string]any {
	out := make(map[string]any, len(q.elements))
	for _, e := range q.elements {
		if valueFn != nil {
			out[keyFn(e)] = valueFn(e)
		} else {
			out[keyFn(e)] = e
		}
	}
	return out
}

// ToJSON serializes q to a JSON array (or a single object when q holds
// exactly one element and opts.FlattenSingle is set) using the C5 rules.
func (q QuerySet) ToJSON(opts ToJSONOptions) (string, error) {
	var value any
	if opts.FlattenSingle && len(q.elements) == 1 {
		value = q.elements[0].toJSON(opts)
	} else {
		arr := make([]any, len(q.elements))
		for i, e := range q.elements {
			arr[i] = e.toJSON(opts)
		}
		value = arr
	}
	b, err := json.Marshal(value)
	if err != nil {
		return "", newError(InternalError, "marshal json: %v", err)
	}
	return string(b), nil
}

// Print renders a compact, human-readable tree of q, one element per line,
// indented by depth relative to q's own elements.
func (q QuerySet) Print(includeAttrs, includeValues bool) string {
	var b strings.Builder
	var walk func(e *Element, depth int)
	walk = func(e *Element, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(e.Name)
		if includeAttrs && len(e.Attributes) > 0 {
			b.WriteString(" [")
			for i, a := range e.Attributes {
				if i > 0 {
					b.WriteString(" ")
				}
				fmt.Fprintf(&b, "%s=%q", a.Name, a.Value)
			}
			b.WriteString("]")
		}
		if includeValues && e.Text != "" {
			fmt.Fprintf(&b, " = %q", e.Text)
		}
		b.WriteByte('\n')
		for _, c := range e.Children {
			walk(c, depth+1)
		}
	}
	for _, e := range q.elements {
		walk(e, 0)
	}
	return b.String()
}

// Stats summarizes q for diagnostics and testing.
type Stats struct {
	Count       int
	MaxDepth    int
	TotalNodes  int // q's elements plus every descendant
	WithText    int
	WithComment int
}

// Stats computes summary statistics over q's elements and their subtrees.
func (q QuerySet) Stats() Stats {
	var s Stats
	s.Count = len(q.elements)
	var walk func(e *Element)
	walk = func(e *Element) {
		s.TotalNodes++
		if e.Depth > s.MaxDepth {
			s.MaxDepth = e.Depth
		}
		if e.Text != "" {
			s.WithText++
		}
		if len(e.Comments) > 0 {
			s.WithComment++
		}
		for _, c := range e.Children {
			walk(c)
		}
	}
	for _, e := range q.elements {
		walk(e)
	}
	return s
}

// ToXml serializes q's first element. It returns "" when q is empty.
func (q QuerySet) ToXml(opts ToXmlOptions) string {
	if len(q.elements) == 0 {
		return ""
	}
	return q.elements[0].ToXml(opts)
}

// ToXmlStrings serializes every element in q independently.
func (q QuerySet) ToXmlStrings(opts ToXmlOptions) []string {
	out := make([]string, len(q.elements))
	for i, e := range q.elements {
		out[i] = e.ToXml(opts)
	}
	return out
}
