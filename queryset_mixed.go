package xdom

import "strings"

// TextNodes returns the raw TextNodes slice of each element in q,
// flattened in order (own text fragments only, not descendants').
func (q QuerySet) TextNodes() []string {
	var out []string
	for _, e := range q.elements {
		out = append(out, e.TextNodes...)
	}
	return out
}

// AllTextNodes returns the TextNodes of each element in q and of every
// descendant, document order.
func (q QuerySet) AllTextNodes() []string {
	var out []string
	var walk func(e *Element)
	walk = func(e *Element) {
		out = append(out, e.TextNodes...)
		for _, c := range e.Children {
			walk(c)
		}
	}
	for _, e := range q.elements {
		walk(e)
	}
	return out
}

// AllText returns, for each element in q, its own text plus all
// descendants' text, concatenated in true document order.
func (q QuerySet) AllText() []string {
	out := make([]string, 0, len(q.elements))
	for _, e := range q.elements {
		var b strings.Builder
		allTextInto(e, &b)
		out = append(out, b.String())
	}
	return out
}

// Comments returns the Comments slice of each element in q, flattened.
func (q QuerySet) Comments() []string {
	var out []string
	for _, e := range q.elements {
		out = append(out, e.Comments...)
	}
	return out
}

// AllComments returns the Comments of each element in q and of every
// descendant, document order.
func (q QuerySet) AllComments() []string {
	var out []string
	var walk func(e *Element)
	walk = func(e *Element) {
		out = append(out, e.Comments...)
		for _, c := range e.Children {
			walk(c)
		}
	}
	for _, e := range q.elements {
		walk(e)
	}
	return out
}

// HasMixedContent filters to elements, or any of their descendants (per
// spec's "both descend recursively"), whose TextNodes is populated (true
// mixed content, per invariant 7).
func (q QuerySet) HasMixedContent() QuerySet {
	return q.filter(func(e *Element) bool {
		found := false
		var walk func(n *Element)
		walk = func(n *Element) {
			if found || len(n.TextNodes) > 0 {
				found = true
				return
			}
			for _, c := range n.Children {
				walk(c)
				if found {
					return
				}
			}
		}
		walk(e)
		return found
	})
}

// HasComments filters to elements, or any of their descendants (per spec's
// "both descend recursively"), that carry at least one comment.
func (q QuerySet) HasComments() QuerySet {
	return q.filter(func(e *Element) bool {
		found := false
		var walk func(n *Element)
		walk = func(n *Element) {
			if found || len(n.Comments) > 0 {
				found = true
				return
			}
			for _, c := range n.Children {
				walk(c)
				if found {
					return
				}
			}
		}
		walk(e)
		return found
	})
}
