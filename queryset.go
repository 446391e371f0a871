package xdom

// QuerySet is an immutable wrapper over an ordered sequence of Element
// references (C5). Every selection/filter/navigation method returns a
// fresh QuerySet; the receiver's sequence is never mutated by those
// methods. Mutation methods (setAttr, setText, ...) do write into the
// underlying Elements, but still return a QuerySet over the same sequence
// so calls can keep chaining.
type QuerySet struct {
	elements []*Element
}

// newQuerySet is the factory mentioned in spec.md Design Notes §9: given a
// new sequence, produces a new QuerySet. Cheap and side-effect-free.
func newQuerySet(elements []*Element) QuerySet {
	return QuerySet{elements: elements}
}

// Query wraps a single Element in a QuerySet. This is the "lazy/cached
// getter" factory from Design Notes §9; xdom itself does no caching of the
// wrapper, that is left to callers.
func (e *Element) Query() QuerySet {
	return newQuerySet([]*Element{e})
}

// ToArray returns the underlying elements as a plain slice (a copy, so
// callers cannot mutate the QuerySet's backing sequence).
func (q QuerySet) ToArray() []*Element {
	out := make([]*Element, len(q.elements))
	copy(out, q.elements)
	return out
}

// Count returns the number of elements in q.
func (q QuerySet) Count() int { return len(q.elements) }

// dedupeInOrder returns elements with duplicates removed, keeping the
// first occurrence of each, preserving the given order.
func dedupeInOrder(elements []*Element) []*Element {
	seen := make(map[*Element]bool, len(elements))
	out := make([]*Element, 0, len(elements))
	for _, e := range elements {
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	return out
}
