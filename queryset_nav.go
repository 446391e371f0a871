package xdom

import "sort"

// --- raw-array walks ---

// WalkUp collects every ancestor of every element in q (not including the
// elements themselves), optionally filtered by pred (nil means no filter),
// deduplicated, nearest-first per starting element.
func (q QuerySet) WalkUp(pred func(*Element) bool) []*Element {
	var out []*Element
	seen := make(map[*Element]bool)
	for _, e := range q.elements {
		for p := e.Parent; p != nil; p = p.Parent {
			if pred != nil && !pred(p) {
				continue
			}
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// WalkDown collects every descendant of every element in q, optionally
// filtered by pred, deduplicated, document order.
func (q QuerySet) WalkDown(pred func(*Element) bool) []*Element {
	var out []*Element
	seen := make(map[*Element]bool)
	var walk func(e *Element)
	walk = func(e *Element) {
		for _, c := range e.Children {
			if (pred == nil || pred(c)) && !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
			walk(c)
		}
	}
	for _, e := range q.elements {
		walk(e)
	}
	return out
}

// --- traversals ---

// BreadthFirst returns the elements of q and all their descendants in
// breadth-first order.
func (q QuerySet) BreadthFirst() QuerySet {
	var out []*Element
	seen := make(map[*Element]bool)
	queue := append([]*Element(nil), q.elements...)
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
		queue = append(queue, e.Children...)
	}
	return newQuerySet(out)
}

// DepthFirst returns the elements of q and all their descendants in
// depth-first (document) order.
func (q QuerySet) DepthFirst() QuerySet {
	return selectRecursive(q, func(*Element) bool { return true })
}

func documentRoot(e *Element) *Element {
	for e.Parent != nil {
		e = e.Parent
	}
	return e
}

func flattenPreOrder(root *Element) []*Element {
	var out []*Element
	var walk func(n *Element)
	walk = func(n *Element) {
		out = append(out, n)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return out
}

func indexOfElement(list []*Element, target *Element) int {
	for i, e := range list {
		if e == target {
			return i
		}
	}
	return -1
}

// FollowingNodes returns, for each element in q, every node after it in
// document order excluding its own descendants (which also excludes all
// ancestors, since they precede it), deduplicated.
func (q QuerySet) FollowingNodes() QuerySet {
	var out []*Element
	for _, e := range q.elements {
		all := flattenPreOrder(documentRoot(e))
		start := indexOfElement(all, e)
		if start < 0 {
			continue
		}
		end := start + len(flattenPreOrder(e))
		out = append(out, all[end:]...)
	}
	return newQuerySet(dedupeInOrder(out))
}

// PrecedingNodes returns, for each element in q, every node before it in
// document order, excluding its ancestors, deduplicated.
func (q QuerySet) PrecedingNodes() QuerySet {
	var out []*Element
	for _, e := range q.elements {
		all := flattenPreOrder(documentRoot(e))
		start := indexOfElement(all, e)
		if start < 0 {
			continue
		}
		ancestors := make(map[*Element]bool)
		for p := e.Parent; p != nil; p = p.Parent {
			ancestors[p] = true
		}
		for _, cand := range all[:start] {
			if !ancestors[cand] {
				out = append(out, cand)
			}
		}
	}
	return newQuerySet(dedupeInOrder(out))
}

// --- sorting (all stable) ---

func (q QuerySet) sortedBy(less func(a, b *Element) bool) QuerySet {
	out := q.ToArray()
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return newQuerySet(out)
}

// SortByName sorts lexicographically (byte-wise, locale-independent) by Name.
func (q QuerySet) SortByName() QuerySet {
	return q.sortedBy(func(a, b *Element) bool { return a.Name < b.Name })
}

// SortByAttribute sorts lexicographically by the value of attribute name
// (missing values sort first, as "").
func (q QuerySet) SortByAttribute(name string) QuerySet {
	return q.sortedBy(func(a, b *Element) bool {
		av, _ := a.GetAttribute(name)
		bv, _ := b.GetAttribute(name)
		return av < bv
	})
}

// SortByText sorts lexicographically by Text.
func (q QuerySet) SortByText() QuerySet {
	return q.sortedBy(func(a, b *Element) bool { return a.Text < b.Text })
}

// SortByValue sorts by natural numeric order, using NumericValue when
// present, parsing Text otherwise, treating missing/unparseable values as 0.
func (q QuerySet) SortByValue() QuerySet {
	val := func(e *Element) float64 {
		if e.Numeric != nil {
			return *e.Numeric
		}
		if v, ok := parseNumericLiteral(e.Text); ok {
			return v
		}
		return 0
	}
	return q.sortedBy(func(a, b *Element) bool { return val(a) < val(b) })
}

// SortByDepth sorts by Depth, shallowest first.
func (q QuerySet) SortByDepth() QuerySet {
	return q.sortedBy(func(a, b *Element) bool { return a.Depth < b.Depth })
}

// SortByCustom sorts using a caller-supplied stable comparator.
func (q QuerySet) SortByCustom(less func(a, b *Element) bool) QuerySet {
	return q.sortedBy(less)
}

// --- slicing ---

// Take returns at most the first n elements.
func (q QuerySet) Take(n int) QuerySet {
	if n < 0 {
		n = 0
	}
	if n > len(q.elements) {
		n = len(q.elements)
	}
	return newQuerySet(append([]*Element(nil), q.elements[:n]...))
}

// Skip returns all but the first n elements.
func (q QuerySet) Skip(n int) QuerySet {
	if n < 0 {
		n = 0
	}
	if n > len(q.elements) {
		n = len(q.elements)
	}
	return newQuerySet(append([]*Element(nil), q.elements[n:]...))
}

// Slice returns elements [a, b), clamped to q's bounds.
func (q QuerySet) Slice(a, b int) QuerySet {
	if a < 0 {
		a = 0
	}
	if b < 0 {
		b = 0
	}
	if b > len(q.elements) {
		b = len(q.elements)
	}
	if a > b {
		a = b
	}
	return newQuerySet(append([]*Element(nil), q.elements[a:b]...))
}

// Reverse returns the elements of q in reverse order.
func (q QuerySet) Reverse() QuerySet {
	out := make([]*Element, len(q.elements))
	for i, e := range q.elements {
		out[len(out)-1-i] = e
	}
	return newQuerySet(out)
}

// DistinctBy returns the first element for each distinct key, in order.
func (q QuerySet) DistinctBy(keyFn func(*Element) string) QuerySet {
	seenKeys := make(map[string]bool)
	var out []*Element
	for _, e := range q.elements {
		k := keyFn(e)
		if !seenKeys[k] {
			seenKeys[k] = true
			out = append(out, e)
		}
	}
	return newQuerySet(out)
}

// Even returns elements at even 0-based positions within q.
func (q QuerySet) Even() QuerySet {
	var out []*Element
	for i, e := range q.elements {
		if i%2 == 0 {
			out = append(out, e)
		}
	}
	return newQuerySet(out)
}

// Odd returns elements at odd 0-based positions within q.
func (q QuerySet) Odd() QuerySet {
	var out []*Element
	for i, e := range q.elements {
		if i%2 == 1 {
			out = append(out, e)
		}
	}
	return newQuerySet(out)
}

// NthChild filters to elements whose 1-indexed position among their
// siblings (IndexAmongAllSiblings+1) equals n.
func (q QuerySet) NthChild(n int) QuerySet {
	return q.filter(func(e *Element) bool { return e.IndexAmongAllSiblings+1 == n })
}

// Range returns elements [start, end). It fails with RangeError on
// negative indices or start > end.
func (q QuerySet) Range(start, end int) (QuerySet, error) {
	if start < 0 || end < 0 {
		return QuerySet{}, newError(RangeError, "range indices must be non-negative, got [%d, %d)", start, end)
	}
	if start > end {
		return QuerySet{}, newError(RangeError, "range start %d must not exceed end %d", start, end)
	}
	if start > len(q.elements) {
		start = len(q.elements)
	}
	if end > len(q.elements) {
		end = len(q.elements)
	}
	return newQuerySet(append([]*Element(nil), q.elements[start:end]...)), nil
}
