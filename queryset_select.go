package xdom

import "regexp"

// selectRecursive walks the subtree rooted at each element of q (inclusive
// of that starting element) in document order, collecting elements for
// which match returns true, deduplicating across overlapping starting
// elements.
func selectRecursive(q QuerySet, match func(*Element) bool) QuerySet {
	seen := make(map[*Element]bool)
	var out []*Element
	var walk func(e *Element)
	walk = func(e *Element) {
		if match(e) && !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
		for _, c := range e.Children {
			walk(c)
		}
	}
	for _, e := range q.elements {
		walk(e)
	}
	return newQuerySet(out)
}

// Find returns descendants (inclusive of the starting elements) whose Name
// or LocalName equals name.
func (q QuerySet) Find(name string) QuerySet {
	return selectRecursive(q, func(e *Element) bool {
		return e.Name == name || e.LocalName == name
	})
}

// FindQualified matches on Name only.
func (q QuerySet) FindQualified(qualified string) QuerySet {
	return selectRecursive(q, func(e *Element) bool { return e.Name == qualified })
}

// FindLocal matches on LocalName only.
func (q QuerySet) FindLocal(local string) QuerySet {
	return selectRecursive(q, func(e *Element) bool { return e.LocalName == local })
}

// FindPattern matches Name against a wildcard (`*`) or regexp pattern. A
// pattern containing no regex metacharacters beyond `*` is treated as a
// wildcard; a pattern that looks like a regexp (contains any of
// `^$.+?()[]{}|\`) is compiled as an unanchored, case-insensitive regexp,
// and treated as a wildcard if it does not compile.
func (q QuerySet) FindPattern(pattern string) QuerySet {
	re := compilePatternMaybeWildcard(pattern)
	return selectRecursive(q, func(e *Element) bool { return re.MatchString(e.Name) })
}

func compilePatternMaybeWildcard(pattern string) *regexp.Regexp {
	if looksLikeRegex(pattern) {
		if re, err := regexp.Compile("(?i)" + pattern); err == nil {
			return re
		}
	}
	re, err := wildcardToRegex(pattern)
	if err != nil {
		// fall back to a pattern that matches nothing sensible rather than
		// panicking; callers get an empty result instead of a crash.
		return regexp.MustCompile(`\A\z.`)
	}
	return re
}

func looksLikeRegex(s string) bool {
	for _, r := range s {
		switch r {
		case '^', '$', '.', '+', '?', '(', ')', '[', ']', '{', '}', '|', '\\':
			return true
		}
	}
	return false
}

// FindFirst returns a QuerySet holding at most one element: the first
// match (in document order, across the starting elements) whose Name or
// LocalName equals name.
func (q QuerySet) FindFirst(name string) QuerySet {
	all := q.Find(name)
	if all.Count() == 0 {
		return newQuerySet(nil)
	}
	return newQuerySet([]*Element{all.elements[0]})
}

// Namespace filters to elements whose Prefix equals p.
func (q QuerySet) Namespace(prefix string) QuerySet {
	return selectRecursive(q, func(e *Element) bool { return e.Prefix == prefix })
}

// NamespaceUri filters to elements whose NamespaceURI equals uri.
func (q QuerySet) NamespaceUri(uri string) QuerySet {
	return selectRecursive(q, func(e *Element) bool { return e.NamespaceURI == uri })
}

// LocalNameFilter filters to elements whose LocalName equals l.
func (q QuerySet) LocalNameFilter(l string) QuerySet {
	return selectRecursive(q, func(e *Element) bool { return e.LocalName == l })
}

// InNamespace filters to elements whose NamespaceURI equals uri and
// LocalName equals local.
func (q QuerySet) InNamespace(uri, local string) QuerySet {
	return selectRecursive(q, func(e *Element) bool {
		return e.NamespaceURI == uri && e.LocalName == local
	})
}

// HasNamespace filters to elements with a non-empty NamespaceURI.
func (q QuerySet) HasNamespace() QuerySet {
	return selectRecursive(q, func(e *Element) bool { return e.NamespaceURI != "" })
}

// NoNamespace filters to elements with no NamespaceURI.
func (q QuerySet) NoNamespace() QuerySet {
	return selectRecursive(q, func(e *Element) bool { return e.NamespaceURI == "" })
}

// DefaultNamespace filters to elements with no prefix whose NamespaceURI is
// set (i.e. elements resolved via a default `xmlns="..."` declaration).
func (q QuerySet) DefaultNamespace() QuerySet {
	return selectRecursive(q, func(e *Element) bool { return e.Prefix == "" && e.NamespaceURI != "" })
}

// HasXmlnsDeclarations filters to elements that themselves declare one or
// more xmlns bindings.
func (q QuerySet) HasXmlnsDeclarations() QuerySet {
	return selectRecursive(q, func(e *Element) bool { return len(e.XmlnsDeclarations) > 0 })
}

// ResolveNamespace walks from the first element in q up to the root,
// returning the URI bound to prefix ("" for the default namespace), and
// whether it was found.
func (q QuerySet) ResolveNamespace(prefix string) (string, bool) {
	if len(q.elements) == 0 {
		return "", false
	}
	return resolveNamespaceURI(q.elements[0], prefix)
}

// GetDefaultNamespace is shorthand for ResolveNamespace("").
func (q QuerySet) GetDefaultNamespace() (string, bool) {
	return q.ResolveNamespace(reservedDefaultNS)
}

// GetNamespacePrefixes returns every prefix visible (declared anywhere from
// root down to the first element), including "" if a default is bound.
func (q QuerySet) GetNamespacePrefixes() []string {
	if len(q.elements) == 0 {
		return nil
	}
	m := namespaceMappings(q.elements[0])
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// GetNamespaceMappings returns the full prefix->URI map visible at the
// first element, with child declarations overriding ancestor ones.
func (q QuerySet) GetNamespaceMappings() map[string]string {
	if len(q.elements) == 0 {
		return map[string]string{}
	}
	return namespaceMappings(q.elements[0])
}

// GetPrefixForNamespace returns the prefix bound to uri, if any, visible at
// the first element.
func (q QuerySet) GetPrefixForNamespace(uri string) (string, bool) {
	if len(q.elements) == 0 {
		return "", false
	}
	for prefix, boundURI := range namespaceMappings(q.elements[0]) {
		if boundURI == uri {
			return prefix, true
		}
	}
	return "", false
}

// Children returns the direct children of every element in q, in document
// order, deduplicated.
func (q QuerySet) Children() QuerySet {
	var out []*Element
	for _, e := range q.elements {
		out = append(out, e.Children...)
	}
	return newQuerySet(dedupeInOrder(out))
}

// ChildrenNamed returns direct children matching name by Name or LocalName.
func (q QuerySet) ChildrenNamed(name string) QuerySet {
	var out []*Element
	for _, e := range q.elements {
		for _, c := range e.Children {
			if c.Name == name || c.LocalName == name {
				out = append(out, c)
			}
		}
	}
	return newQuerySet(dedupeInOrder(out))
}

// FirstChild returns, for each element in q, its first child, if any.
func (q QuerySet) FirstChild() QuerySet {
	var out []*Element
	for _, e := range q.elements {
		if len(e.Children) > 0 {
			out = append(out, e.Children[0])
		}
	}
	return newQuerySet(dedupeInOrder(out))
}

// LastChild returns, for each element in q, its last child, if any.
func (q QuerySet) LastChild() QuerySet {
	var out []*Element
	for _, e := range q.elements {
		if n := len(e.Children); n > 0 {
			out = append(out, e.Children[n-1])
		}
	}
	return newQuerySet(dedupeInOrder(out))
}

// ChildAt returns, for each element in q, the child at index i (supporting
// negative indices from the end), when in range.
func (q QuerySet) ChildAt(i int) QuerySet {
	var out []*Element
	for _, e := range q.elements {
		idx := i
		if idx < 0 {
			idx += len(e.Children)
		}
		if idx >= 0 && idx < len(e.Children) {
			out = append(out, e.Children[idx])
		}
	}
	return newQuerySet(dedupeInOrder(out))
}

// Parent returns the parent of each element in q, when present.
func (q QuerySet) Parent() QuerySet {
	var out []*Element
	for _, e := range q.elements {
		if e.Parent != nil {
			out = append(out, e.Parent)
		}
	}
	return newQuerySet(dedupeInOrder(out))
}

// Ancestors returns every ancestor of each element in q, nearest first,
// deduplicated, not including the element itself.
func (q QuerySet) Ancestors() QuerySet {
	var out []*Element
	for _, e := range q.elements {
		for p := e.Parent; p != nil; p = p.Parent {
			out = append(out, p)
		}
	}
	return newQuerySet(dedupeInOrder(out))
}

// AncestorsNamed filters Ancestors() to those matching name by Name or
// LocalName.
func (q QuerySet) AncestorsNamed(name string) QuerySet {
	var out []*Element
	for _, e := range q.Ancestors().elements {
		if e.Name == name || e.LocalName == name {
			out = append(out, e)
		}
	}
	return newQuerySet(out)
}

// Closest returns, for each element in q, the nearest ancestor-or-self
// matching name by Name or LocalName.
func (q QuerySet) Closest(name string) QuerySet {
	return q.ClosestWhere(func(e *Element) bool { return e.Name == name || e.LocalName == name })
}

// ClosestWhere returns, for each element in q, the nearest ancestor-or-self
// satisfying pred.
func (q QuerySet) ClosestWhere(pred func(*Element) bool) QuerySet {
	var out []*Element
	for _, e := range q.elements {
		for cur := e; cur != nil; cur = cur.Parent {
			if pred(cur) {
				out = append(out, cur)
				break
			}
		}
	}
	return newQuerySet(dedupeInOrder(out))
}

// Descendants returns every descendant (not including the starting
// elements themselves) of each element in q, document order, deduplicated.
func (q QuerySet) Descendants() QuerySet {
	var out []*Element
	seen := make(map[*Element]bool)
	var walk func(e *Element)
	walk = func(e *Element) {
		for _, c := range e.Children {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
			walk(c)
		}
	}
	for _, e := range q.elements {
		walk(e)
	}
	return newQuerySet(out)
}

// Siblings returns the other children of each element's parent (not
// including the element itself), deduplicated.
func (q QuerySet) Siblings() QuerySet {
	var out []*Element
	for _, e := range q.elements {
		out = append(out, e.Siblings()...)
	}
	return newQuerySet(dedupeInOrder(out))
}

// SiblingsNamed filters Siblings() by Name or LocalName.
func (q QuerySet) SiblingsNamed(name string) QuerySet {
	var out []*Element
	for _, e := range q.Siblings().elements {
		if e.Name == name || e.LocalName == name {
			out = append(out, e)
		}
	}
	return newQuerySet(out)
}

// SiblingsIncludingSelf returns all children of each element's parent,
// including the element itself.
func (q QuerySet) SiblingsIncludingSelf() QuerySet {
	var out []*Element
	for _, e := range q.elements {
		if e.Parent != nil {
			out = append(out, e.Parent.Children...)
		} else {
			out = append(out, e)
		}
	}
	return newQuerySet(dedupeInOrder(out))
}

// NextSibling returns, for each element in q, the following sibling, when
// present.
func (q QuerySet) NextSibling() QuerySet {
	var out []*Element
	for _, e := range q.elements {
		if e.Parent == nil {
			continue
		}
		idx := e.IndexAmongAllSiblings
		if idx+1 < len(e.Parent.Children) {
			out = append(out, e.Parent.Children[idx+1])
		}
	}
	return newQuerySet(dedupeInOrder(out))
}

// PreviousSibling returns, for each element in q, the preceding sibling,
// when present.
func (q QuerySet) PreviousSibling() QuerySet {
	var out []*Element
	for _, e := range q.elements {
		if e.Parent == nil {
			continue
		}
		idx := e.IndexAmongAllSiblings
		if idx-1 >= 0 {
			out = append(out, e.Parent.Children[idx-1])
		}
	}
	return newQuerySet(dedupeInOrder(out))
}
