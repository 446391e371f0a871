package xdom

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

func (q QuerySet) filter(pred func(*Element) bool) QuerySet {
	out := make([]*Element, 0, len(q.elements))
	for _, e := range q.elements {
		if pred(e) {
			out = append(out, e)
		}
	}
	return newQuerySet(out)
}

// --- attribute filters ---

// HasAttr filters to elements that carry attribute name.
func (q QuerySet) HasAttr(name string) QuerySet {
	return q.filter(func(e *Element) bool { _, ok := e.GetAttribute(name); return ok })
}

// AttrEquals filters to elements whose attribute name equals value exactly.
func (q QuerySet) AttrEquals(name, value string) QuerySet {
	return q.filter(func(e *Element) bool { v, ok := e.GetAttribute(name); return ok && v == value })
}

// AttrMatches filters to elements whose attribute name matches pattern
// (wildcard or regexp, per FindPattern's detection rule).
func (q QuerySet) AttrMatches(name, pattern string) QuerySet {
	re := compilePatternMaybeWildcard(pattern)
	return q.filter(func(e *Element) bool {
		v, ok := e.GetAttribute(name)
		return ok && re.MatchString(v)
	})
}

// AttrWhere filters to elements whose attribute name (when present)
// satisfies pred.
func (q QuerySet) AttrWhere(name string, pred func(value string, present bool) bool) QuerySet {
	return q.filter(func(e *Element) bool {
		v, ok := e.GetAttribute(name)
		return pred(v, ok)
	})
}

// --- text filters ---

// TextEquals filters to elements whose Text equals s exactly.
func (q QuerySet) TextEquals(s string) QuerySet {
	return q.filter(func(e *Element) bool { return e.Text == s })
}

// TextContains filters to elements whose Text contains s.
func (q QuerySet) TextContains(s string) QuerySet {
	return q.filter(func(e *Element) bool { return strings.Contains(e.Text, s) })
}

// TextStartsWith filters to elements whose Text starts with s.
func (q QuerySet) TextStartsWith(s string) QuerySet {
	return q.filter(func(e *Element) bool { return strings.HasPrefix(e.Text, s) })
}

// TextEndsWith filters to elements whose Text ends with s.
func (q QuerySet) TextEndsWith(s string) QuerySet {
	return q.filter(func(e *Element) bool { return strings.HasSuffix(e.Text, s) })
}

// TextMatches filters to elements whose Text matches the regexp pattern.
func (q QuerySet) TextMatches(pattern string) QuerySet {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return newQuerySet(nil)
	}
	return q.filter(func(e *Element) bool { return re.MatchString(e.Text) })
}

// TextWhere filters to elements whose Text satisfies pred.
func (q QuerySet) TextWhere(pred func(string) bool) QuerySet {
	return q.filter(func(e *Element) bool { return pred(e.Text) })
}

// HasText filters to elements with non-empty Text.
func (q QuerySet) HasText() QuerySet {
	return q.filter(func(e *Element) bool { return e.Text != "" })
}

// --- numeric filters ---

// NumericEquals filters to elements whose NumericValue equals v.
func (q QuerySet) NumericEquals(v float64) QuerySet {
	return q.filter(func(e *Element) bool { return e.Numeric != nil && *e.Numeric == v })
}

// NumericGreaterThan filters to elements whose NumericValue is greater
// than v.
func (q QuerySet) NumericGreaterThan(v float64) QuerySet {
	return q.filter(func(e *Element) bool { return e.Numeric != nil && *e.Numeric > v })
}

// NumericLessThan filters to elements whose NumericValue is less than v.
func (q QuerySet) NumericLessThan(v float64) QuerySet {
	return q.filter(func(e *Element) bool { return e.Numeric != nil && *e.Numeric < v })
}

// NumericBetween filters to elements whose NumericValue is within [lo, hi].
func (q QuerySet) NumericBetween(lo, hi float64) QuerySet {
	return q.filter(func(e *Element) bool {
		return e.Numeric != nil && *e.Numeric >= lo && *e.Numeric <= hi
	})
}

// NumericWhere filters to elements whose NumericValue satisfies pred.
func (q QuerySet) NumericWhere(pred func(float64) bool) QuerySet {
	return q.filter(func(e *Element) bool { return e.Numeric != nil && pred(*e.Numeric) })
}

// HasNumeric filters to elements with a parsed NumericValue.
func (q QuerySet) HasNumeric() QuerySet {
	return q.filter(func(e *Element) bool { return e.Numeric != nil })
}

// --- boolean filters ---

// BooleanEquals filters to elements whose BooleanValue equals v.
func (q QuerySet) BooleanEquals(v bool) QuerySet {
	return q.filter(func(e *Element) bool { return e.Boolean != nil && *e.Boolean == v })
}

// HasBoolean filters to elements with a parsed BooleanValue.
func (q QuerySet) HasBoolean() QuerySet {
	return q.filter(func(e *Element) bool { return e.Boolean != nil })
}

// --- structural filters ---

// HasChildrenFilter filters to elements that have at least one child.
func (q QuerySet) HasChildrenFilter() QuerySet {
	return q.filter(func(e *Element) bool { return e.HasChildren() })
}

// IsLeafFilter filters to elements with no children.
func (q QuerySet) IsLeafFilter() QuerySet {
	return q.filter(func(e *Element) bool { return e.IsLeaf() })
}

// ChildCountWhere filters to elements whose child count satisfies pred.
func (q QuerySet) ChildCountWhere(pred func(int) bool) QuerySet {
	return q.filter(func(e *Element) bool { return pred(len(e.Children)) })
}

// DepthEquals filters to elements at exactly depth d.
func (q QuerySet) DepthEquals(d int) QuerySet {
	return q.filter(func(e *Element) bool { return e.Depth == d })
}

// DepthMin filters to elements at depth >= d.
func (q QuerySet) DepthMin(d int) QuerySet {
	return q.filter(func(e *Element) bool { return e.Depth >= d })
}

// DepthMax filters to elements at depth <= d.
func (q QuerySet) DepthMax(d int) QuerySet {
	return q.filter(func(e *Element) bool { return e.Depth <= d })
}

// PathEquals filters to elements whose Path equals p exactly.
func (q QuerySet) PathEquals(p string) QuerySet {
	return q.filter(func(e *Element) bool { return e.Path == p })
}

// PathMatches filters to elements whose Path matches the wildcard/regexp
// pattern.
func (q QuerySet) PathMatches(pattern string) QuerySet {
	re := compilePatternMaybeWildcard(pattern)
	return q.filter(func(e *Element) bool { return re.MatchString(e.Path) })
}

// --- advanced filters ---

// Where filters using a predicate given both the element and its index
// within q.
func (q QuerySet) Where(pred func(e *Element, index int) bool) QuerySet {
	out := make([]*Element, 0, len(q.elements))
	for i, e := range q.elements {
		if pred(e, i) {
			out = append(out, e)
		}
	}
	return newQuerySet(out)
}

// WhereAll filters to elements satisfying every predicate.
func (q QuerySet) WhereAll(preds ...func(*Element) bool) QuerySet {
	return q.filter(func(e *Element) bool {
		for _, p := range preds {
			if !p(e) {
				return false
			}
		}
		return true
	})
}

// WhereAny filters to elements satisfying at least one predicate.
func (q QuerySet) WhereAny(preds ...func(*Element) bool) QuerySet {
	return q.filter(func(e *Element) bool {
		for _, p := range preds {
			if p(e) {
				return true
			}
		}
		return false
	})
}

// SelectFirst returns a QuerySet holding at most one element: the first in
// q satisfying every predicate.
func (q QuerySet) SelectFirst(preds ...func(*Element) bool) QuerySet {
	all := q.WhereAll(preds...)
	if all.Count() == 0 {
		return newQuerySet(nil)
	}
	return newQuerySet([]*Element{all.elements[0]})
}

// WhereMatches filters to elements where every key in template, resolved
// as a dotted path (see resolveDottedPath), matches its value: a literal
// (equality, compared as strings), a *regexp.Regexp, or a
// func(any) bool predicate.
func (q QuerySet) WhereMatches(template map[string]any) QuerySet {
	return q.filter(func(e *Element) bool {
		for path, want := range template {
			got, ok := resolveDottedPath(e, path)
			if !matchesTemplateValue(got, ok, want) {
				return false
			}
		}
		return true
	})
}

func matchesTemplateValue(got any, present bool, want any) bool {
	switch w := want.(type) {
	case func(any) bool:
		return w(got)
	case *regexp.Regexp:
		return present && w.MatchString(toStringValue(got))
	default:
		return present && toStringValue(got) == toStringValue(want)
	}
}

func toStringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// resolveDottedPath resolves a dotted path against e: "name", "localName",
// "prefix", "namespaceUri", "text", "depth", "path", "numericValue",
// "booleanValue", or "attributes.<attrName>".
func resolveDottedPath(e *Element, path string) (any, bool) {
	segments := strings.SplitN(path, ".", 2)
	switch segments[0] {
	case "name":
		return e.Name, true
	case "localName":
		return e.LocalName, true
	case "prefix":
		return e.Prefix, true
	case "namespaceUri":
		return e.NamespaceURI, true
	case "text":
		return e.Text, true
	case "depth":
		return e.Depth, true
	case "path":
		return e.Path, true
	case "numericValue":
		if e.Numeric == nil {
			return nil, false
		}
		return *e.Numeric, true
	case "booleanValue":
		if e.Boolean == nil {
			return nil, false
		}
		return *e.Boolean, true
	case "attributes":
		if len(segments) < 2 {
			return nil, false
		}
		return e.GetAttribute(segments[1])
	default:
		return nil, false
	}
}
