package xdom

import "strconv"

// noNamespaceBucket is the reserved GroupByNamespace/GroupByAttribute key
// used for elements with no namespace prefix / no such attribute.
const noNamespaceBucket = "(none)"

func groupInto(elements []*Element, keyFn func(*Element) string) map[string]QuerySet {
	order := make(map[string][]*Element)
	var keys []string
	for _, e := range elements {
		k := keyFn(e)
		if _, ok := order[k]; !ok {
			keys = append(keys, k)
		}
		order[k] = append(order[k], e)
	}
	out := make(map[string]QuerySet, len(order))
	for _, k := range keys {
		out[k] = newQuerySet(order[k])
	}
	return out
}

// GroupByName groups elements by Name.
func (q QuerySet) GroupByName() map[string]QuerySet {
	return groupInto(q.elements, func(e *Element) string { return e.Name })
}

// GroupByNamespace groups elements by Prefix, using noNamespaceBucket for
// elements with no prefix.
func (q QuerySet) GroupByNamespace() map[string]QuerySet {
	return groupInto(q.elements, func(e *Element) string {
		if e.Prefix == "" {
			return noNamespaceBucket
		}
		return e.Prefix
	})
}

// GroupByAttribute groups elements by the value of attribute name, using
// noNamespaceBucket for elements missing it.
func (q QuerySet) GroupByAttribute(name string) map[string]QuerySet {
	return groupInto(q.elements, func(e *Element) string {
		if v, ok := e.GetAttribute(name); ok {
			return v
		}
		return noNamespaceBucket
	})
}

// GroupByDepth groups elements by Depth.
func (q QuerySet) GroupByDepth() map[string]QuerySet {
	return groupInto(q.elements, func(e *Element) string { return strconv.Itoa(e.Depth) })
}

// GroupBy groups elements by an arbitrary string key selector.
func (q QuerySet) GroupBy(selector func(*Element) string) map[string]QuerySet {
	return groupInto(q.elements, selector)
}
