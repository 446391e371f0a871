// Package xdom parses XML into an in-memory Dynamic Element Tree and
// exposes it through a fluent, immutable QuerySet, with an XPath 1.0
// subset evaluator for predicate-driven selection.
//
// A typical session parses a document, then chains selection, filter and
// navigation calls:
//
//	q, err := xdom.Parse(document)
//	items := q.ToArray()[0].Query().Find("item").NumericGreaterThan(10)
//	for _, e := range items.ToArray() {
//	    ...
//	}
package xdom
