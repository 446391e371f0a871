package xdom

// Xpath evaluates expr (an XPath 1.0 subset expression, see spec.md §6)
// against each element of q as the context node and appends the resulting
// node-sets one context after another, dropping duplicates; a `|` union is
// put in document order. It returns a SyntaxError for a malformed
// expression, or an InternalError if the expression does not select nodes
// (e.g. a bare numeric or string expression).
func (q QuerySet) Xpath(expression string) (QuerySet, error) {
	compiled, err := getCompiledExpr(expression)
	if err != nil {
		return QuerySet{}, err
	}
	if compiled.kind != exprPath && compiled.kind != exprUnion {
		return QuerySet{}, newError(InternalError, "expression %q does not select nodes", expression)
	}

	var all []*Element
	for _, e := range q.elements {
		root := documentRoot(e)
		v, err := evalValue(compiled, evalCtx{node: e, position: 1, size: 1, root: root})
		if err != nil {
			return QuerySet{}, err
		}
		all = append(all, v.nodes...)
	}
	return newQuerySet(dedupeInOrder(all)), nil
}

// XpathFirst is shorthand for Xpath(expression).ToArray()[0], returning nil
// (with no error) when the expression matches nothing.
func (q QuerySet) XpathFirst(expression string) (*Element, error) {
	result, err := q.Xpath(expression)
	if err != nil {
		return nil, err
	}
	if result.Count() == 0 {
		return nil, nil
	}
	return result.elements[0], nil
}
