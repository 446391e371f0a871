package xdom

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

type xvalKind int

const (
	xvNodeSet xvalKind = iota
	xvString
	xvNumber
	xvBoolean
)

type xvalue struct {
	kind  xvalKind
	nodes []*Element
	str   string
	num   float64
	boo   bool
}

type evalCtx struct {
	node     *Element
	position int
	size     int
	root     *Element
}

// nodeStringValue is the XPath string-value of a node: its own text plus
// every descendant's text, in document order (mirrors AllText).
func nodeStringValue(e *Element) string {
	if e.Name == "#text" || e.Name == "#comment" {
		return e.Text
	}
	var b strings.Builder
	allTextInto(e, &b)
	return b.String()
}

func textPseudoNodes(c *Element) []*Element {
	var out []*Element
	if c.hasText && c.Text != "" {
		out = append(out, &Element{Name: "#text", Text: c.Text, hasText: true, Parent: c})
	}
	for _, tn := range c.TextNodes {
		out = append(out, &Element{Name: "#text", Text: tn, hasText: true, Parent: c})
	}
	return out
}

func commentPseudoNodes(c *Element) []*Element {
	var out []*Element
	for _, cm := range c.Comments {
		out = append(out, &Element{Name: "#comment", Text: cm, hasText: true, Parent: c})
	}
	return out
}

func elementMatchesTest(e *Element, s step) bool {
	switch s.test {
	case testStar, testNode:
		return true
	case testName:
		return e.Name == s.testValue || e.LocalName == s.testValue
	default:
		return false
	}
}

func filterElements(elems []*Element, s step) []*Element {
	var out []*Element
	for _, e := range elems {
		if elementMatchesTest(e, s) {
			out = append(out, e)
		}
	}
	return out
}

func childAxisNodes(c *Element, s step) []*Element {
	switch s.test {
	case testText:
		return textPseudoNodes(c)
	case testComment:
		return commentPseudoNodes(c)
	default:
		return filterElements(c.Children, s)
	}
}

func attributeAxisNodes(c *Element, s step) []*Element {
	var out []*Element
	for _, a := range c.Attributes {
		if s.test == testStar || (s.test == testName && a.Name == s.testValue) {
			out = append(out, &Element{Name: a.Name, LocalName: a.Name, Text: a.Value, hasText: true, Parent: c})
		}
	}
	return out
}

func ancestorsOf(c *Element, includeSelf bool) []*Element {
	var chain []*Element
	for p := c.Parent; p != nil; p = p.Parent {
		chain = append(chain, p)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	if includeSelf {
		chain = append(chain, c)
	}
	return chain
}

func siblingsAfter(c *Element) []*Element {
	if c.Parent == nil {
		return nil
	}
	idx := c.IndexAmongAllSiblings
	if idx+1 >= len(c.Parent.Children) {
		return nil
	}
	return append([]*Element(nil), c.Parent.Children[idx+1:]...)
}

func siblingsBefore(c *Element) []*Element {
	if c.Parent == nil {
		return nil
	}
	idx := c.IndexAmongAllSiblings
	return append([]*Element(nil), c.Parent.Children[:idx]...)
}

func isDescendantOf(n, anc *Element) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == anc {
			return true
		}
	}
	return false
}

// followingNodes returns every node after c in document order, excluding
// c's own descendants, per the XPath 1.0 "following" axis.
func followingNodes(c *Element) []*Element {
	root := documentRoot(c)
	all := flattenPreOrder(root)
	idx := indexOfNode(all, c)
	if idx < 0 {
		return nil
	}
	var out []*Element
	for _, n := range all[idx+1:] {
		if !isDescendantOf(n, c) {
			out = append(out, n)
		}
	}
	return out
}

// precedingNodes returns every node before c in document order, excluding
// c's own ancestors, per the XPath 1.0 "preceding" axis.
func precedingNodes(c *Element) []*Element {
	root := documentRoot(c)
	all := flattenPreOrder(root)
	idx := indexOfNode(all, c)
	if idx < 0 {
		return nil
	}
	var out []*Element
	for _, n := range all[:idx] {
		if !isDescendantOf(c, n) {
			out = append(out, n)
		}
	}
	return out
}

func indexOfNode(all []*Element, c *Element) int {
	for i, n := range all {
		if n == c {
			return i
		}
	}
	return -1
}

func descendantTextAware(c *Element, includeSelf bool, s step) []*Element {
	var elems []*Element
	var walk func(n *Element, isSelf bool)
	walk = func(n *Element, isSelf bool) {
		if !isSelf || includeSelf {
			elems = append(elems, n)
		}
		for _, ch := range n.Children {
			walk(ch, false)
		}
	}
	walk(c, true)
	switch s.test {
	case testText:
		var out []*Element
		for _, e := range elems {
			out = append(out, textPseudoNodes(e)...)
		}
		return out
	case testComment:
		var out []*Element
		for _, e := range elems {
			out = append(out, commentPseudoNodes(e)...)
		}
		return out
	default:
		return filterElements(elems, s)
	}
}

func stepAxisNodes(c *Element, s step) []*Element {
	switch s.axis {
	case axisChild:
		return childAxisNodes(c, s)
	case axisAttribute:
		return attributeAxisNodes(c, s)
	case axisSelf:
		switch s.test {
		case testText:
			return textPseudoNodes(c)
		case testComment:
			return commentPseudoNodes(c)
		default:
			if elementMatchesTest(c, s) {
				return []*Element{c}
			}
			return nil
		}
	case axisParent:
		if c.Parent != nil && elementMatchesTest(c.Parent, s) {
			return []*Element{c.Parent}
		}
		return nil
	case axisDescendant:
		return descendantTextAware(c, false, s)
	case axisDescendantOrSelf:
		return descendantTextAware(c, true, s)
	case axisAncestor:
		return filterElements(ancestorsOf(c, false), s)
	case axisAncestorOrSelf:
		return filterElements(ancestorsOf(c, true), s)
	case axisFollowingSibling:
		return filterElements(siblingsAfter(c), s)
	case axisPrecedingSibling:
		return filterElements(siblingsBefore(c), s)
	case axisFollowing:
		return filterElements(followingNodes(c), s)
	case axisPreceding:
		return filterElements(precedingNodes(c), s)
	}
	return nil
}

func applyPredicates(nodes []*Element, preds []expr, root *Element) ([]*Element, error) {
	cur := nodes
	for i := range preds {
		pred := preds[i]
		var out []*Element
		size := len(cur)
		for idx, n := range cur {
			ctx := evalCtx{node: n, position: idx + 1, size: size, root: root}
			v, err := evalValue(&pred, ctx)
			if err != nil {
				return nil, err
			}
			if predicateTrue(v, ctx) {
				out = append(out, n)
			}
		}
		cur = out
	}
	return cur, nil
}

func predicateTrue(v xvalue, ctx evalCtx) bool {
	if v.kind == xvNumber {
		return float64(ctx.position) == v.num
	}
	return toBoolean(v)
}

func evalSteps(steps []step, in []*Element, root *Element) ([]*Element, error) {
	cur := in
	for _, s := range steps {
		var next []*Element
		for _, c := range cur {
			candidates := stepAxisNodes(c, s)
			filtered, err := applyPredicates(candidates, s.predicates, root)
			if err != nil {
				return nil, err
			}
			next = append(next, filtered...)
		}
		cur = dedupeInOrder(next)
	}
	return cur, nil
}

func evalPathExpr(pe *pathExpr, context []*Element, root *Element) ([]*Element, error) {
	var start []*Element
	if pe.absolute {
		r := root
		if r == nil && len(context) > 0 {
			r = documentRoot(context[0])
		}
		if r == nil {
			return nil, nil
		}
		if len(pe.steps) == 0 {
			return []*Element{r}, nil
		}
		// A detached document node whose only child is r, so the first step
		// of "/a" or "//a" can select r itself along the child axis.
		doc := &Element{Children: []*Element{r}}
		start = []*Element{doc}
		if pe.descendant {
			start = append(start, descendantTextAware(r, true, step{axis: axisDescendantOrSelf, test: testNode})...)
		}
		out, err := evalSteps(pe.steps, start, root)
		if len(out) > 0 && out[0] == doc {
			out = out[1:]
		}
		return out, err
	} else {
		start = context
	}
	return evalSteps(pe.steps, start, root)
}

func rootOrCompute(ctx evalCtx) *Element {
	if ctx.root != nil {
		return ctx.root
	}
	if ctx.node != nil {
		return documentRoot(ctx.node)
	}
	return nil
}

func evalValue(e *expr, ctx evalCtx) (xvalue, error) {
	switch e.kind {
	case exprPath:
		var cset []*Element
		if ctx.node != nil {
			cset = []*Element{ctx.node}
		}
		nodes, err := evalPathExpr(e.path, cset, rootOrCompute(ctx))
		if err != nil {
			return xvalue{}, err
		}
		return xvalue{kind: xvNodeSet, nodes: nodes}, nil
	case exprUnion:
		left, err := evalValue(e.unionLeft, ctx)
		if err != nil {
			return xvalue{}, err
		}
		right, err := evalValue(e.unionRight, ctx)
		if err != nil {
			return xvalue{}, err
		}
		combined := dedupeInOrder(append(append([]*Element(nil), left.nodes...), right.nodes...))
		// Document order; text, comment and attribute pseudo-nodes take the
		// position of the element that owns them.
		rank := make(map[*Element]int)
		if r := rootOrCompute(ctx); r != nil && len(combined) > 1 {
			for i, n := range flattenPreOrder(r) {
				rank[n] = i
			}
		}
		pos := func(n *Element) int {
			if i, ok := rank[n]; ok || n.Parent == nil {
				return i
			}
			return rank[n.Parent]
		}
		sort.SliceStable(combined, func(i, j int) bool { return pos(combined[i]) < pos(combined[j]) })
		return xvalue{kind: xvNodeSet, nodes: combined}, nil
	case exprBinary:
		return evalBinary(e, ctx)
	case exprUnaryMinus:
		v, err := evalValue(e.unaryOperand, ctx)
		if err != nil {
			return xvalue{}, err
		}
		return xvalue{kind: xvNumber, num: -toNumber(v)}, nil
	case exprNumber:
		return xvalue{kind: xvNumber, num: e.number}, nil
	case exprLiteral:
		return xvalue{kind: xvString, str: e.literal}, nil
	case exprFunctionCall:
		return evalFunction(e, ctx)
	}
	return xvalue{}, newError(InternalError, "unreachable expression kind")
}

func evalBinary(e *expr, ctx evalCtx) (xvalue, error) {
	switch e.binOp {
	case "and":
		l, err := evalValue(e.binLeft, ctx)
		if err != nil {
			return xvalue{}, err
		}
		if !toBoolean(l) {
			return xvalue{kind: xvBoolean, boo: false}, nil
		}
		r, err := evalValue(e.binRight, ctx)
		if err != nil {
			return xvalue{}, err
		}
		return xvalue{kind: xvBoolean, boo: toBoolean(r)}, nil
	case "or":
		l, err := evalValue(e.binLeft, ctx)
		if err != nil {
			return xvalue{}, err
		}
		if toBoolean(l) {
			return xvalue{kind: xvBoolean, boo: true}, nil
		}
		r, err := evalValue(e.binRight, ctx)
		if err != nil {
			return xvalue{}, err
		}
		return xvalue{kind: xvBoolean, boo: toBoolean(r)}, nil
	}

	l, err := evalValue(e.binLeft, ctx)
	if err != nil {
		return xvalue{}, err
	}
	r, err := evalValue(e.binRight, ctx)
	if err != nil {
		return xvalue{}, err
	}
	switch e.binOp {
	case "=":
		return xvalue{kind: xvBoolean, boo: compareEquality(l, r, false)}, nil
	case "!=":
		return xvalue{kind: xvBoolean, boo: compareEquality(l, r, true)}, nil
	case "<", ">", "<=", ">=":
		return xvalue{kind: xvBoolean, boo: compareAny(l, r, e.binOp)}, nil
	case "+":
		return xvalue{kind: xvNumber, num: toNumber(l) + toNumber(r)}, nil
	case "-":
		return xvalue{kind: xvNumber, num: toNumber(l) - toNumber(r)}, nil
	case "*":
		return xvalue{kind: xvNumber, num: toNumber(l) * toNumber(r)}, nil
	case "div":
		return xvalue{kind: xvNumber, num: toNumber(l) / toNumber(r)}, nil
	case "mod":
		return xvalue{kind: xvNumber, num: math.Mod(toNumber(l), toNumber(r))}, nil
	}
	return xvalue{}, newError(InternalError, "unknown operator %q", e.binOp)
}

func toBoolean(v xvalue) bool {
	switch v.kind {
	case xvBoolean:
		return v.boo
	case xvNumber:
		return v.num != 0 && !math.IsNaN(v.num)
	case xvString:
		return v.str != ""
	case xvNodeSet:
		return len(v.nodes) > 0
	}
	return false
}

func toNumber(v xvalue) float64 {
	switch v.kind {
	case xvNumber:
		return v.num
	case xvBoolean:
		if v.boo {
			return 1
		}
		return 0
	case xvString:
		n, ok := parseNumericLiteral(strings.TrimSpace(v.str))
		if !ok {
			return math.NaN()
		}
		return n
	case xvNodeSet:
		if len(v.nodes) == 0 {
			return math.NaN()
		}
		return toNumber(xvalue{kind: xvString, str: nodeStringValue(v.nodes[0])})
	}
	return math.NaN()
}

func toStringVal(v xvalue) string {
	switch v.kind {
	case xvString:
		return v.str
	case xvNumber:
		return formatXPathNumber(v.num)
	case xvBoolean:
		if v.boo {
			return "true"
		}
		return "false"
	case xvNodeSet:
		if len(v.nodes) == 0 {
			return ""
		}
		return nodeStringValue(v.nodes[0])
	}
	return ""
}

func formatXPathNumber(n float64) string {
	if math.IsNaN(n) {
		return "NaN"
	}
	if n == math.Trunc(n) && !math.IsInf(n, 0) {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// scalarPairs expands a node-set into its string values, so relational
// comparison can try every node against the other operand; scalars pass
// through unchanged.
func scalarPairs(v xvalue) []xvalue {
	if v.kind == xvNodeSet {
		out := make([]xvalue, 0, len(v.nodes))
		for _, n := range v.nodes {
			out = append(out, xvalue{kind: xvString, str: nodeStringValue(n)})
		}
		return out
	}
	return []xvalue{v}
}

// finiteNumber reports the numeric value of v and whether it parses as a
// finite number at all, since relational comparison falls back to string
// comparison rather than coercing everything through NaN.
func finiteNumber(v xvalue) (float64, bool) {
	switch v.kind {
	case xvNumber:
		return v.num, !math.IsNaN(v.num) && !math.IsInf(v.num, 0)
	case xvBoolean:
		if v.boo {
			return 1, true
		}
		return 0, true
	case xvString:
		n, ok := parseNumericLiteral(strings.TrimSpace(v.str))
		return n, ok
	}
	return 0, false
}

func relNumeric(op string, a, b float64) bool {
	switch op {
	case "<":
		return a < b
	case ">":
		return a > b
	case "<=":
		return a <= b
	case ">=":
		return a >= b
	}
	return false
}

func relString(op string, a, b string) bool {
	c := strings.Compare(a, b)
	switch op {
	case "<":
		return c < 0
	case ">":
		return c > 0
	case "<=":
		return c <= 0
	case ">=":
		return c >= 0
	}
	return false
}

// compareAny applies op to every pair drawn from l and r's scalar values
// (expanding node-sets), following the same node-set-vs-scalar "any pair
// satisfies" rule rawEqual uses for = and !=. Each pair is compared
// numerically when both sides parse as finite numbers, and as strings
// otherwise.
func compareAny(l, r xvalue, op string) bool {
	for _, a := range scalarPairs(l) {
		for _, b := range scalarPairs(r) {
			an, aok := finiteNumber(a)
			bn, bok := finiteNumber(b)
			if aok && bok {
				if relNumeric(op, an, bn) {
					return true
				}
				continue
			}
			if relString(op, toStringVal(a), toStringVal(b)) {
				return true
			}
		}
	}
	return false
}

func compareEquality(l, r xvalue, negate bool) bool {
	eq := rawEqual(l, r)
	if negate {
		return !eq
	}
	return eq
}

func rawEqual(l, r xvalue) bool {
	if l.kind == xvNodeSet || r.kind == xvNodeSet {
		if l.kind != xvNodeSet {
			l, r = r, l
		}
		switch r.kind {
		case xvNodeSet:
			for _, ln := range l.nodes {
				for _, rn := range r.nodes {
					if nodeStringValue(ln) == nodeStringValue(rn) {
						return true
					}
				}
			}
			return false
		case xvNumber:
			for _, n := range l.nodes {
				if v, ok := parseNumericLiteral(strings.TrimSpace(nodeStringValue(n))); ok && v == r.num {
					return true
				}
			}
			return false
		case xvString:
			for _, n := range l.nodes {
				if nodeStringValue(n) == r.str {
					return true
				}
			}
			return false
		case xvBoolean:
			return toBoolean(l) == r.boo
		}
		return false
	}
	if l.kind == xvBoolean || r.kind == xvBoolean {
		return toBoolean(l) == toBoolean(r)
	}
	if l.kind == xvNumber || r.kind == xvNumber {
		return toNumber(l) == toNumber(r)
	}
	return toStringVal(l) == toStringVal(r)
}
