package xdom

import (
	"math"
	"strings"
)

// evalFunction dispatches the XPath core function library this subset
// supports (spec.md §6). Unknown names fail with a SyntaxError rather than
// an InternalError, since an unsupported function is an expression-author
// mistake, not an engine bug.
func evalFunction(e *expr, ctx evalCtx) (xvalue, error) {
	args := e.funcArgs
	switch e.funcName {
	case "position":
		return xvalue{kind: xvNumber, num: float64(ctx.position)}, nil
	case "last":
		return xvalue{kind: xvNumber, num: float64(ctx.size)}, nil
	case "count":
		if len(args) != 1 {
			return xvalue{}, newError(SyntaxError, "count() takes exactly one argument")
		}
		v, err := evalValue(&args[0], ctx)
		if err != nil {
			return xvalue{}, err
		}
		return xvalue{kind: xvNumber, num: float64(len(v.nodes))}, nil
	case "sum":
		if len(args) != 1 {
			return xvalue{}, newError(SyntaxError, "sum() takes exactly one argument")
		}
		v, err := evalValue(&args[0], ctx)
		if err != nil {
			return xvalue{}, err
		}
		total := 0.0
		for _, n := range v.nodes {
			if num, ok := parseNumericLiteral(strings.TrimSpace(nodeStringValue(n))); ok {
				total += num
			}
		}
		return xvalue{kind: xvNumber, num: total}, nil
	case "string-length":
		s, err := argOrContextString(args, ctx)
		if err != nil {
			return xvalue{}, err
		}
		return xvalue{kind: xvNumber, num: float64(len([]rune(s)))}, nil
	case "normalize-space":
		s, err := argOrContextString(args, ctx)
		if err != nil {
			return xvalue{}, err
		}
		return xvalue{kind: xvString, str: strings.Join(strings.Fields(s), " ")}, nil
	case "substring":
		if len(args) < 2 || len(args) > 3 {
			return xvalue{}, newError(SyntaxError, "substring() takes 2 or 3 arguments")
		}
		s, err := evalArgString(&args[0], ctx)
		if err != nil {
			return xvalue{}, err
		}
		start, err := evalArgNumber(&args[1], ctx)
		if err != nil {
			return xvalue{}, err
		}
		return xvalue{kind: xvString, str: xpathSubstring(s, start, args, ctx)}, nil
	case "concat":
		if len(args) < 2 {
			return xvalue{}, newError(SyntaxError, "concat() takes at least two arguments")
		}
		var b strings.Builder
		for i := range args {
			s, err := evalArgString(&args[i], ctx)
			if err != nil {
				return xvalue{}, err
			}
			b.WriteString(s)
		}
		return xvalue{kind: xvString, str: b.String()}, nil
	case "translate":
		if len(args) != 3 {
			return xvalue{}, newError(SyntaxError, "translate() takes exactly three arguments")
		}
		s, err := evalArgString(&args[0], ctx)
		if err != nil {
			return xvalue{}, err
		}
		from, err := evalArgString(&args[1], ctx)
		if err != nil {
			return xvalue{}, err
		}
		to, err := evalArgString(&args[2], ctx)
		if err != nil {
			return xvalue{}, err
		}
		return xvalue{kind: xvString, str: xpathTranslate(s, from, to)}, nil
	case "substring-before":
		l, r, err := evalArgStringPair(args, ctx)
		if err != nil {
			return xvalue{}, err
		}
		if i := strings.Index(l, r); i >= 0 {
			return xvalue{kind: xvString, str: l[:i]}, nil
		}
		return xvalue{kind: xvString, str: ""}, nil
	case "substring-after":
		l, r, err := evalArgStringPair(args, ctx)
		if err != nil {
			return xvalue{}, err
		}
		if i := strings.Index(l, r); i >= 0 {
			return xvalue{kind: xvString, str: l[i+len(r):]}, nil
		}
		return xvalue{kind: xvString, str: ""}, nil
	case "number":
		v, err := argOrContextValue(args, ctx)
		if err != nil {
			return xvalue{}, err
		}
		return xvalue{kind: xvNumber, num: toNumber(v)}, nil
	case "round":
		n, err := evalArgNumber(&args[0], ctx)
		if err != nil {
			return xvalue{}, err
		}
		return xvalue{kind: xvNumber, num: math.Floor(n + 0.5)}, nil
	case "floor":
		n, err := evalArgNumber(&args[0], ctx)
		if err != nil {
			return xvalue{}, err
		}
		return xvalue{kind: xvNumber, num: math.Floor(n)}, nil
	case "ceiling":
		n, err := evalArgNumber(&args[0], ctx)
		if err != nil {
			return xvalue{}, err
		}
		return xvalue{kind: xvNumber, num: math.Ceil(n)}, nil
	case "contains":
		l, r, err := evalArgStringPair(args, ctx)
		if err != nil {
			return xvalue{}, err
		}
		return xvalue{kind: xvBoolean, boo: strings.Contains(l, r)}, nil
	case "starts-with":
		l, r, err := evalArgStringPair(args, ctx)
		if err != nil {
			return xvalue{}, err
		}
		return xvalue{kind: xvBoolean, boo: strings.HasPrefix(l, r)}, nil
	case "ends-with":
		l, r, err := evalArgStringPair(args, ctx)
		if err != nil {
			return xvalue{}, err
		}
		return xvalue{kind: xvBoolean, boo: strings.HasSuffix(l, r)}, nil
	case "lang":
		if len(args) != 1 {
			return xvalue{}, newError(SyntaxError, "lang() takes exactly one argument")
		}
		want, err := evalArgString(&args[0], ctx)
		if err != nil {
			return xvalue{}, err
		}
		return xvalue{kind: xvBoolean, boo: matchesLang(ctx.node, want)}, nil
	case "text":
		if ctx.node == nil {
			return xvalue{kind: xvString, str: ""}, nil
		}
		return xvalue{kind: xvString, str: ctx.node.Text}, nil
	case "name":
		n, err := argOrContextNode(args, ctx)
		if err != nil {
			return xvalue{}, err
		}
		if n == nil {
			return xvalue{kind: xvString, str: ""}, nil
		}
		return xvalue{kind: xvString, str: n.Name}, nil
	case "local-name":
		n, err := argOrContextNode(args, ctx)
		if err != nil {
			return xvalue{}, err
		}
		if n == nil {
			return xvalue{kind: xvString, str: ""}, nil
		}
		if n.LocalName != "" {
			return xvalue{kind: xvString, str: n.LocalName}, nil
		}
		return xvalue{kind: xvString, str: n.Name}, nil
	case "boolean":
		if len(args) != 1 {
			return xvalue{}, newError(SyntaxError, "boolean() takes exactly one argument")
		}
		v, err := evalValue(&args[0], ctx)
		if err != nil {
			return xvalue{}, err
		}
		return xvalue{kind: xvBoolean, boo: toBoolean(v)}, nil
	case "not":
		if len(args) != 1 {
			return xvalue{}, newError(SyntaxError, "not() takes exactly one argument")
		}
		v, err := evalValue(&args[0], ctx)
		if err != nil {
			return xvalue{}, err
		}
		return xvalue{kind: xvBoolean, boo: !toBoolean(v)}, nil
	}
	return xvalue{}, newError(SyntaxError, "unknown function %q", e.funcName)
}

func evalArgString(e *expr, ctx evalCtx) (string, error) {
	v, err := evalValue(e, ctx)
	if err != nil {
		return "", err
	}
	return toStringVal(v), nil
}

func evalArgNumber(e *expr, ctx evalCtx) (float64, error) {
	v, err := evalValue(e, ctx)
	if err != nil {
		return 0, err
	}
	return toNumber(v), nil
}

func evalArgStringPair(args []expr, ctx evalCtx) (string, string, error) {
	if len(args) != 2 {
		return "", "", newError(SyntaxError, "expected exactly two arguments")
	}
	l, err := evalArgString(&args[0], ctx)
	if err != nil {
		return "", "", err
	}
	r, err := evalArgString(&args[1], ctx)
	if err != nil {
		return "", "", err
	}
	return l, r, nil
}

func argOrContextString(args []expr, ctx evalCtx) (string, error) {
	if len(args) > 0 {
		return evalArgString(&args[0], ctx)
	}
	if ctx.node == nil {
		return "", nil
	}
	return nodeStringValue(ctx.node), nil
}

func argOrContextValue(args []expr, ctx evalCtx) (xvalue, error) {
	if len(args) > 0 {
		return evalValue(&args[0], ctx)
	}
	if ctx.node == nil {
		return xvalue{kind: xvString, str: ""}, nil
	}
	return xvalue{kind: xvString, str: nodeStringValue(ctx.node)}, nil
}

func argOrContextNode(args []expr, ctx evalCtx) (*Element, error) {
	if len(args) > 0 {
		v, err := evalValue(&args[0], ctx)
		if err != nil {
			return nil, err
		}
		if len(v.nodes) == 0 {
			return nil, nil
		}
		return v.nodes[0], nil
	}
	return ctx.node, nil
}

// xpathSubstring implements the XPath 1.0 rounding rule: start and length
// are rounded to the nearest integer before slicing.
func xpathSubstring(s string, start float64, args []expr, ctx evalCtx) string {
	runes := []rune(s)
	startIdx := int(math.Floor(start + 0.5))
	var endIdx int
	if len(args) == 3 {
		length, err := evalArgNumber(&args[2], ctx)
		if err != nil {
			return ""
		}
		endIdx = startIdx + int(math.Floor(length+0.5))
	} else {
		endIdx = len(runes) + 1
	}
	if startIdx < 1 {
		startIdx = 1
	}
	if endIdx > len(runes)+1 {
		endIdx = len(runes) + 1
	}
	if startIdx >= endIdx || startIdx > len(runes) {
		return ""
	}
	return string(runes[startIdx-1 : endIdx-1])
}

func xpathTranslate(s, from, to string) string {
	fromRunes := []rune(from)
	toRunes := []rune(to)
	mapping := make(map[rune]rune, len(fromRunes))
	dropped := make(map[rune]bool)
	for i, r := range fromRunes {
		if i < len(toRunes) {
			mapping[r] = toRunes[i]
		} else {
			dropped[r] = true
		}
	}
	var b strings.Builder
	for _, r := range s {
		if dropped[r] {
			continue
		}
		if replacement, ok := mapping[r]; ok {
			b.WriteRune(replacement)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func matchesLang(node *Element, want string) bool {
	want = strings.ToLower(want)
	for e := node; e != nil; e = e.Parent {
		if v, ok := e.GetAttribute("xml:lang"); ok {
			v = strings.ToLower(v)
			return v == want || strings.HasPrefix(v, want+"-")
		}
	}
	return false
}
