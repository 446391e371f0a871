package xdom

// ToJSONOptions configures Element.toJSON / QuerySet.ToJSON.
type ToJSONOptions struct {
	IncludeAttributes bool
	SimplifyLeaves    bool // a leaf with only text collapses to its raw string/number/bool value
	FlattenSingle     bool // a child name occurring exactly once is not wrapped in a single-element array
}

// toJSON converts e into a plain Go value (map[string]any, []any, string,
// float64, bool, or nil) suitable for json.Marshal.
func (e *Element) toJSON(opts ToJSONOptions) any {
	leaf := len(e.Children) == 0

	if leaf && opts.SimplifyLeaves {
		if len(e.Attributes) == 0 || !opts.IncludeAttributes {
			return leafValue(e)
		}
	}

	obj := make(map[string]any)

	if opts.IncludeAttributes && len(e.Attributes) > 0 {
		attrs := make(map[string]any, len(e.Attributes))
		for _, a := range e.Attributes {
			attrs[a.Name] = a.Value
		}
		obj["@attributes"] = attrs
	}

	if leaf {
		obj["#text"] = leafValue(e)
		return obj
	}

	byName := make(map[string][]any)
	var order []string
	for _, c := range e.Children {
		if _, ok := byName[c.Name]; !ok {
			order = append(order, c.Name)
		}
		byName[c.Name] = append(byName[c.Name], c.toJSON(opts))
	}
	for _, name := range order {
		values := byName[name]
		if opts.FlattenSingle && len(values) == 1 {
			obj[name] = values[0]
		} else {
			obj[name] = values
		}
	}

	if e.Text != "" {
		obj["#text"] = leafValue(e)
	}

	return obj
}

// leafValue returns e's auto-typed scalar value: Boolean if set, else
// Numeric if set, else the raw Text.
func leafValue(e *Element) any {
	if e.Boolean != nil {
		return *e.Boolean
	}
	if e.Numeric != nil {
		return *e.Numeric
	}
	return e.Text
}
