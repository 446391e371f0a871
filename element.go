package xdom

import "strings"

// reservedDefaultNS is the map key used for the default (unprefixed)
// namespace in XmlnsDeclarations, and wherever a namespace prefix bucket
// needs a "no prefix" slot.
const reservedDefaultNS = ""

// Attribute is one name/value pair, kept in source order on Element.
type Attribute struct {
	Name  string
	Value string
}

// Element is the single node type of the Dynamic Element Tree (DET). See
// spec.md §3 for the field-by-field contract and invariants.
type Element struct {
	Name         string
	Prefix       string
	LocalName    string
	NamespaceURI string

	XmlnsDeclarations map[string]string
	xmlnsOrder        []string // insertion order of XmlnsDeclarations keys, for toXml
	Attributes        []Attribute

	Text     string
	RawText  string
	hasText  bool
	rawKept  bool
	Numeric  *float64
	Boolean  *bool

	TextNodes []string
	Comments  []string
	Children  []*Element
	Parent    *Element

	// contentOrder preserves the true document-order interleaving of text
	// fragments (including CDATA bodies) and child elements within mixed
	// content, so AllText can reconstruct exact concatenation order even
	// though TextNodes and Children are stored as separate slices.
	contentOrder []contentPiece

	Depth                 int
	Path                  string
	IndexInParent         int // position among same-name siblings (legacy name)
	IndexAmongAllSiblings int // position among all siblings, == index in parent.Children

	Line, Column int // only set by ParseWithPositions; zero otherwise
}

// contentPiece is one entry of an Element's mixed-content interleaving: a
// text/CDATA fragment or a child element.
type contentPiece struct {
	text    string
	child   *Element
	isChild bool
}

// allTextInto appends e's own text and all descendants' text, in true
// document order, to b.
func allTextInto(e *Element, b *strings.Builder) {
	if len(e.contentOrder) > 0 {
		for _, p := range e.contentOrder {
			if p.isChild {
				allTextInto(p.child, b)
			} else {
				b.WriteString(p.text)
			}
		}
		return
	}
	if e.hasText {
		b.WriteString(e.Text)
	}
	for _, c := range e.Children {
		allTextInto(c, b)
	}
}

// HasChildren reports whether the element owns any children.
func (e *Element) HasChildren() bool { return len(e.Children) > 0 }

// IsLeaf reports the logical negation of HasChildren.
func (e *Element) IsLeaf() bool { return len(e.Children) == 0 }

// Siblings returns the other children of e's parent, in document order. It
// is a computed convenience view, not an owned collection.
func (e *Element) Siblings() []*Element {
	if e.Parent == nil {
		return nil
	}
	out := make([]*Element, 0, len(e.Parent.Children)-1)
	for _, c := range e.Parent.Children {
		if c != e {
			out = append(out, c)
		}
	}
	return out
}

// GetAttribute returns the value of the named attribute and whether it was
// present.
func (e *Element) GetAttribute(name string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func splitQualified(name string) (prefix, local string) {
	if i := strings.IndexByte(name, ':'); i > 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

func parseAutoTypes(text string, parseNumbers, parseBooleans bool) (*float64, *bool) {
	var num *float64
	var boo *bool
	if parseNumbers {
		if v, ok := parseNumericLiteral(text); ok {
			num = &v
		}
	}
	if parseBooleans {
		switch strings.ToLower(text) {
		case "true":
			v := true
			boo = &v
		case "false":
			v := false
			boo = &v
		}
	}
	return num, boo
}

// newElement constructs an Element with name parsed into prefix/localName,
// but does not attach it to any parent.
func newElement(name string) *Element {
	prefix, local := splitQualified(name)
	return &Element{
		Name:      name,
		Prefix:    prefix,
		LocalName: local,
	}
}

// rewritePathAndDepth recursively recomputes Depth/Path for e and its
// descendants, assuming e.Parent (if any) already has correct Depth/Path.
func rewritePathAndDepth(e *Element) {
	if e.Parent == nil {
		e.Depth = 0
		e.Path = e.Name
	} else {
		e.Depth = e.Parent.Depth + 1
		e.Path = e.Parent.Path + "/" + e.Name
	}
	for _, c := range e.Children {
		rewritePathAndDepth(c)
	}
}

// reindex recomputes IndexInParent (same-name position) and
// IndexAmongAllSiblings (position in Children) for every child of parent.
func reindex(parent *Element) {
	nameCounts := make(map[string]int)
	for i, c := range parent.Children {
		c.IndexAmongAllSiblings = i
		c.IndexInParent = nameCounts[c.Name]
		nameCounts[c.Name]++
	}
}

// CreateChildData is the payload accepted by CreateChild.
type CreateChildData struct {
	Name         string
	Prefix       string
	NamespaceURI string
	Text         string
	Attributes   []Attribute
	Children     []*Element
}

// AddChild appends c as the last child of e, fixing up parent/depth/path and
// index bookkeeping, including recursively for c's own descendants.
func (e *Element) AddChild(c *Element) {
	c.Parent = e
	e.Children = append(e.Children, c)
	rewritePathAndDepth(c)
	reindex(e)
}

// CreateChild builds a new Element from data, auto-parsing Numeric/Boolean
// from Text the same way the parser does, and appends it via AddChild.
func (e *Element) CreateChild(data CreateChildData) *Element {
	child := newElement(data.Name)
	if data.Prefix != "" {
		child.Prefix = data.Prefix
	}
	child.NamespaceURI = data.NamespaceURI
	if data.Text != "" {
		child.Text = data.Text
		child.hasText = true
		child.Numeric, child.Boolean = parseAutoTypes(data.Text, true, true)
	}
	if data.Attributes != nil {
		child.Attributes = append([]Attribute(nil), data.Attributes...)
	}
	for _, gc := range data.Children {
		gc.Parent = child
		child.Children = append(child.Children, gc)
	}
	reindex(child)
	e.AddChild(child)
	return child
}

// RemoveChild removes target (an *Element, matched by identity) from e's
// children. It reports whether a child was actually removed.
func (e *Element) RemoveChild(target *Element) bool {
	for i, c := range e.Children {
		if c == target {
			return e.removeChildAt(i)
		}
	}
	return false
}

// RemoveChildAt removes the child at index idx. It reports whether idx was
// in range.
func (e *Element) RemoveChildAt(idx int) bool {
	if idx < 0 || idx >= len(e.Children) {
		return false
	}
	return e.removeChildAt(idx)
}

func (e *Element) removeChildAt(idx int) bool {
	c := e.Children[idx]
	e.Children = append(e.Children[:idx], e.Children[idx+1:]...)
	c.Parent = nil
	reindex(e)
	return true
}

// Remove detaches e from its parent. It reports false when e has no parent.
func (e *Element) Remove() bool {
	if e.Parent == nil {
		return false
	}
	return e.Parent.RemoveChild(e)
}

// UpdatePatch is the subset of fields Update may change; a nil pointer
// field means "leave unchanged".
type UpdatePatch struct {
	Name         *string
	NamespaceURI *string
	Text         *string
	Attributes   []Attribute // nil means unchanged; non-nil (incl. empty) replaces
}

// Update applies patch to e. A Name change rewrites Path on e and all
// descendants; a Text change re-derives Numeric/Boolean.
func (e *Element) Update(patch UpdatePatch) {
	if patch.Name != nil {
		e.Name = *patch.Name
		e.Prefix, e.LocalName = splitQualified(*patch.Name)
		rewritePathAndDepth(e)
	}
	if patch.NamespaceURI != nil {
		e.NamespaceURI = *patch.NamespaceURI
	}
	if patch.Text != nil {
		e.Text = *patch.Text
		e.hasText = true
		e.Numeric, e.Boolean = parseAutoTypes(*patch.Text, true, true)
	}
	if patch.Attributes != nil {
		e.Attributes = append([]Attribute(nil), patch.Attributes...)
	}
}

// SetAttribute sets (or replaces) the value of attribute name.
func (e *Element) SetAttribute(name, value string) {
	for i, a := range e.Attributes {
		if a.Name == name {
			e.Attributes[i].Value = value
			return
		}
	}
	e.Attributes = append(e.Attributes, Attribute{Name: name, Value: value})
}

// RemoveAttribute deletes attribute name. It reports whether it was present.
func (e *Element) RemoveAttribute(name string) bool {
	for i, a := range e.Attributes {
		if a.Name == name {
			e.Attributes = append(e.Attributes[:i], e.Attributes[i+1:]...)
			return true
		}
	}
	return false
}

// SetText is shorthand for Update with only Text set.
func (e *Element) SetText(text string) {
	e.Update(UpdatePatch{Text: &text})
}

// SetNamespaceDeclaration writes prefix -> uri into XmlnsDeclarations;
// prefix=="" targets the default namespace slot.
func (e *Element) SetNamespaceDeclaration(prefix, uri string) {
	if e.XmlnsDeclarations == nil {
		e.XmlnsDeclarations = make(map[string]string)
	}
	if _, exists := e.XmlnsDeclarations[prefix]; !exists {
		e.xmlnsOrder = append(e.xmlnsOrder, prefix)
	}
	e.XmlnsDeclarations[prefix] = uri
}

// ClearChildren detaches all children of e.
func (e *Element) ClearChildren() {
	for _, c := range e.Children {
		c.Parent = nil
	}
	e.Children = nil
}

// ReplaceChild swaps old for replacement at the same index, keeping sibling
// indexing consistent. It reports whether old was found.
func (e *Element) ReplaceChild(old, replacement *Element) bool {
	for i, c := range e.Children {
		if c == old {
			old.Parent = nil
			replacement.Parent = e
			e.Children[i] = replacement
			rewritePathAndDepth(replacement)
			reindex(e)
			return true
		}
	}
	return false
}

// Clone produces a detached deep copy; the returned root has no Parent and
// an empty Siblings view. Descendants keep correct in-clone back-pointers.
func (e *Element) Clone() *Element {
	clone := e.shallowCopy()
	clone.Parent = nil
	clone.Children = make([]*Element, 0, len(e.Children))
	for _, c := range e.Children {
		cc := c.Clone()
		cc.Parent = clone
		clone.Children = append(clone.Children, cc)
	}
	return clone
}

func (e *Element) shallowCopy() *Element {
	c := *e
	if e.XmlnsDeclarations != nil {
		c.XmlnsDeclarations = make(map[string]string, len(e.XmlnsDeclarations))
		for k, v := range e.XmlnsDeclarations {
			c.XmlnsDeclarations[k] = v
		}
		c.xmlnsOrder = append([]string(nil), e.xmlnsOrder...)
	}
	c.Attributes = append([]Attribute(nil), e.Attributes...)
	c.TextNodes = append([]string(nil), e.TextNodes...)
	c.Comments = append([]string(nil), e.Comments...)
	c.Children = nil
	if e.Numeric != nil {
		v := *e.Numeric
		c.Numeric = &v
	}
	if e.Boolean != nil {
		v := *e.Boolean
		c.Boolean = &v
	}
	return &c
}
