package xdom

// SetAttr sets attribute name to value on every element in q.
func (q QuerySet) SetAttr(name, value string) QuerySet {
	for _, e := range q.elements {
		e.SetAttribute(name, value)
	}
	return q
}

// RemoveAttr removes attribute name from every element in q.
func (q QuerySet) RemoveAttr(name string) QuerySet {
	for _, e := range q.elements {
		e.RemoveAttribute(name)
	}
	return q
}

// SetText sets Text on every element in q.
func (q QuerySet) SetText(text string) QuerySet {
	for _, e := range q.elements {
		e.SetText(text)
	}
	return q
}

// UpdateElements applies patch to every element in q.
func (q QuerySet) UpdateElements(patch UpdatePatch) QuerySet {
	for _, e := range q.elements {
		e.Update(patch)
	}
	return q
}

// RemoveElements detaches every element in q from its parent, returning the
// number actually removed.
func (q QuerySet) RemoveElements() int {
	count := 0
	for _, e := range q.elements {
		if e.Remove() {
			count++
		}
	}
	return count
}

// AppendChild appends child to every element in q. Because an Element can
// only have one parent, the first attachment uses child itself and every
// subsequent one attaches a deep clone of it.
func (q QuerySet) AppendChild(child *Element) QuerySet {
	for i, e := range q.elements {
		c := child
		if i > 0 {
			c = child.Clone()
		}
		e.AddChild(c)
	}
	return q
}

// ClearChildren detaches all children of every element in q.
func (q QuerySet) ClearChildren() QuerySet {
	for _, e := range q.elements {
		e.ClearChildren()
	}
	return q
}
