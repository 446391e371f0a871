package xdom

import "strings"

// resolveNamespaceURI looks up prefix (reservedDefaultNS for the default
// namespace) starting at e and walking ancestors, merging declarations so a
// closer declaration wins. Used by the parser to resolve NamespaceURI
// immediately after each element's own xmlns attributes are read, and by
// the Query Set's namespace methods.
func resolveNamespaceURI(e *Element, prefix string) (string, bool) {
	for cur := e; cur != nil; cur = cur.Parent {
		if cur.XmlnsDeclarations != nil {
			if uri, ok := cur.XmlnsDeclarations[prefix]; ok {
				return uri, true
			}
		}
	}
	return "", false
}

// namespaceMappings merges all xmlns declarations visible at e, from root
// down to e, so that a child's declaration overrides its parent's.
func namespaceMappings(e *Element) map[string]string {
	var chain []*Element
	for cur := e; cur != nil; cur = cur.Parent {
		chain = append(chain, cur)
	}
	out := make(map[string]string)
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].XmlnsDeclarations {
			out[k] = v
		}
	}
	return out
}

// NamespaceContext is an immutable alias -> URI map used to resolve
// "alias:local" qualified names against a QuerySet via Find (C7).
type NamespaceContext struct {
	aliases map[string]string
}

// NewNamespaceContext builds a NamespaceContext from an alias->URI map. The
// supplied map is copied; later mutation of it does not affect the context.
func NewNamespaceContext(aliases map[string]string) *NamespaceContext {
	copied := make(map[string]string, len(aliases))
	for k, v := range aliases {
		copied[k] = v
	}
	return &NamespaceContext{aliases: copied}
}

// Find resolves "alias:local" (or a bare "local", meaning no namespace
// filter) against q using InNamespace. It fails with SyntaxError on more
// than one ':', and LookupError when alias is not registered.
func (nc *NamespaceContext) Find(qname string, q QuerySet) (QuerySet, error) {
	parts := strings.Split(qname, ":")
	switch len(parts) {
	case 1:
		return q.Find(parts[0]), nil
	case 2:
		uri, ok := nc.aliases[parts[0]]
		if !ok {
			return QuerySet{}, newError(LookupError, "unknown namespace alias %q, available: %s", parts[0], nc.availableAliases())
		}
		return q.InNamespace(uri, parts[1]), nil
	default:
		return QuerySet{}, newError(SyntaxError, "qualified name %q has more than one ':'", qname)
	}
}

func (nc *NamespaceContext) availableAliases() string {
	names := make([]string, 0, len(nc.aliases))
	for k := range nc.aliases {
		names = append(names, k)
	}
	return strings.Join(names, ", ")
}
