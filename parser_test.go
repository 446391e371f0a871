package xdom

import (
	"strings"
	"testing"
)

func TestParseBasic(t *testing.T) {
	q, err := Parse(`<root><item id="1">hello</item></root>`)
	if err != nil {
		t.Fatal(err)
	}
	root := q.First()
	if root.Name != "root" {
		t.Fatalf("got name %q", root.Name)
	}
	item := root.Children[0]
	if item.Name != "item" {
		t.Fatalf("got child name %q", item.Name)
	}
	if v, ok := item.GetAttribute("id"); !ok || v != "1" {
		t.Fatalf("got attribute %q, %v", v, ok)
	}
	if item.Text != "hello" {
		t.Fatalf("got text %q", item.Text)
	}
}

func TestParseStripsProlog(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE root SYSTEM "root.dtd">
<!-- leading comment -->
<root/>`
	q, err := Parse(doc)
	if err != nil {
		t.Fatal(err)
	}
	if q.First().Name != "root" {
		t.Fatalf("got %q", q.First().Name)
	}
}

func TestParseSelfClosing(t *testing.T) {
	q, err := Parse(`<root><a/><b></b></root>`)
	if err != nil {
		t.Fatal(err)
	}
	root := q.First()
	if len(root.Children) != 2 {
		t.Fatalf("got %d children", len(root.Children))
	}
	if !root.Children[0].IsLeaf() || !root.Children[1].IsLeaf() {
		t.Fatal("expected both children to be leaves")
	}
}

func TestParseCDATA(t *testing.T) {
	q, err := Parse(`<root><![CDATA[<raw> & stuff]]></root>`)
	if err != nil {
		t.Fatal(err)
	}
	if q.First().Text != "<raw> & stuff" {
		t.Fatalf("got text %q", q.First().Text)
	}
}

func TestParseMixedContent(t *testing.T) {
	q, err := Parse(`<p>Hi <b>there</b> friend</p>`)
	if err != nil {
		t.Fatal(err)
	}
	root := q.First()
	if len(root.TextNodes) != 2 {
		t.Fatalf("got %d text nodes: %#v", len(root.TextNodes), root.TextNodes)
	}
	got := root.Query().AllText()[0]
	want := "Hi there friend"
	assertEqual(t, got, want, "AllText should preserve document order")
}

func TestParseComments(t *testing.T) {
	q, err := Parse(`<root><!-- note --><a>x</a></root>`)
	if err != nil {
		t.Fatal(err)
	}
	root := q.First()
	if len(root.Comments) != 1 || root.Comments[0] != " note " {
		t.Fatalf("got comments %#v", root.Comments)
	}
}

func TestParseMaxDepth(t *testing.T) {
	opts := DefaultParserOptions()
	depth := 1
	opts.MaxDepth = &depth
	q, err := ParseWithOptions(`<a><b><c>deep</c></b></a>`, opts)
	if err != nil {
		t.Fatal(err)
	}
	root := q.First()
	if len(root.Children) != 1 {
		t.Fatalf("expected b to still parse, got %d children", len(root.Children))
	}
	b := root.Children[0]
	if len(b.Children) != 0 {
		t.Fatalf("expected c to be pruned at max depth, got %d children", len(b.Children))
	}
}

func TestParseMalformedAttribute(t *testing.T) {
	_, err := Parse(`<root attr=broken>x</root>`)
	if err == nil {
		t.Fatal("expected error for unquoted attribute value")
	}
	xerr, ok := err.(*Error)
	if !ok || xerr.Kind != ParseError {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestParseUnterminatedTag(t *testing.T) {
	_, err := Parse(`<root><item>oops</root>`)
	if err == nil {
		t.Fatal("expected error for unmatched closing tag")
	}
}

func TestParseEntities(t *testing.T) {
	q, err := Parse(`<root>a &amp; b &lt;c&gt; &#65;</root>`)
	if err != nil {
		t.Fatal(err)
	}
	want := "a & b <c> A"
	if q.First().Text != want {
		t.Fatalf("got %q want %q", q.First().Text, want)
	}
}

func TestParseAutoTypes(t *testing.T) {
	q, err := Parse(`<root><n>42</n><f>3.5</f><b>true</b><s>hello</s></root>`)
	if err != nil {
		t.Fatal(err)
	}
	root := q.First()
	byName := make(map[string]*Element)
	for _, c := range root.Children {
		byName[c.Name] = c
	}
	if byName["n"].Numeric == nil || *byName["n"].Numeric != 42 {
		t.Fatalf("expected n to parse as numeric 42, got %v", byName["n"].Numeric)
	}
	if byName["f"].Numeric == nil || *byName["f"].Numeric != 3.5 {
		t.Fatalf("expected f to parse as numeric 3.5, got %v", byName["f"].Numeric)
	}
	if byName["b"].Boolean == nil || *byName["b"].Boolean != true {
		t.Fatalf("expected b to parse as boolean true, got %v", byName["b"].Boolean)
	}
	if byName["s"].Numeric != nil || byName["s"].Boolean != nil {
		t.Fatal("expected s to have no auto-typed value")
	}
}

func TestParseEmptyDocument(t *testing.T) {
	_, err := Parse("   ")
	if err == nil {
		t.Fatal("expected error for empty document")
	}
}

func TestParseNamespaces(t *testing.T) {
	doc := `<root xmlns="urn:default" xmlns:a="urn:a">
		<child/>
		<a:child/>
	</root>`
	q, err := Parse(doc)
	if err != nil {
		t.Fatal(err)
	}
	root := q.First()
	if root.NamespaceURI != "urn:default" {
		t.Fatalf("got root ns %q", root.NamespaceURI)
	}
	var plain, aliased *Element
	for _, c := range root.Children {
		if c.Prefix == "a" {
			aliased = c
		} else {
			plain = c
		}
	}
	if plain.NamespaceURI != "urn:default" {
		t.Fatalf("expected inherited default namespace, got %q", plain.NamespaceURI)
	}
	if aliased.NamespaceURI != "urn:a" {
		t.Fatalf("expected aliased namespace, got %q", aliased.NamespaceURI)
	}
}

func TestParseNamespaceOverride(t *testing.T) {
	doc := `<root xmlns="urn:outer"><child xmlns="urn:inner"/></root>`
	q, err := Parse(doc)
	if err != nil {
		t.Fatal(err)
	}
	child := q.First().Children[0]
	if child.NamespaceURI != "urn:inner" {
		t.Fatalf("expected override to urn:inner, got %q", child.NamespaceURI)
	}
}

func TestParseWithPositionsStampsLines(t *testing.T) {
	doc := "<root>\n  <a/>\n  <b/>\n</root>"
	q, err := ParseWithPositions(doc, DefaultParserOptions())
	if err != nil {
		t.Fatal(err)
	}
	root := q.First()
	if root.Line != 1 {
		t.Fatalf("expected root at line 1, got %d", root.Line)
	}
	if root.Children[0].Line != 2 {
		t.Fatalf("expected <a/> at line 2, got %d", root.Children[0].Line)
	}
	if root.Children[1].Line != 3 {
		t.Fatalf("expected <b/> at line 3, got %d", root.Children[1].Line)
	}
}

func TestParseReaderCharset(t *testing.T) {
	doc := `<root>hello</root>`
	q, err := ParseReader(strings.NewReader(doc), DefaultParserOptions())
	if err != nil {
		t.Fatal(err)
	}
	if q.First().Text != "hello" {
		t.Fatalf("got %q", q.First().Text)
	}
}
