package xdom

import (
	"strings"
	"testing"

	"github.com/bradleyjkemp/cupaloy"
)

func TestToXmlSelfClosingVsExpanded(t *testing.T) {
	q, err := Parse(`<root><a/></root>`)
	if err != nil {
		t.Fatal(err)
	}
	a := q.First().Children[0]
	if got := a.ToXml(ToXmlOptions{SelfClosing: true}); got != "<a/>" {
		t.Fatalf("got %q", got)
	}
	if got := a.ToXml(ToXmlOptions{SelfClosing: false}); got != "<a></a>" {
		t.Fatalf("got %q", got)
	}
}

func TestToXmlEntityEncoding(t *testing.T) {
	q, err := Parse(`<root><msg>a &amp; b</msg></root>`)
	if err != nil {
		t.Fatal(err)
	}
	msg := q.First().Children[0]
	got := msg.ToXml(ToXmlOptions{})
	if !strings.Contains(got, "&amp;") {
		t.Fatalf("expected re-encoded ampersand, got %q", got)
	}
}

func TestToXmlIncludeDeclaration(t *testing.T) {
	q, err := Parse(`<root/>`)
	if err != nil {
		t.Fatal(err)
	}
	got := q.First().ToXml(ToXmlOptions{IncludeDeclaration: true})
	if !strings.HasPrefix(got, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Fatalf("got %q", got)
	}
}

func TestToXmlIndentedSnapshot(t *testing.T) {
	q, err := Parse(`<book id="1"><title>Go in Practice</title><price>29.99</price></book>`)
	if err != nil {
		t.Fatal(err)
	}
	got := q.First().ToXml(ToXmlOptions{Indent: "  "})
	cupaloy.SnapshotT(t, got)
}
