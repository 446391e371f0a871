package xdom

import "testing"

const selectDoc = `<catalog>
	<section name="fiction">
		<book id="1"><title>Dune</title></book>
		<book id="2"><title>Hyperion</title></book>
	</section>
	<section name="reference">
		<book id="3"><title>Larousse</title></book>
	</section>
</catalog>`

func TestFindAndVariants(t *testing.T) {
	q, err := Parse(selectDoc)
	if err != nil {
		t.Fatal(err)
	}
	if q.Find("book").Count() != 3 {
		t.Fatalf("got %d", q.Find("book").Count())
	}
	if q.FindFirst("book").Count() != 1 {
		t.Fatal("expected FindFirst to yield exactly one")
	}
	if q.FindQualified("book").Count() != 3 {
		t.Fatal("FindQualified should match unprefixed names too")
	}
	if q.FindPattern("b*k").Count() != 3 {
		t.Fatal("wildcard pattern should match book")
	}
}

func TestChildrenAndNavigation(t *testing.T) {
	q, err := Parse(selectDoc)
	if err != nil {
		t.Fatal(err)
	}
	sections := q.Find("section")
	if sections.Children().Count() != 3 {
		t.Fatalf("expected 3 books as children, got %d", sections.Children().Count())
	}
	firstBook := q.Find("book").ToArray()[0]
	if firstBook.Query().Parent().ToArray()[0].Name != "section" {
		t.Fatal("expected parent to be section")
	}
	if firstBook.Query().Ancestors().Count() != 2 {
		t.Fatalf("expected 2 ancestors (section, catalog), got %d", firstBook.Query().Ancestors().Count())
	}
	if firstBook.Query().Closest("catalog").Count() != 1 {
		t.Fatal("expected Closest to find catalog")
	}
}

func TestSiblingNavigation(t *testing.T) {
	q, err := Parse(selectDoc)
	if err != nil {
		t.Fatal(err)
	}
	books := q.Find("book").ToArray()
	if books[0].Query().NextSibling().Count() != 1 {
		t.Fatal("expected a next sibling for first book")
	}
	if books[1].Query().PreviousSibling().ToArray()[0] != books[0] {
		t.Fatal("expected previous sibling to be first book")
	}
	if books[2].Query().NextSibling().Count() != 0 {
		t.Fatal("expected no next sibling for last book in its section")
	}
}

func TestDescendantsDedup(t *testing.T) {
	q, err := Parse(selectDoc)
	if err != nil {
		t.Fatal(err)
	}
	root := q.First()
	all := root.Query().Descendants()
	// sections(2) + books(3) + titles(3) = 8
	if all.Count() != 8 {
		t.Fatalf("got %d descendants", all.Count())
	}
}
