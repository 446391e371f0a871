package xdom

import (
	"strings"
	"testing"
)

func TestQuerySetMapEachReduce(t *testing.T) {
	q, err := Parse(`<root><n>1</n><n>2</n><n>3</n></root>`)
	if err != nil {
		t.Fatal(err)
	}
	nums := q.Find("n")

	names := nums.Map(func(e *Element) any { return e.Text })
	want := []any{"1", "2", "3"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v want %v", names, want)
		}
	}

	var seen []string
	nums.Each(func(e *Element) { seen = append(seen, e.Text) })
	if strings.Join(seen, ",") != "1,2,3" {
		t.Fatalf("got %v", seen)
	}

	total := nums.Reduce(0.0, func(acc any, e *Element) any {
		return acc.(float64) + *e.Numeric
	})
	if total.(float64) != 6 {
		t.Fatalf("got %v", total)
	}
}

func TestQuerySetToMap(t *testing.T) {
	q, err := Parse(`<root><item id="a">1</item><item id="b">2</item></root>`)
	if err != nil {
		t.Fatal(err)
	}
	m := q.Find("item").ToMap(func(e *Element) string {
		v, _ := e.GetAttribute("id")
		return v
	}, func(e *Element) any { return e.Text })
	if m["a"] != "1" || m["b"] != "2" {
		t.Fatalf("got %#v", m)
	}
}

func TestQuerySetToJSON(t *testing.T) {
	q, err := Parse(`<root><item id="a">1</item></root>`)
	if err != nil {
		t.Fatal(err)
	}
	out, err := q.Find("item").ToJSON(ToJSONOptions{IncludeAttributes: true, SimplifyLeaves: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"@attributes"`) || !strings.Contains(out, `"id":"a"`) {
		t.Fatalf("got %s", out)
	}
}

func TestQuerySetStats(t *testing.T) {
	q, err := Parse(`<root><a><!-- c --><b>x</b></a></root>`)
	if err != nil {
		t.Fatal(err)
	}
	stats := q.First().Query().Stats()
	if stats.Count != 1 {
		t.Fatalf("got count %d", stats.Count)
	}
	if stats.TotalNodes != 3 {
		t.Fatalf("got total nodes %d", stats.TotalNodes)
	}
	if stats.WithText != 1 {
		t.Fatalf("got with-text %d", stats.WithText)
	}
	if stats.WithComment != 1 {
		t.Fatalf("got with-comment %d", stats.WithComment)
	}
	if stats.MaxDepth != 2 {
		t.Fatalf("got max depth %d", stats.MaxDepth)
	}
}

func TestQuerySetPrint(t *testing.T) {
	q, err := Parse(`<root><a k="v">hi</a></root>`)
	if err != nil {
		t.Fatal(err)
	}
	out := q.First().Query().Children().Print(true, true)
	if !strings.Contains(out, `a [k="v"] = "hi"`) {
		t.Fatalf("got %q", out)
	}
}

func TestQuerySetToXmlAndToXmlStrings(t *testing.T) {
	q, err := Parse(`<root><a/><b/></root>`)
	if err != nil {
		t.Fatal(err)
	}
	children := q.First().Query().Children()
	single := children.ToXml(ToXmlOptions{})
	if single != "<a></a>" && single != "<a/>" {
		t.Fatalf("got %q", single)
	}
	all := children.ToXmlStrings(ToXmlOptions{})
	if len(all) != 2 {
		t.Fatalf("got %v", all)
	}

	empty := newQuerySet(nil)
	if empty.ToXml(ToXmlOptions{}) != "" {
		t.Fatal("expected empty string for empty query set")
	}
}
