package xdom

import "testing"

func TestToJSONSimplifyLeaves(t *testing.T) {
	q, err := Parse(`<root><n>42</n><s>hi</s><b>true</b></root>`)
	if err != nil {
		t.Fatal(err)
	}
	root := q.First()

	n := root.Children[0].toJSON(ToJSONOptions{SimplifyLeaves: true})
	if v, ok := n.(float64); !ok || v != 42 {
		t.Fatalf("got %#v", n)
	}
	s := root.Children[1].toJSON(ToJSONOptions{SimplifyLeaves: true})
	if v, ok := s.(string); !ok || v != "hi" {
		t.Fatalf("got %#v", s)
	}
	b := root.Children[2].toJSON(ToJSONOptions{SimplifyLeaves: true})
	if v, ok := b.(bool); !ok || v != true {
		t.Fatalf("got %#v", b)
	}
}

func TestToJSONLeafWithAttributesStaysAnObject(t *testing.T) {
	q, err := Parse(`<root><n unit="kg">42</n></root>`)
	if err != nil {
		t.Fatal(err)
	}
	n := q.First().Children[0]
	got := n.toJSON(ToJSONOptions{SimplifyLeaves: true, IncludeAttributes: true}).(map[string]any)
	if got["#text"].(float64) != 42 {
		t.Fatalf("got %#v", got)
	}
	attrs := got["@attributes"].(map[string]any)
	if attrs["unit"] != "kg" {
		t.Fatalf("got %#v", attrs)
	}
}

func TestToJSONFlattenSingleVsArray(t *testing.T) {
	q, err := Parse(`<root><item>1</item><item>2</item></root>`)
	if err != nil {
		t.Fatal(err)
	}
	single, err := Parse(`<root><item>1</item></root>`)
	if err != nil {
		t.Fatal(err)
	}

	flat := single.First().toJSON(ToJSONOptions{FlattenSingle: true, SimplifyLeaves: true}).(map[string]any)
	if _, isSlice := flat["item"].([]any); isSlice {
		t.Fatal("expected single child flattened out of a slice")
	}

	unflat := q.First().toJSON(ToJSONOptions{FlattenSingle: true, SimplifyLeaves: true}).(map[string]any)
	items, ok := unflat["item"].([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("expected two-item slice preserved, got %#v", unflat["item"])
	}
}

func TestToJSONNonLeafWithOwnText(t *testing.T) {
	doc, err := Parse(`<p><![CDATA[Hi ]]><b>there</b></p>`)
	if err != nil {
		t.Fatal(err)
	}
	p := doc.First()
	got := p.toJSON(ToJSONOptions{SimplifyLeaves: true}).(map[string]any)
	if _, ok := got["#text"]; !ok {
		t.Fatalf("expected #text key for mixed-content parent, got %#v", got)
	}
}
