package xdom

import "testing"

func TestQuerySetSetAttrAndRemoveAttr(t *testing.T) {
	q, err := Parse(`<root><a/><a/></root>`)
	if err != nil {
		t.Fatal(err)
	}
	items := q.Find("a")
	items.SetAttr("seen", "yes")
	for _, e := range items.ToArray() {
		if v, ok := e.GetAttribute("seen"); !ok || v != "yes" {
			t.Fatalf("got %v %v", v, ok)
		}
	}
	items.RemoveAttr("seen")
	for _, e := range items.ToArray() {
		if _, ok := e.GetAttribute("seen"); ok {
			t.Fatal("expected attribute removed")
		}
	}
}

func TestQuerySetSetText(t *testing.T) {
	q, err := Parse(`<root><n>1</n><n>2</n></root>`)
	if err != nil {
		t.Fatal(err)
	}
	q.Find("n").SetText("9")
	for _, e := range q.Find("n").ToArray() {
		if e.Text != "9" || e.Numeric == nil || *e.Numeric != 9 {
			t.Fatalf("got %#v", e)
		}
	}
}

func TestQuerySetUpdateElements(t *testing.T) {
	q, err := Parse(`<root><a><x/></a></root>`)
	if err != nil {
		t.Fatal(err)
	}
	newName := "b"
	q.Find("a").UpdateElements(UpdatePatch{Name: &newName})
	el := q.First().Query().Children().ToArray()[0]
	if el.Name != "b" {
		t.Fatalf("got %q", el.Name)
	}
	if el.Children[0].Path != "root/b/x" {
		t.Fatalf("expected rewritten descendant path, got %q", el.Children[0].Path)
	}
}

func TestQuerySetRemoveElements(t *testing.T) {
	q, err := Parse(`<root><a/><b/><a/></root>`)
	if err != nil {
		t.Fatal(err)
	}
	root := q.First()
	n := root.Query().Children().Where(func(e *Element, _ int) bool { return e.Name == "a" }).RemoveElements()
	if n != 2 {
		t.Fatalf("got %d removed", n)
	}
	if len(root.Children) != 1 || root.Children[0].Name != "b" {
		t.Fatalf("got %#v", root.Children)
	}
}

func TestQuerySetAppendChildClonesAfterFirst(t *testing.T) {
	q, err := Parse(`<root><a/><b/></root>`)
	if err != nil {
		t.Fatal(err)
	}
	targets := q.First().Query().Children()
	child := &Element{Name: "c"}
	targets.AppendChild(child)
	arr := targets.ToArray()
	if arr[0].Children[0] != child {
		t.Fatal("first target should receive the original element")
	}
	if arr[1].Children[0] == child {
		t.Fatal("second target should receive a clone, not the same pointer")
	}
	if arr[1].Children[0].Name != "c" {
		t.Fatalf("got %q", arr[1].Children[0].Name)
	}
}

func TestQuerySetClearChildren(t *testing.T) {
	q, err := Parse(`<root><a><x/><y/></a></root>`)
	if err != nil {
		t.Fatal(err)
	}
	root := q.First()
	a := root.Children[0]
	root.Query().Children().ClearChildren()
	if len(a.Children) != 0 {
		t.Fatalf("expected cleared children, got %#v", a.Children)
	}
}
