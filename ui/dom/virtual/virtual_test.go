package virtual

import (
	"testing"

	"github.com/jacobpatterson1549/selene-tiles/ui/dom"
)

func TestElementByID(t *testing.T) {
	doc := NewDocument()
	outer := doc.CreateElement("div")
	outer.SetAttribute("id", "outer")
	inner := doc.CreateElement("span")
	inner.SetAttribute("id", "inner")
	outer.AppendChild(inner)
	doc.Body.AppendChild(outer)
	tests := []struct {
		id     string
		wantOk bool
		want   dom.Element
	}{
		{id: "outer", wantOk: true, want: outer},
		{id: "inner", wantOk: true, want: inner},
		{id: "missing"},
	}
	for i, test := range tests {
		got, ok := doc.ElementByID(test.id)
		switch {
		case !test.wantOk:
			if ok {
				t.Errorf("Test %v: wanted no element, got %v", i, got)
			}
		case !ok:
			t.Errorf("Test %v: wanted element", i)
		case test.want != got:
			t.Errorf("Test %v: wrong element returned", i)
		}
	}
}

func TestConfirm(t *testing.T) {
	doc := NewDocument()
	if doc.Confirm("question?") {
		t.Errorf("wanted false when no ConfirmFunc is set")
	}
	var gotMessage string
	doc.ConfirmFunc = func(message string) bool {
		gotMessage = message
		return true
	}
	if !doc.Confirm("question?") {
		t.Errorf("wanted answer from ConfirmFunc")
	}
	if want, got := "question?", gotMessage; want != got {
		t.Errorf("wanted message %v, got %v", want, got)
	}
}

func TestChildren(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("ol")
	a := doc.CreateElement("li")
	b := doc.CreateElement("li")
	parent.AppendChild(a)
	parent.AppendText("text")
	parent.AppendChild(b)
	if want, got := 3, parent.ChildCount(); want != got {
		t.Fatalf("wanted %v children, got %v", want, got)
	}
	if parent.Child(0) != a || parent.Child(2) != b {
		t.Errorf("children out of order")
	}
	parent.RemoveChild(a)
	if want, got := 2, parent.ChildCount(); want != got {
		t.Errorf("wanted %v children after remove, got %v", want, got)
	}
	parent.AppendChild(a)
	if parent.Child(2) != a {
		t.Errorf("wanted removed child to be appended last")
	}
	dom.RemoveChildren(parent)
	if parent.ChildCount() != 0 {
		t.Errorf("wanted all children removed, got %v", parent.ChildCount())
	}
}

func TestAppendChildMoves(t *testing.T) {
	doc := NewDocument()
	first := doc.CreateElement("div")
	second := doc.CreateElement("div")
	child := doc.CreateElement("p")
	first.AppendChild(child)
	second.AppendChild(child)
	if first.ChildCount() != 0 {
		t.Errorf("wanted child to be moved from first parent")
	}
	if second.ChildCount() != 1 {
		t.Errorf("wanted child to be moved to second parent")
	}
}

func TestRemoveChildPanics(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div")
	other := doc.CreateElement("div")
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("wanted panic removing node that is not a child")
		}
	}()
	parent.RemoveChild(other)
}

func TestTextContent(t *testing.T) {
	doc := NewDocument()
	figcaption := doc.CreateElement("figcaption")
	b := doc.CreateElement("b")
	b.AppendText("(5)")
	figcaption.AppendChild(b)
	figcaption.AppendText(" Samoa")
	if want, got := "(5) Samoa", figcaption.TextContent(); want != got {
		t.Errorf("wanted %q, got %q", want, got)
	}
	figcaption.SetTextContent("7")
	if want, got := "7", figcaption.TextContent(); want != got {
		t.Errorf("wanted %q after set, got %q", want, got)
	}
	if want, got := 1, figcaption.ChildCount(); want != got {
		t.Errorf("wanted %v child after set, got %v", want, got)
	}
	figcaption.SetTextContent("")
	if figcaption.ChildCount() != 0 {
		t.Errorf("wanted no children after setting empty text")
	}
}

func TestAttributesAndProperties(t *testing.T) {
	e := NewDocument().CreateElement("input")
	if got := e.Attribute("type"); len(got) != 0 {
		t.Errorf("wanted unset attribute to be empty, got %q", got)
	}
	e.SetAttribute("type", "checkbox")
	if want, got := "checkbox", e.Attribute("type"); want != got {
		t.Errorf("wanted %v, got %v", want, got)
	}
	if e.Property(dom.Checked) {
		t.Errorf("wanted unset property to be false")
	}
	e.SetProperty(dom.Checked, true)
	if !e.Property(dom.Checked) {
		t.Errorf("wanted property to be set")
	}
}

func TestDispatch(t *testing.T) {
	tests := []struct {
		eventType string
		disabled  bool
		wantCalls int
	}{
		{eventType: dom.Click, wantCalls: 2},
		{eventType: dom.Click, disabled: true},
		{eventType: dom.Change, wantCalls: 1},
		{eventType: dom.Change, disabled: true, wantCalls: 1},
	}
	for i, test := range tests {
		e := newElement("button")
		e.SetProperty(dom.Disabled, test.disabled)
		var calls []string
		e.AddEventListener(dom.Click, func() { calls = append(calls, "click1") })
		e.AddEventListener(dom.Click, func() { calls = append(calls, "click2") })
		e.AddEventListener(dom.Change, func() { calls = append(calls, "change") })
		e.Dispatch(test.eventType)
		if want, got := test.wantCalls, len(calls); want != got {
			t.Errorf("Test %v: wanted %v calls, got %v: %v", i, want, got, calls)
		}
		if test.wantCalls == 2 && (calls[0] != "click1" || calls[1] != "click2") {
			t.Errorf("Test %v: wanted listeners called in order, got %v", i, calls)
		}
		if !e.HasListener(dom.Click) || e.HasListener("keydown") {
			t.Errorf("Test %v: HasListener wrong", i)
		}
	}
}
