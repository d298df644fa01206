package vdom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCreateElementWrapsScalarChildren(t *testing.T) {
	el := CreateElement("div", Props{"id": "app"}, "hello", "world")

	want := &VNode{
		Kind:  KindElement,
		Tag:   "div",
		Props: Props{"id": "app"},
		Children: []*VNode{
			{Kind: KindText, Tag: TextTag, Props: Props{NodeValue: "hello"}, Children: []*VNode{}},
			{Kind: KindText, Tag: TextTag, Props: Props{NodeValue: "world"}, Children: []*VNode{}},
		},
	}
	if diff := cmp.Diff(want, el); diff != "" {
		t.Errorf("CreateElement mismatch (-want +got):\n%s", diff)
	}
}

type stringer struct{}

func (stringer) String() string { return "str" }

func TestCreateElementCoercesMalformedChildren(t *testing.T) {
	el := CreateElement("p", nil,
		42,
		true,
		nil,
		stringer{},
		[]*VNode{Text("a"), nil, Text("b")},
		struct{ X int }{7},
	)

	var got []string
	for _, c := range el.Children {
		if c.Kind != KindText {
			t.Fatalf("child kind = %v, want Text", c.Kind)
		}
		got = append(got, c.TextContent())
	}
	want := []string{"42", "true", "str", "a", "b", "{7}"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("children (-want +got):\n%s", diff)
	}
}

func TestCreateElementCopiesProps(t *testing.T) {
	props := Props{"id": "x"}
	el := CreateElement("div", props)
	props["id"] = "changed"

	if el.Props["id"] != "x" {
		t.Errorf("CreateElement should copy props, got %v", el.Props["id"])
	}
}

func TestCreateElementComponentKinds(t *testing.T) {
	named := Func("Card", func(p Props) *VNode { return Div() })
	plain := func(p Props) *VNode { return Span() }

	a := CreateElement(named, Props{"title": "t"}, "child")
	if a.Kind != KindComponent || a.Comp != Component(named) {
		t.Errorf("named component: kind=%v comp=%v", a.Kind, a.Comp)
	}
	if len(a.Children) != 1 {
		t.Errorf("component children = %d, want 1", len(a.Children))
	}

	b := CreateElement(plain, nil)
	if b.Kind != KindComponent {
		t.Fatalf("func component kind = %v", b.Kind)
	}
	if got := b.Comp.Render(nil); got.Tag != "span" {
		t.Errorf("func component render tag = %q", got.Tag)
	}
}

func TestElementHelpers(t *testing.T) {
	clicked := false
	el := Div(
		ID("main"),
		Class("card", "wide"),
		nil,
		[]Attr{TitleAttr("t"), {}},
		Props{"data-x": 1},
		OnClick(func() { clicked = true }),
		H1(Text("Title")),
		"tail",
	)

	if el.Tag != "div" {
		t.Errorf("Tag = %q", el.Tag)
	}
	if el.Props["class"] != "card wide" {
		t.Errorf("class = %v", el.Props["class"])
	}
	if el.Props["title"] != "t" || el.Props["data-x"] != 1 || el.Props["id"] != "main" {
		t.Errorf("props = %v", el.Props)
	}
	if _, ok := el.Props[""]; ok {
		t.Error("empty Attr should be skipped")
	}
	if len(el.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(el.Children))
	}
	if el.Children[1].TextContent() != "tail" {
		t.Errorf("string arg = %q", el.Children[1].TextContent())
	}
	el.Props["onclick"].(func())()
	if !clicked {
		t.Error("OnClick handler not stored under onclick")
	}
	if !el.IsInteractive() {
		t.Error("IsInteractive() = false")
	}
}

func TestSameKind(t *testing.T) {
	compA := Func("A", func(Props) *VNode { return nil })
	compB := Func("B", func(Props) *VNode { return nil })
	fn := ComponentFunc(func(Props) *VNode { return nil })

	tests := []struct {
		name string
		a, b *VNode
		want bool
	}{
		{"same tag", Div(), Div(), true},
		{"different tag", Div(), Span(), false},
		{"text vs text", Text("a"), Text("b"), true},
		{"text vs element", Text("a"), Div(), false},
		{"same component", Comp(compA, nil), Comp(compA, nil), true},
		{"different component", Comp(compA, nil), Comp(compB, nil), false},
		{"same func component", Comp(fn, nil), Comp(fn, nil), true},
		{"component vs element", Comp(compA, nil), Div(), false},
		{"nil vs nil", nil, nil, true},
		{"nil vs node", nil, Div(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameKind(tt.a, tt.b); got != tt.want {
				t.Errorf("SameKind = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComponentName(t *testing.T) {
	if got := ComponentName(Func("Counter", nil)); got != "Counter" {
		t.Errorf("ComponentName(named) = %q", got)
	}
	if got := ComponentName(ComponentFunc(nil)); got != "vdom.ComponentFunc" {
		t.Errorf("ComponentName(func) = %q", got)
	}
	if ComponentName(nil) != "" {
		t.Error("ComponentName(nil) should be empty")
	}
}

func TestPropsChildren(t *testing.T) {
	kids := []*VNode{Text("x")}
	p := Props{ChildrenKey: kids}
	if len(p.Children()) != 1 {
		t.Errorf("Children() = %v", p.Children())
	}
	if (Props{}).Children() != nil {
		t.Error("Children() of empty props should be nil")
	}
}

func TestEventName(t *testing.T) {
	tests := map[string]string{
		"onClick":   "click",
		"onclick":   "click",
		"ONKEYDOWN": "keydown",
		"on":        "",
		"id":        "",
	}
	for key, want := range tests {
		if got := EventName(key); got != want {
			t.Errorf("EventName(%q) = %q, want %q", key, got, want)
		}
	}
}
