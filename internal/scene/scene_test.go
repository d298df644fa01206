package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/fiber/internal/errors"
	"github.com/vango-dev/fiber/pkg/fibertest"
	"github.com/vango-dev/fiber/pkg/host"
	"github.com/vango-dev/fiber/pkg/vdom"
)

const counterScene = `
name: counter
root:
  tag: div
  attrs: {id: app}
  children:
    - tag: h1
      children: ["Counter"]
    - component: counter
      props: {start: 3, label: Clicks}
`

func mount(t *testing.T, src string) *fibertest.Harness {
	t.Helper()
	sc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	view, err := sc.Build(Builtins())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return fibertest.Mount(t, view)
}

func TestParseAndBuild(t *testing.T) {
	sc, err := Parse([]byte(counterScene))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "counter" {
		t.Errorf("Name = %q, want counter", sc.Name)
	}

	view, err := sc.Build(Builtins())
	if err != nil {
		t.Fatal(err)
	}
	if view.Tag != "div" || view.Props["id"] != "app" {
		t.Errorf("root = %s %v, want div#app", view.Tag, view.Props)
	}
	if len(view.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(view.Children))
	}
	if got := view.Children[0].TextContent(); got != "Counter" {
		t.Errorf("h1 text = %q, want Counter", got)
	}
	comp := view.Children[1]
	if comp.Kind != vdom.KindComponent || !vdom.SameComponent(comp.Comp, Counter) {
		t.Errorf("second child = %v, want the counter component", comp)
	}
	if comp.Props["start"] != 3 {
		t.Errorf("start prop = %#v, want 3", comp.Props["start"])
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
	}{
		{"no root", "name: empty\n", "E120"},
		{"bad yaml", "root: [unclosed\n", "E120"},
		{"tag and component", "root: {tag: div, component: counter}\n", "E120"},
		{"empty node", "root: {attrs: {id: x}}\n", "E120"},
		{"unknown component", "root: {component: missing}\n", "E121"},
		{"nested unknown", "root: {tag: div, children: [{component: nope}]}\n", "E121"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := Parse([]byte(tt.src))
			if err == nil {
				_, err = sc.Build(Builtins())
			}
			if !errors.HasCode(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counter.yaml")
	if err := os.WriteFile(path, []byte("root: hello\n"), 0644); err != nil {
		t.Fatal(err)
	}
	sc, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != path {
		t.Errorf("Name = %q, want the file path", sc.Name)
	}
	view, err := sc.Build(NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	if view.Kind != vdom.KindText || view.TextContent() != "hello" {
		t.Errorf("view = %+v, want text hello", view)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.HasCode(err, "E120") {
		t.Errorf("Load(missing) = %v, want E120", err)
	}
}

func TestRegistry(t *testing.T) {
	r := Builtins()
	if diff := cmp.Diff([]string{"counter", "todo"}, r.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	custom := vdom.Func("Custom", func(vdom.Props) *vdom.VNode { return nil })
	r.Register("custom", custom)
	if c, ok := r.Lookup("custom"); !ok || !vdom.SameComponent(c, custom) {
		t.Error("Lookup(custom) failed")
	}
}

func TestCounterScene(t *testing.T) {
	h := mount(t, counterScene)

	h.ExpectShape(`root[div(id=app)[h1["Counter"] div(class=counter)[span(class=label)["Clicks"] span(class=value)["3"] button(id=inc @click)["+"] button(id=dec @click)["-"]]]]`)

	h.Click("inc")
	h.Click("inc")
	h.Click("dec")

	h.ExpectContains(`<span class="value">4</span>`)
}

func TestTodoScene(t *testing.T) {
	h := mount(t, `
root:
  component: todo
  props:
    title: Chores
    items: [dishes, laundry]
`)
	h.ExpectContains(`<p class="summary">2 items</p>`)

	h.Dispatch("draft", "input", "groceries")
	h.ExpectAttribute("draft", "value", "groceries")

	h.Click("add")
	h.ExpectContains(`<p class="summary">3 items</p>`)
	h.ExpectAttribute("draft", "value", "")

	// Remove the first item.
	remove := h.Memory.Find(func(n *host.Node) bool { return n.Attrs["class"] == "remove" })
	h.DispatchNode(remove, "click", nil)

	ul := h.Memory.Find(func(n *host.Node) bool { return n.Tag == "ul" })
	var items []string
	for _, li := range ul.Children {
		items = append(items, li.Children[0].TextContent())
	}
	if diff := cmp.Diff([]string{"laundry", "groceries"}, items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}
