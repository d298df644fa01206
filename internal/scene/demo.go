package scene

import (
	"fmt"
	"strings"

	"github.com/vango-dev/fiber/pkg/fiber"
	"github.com/vango-dev/fiber/pkg/vdom"
)

// Counter is a demo component with increment and decrement buttons.
//
// Props: start (int, default 0), label (string, default "Count").
var Counter = vdom.Func("Counter", func(p vdom.Props) *vdom.VNode {
	count, setCount := fiber.UseState(intProp(p, "start", 0))
	label := p.GetString("label")
	if label == "" {
		label = "Count"
	}

	return vdom.Div(vdom.Class("counter"),
		vdom.Span(vdom.Class("label"), label),
		vdom.Span(vdom.Class("value"), count),
		vdom.Button(vdom.ID("inc"), vdom.OnClick(func() {
			setCount.Update(func(n int) int { return n + 1 })
		}), "+"),
		vdom.Button(vdom.ID("dec"), vdom.OnClick(func() {
			setCount.Update(func(n int) int { return n - 1 })
		}), "-"),
	)
})

// Todo is a demo list with an input, an add button and per-item remove
// buttons.
//
// Props: title (string), items (list of strings).
var Todo = vdom.Func("Todo", func(p vdom.Props) *vdom.VNode {
	items, setItems := fiber.UseState(stringsProp(p, "items"))
	draft, setDraft := fiber.UseState("")
	title := p.GetString("title")
	if title == "" {
		title = "Todo"
	}

	add := func() {
		text := strings.TrimSpace(setDraft.Value())
		if text == "" {
			return
		}
		setItems.Update(func(list []string) []string {
			return append(append([]string(nil), list...), text)
		})
		setDraft.Set("")
	}

	rows := make([]*vdom.VNode, len(items))
	for i, item := range items {
		rows[i] = vdom.Li(
			vdom.Span(item),
			vdom.Button(vdom.Class("remove"), vdom.OnClick(func() {
				setItems.Update(func(list []string) []string {
					return removeAt(list, i)
				})
			}), "x"),
		)
	}

	return vdom.Section(vdom.Class("todo"),
		vdom.H2(title),
		vdom.Ul(rows),
		vdom.Input(vdom.ID("draft"), vdom.Value(draft), vdom.OnInput(func(v string) {
			setDraft.Set(v)
		})),
		vdom.Button(vdom.ID("add"), vdom.OnClick(add), "add"),
		vdom.P(vdom.Class("summary"), fmt.Sprintf("%d items", len(items))),
	)
})

// removeAt returns a copy of list without index i.
func removeAt(list []string, i int) []string {
	if i < 0 || i >= len(list) {
		return list
	}
	out := make([]string, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}

// intProp reads an integer prop decoded from YAML or set from Go.
func intProp(p vdom.Props, key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// stringsProp reads a list prop as strings.
func stringsProp(p vdom.Props, key string) []string {
	switch v := p[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return nil
	}
}
