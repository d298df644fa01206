package vdom

import "fmt"

// CreateElement builds a view node. kind is either a host tag (string) or
// a Component. Children may be *VNode, []*VNode, nil (skipped) or any
// other value, which is coerced into a text node.
func CreateElement(kind any, props Props, children ...any) *VNode {
	node := &VNode{Props: make(Props, len(props))}
	for k, v := range props {
		node.Props[k] = v
	}

	switch k := kind.(type) {
	case string:
		node.Kind = KindElement
		node.Tag = k
		if k == TextTag {
			node.Kind = KindText
		}
	case Component:
		node.Kind = KindComponent
		node.Comp = k
	case func(Props) *VNode:
		node.Kind = KindComponent
		node.Comp = ComponentFunc(k)
	default:
		node.Kind = KindElement
		node.Tag = fmt.Sprint(k)
	}

	node.Children = appendChildren(make([]*VNode, 0, len(children)), children)
	return node
}

// appendChildren normalizes builder children: nodes are kept, slices are
// flattened, nil is dropped and every scalar becomes a text node.
func appendChildren(dst []*VNode, children []any) []*VNode {
	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				dst = append(dst, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					dst = append(dst, c)
				}
			}
		case []any:
			dst = appendChildren(dst, v)
		case string:
			dst = append(dst, Text(v))
		case fmt.Stringer:
			dst = append(dst, Text(v.String()))
		default:
			dst = append(dst, Text(fmt.Sprint(v)))
		}
	}
	return dst
}

// Text creates a text node.
func Text(s string) *VNode {
	return &VNode{
		Kind:     KindText,
		Tag:      TextTag,
		Props:    Props{NodeValue: s},
		Children: []*VNode{},
	}
}

// Textf creates a text node from a format string.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Comp creates a component node with the given props and children.
func Comp(c Component, props Props, children ...any) *VNode {
	return CreateElement(c, props, children...)
}

// El creates a host element with the given tag.
// Arguments can be: nil, Attr, []Attr, Props, EventHandler, *VNode,
// []*VNode, Component, string.
func El(tag string, args ...any) *VNode {
	return createElement(tag, args)
}

// createElement creates a new VNode with the given tag and arguments.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue

		case Attr:
			if v.Key != "" {
				node.Props[v.Key] = v.Value
			}

		case []Attr:
			for _, a := range v {
				if a.Key != "" {
					node.Props[a.Key] = a.Value
				}
			}

		case Props:
			for k, val := range v {
				node.Props[k] = val
			}

		case EventHandler:
			node.Props[v.Event] = v.Handler

		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*VNode:
			for _, child := range v {
				if child != nil {
					node.Children = append(node.Children, child)
				}
			}

		case Component:
			// Embedded component - wrap in KindComponent VNode
			node.Children = append(node.Children, &VNode{
				Kind:  KindComponent,
				Comp:  v,
				Props: Props{},
			})

		default:
			node.Children = appendChildren(node.Children, []any{v})
		}
	}

	return node
}

// Content sectioning elements

func Header(args ...any) *VNode  { return createElement("header", args) }
func Footer(args ...any) *VNode  { return createElement("footer", args) }
func Main(args ...any) *VNode    { return createElement("main", args) }
func Nav(args ...any) *VNode     { return createElement("nav", args) }
func Section(args ...any) *VNode { return createElement("section", args) }
func H1(args ...any) *VNode      { return createElement("h1", args) }
func H2(args ...any) *VNode      { return createElement("h2", args) }
func H3(args ...any) *VNode      { return createElement("h3", args) }

// Text content elements

func Div(args ...any) *VNode  { return createElement("div", args) }
func P(args ...any) *VNode    { return createElement("p", args) }
func Span(args ...any) *VNode { return createElement("span", args) }
func Ul(args ...any) *VNode   { return createElement("ul", args) }
func Ol(args ...any) *VNode   { return createElement("ol", args) }
func Li(args ...any) *VNode   { return createElement("li", args) }
func Pre(args ...any) *VNode  { return createElement("pre", args) }

// Inline and form elements

func A(args ...any) *VNode        { return createElement("a", args) }
func Strong(args ...any) *VNode   { return createElement("strong", args) }
func Em(args ...any) *VNode       { return createElement("em", args) }
func Code(args ...any) *VNode     { return createElement("code", args) }
func Form(args ...any) *VNode     { return createElement("form", args) }
func Input(args ...any) *VNode    { return createElement("input", args) }
func Button(args ...any) *VNode   { return createElement("button", args) }
func Label(args ...any) *VNode    { return createElement("label", args) }
func Progress(args ...any) *VNode { return createElement("progress", args) }
