package vdom

import (
	"reflect"
	"sort"
)

// TextTag is the host kind used for text nodes.
const TextTag = "TEXT_ELEMENT"

// NodeValue is the attribute carrying a text node's content.
const NodeValue = "nodeValue"

// ChildrenKey is the props entry under which a component receives the
// children it was given.
const ChildrenKey = "children"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindComponent              // Component reference
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// VNode is one node of a view tree.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Host kind ("div", TextTag); empty for components
	Comp     Component // For KindComponent
	Props    Props     // Attributes and event listeners
	Children []*VNode  // Child nodes
}

// Props holds attributes and event listeners.
type Props map[string]any

// Children returns the children passed to a component, if any.
func (p Props) Children() []*VNode {
	children, _ := p[ChildrenKey].([]*VNode)
	return children
}

// GetString returns a string prop, or "" if absent or not a string.
func (p Props) GetString(key string) string {
	s, _ := p[key].(string)
	return s
}

// Keys returns the prop keys in sorted order.
func (p Props) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of the props.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event listener.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any    // Function to call
}

// Component is anything that can render to a VNode.
// Components are compared by identity when the reconciler matches a new
// view node against a previous node record, so declare them once (at
// package level) rather than per render.
type Component interface {
	Render(props Props) *VNode
}

// ComponentFunc adapts an ordinary function to the Component interface.
type ComponentFunc func(props Props) *VNode

// Render implements Component.
func (f ComponentFunc) Render(props Props) *VNode {
	return f(props)
}

// FuncComponent is a named function component.
type FuncComponent struct {
	name   string
	render func(Props) *VNode
}

// Render implements Component.
func (f *FuncComponent) Render(props Props) *VNode {
	return f.render(props)
}

// Name returns the component's display name.
func (f *FuncComponent) Name() string {
	return f.name
}

// Func creates a named component from a render function.
func Func(name string, render func(Props) *VNode) *FuncComponent {
	return &FuncComponent{name: name, render: render}
}

// ComponentName returns a display name for a component: its Name() if it
// has one, otherwise its dynamic type.
func ComponentName(c Component) string {
	if c == nil {
		return ""
	}
	if named, ok := c.(interface{ Name() string }); ok {
		return named.Name()
	}
	return reflect.TypeOf(c).String()
}

// SameKind reports whether two view nodes have the same kind: equal tags
// for host nodes, identical components for component nodes.
func SameKind(a, b *VNode) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind != KindComponent {
		return a.Tag == b.Tag
	}
	return SameComponent(a.Comp, b.Comp)
}

// SameComponent reports whether two components are the same component.
// Comparable values (pointers, structs) use ==; function components are
// compared by code pointer.
func SameComponent(a, b Component) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Kind() == reflect.Func {
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	if !ta.Comparable() {
		return false
	}
	return a == b
}

// IsInteractive returns true if this node has event listeners.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for key := range v.Props {
		if IsEventKey(key) {
			return true
		}
	}
	return false
}

// TextContent returns the content of a text node, or the concatenated text
// of all descendant text nodes.
func (v *VNode) TextContent() string {
	if v == nil {
		return ""
	}
	if v.Kind == KindText {
		s, _ := v.Props[NodeValue].(string)
		return s
	}
	var out string
	for _, child := range v.Children {
		out += child.TextContent()
	}
	return out
}
