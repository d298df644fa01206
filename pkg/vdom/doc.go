// Package vdom provides the view-tree model and builder for fiber.
//
// A view tree is the immutable, declarative description of what the host
// tree should look like after one render. It is produced fresh on every
// render pass and handed to the reconciler in package fiber, which diffs it
// against the previously committed node records.
//
// # Core Types
//
// VNode is the fundamental building block: a host element, a text node or
// a component reference. Props holds attributes and event listeners. Attr
// and EventHandler are used by the variadic element helpers to build Props.
//
// # Building Trees
//
// CreateElement is the generic builder. Scalar children are coerced into
// text nodes, so it never fails on malformed input:
//
//	CreateElement("div", Props{"id": "app"}, "hello", 42)
//
// The element helpers accept any mix of attributes, listeners and children:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    Button(OnClick(inc), Text("+1")),
//	)
//
// # Attribute Diff
//
// DiffProps compares two attribute maps and returns the ordered host
// operations that turn the first into the second. Keys carrying the "on"
// prefix are listeners; a changed listener is replaced, never mutated.
package vdom
