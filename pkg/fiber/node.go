package fiber

import (
	"github.com/vango-dev/fiber/pkg/host"
	"github.com/vango-dev/fiber/pkg/vdom"
)

// EffectTag classifies what the committer must do with a fiber.
type EffectTag uint8

const (
	EffectNone   EffectTag = iota
	EffectCreate           // New host handle to attach
	EffectUpdate           // Existing position, diff attributes
	EffectDelete           // Remove with its whole subtree
)

// String returns the string representation of the EffectTag.
func (t EffectTag) String() string {
	switch t {
	case EffectCreate:
		return "CREATE"
	case EffectUpdate:
		return "UPDATE"
	case EffectDelete:
		return "DELETE"
	default:
		return "NONE"
	}
}

// Fiber is the node record for one position of the rendered tree.
type Fiber struct {
	Tag       string         // Host kind; empty for components
	Comp      vdom.Component // Component reference; nil for host kinds
	Props     vdom.Props
	Handle    host.Handle // Set once at creation, reused by every UPDATE
	EffectTag EffectTag

	// children are the view children of this position.
	children []*vdom.VNode

	parent  *Fiber
	child   *Fiber
	sibling *Fiber

	// alternate is the fiber this one supersedes. Non-owning; cleared
	// after commit.
	alternate *Fiber

	// root marks the container fiber of a full render pass.
	root bool

	// attached is set once the committer has placed or updated this
	// fiber's handle in the host tree.
	attached bool

	// Hook state (component fibers only).
	stateCells  []*stateCell
	effectCells []*effectCell
	hookOrder   []HookType
	inst        *instance
}

// instance is the identity of one mounted component shared by every
// version of its fiber.
type instance struct {
	sched     *Scheduler
	current   *Fiber // last committed version
	unmounted bool
}

// Parent returns the parent fiber.
func (f *Fiber) Parent() *Fiber { return f.parent }

// Child returns the first child fiber.
func (f *Fiber) Child() *Fiber { return f.child }

// Sibling returns the next sibling fiber.
func (f *Fiber) Sibling() *Fiber { return f.sibling }

// Alternate returns the fiber this one supersedes, if the pass that built
// it has not been committed yet.
func (f *Fiber) Alternate() *Fiber { return f.alternate }

// IsComponent reports whether the fiber is a component position.
func (f *Fiber) IsComponent() bool { return f.Comp != nil }

// IsRoot reports whether the fiber is the container of a render pass.
func (f *Fiber) IsRoot() bool { return f.root }

// Name returns the host tag or the component name.
func (f *Fiber) Name() string {
	if f.Comp != nil {
		return vdom.ComponentName(f.Comp)
	}
	if f.root {
		return "#root"
	}
	return f.Tag
}

// Children returns the child fibers in order.
func (f *Fiber) Children() []*Fiber {
	var out []*Fiber
	for c := f.child; c != nil; c = c.sibling {
		out = append(out, c)
	}
	return out
}

// newFiber creates the fiber for a view node under parent.
func newFiber(el *vdom.VNode, parent *Fiber) *Fiber {
	props := el.Props
	if props == nil {
		props = vdom.Props{}
	}
	return &Fiber{
		Tag:      el.Tag,
		Comp:     el.Comp,
		Props:    props,
		children: el.Children,
		parent:   parent,
	}
}

// matches reports whether a fiber can be updated in place by el.
func (f *Fiber) matches(el *vdom.VNode) bool {
	if el.Kind == vdom.KindComponent {
		return f.Comp != nil && vdom.SameComponent(f.Comp, el.Comp)
	}
	return f.Comp == nil && f.Tag == el.Tag
}

// nextPreorder returns the fiber after f in a pre-order walk bounded by
// root: first child, else the nearest next sibling of f or an ancestor
// below root. Returns nil when the walk is complete.
func nextPreorder(f, root *Fiber) *Fiber {
	if f.child != nil {
		return f.child
	}
	for n := f; n != nil; n = n.parent {
		if n == root {
			return nil
		}
		if n.sibling != nil {
			return n.sibling
		}
	}
	return nil
}

// walk visits root and its descendants in pre-order.
func walk(root *Fiber, fn func(*Fiber)) {
	for f := root; f != nil; f = nextPreorder(f, root) {
		fn(f)
	}
}
