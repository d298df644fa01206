// Package fiber is the public API of the fiber reconciler.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/fiber"
//
// Usage:
//
//	var Counter = fiber.Func("Counter", func(p fiber.Props) *fiber.VNode {
//	    count, setCount := fiber.UseState(0)
//	    return fiber.Button(fiber.OnClick(func() {
//	        setCount.Update(func(n int) int { return n + 1 })
//	    }), count)
//	})
//
//	sched, mem, err := fiber.Mount(ctx, fiber.Comp(Counter, nil))
package fiber

import (
	"context"
	"time"

	core "github.com/vango-dev/fiber/pkg/fiber"
	"github.com/vango-dev/fiber/pkg/host"
	"github.com/vango-dev/fiber/pkg/vdom"
)

// =============================================================================
// View trees (re-export from pkg/vdom)
// =============================================================================

// VNode is one node of a view tree.
type VNode = vdom.VNode

// Props are the properties of a node.
type Props = vdom.Props

// Component renders props into a view tree.
type Component = vdom.Component

// Attr is a host attribute.
type Attr = vdom.Attr

// EventHandler binds a listener to a host event.
type EventHandler = vdom.EventHandler

var (
	CreateElement = vdom.CreateElement
	Text          = vdom.Text
	Textf         = vdom.Textf
	Comp          = vdom.Comp
	Func          = vdom.Func
	El            = vdom.El

	Div     = vdom.Div
	Span    = vdom.Span
	P       = vdom.P
	H1      = vdom.H1
	H2      = vdom.H2
	Ul      = vdom.Ul
	Li      = vdom.Li
	Button  = vdom.Button
	Input   = vdom.Input
	Section = vdom.Section

	ID    = vdom.ID
	Class = vdom.Class
	Value = vdom.Value

	On       = vdom.On
	OnClick  = vdom.OnClick
	OnInput  = vdom.OnInput
	OnChange = vdom.OnChange
)

// =============================================================================
// Scheduler (re-export from pkg/fiber)
// =============================================================================

// Scheduler owns the fiber trees and drives render passes.
type Scheduler = core.Scheduler

// Option configures a Scheduler.
type Option = core.Option

// CommitInfo describes one committed pass.
type CommitInfo = core.CommitInfo

// Cleanup is returned by effects and runs before the effect fires again
// and on unmount.
type Cleanup = core.Cleanup

var (
	New              = core.New
	NewLoopDriver    = core.NewLoopDriver
	WithLogger       = core.WithLogger
	WithMetrics      = core.WithMetrics
	WithTracer       = core.WithTracer
	WithDebug        = core.WithDebug
	WithOnCommit     = core.WithOnCommit
	WithMinRemaining = core.WithMinRemaining
	ErrNoContainer   = core.ErrNoContainer
)

// DefaultSlice is the work slice used by Mount.
const DefaultSlice = 5 * time.Millisecond

// Mount renders view into a new in-memory host tree and runs the work loop
// until the first commit.
func Mount(ctx context.Context, view *VNode, opts ...Option) (*Scheduler, *host.Memory, error) {
	mem := host.NewMemory()
	driver := core.NewLoopDriver(DefaultSlice)
	sched := core.New(mem, driver, opts...)
	if err := sched.Render(view, mem.Container()); err != nil {
		return nil, nil, err
	}
	if err := driver.Run(ctx); err != nil {
		return nil, nil, err
	}
	return sched, mem, nil
}

// =============================================================================
// Hooks (re-export from pkg/fiber)
// =============================================================================

// UseState returns the state cell's value and its setter.
func UseState[T any](initial T) (T, core.Setter[T]) {
	return core.UseState(initial)
}

// UseRef returns a box that survives re-renders.
func UseRef[T any](initial T) *core.Ref[T] {
	return core.UseRef(initial)
}

// UseEffect runs fn after commit on mount and whenever deps change.
func UseEffect(fn func() Cleanup, deps ...any) {
	core.UseEffect(fn, deps...)
}

// UseUpdate returns a function forcing the component to re-render.
func UseUpdate() func() {
	return core.UseUpdate()
}
