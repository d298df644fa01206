package fiber

import (
	"fmt"
	"reflect"

	"github.com/vango-dev/fiber/internal/errors"
	"github.com/vango-dev/fiber/pkg/vdom"
)

// HookType identifies the type of hook call for order validation.
type HookType uint8

const (
	HookState HookType = iota + 1
	HookEffect
	HookRef
	HookUpdate
)

// String returns a human-readable name for the hook type.
func (h HookType) String() string {
	switch h {
	case HookState:
		return "State"
	case HookEffect:
		return "Effect"
	case HookRef:
		return "Ref"
	case HookUpdate:
		return "Update"
	default:
		return "Unknown"
	}
}

// Cleanup is returned by an effect to undo it.
type Cleanup func()

// stateCell holds one UseState (or UseRef) value and the actions queued
// against it since it was rendered.
type stateCell struct {
	value any
	queue []func(any) any
}

// resolve returns the value with every queued action applied in order.
// The cell itself is not modified.
func (c *stateCell) resolve() any {
	v := c.value
	for _, action := range c.queue {
		v = action(v)
	}
	return v
}

// effectCell holds one UseEffect registration.
type effectCell struct {
	fn      func() Cleanup
	deps    []any
	cleanup Cleanup
	seeded  bool // a previous cell existed at this position
	fire    bool // run fn in the coming commit
}

// mustRender returns the active render context or panics with E101.
func mustRender(hook string) *renderContext {
	rc := currentRender()
	if rc == nil {
		panic(errors.New("E101").
			WithDetail(hook + " was called while no component was rendering.").
			Wrap(ErrNotRendering))
	}
	return rc
}

// nextHook records a hook call on the rendering fiber and checks it
// against the previous render's call at the same position.
func (rc *renderContext) nextHook(ht HookType) {
	f := rc.fiber
	pos := len(f.hookOrder)
	f.hookOrder = append(f.hookOrder, ht)

	alt := f.alternate
	if alt == nil || pos >= len(alt.hookOrder) {
		return
	}
	if prev := alt.hookOrder[pos]; prev != ht {
		panic(errors.New("E102").
			WithComponent(f.Name()).
			WithDetail(fmt.Sprintf("hook %d was %s on the previous render and is %s now", pos, prev, ht)))
	}
}

// checkHookCount verifies that a render made as many hook calls as the
// previous one.
func checkHookCount(f *Fiber) {
	alt := f.alternate
	if alt == nil || alt.Comp == nil || len(alt.hookOrder) == len(f.hookOrder) {
		return
	}
	panic(errors.New("E102").
		WithComponent(f.Name()).
		WithDetail(fmt.Sprintf("rendered %d hooks, previous render had %d", len(f.hookOrder), len(alt.hookOrder))))
}

// useCell returns the state cell for the next state position, seeded from
// the previous version's cell with its queued actions applied.
func (rc *renderContext) useCell(initial func() any) *stateCell {
	f := rc.fiber
	idx := len(f.stateCells)

	var cell *stateCell
	if alt := f.alternate; alt != nil && idx < len(alt.stateCells) {
		cell = &stateCell{value: alt.stateCells[idx].resolve()}
	} else {
		cell = &stateCell{value: initial()}
	}
	f.stateCells = append(f.stateCells, cell)
	return cell
}

// Setter updates one UseState cell.
type Setter[T any] struct {
	inst  *instance
	index int
}

// Set schedules the state to become v.
func (s Setter[T]) Set(v T) {
	s.Update(func(T) T { return v })
}

// Update schedules fn to be applied to the state. Updates queued between
// renders are applied in order on the next render.
//
// The next value is computed right away; if it is identical to the
// current value no pass is scheduled.
func (s Setter[T]) Update(fn func(T) T) {
	inst := s.inst
	if inst == nil {
		return
	}
	sched := inst.sched
	if inst.unmounted {
		sched.cfg.Logger.Warn("fiber: state update on unmounted component ignored")
		return
	}
	f := inst.current
	if f == nil || s.index >= len(f.stateCells) {
		sched.cfg.Logger.Warn("fiber: state update before first commit ignored")
		return
	}

	cell := f.stateCells[s.index]
	cur := cell.resolve()
	next := fn(as[T](cur))
	if identical(cur, next) {
		sched.metrics.bailout()
		return
	}

	cell.queue = append(cell.queue, func(v any) any { return fn(as[T](v)) })
	sched.enqueueUpdate(inst)
}

// Value returns the latest state, including updates not yet rendered.
func (s Setter[T]) Value() T {
	if s.inst == nil || s.inst.current == nil || s.index >= len(s.inst.current.stateCells) {
		var zero T
		return zero
	}
	return as[T](s.inst.current.stateCells[s.index].resolve())
}

// UseState returns the component's state at this position and a setter.
// initial is used on the first render only.
func UseState[T any](initial T) (T, Setter[T]) {
	rc := mustRender("UseState")
	rc.nextHook(HookState)

	cell := rc.useCell(func() any { return initial })
	return as[T](cell.value), Setter[T]{inst: rc.fiber.inst, index: len(rc.fiber.stateCells) - 1}
}

// Ref is a mutable box that keeps its identity across renders.
type Ref[T any] struct {
	Current T
}

// UseRef returns the component's ref at this position.
func UseRef[T any](initial T) *Ref[T] {
	rc := mustRender("UseRef")
	rc.nextHook(HookRef)

	cell := rc.useCell(func() any { return &Ref[T]{Current: initial} })
	return cell.value.(*Ref[T])
}

// UseUpdate returns a function that re-renders the component without
// changing any state.
func UseUpdate() func() {
	rc := mustRender("UseUpdate")
	rc.nextHook(HookUpdate)

	inst := rc.fiber.inst
	return func() {
		if inst.unmounted {
			inst.sched.cfg.Logger.Warn("fiber: update on unmounted component ignored")
			return
		}
		if inst.current == nil {
			inst.sched.cfg.Logger.Warn("fiber: update before first commit ignored")
			return
		}
		inst.sched.enqueueUpdate(inst)
	}
}

// UseEffect registers fn to run after the commit of this render.
//
// fn runs after the first commit of the component. After that it runs only
// when deps differ from the previous render's deps at some position; with
// no deps it never runs again. Before fn re-runs, and when the component is
// removed, the Cleanup returned by its last run is invoked.
func UseEffect(fn func() Cleanup, deps ...any) {
	rc := mustRender("UseEffect")
	rc.nextHook(HookEffect)

	f := rc.fiber
	idx := len(f.effectCells)
	cell := &effectCell{fn: fn, deps: append([]any(nil), deps...)}

	if alt := f.alternate; alt != nil && idx < len(alt.effectCells) {
		prev := alt.effectCells[idx]
		cell.seeded = true
		cell.cleanup = prev.cleanup
		cell.fire = len(deps) > 0 && depsChanged(prev.deps, deps)
	} else {
		cell.fire = true
	}
	f.effectCells = append(f.effectCells, cell)
}

// depsChanged compares two dependency lists element-wise.
func depsChanged(prev, next []any) bool {
	if len(prev) != len(next) {
		return true
	}
	for i := range next {
		if !identical(prev[i], next[i]) {
			return true
		}
	}
	return false
}

// identical reports whether a and b are the same value: equal dynamic
// types and == for comparable values. Values that cannot be compared are
// never identical.
func identical(a, b any) (same bool) {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta == nil {
		return true
	}
	if !ta.Comparable() {
		return false
	}
	// Structs holding interfaces can still panic on ==.
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

// as converts a cell value to T, mapping nil to T's zero value.
func as[T any](v any) T {
	t, _ := v.(T)
	return t
}

// componentProps returns the props a component is rendered with.
func componentProps(f *Fiber) vdom.Props {
	if len(f.children) == 0 {
		return f.Props
	}
	props := f.Props.Clone()
	props[vdom.ChildrenKey] = f.children
	return props
}
