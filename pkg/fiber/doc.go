// Package fiber implements an interruptible reconciler: it renders view
// trees from package vdom into a host tree through a host.Adapter, and
// keeps the host tree in sync across re-renders without running longer
// than one time slice at a stretch.
//
// # Node Records
//
// Every position of the rendered tree is tracked by a Fiber. Fibers are
// linked parent/first-child/next-sibling so a depth-first walk can stop
// after any node and resume from a single pointer. A fiber built during a
// pass points at the fiber that held the same position in the committed
// tree (its alternate); host handles and hook cells flow forward through
// that link and it is cleared once the pass commits.
//
// # Scheduling
//
// A Scheduler owns the committed tree, the pass being built and the next
// unit pointer. Render and state updates install a new pass; Tick performs
// units until the Deadline runs low, then asks the Driver for another
// slice. When the pointer runs out the pass is committed in one go: node
// removals, creations and attribute updates first, then effects.
//
//	mem := host.NewMemory()
//	loop := fiber.NewLoopDriver(5 * time.Millisecond)
//	s := fiber.New(mem, loop)
//	s.Render(vdom.Div(vdom.Text("hello")), mem.Container())
//	if err := loop.Run(ctx); err != nil { ... }
//
// # Hooks
//
// Component functions keep local state with UseState, side effects with
// UseEffect, mutable boxes with UseRef and can force a re-render with
// UseUpdate. Hooks are matched to the previous render's cells by call
// position, so they must be called unconditionally and in the same order.
//
//	var Counter = vdom.Func("Counter", func(p vdom.Props) *vdom.VNode {
//	    count, setCount := fiber.UseState(0)
//	    fiber.UseEffect(func() fiber.Cleanup {
//	        log.Printf("count is %d", count)
//	        return nil
//	    }, count)
//	    return vdom.Button(vdom.OnClick(func() { setCount.Set(count + 1) }),
//	        vdom.Textf("%d", count))
//	})
//
// A Scheduler is not safe for concurrent use. Drive it from one goroutine.
package fiber
