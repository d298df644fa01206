package fiber

import "github.com/vango-dev/fiber/pkg/vdom"

// reconcileChildren builds the child fibers of wip from elements, matching
// them by position against the children of wip's alternate.
//
// A child whose kind matches the old fiber at the same index is an UPDATE
// that reuses the old handle and hook state. Anything else is a CREATE, and
// the old fiber at that index, along with every old fiber past the end of
// elements, is queued for deletion.
func (s *Scheduler) reconcileChildren(wip *Fiber, elements []*vdom.VNode) {
	var old *Fiber
	if wip.alternate != nil {
		old = wip.alternate.child
	}

	wip.child = nil
	var prev *Fiber
	for _, el := range elements {
		if el == nil {
			continue
		}

		var nf *Fiber
		if old != nil && old.matches(el) {
			nf = newFiber(el, wip)
			nf.Handle = old.Handle
			nf.alternate = old
			nf.inst = old.inst
			nf.EffectTag = EffectUpdate
		} else {
			nf = newFiber(el, wip)
			nf.EffectTag = EffectCreate
			if nf.Comp != nil {
				nf.inst = &instance{sched: s}
			}
			if old != nil {
				s.queueDeletion(old)
			}
		}
		if old != nil {
			old = old.sibling
		}

		if prev == nil {
			wip.child = nf
		} else {
			prev.sibling = nf
		}
		prev = nf
	}

	for ; old != nil; old = old.sibling {
		s.queueDeletion(old)
	}
}

// queueDeletion schedules a committed fiber and its subtree for removal.
// The fiber itself is tagged when the commit runs so that an abandoned pass
// leaves the committed tree untouched.
func (s *Scheduler) queueDeletion(f *Fiber) {
	s.deletions = append(s.deletions, f)
}
