package fiber

import "github.com/vango-dev/fiber/pkg/vdom"

// Batch groups state updates made by fn into a single pass.
//
// Updates are collected while fn runs and deduplicated by component. When
// the outermost batch completes, a single updated component gets a pass
// rooted at itself; several components get one pass from the root.
// Effects always run inside a batch.
//
// Example:
//
//	s.Batch(func() {
//	    setFirst.Set("John")
//	    setLast.Set("Doe")
//	})
//	// One pass, one commit
func (s *Scheduler) Batch(fn func()) {
	s.batchDepth++
	defer func() {
		s.batchDepth--
		if s.batchDepth == 0 {
			s.flushBatch()
		}
	}()
	fn()
}

// enqueueUpdate requests a pass for inst, or records it if a batch is open.
func (s *Scheduler) enqueueUpdate(inst *instance) {
	if s.batchDepth == 0 {
		s.scheduleComponent(inst.current)
		return
	}
	for _, queued := range s.batched {
		if queued == inst {
			return
		}
	}
	s.batched = append(s.batched, inst)
}

// flushBatch schedules the updates collected by the finished batch.
func (s *Scheduler) flushBatch() {
	var live []*instance
	for _, inst := range s.batched {
		if !inst.unmounted && inst.current != nil {
			live = append(live, inst)
		}
	}
	s.batched = nil

	switch {
	case len(live) == 0:
	case len(live) == 1:
		s.scheduleComponent(live[0].current)
	default:
		s.rerender()
	}
}

// rerender starts a pass over the whole committed tree with the view it
// was last rendered with.
func (s *Scheduler) rerender() {
	cur := s.current
	if cur == nil {
		return
	}
	s.install(&Fiber{
		Handle:    cur.Handle,
		Props:     vdom.Props{},
		children:  cur.children,
		root:      true,
		alternate: cur,
		EffectTag: EffectUpdate,
	})
}
