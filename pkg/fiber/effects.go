package fiber

// runEffects runs the effect phase of a commit: cleanups of removed
// components, then cleanups of cells about to re-run, then the effects.
func (s *Scheduler) runEffects(deleted, mounted []*Fiber) {
	for _, f := range deleted {
		s.unmount(f)
	}

	for _, f := range mounted {
		for _, cell := range f.effectCells {
			if cell.fire && cell.cleanup != nil {
				s.rendering = f
				cleanup := cell.cleanup
				cell.cleanup = nil
				cleanup()
			}
		}
	}

	for _, f := range mounted {
		for _, cell := range f.effectCells {
			if !cell.fire {
				continue
			}
			cell.fire = false
			s.rendering = f
			cell.cleanup = cell.fn()
		}
	}
	s.rendering = nil
}

// unmount runs the outstanding cleanups of every component in a removed
// subtree and marks the instances unmounted.
func (s *Scheduler) unmount(root *Fiber) {
	walk(root, func(f *Fiber) {
		if f.Comp == nil {
			return
		}
		if f.inst != nil {
			f.inst.unmounted = true
		}
		for _, cell := range f.effectCells {
			if cell.cleanup == nil {
				continue
			}
			s.rendering = f
			cleanup := cell.cleanup
			cell.cleanup = nil
			cleanup()
		}
	})
	s.rendering = nil
}
