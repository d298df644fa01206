package fiber

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vango-dev/fiber/internal/errors"
	"github.com/vango-dev/fiber/pkg/host"
	"github.com/vango-dev/fiber/pkg/vdom"
)

// State is the phase of a Scheduler.
type State uint8

const (
	StateIdle State = iota
	StateWorking
	StateCommitting
)

// String returns the string representation of the State.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWorking:
		return "working"
	case StateCommitting:
		return "committing"
	default:
		return "unknown"
	}
}

// Scheduler owns one fiber tree and drives its render passes.
//
// A Scheduler is not safe for concurrent use. Tick, Render and state
// setters must be called from one goroutine at a time.
type Scheduler struct {
	adapter host.Adapter
	driver  Driver
	cfg     Config
	metrics *Metrics
	logger  *slog.Logger

	current   *Fiber   // committed root
	pending   *Fiber   // root of the pass in progress
	next      *Fiber   // next unit of work
	deletions []*Fiber // committed fibers the pending pass removes

	state     State
	pass      uint64
	units     int
	started   time.Time
	scheduled bool

	batchDepth int
	batched    []*instance

	// rendering is the component fiber whose render or effect is running.
	rendering *Fiber
}

// New creates a Scheduler that mutates the host through adapter and asks
// driver for work slices.
func New(adapter host.Adapter, driver Driver, opts ...Option) *Scheduler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.resolve()

	return &Scheduler{
		adapter: adapter,
		driver:  driver,
		cfg:     cfg,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
	}
}

// Render schedules view to be rendered into container. The host tree is
// not touched until the pass commits. A nil view unmounts everything
// previously rendered into container.
func (s *Scheduler) Render(view *vdom.VNode, container host.Handle) error {
	if container == nil {
		return errors.New("E105").Wrap(ErrNoContainer)
	}

	root := &Fiber{
		Handle:    container,
		Props:     vdom.Props{},
		root:      true,
		EffectTag: EffectUpdate,
	}
	if view != nil {
		root.children = []*vdom.VNode{view}
	}

	var orphans []*Fiber
	if cur := s.current; cur != nil {
		if identical(cur.Handle, container) {
			root.alternate = cur
		} else {
			// A new container starts a fresh tree; the old one is removed
			// from its own container by this pass.
			orphans = cur.Children()
		}
	}

	s.install(root)
	s.deletions = append(s.deletions, orphans...)
	return nil
}

// scheduleComponent starts a pass rooted at a copy of the committed
// component fiber f.
func (s *Scheduler) scheduleComponent(f *Fiber) {
	clone := &Fiber{
		Comp:      f.Comp,
		Props:     f.Props,
		children:  f.children,
		parent:    f.parent,
		sibling:   f.sibling,
		alternate: f,
		EffectTag: EffectUpdate,
		inst:      f.inst,
	}
	s.install(clone)
}

// install makes root the pending pass, discarding any pass in progress.
func (s *Scheduler) install(root *Fiber) {
	if s.pending != nil {
		s.metrics.discard("superseded")
		s.logger.Debug("fiber: pass discarded",
			"pass", s.pass,
			"units", s.units,
			"reason", "superseded")
	}

	s.pass++
	s.pending = root
	s.next = root
	s.deletions = nil
	s.units = 0
	s.started = time.Now()
	s.state = StateWorking

	s.logger.Debug("fiber: pass started",
		"pass", s.pass,
		"root", root.Name(),
		"subtree", !root.root)

	s.requestSlice()
}

// requestSlice asks the driver for a slice unless one is already queued.
func (s *Scheduler) requestSlice() {
	if s.scheduled || s.driver == nil {
		return
	}
	s.scheduled = true
	s.driver.RequestWorkSlice(s.Tick)
}

// Tick performs units of work until the pass is done or d runs low. A
// completed pass is committed before Tick returns. Tick has the WorkFunc
// signature so it can be handed to a Driver directly.
func (s *Scheduler) Tick(ctx context.Context, d Deadline) (err error) {
	s.scheduled = false
	if s.pending == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = s.renderFailed(r)
		}
	}()

	for s.next != nil {
		gen := s.pass
		next, err := s.performUnit(s.next)
		if err != nil {
			s.abandon("host")
			return err
		}
		// A state update during the unit may have installed a new pass.
		if s.pass == gen {
			s.next = next
		}
		s.metrics.unit()

		if s.next != nil && d.TimeRemaining() < s.cfg.MinRemaining {
			s.metrics.yield()
			s.logger.Debug("fiber: yield",
				"pass", s.pass,
				"units", s.units)
			s.requestSlice()
			return nil
		}
	}

	return s.commitRoot(ctx)
}

// performUnit reconciles one fiber and returns the next unit.
func (s *Scheduler) performUnit(f *Fiber) (*Fiber, error) {
	gen := s.pass
	if s.cfg.Debug {
		s.logger.Debug("fiber: unit",
			"pass", s.pass,
			"fiber", f.Name(),
			"effect", f.EffectTag.String())
	}

	if f.Comp != nil {
		s.updateComponent(f)
	} else if err := s.updateHost(f); err != nil {
		return nil, err
	}
	if s.pass != gen {
		return nil, nil
	}

	s.units++
	return nextPreorder(f, s.pending), nil
}

// updateComponent renders a component fiber and reconciles its output as
// its single child.
func (s *Scheduler) updateComponent(f *Fiber) {
	if f.inst == nil {
		f.inst = &instance{sched: s}
	}
	f.stateCells = nil
	f.effectCells = nil
	f.hookOrder = nil

	gen := s.pass
	s.rendering = f
	prev := setCurrentRender(&renderContext{fiber: f, sched: s})
	out := func() *vdom.VNode {
		defer setCurrentRender(prev)
		return f.Comp.Render(componentProps(f))
	}()
	checkHookCount(f)
	s.rendering = nil

	if s.pass != gen {
		return
	}

	var children []*vdom.VNode
	if out != nil {
		children = []*vdom.VNode{out}
	}
	s.reconcileChildren(f, children)
}

// updateHost creates the host handle of a new host fiber and reconciles
// its view children.
func (s *Scheduler) updateHost(f *Fiber) error {
	if f.Handle == nil && !f.root {
		h, err := s.adapter.CreateHandle(f.Tag)
		if err != nil {
			return hostError("create", f, err)
		}
		f.Handle = h
	}
	s.reconcileChildren(f, f.children)
	return nil
}

// abandon drops the pending pass. The committed tree stays authoritative.
func (s *Scheduler) abandon(phase string) {
	s.metrics.failure(phase)
	s.logger.Debug("fiber: pass abandoned",
		"pass", s.pass,
		"phase", phase)
	s.pending = nil
	s.next = nil
	s.deletions = nil
	s.rendering = nil
	s.state = StateIdle
}

// renderFailed converts a panic raised by a component into an error and
// abandons the pass.
func (s *Scheduler) renderFailed(r any) error {
	name := ""
	if s.rendering != nil {
		name = s.rendering.Name()
	}
	s.abandon("render")

	if fe, ok := r.(*errors.FiberError); ok {
		if fe.Component == "" && name != "" {
			fe.Component = name
		}
		return fe
	}

	var cause error
	switch v := r.(type) {
	case error:
		cause = v
	default:
		cause = fmt.Errorf("%v", v)
	}
	err := errors.New("E104").Wrap(cause)
	if name != "" {
		err = err.WithComponent(name)
	}
	return err
}

// hostError wraps an adapter failure on f.
func hostError(op string, f *Fiber, err error) error {
	return errors.New("E103").
		WithDetail(fmt.Sprintf("%s failed on <%s>", op, f.Name())).
		Wrap(fmt.Errorf("%s: %w", op, err))
}

// State returns the scheduler's phase.
func (s *Scheduler) State() State { return s.state }

// Current returns the committed root fiber, or nil before the first commit.
func (s *Scheduler) Current() *Fiber { return s.current }

// Pending returns the root of the pass in progress, or nil.
func (s *Scheduler) Pending() *Fiber { return s.pending }

// NextUnit returns the fiber the next tick will start with, or nil.
func (s *Scheduler) NextUnit() *Fiber { return s.next }

// Pass returns the number of passes started so far.
func (s *Scheduler) Pass() uint64 { return s.pass }

// Adapter returns the host adapter.
func (s *Scheduler) Adapter() host.Adapter { return s.adapter }

// Flush runs the pending pass to completion without yielding.
func (s *Scheduler) Flush(ctx context.Context) error {
	for s.pending != nil {
		if err := s.Tick(ctx, Unlimited{}); err != nil {
			return err
		}
	}
	return nil
}
