package fiber

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/fiber/pkg/host"
	"github.com/vango-dev/fiber/pkg/vdom"
)

// commitRoot applies the pending pass to the host tree, promotes it to the
// current tree and runs effects. It never yields.
func (s *Scheduler) commitRoot(ctx context.Context) error {
	root := s.pending
	deleted := s.deletions
	pass, units := s.pass, s.units
	passTime := time.Since(s.started)
	s.state = StateCommitting
	start := time.Now()

	_, span := s.cfg.Tracer.Start(ctx, "fiber.commit",
		trace.WithAttributes(
			attribute.Int64("fiber.pass", int64(pass)),
			attribute.Int("fiber.units", units),
			attribute.Int("fiber.deletions", len(deleted)),
			attribute.Bool("fiber.subtree", !root.root),
			attribute.String("fiber.root", root.Name()),
		),
	)
	defer span.End()

	if err := s.commitWork(root, deleted); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.abandon("commit")
		return err
	}

	s.promote(root)
	s.pending = nil
	s.next = nil
	s.deletions = nil
	s.state = StateIdle

	mounted := finishTree(root)
	s.Batch(func() { s.runEffects(deleted, mounted) })

	elapsed := time.Since(start)
	s.metrics.commit(!root.root, elapsed)
	span.SetStatus(codes.Ok, "")

	s.logger.Debug("fiber: commit",
		"pass", pass,
		"units", units,
		"deletions", len(deleted),
		"render", passTime,
		"commit", elapsed)

	info := CommitInfo{
		Pass:      pass,
		Units:     units,
		Deletions: len(deleted),
		Subtree:   !root.root,
		Duration:  elapsed,
	}
	if !root.root {
		info.Component = root.Name()
	}
	for _, fn := range s.cfg.OnCommit {
		fn(info)
	}
	return nil
}

// commitWork performs every host mutation of the pass: deletions first,
// then creates and updates in pre-order.
func (s *Scheduler) commitWork(root *Fiber, deleted []*Fiber) error {
	for _, f := range deleted {
		if err := s.commitDeletion(f); err != nil {
			return err
		}
	}
	for f := root; f != nil; f = nextPreorder(f, root) {
		if err := s.commitFiber(f); err != nil {
			return err
		}
	}
	return nil
}

// commitDeletion removes the host nodes of a deleted subtree from their
// host parent.
func (s *Scheduler) commitDeletion(f *Fiber) error {
	f.EffectTag = EffectDelete
	parent := hostParent(f)
	if parent == nil {
		return nil
	}
	return s.removeHostNodes(f, parent)
}

// removeHostNodes removes f's handle from parent, or, for a fiber without
// a handle, the top-level handles of its descendants.
func (s *Scheduler) removeHostNodes(f *Fiber, parent host.Handle) error {
	if f.Handle != nil {
		if err := s.adapter.RemoveChild(parent, f.Handle); err != nil {
			return hostError("remove", f, err)
		}
		return nil
	}
	for c := f.child; c != nil; c = c.sibling {
		if err := s.removeHostNodes(c, parent); err != nil {
			return err
		}
	}
	return nil
}

// commitFiber applies the effect of one fiber of the pass.
func (s *Scheduler) commitFiber(f *Fiber) error {
	switch {
	case f.root, f.Comp != nil:
	case f.EffectTag == EffectCreate:
		if err := s.applyProps(f, nil); err != nil {
			return err
		}
		if err := s.place(f); err != nil {
			return err
		}
	case f.EffectTag == EffectUpdate:
		var prev vdom.Props
		if f.alternate != nil {
			prev = f.alternate.Props
		}
		if err := s.applyProps(f, prev); err != nil {
			return err
		}
	}
	f.attached = true
	return nil
}

// applyProps applies the attribute diff from prev to f.Props on f's handle.
func (s *Scheduler) applyProps(f *Fiber, prev vdom.Props) error {
	for _, op := range vdom.DiffProps(prev, f.Props) {
		var err error
		switch op.Op {
		case vdom.OpSetAttr:
			err = s.adapter.SetAttribute(f.Handle, op.Key, op.Value)
		case vdom.OpRemoveAttr:
			err = s.adapter.RemoveAttribute(f.Handle, op.Key)
		case vdom.OpAddListener:
			err = s.adapter.AddListener(f.Handle, op.Event, op.Value)
		case vdom.OpRemoveListener:
			err = s.adapter.RemoveListener(f.Handle, op.Event, op.Value)
		}
		if err != nil {
			return hostError(op.Op.String(), f, err)
		}
	}
	return nil
}

// place attaches a new handle under its host parent, before the next
// sibling already in the host tree when the adapter can insert.
func (s *Scheduler) place(f *Fiber) error {
	parent := hostParent(f)
	if parent == nil {
		return nil
	}
	if ins, ok := s.adapter.(host.Inserter); ok {
		if ref := hostSibling(f); ref != nil {
			if err := ins.InsertBefore(parent, f.Handle, ref); err != nil {
				return hostError("insert", f, err)
			}
			return nil
		}
	}
	if err := s.adapter.AppendChild(parent, f.Handle); err != nil {
		return hostError("append", f, err)
	}
	return nil
}

// hostParent returns the handle of the nearest ancestor that has one.
func hostParent(f *Fiber) host.Handle {
	for p := f.parent; p != nil; p = p.parent {
		if p.Handle != nil {
			return p.Handle
		}
	}
	return nil
}

// hostSibling returns the first handle after f, under the same host parent,
// that is already in the host tree.
func hostSibling(f *Fiber) host.Handle {
	for n := f; n != nil; n = n.parent {
		for sib := n.sibling; sib != nil; sib = sib.sibling {
			if h := placedHandle(sib); h != nil {
				return h
			}
		}
		if n.parent == nil || n.parent.Handle != nil {
			return nil
		}
	}
	return nil
}

// placedHandle returns the first handle in f's subtree that is already in
// the host tree.
func placedHandle(f *Fiber) host.Handle {
	if !f.attached && f.EffectTag != EffectUpdate {
		return nil
	}
	if f.Handle != nil {
		return f.Handle
	}
	for c := f.child; c != nil; c = c.sibling {
		if h := placedHandle(c); h != nil {
			return h
		}
	}
	return nil
}

// promote makes the committed pass part of the current tree.
func (s *Scheduler) promote(root *Fiber) {
	if root.root {
		s.current = root
		return
	}

	old := root.alternate
	parent := root.parent
	if parent == nil {
		return
	}
	if parent.child == old {
		parent.child = root
		return
	}
	for c := parent.child; c != nil; c = c.sibling {
		if c.sibling == old {
			c.sibling = root
			return
		}
	}
}

// finishTree releases the previous versions held by the committed pass and
// returns its component fibers in pre-order.
func finishTree(root *Fiber) []*Fiber {
	var mounted []*Fiber
	walk(root, func(f *Fiber) {
		f.alternate = nil
		if f.Comp != nil {
			f.inst.current = f
			mounted = append(mounted, f)
		}
	})
	return mounted
}
