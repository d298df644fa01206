package vtest

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vango-dev/fiber/pkg/host"
)

// ErrInjected is the default error returned by a failing Recorder call.
var ErrInjected = errors.New("vtest: injected host failure")

// Host operation names used in Op.Name and FailOn.
const (
	OpCreate         = "create"
	OpSetAttr        = "set"
	OpRemoveAttr     = "unset"
	OpAddListener    = "listen"
	OpRemoveListener = "unlisten"
	OpAppend         = "append"
	OpInsert         = "insert"
	OpRemove         = "remove"
)

// Op is one recorded adapter call.
type Op struct {
	Name   string
	Handle host.Handle // Target handle (the parent for tree operations)
	Child  host.Handle // Child for append, insert and remove
	Key    string      // Attribute key or event name
	Value  any
}

// String renders the op for test failure messages.
func (o Op) String() string {
	switch o.Name {
	case OpCreate:
		return fmt.Sprintf("create %v", o.Key)
	case OpAppend, OpInsert, OpRemove:
		return fmt.Sprintf("%s %v -> %v", o.Name, o.Child, o.Handle)
	case OpSetAttr:
		return fmt.Sprintf("set %v %s=%v", o.Handle, o.Key, o.Value)
	default:
		return fmt.Sprintf("%s %v %s", o.Name, o.Handle, o.Key)
	}
}

type failure struct {
	op  string
	nth int
	err error
}

// Recorder wraps a host adapter, logging every call and optionally failing
// selected calls. It is safe for concurrent use.
type Recorder struct {
	inner host.Adapter

	mu       sync.Mutex
	ops      []Op
	counts   map[string]int
	failures []failure
}

// NewRecorder wraps inner.
func NewRecorder(inner host.Adapter) *Recorder {
	return &Recorder{inner: inner, counts: make(map[string]int)}
}

// FailOn makes the nth (1-based) future call of op return err. A nil err
// uses ErrInjected.
func (r *Recorder) FailOn(op string, nth int, err error) {
	if err == nil {
		err = ErrInjected
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, failure{op: op, nth: r.counts[op] + nth, err: err})
}

// Ops returns a copy of the recorded calls.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Op(nil), r.ops...)
}

// Names returns the names of the recorded calls in order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.ops))
	for i, op := range r.ops {
		names[i] = op.Name
	}
	return names
}

// Count returns how many calls of op were recorded.
func (r *Recorder) Count(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, o := range r.ops {
		if o.Name == op {
			n++
		}
	}
	return n
}

// Mutations returns the number of recorded calls that change the host
// tree. Handle creation is not a mutation since new handles are detached.
func (r *Recorder) Mutations() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, o := range r.ops {
		if o.Name != OpCreate {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls. Pending failures are kept.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = nil
}

// record logs op and reports the injected failure for it, if any.
// Failed calls are not recorded and do not reach the inner adapter.
func (r *Recorder) record(op Op) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[op.Name]++
	for i, f := range r.failures {
		if f.op == op.Name && f.nth == r.counts[op.Name] {
			r.failures = append(r.failures[:i], r.failures[i+1:]...)
			return f.err
		}
	}
	r.ops = append(r.ops, op)
	return nil
}

// CreateHandle implements host.Adapter.
func (r *Recorder) CreateHandle(kind string) (host.Handle, error) {
	if err := r.record(Op{Name: OpCreate, Key: kind}); err != nil {
		return nil, err
	}
	return r.inner.CreateHandle(kind)
}

// SetAttribute implements host.Adapter.
func (r *Recorder) SetAttribute(h host.Handle, key string, value any) error {
	if err := r.record(Op{Name: OpSetAttr, Handle: h, Key: key, Value: value}); err != nil {
		return err
	}
	return r.inner.SetAttribute(h, key, value)
}

// RemoveAttribute implements host.Adapter.
func (r *Recorder) RemoveAttribute(h host.Handle, key string) error {
	if err := r.record(Op{Name: OpRemoveAttr, Handle: h, Key: key}); err != nil {
		return err
	}
	return r.inner.RemoveAttribute(h, key)
}

// AddListener implements host.Adapter.
func (r *Recorder) AddListener(h host.Handle, event string, cb any) error {
	if err := r.record(Op{Name: OpAddListener, Handle: h, Key: event, Value: cb}); err != nil {
		return err
	}
	return r.inner.AddListener(h, event, cb)
}

// RemoveListener implements host.Adapter.
func (r *Recorder) RemoveListener(h host.Handle, event string, cb any) error {
	if err := r.record(Op{Name: OpRemoveListener, Handle: h, Key: event, Value: cb}); err != nil {
		return err
	}
	return r.inner.RemoveListener(h, event, cb)
}

// AppendChild implements host.Adapter.
func (r *Recorder) AppendChild(parent, child host.Handle) error {
	if err := r.record(Op{Name: OpAppend, Handle: parent, Child: child}); err != nil {
		return err
	}
	return r.inner.AppendChild(parent, child)
}

// RemoveChild implements host.Adapter.
func (r *Recorder) RemoveChild(parent, child host.Handle) error {
	if err := r.record(Op{Name: OpRemove, Handle: parent, Child: child}); err != nil {
		return err
	}
	return r.inner.RemoveChild(parent, child)
}

// InsertBefore implements host.Inserter. If the wrapped adapter cannot
// insert, the child is appended instead.
func (r *Recorder) InsertBefore(parent, child, ref host.Handle) error {
	ins, ok := r.inner.(host.Inserter)
	if !ok {
		return r.AppendChild(parent, child)
	}
	if err := r.record(Op{Name: OpInsert, Handle: parent, Child: child, Value: ref}); err != nil {
		return err
	}
	return ins.InsertBefore(parent, child, ref)
}

var (
	_ host.Adapter  = (*Recorder)(nil)
	_ host.Inserter = (*Recorder)(nil)
)
