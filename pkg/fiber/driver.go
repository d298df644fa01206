package fiber

import (
	"context"
	"sync"
	"time"
)

// Deadline reports how much of the current slice is left.
type Deadline interface {
	TimeRemaining() time.Duration
}

// WorkFunc is the callback a Driver invokes for one slice.
type WorkFunc func(ctx context.Context, d Deadline) error

// Driver is the host's "call me again when convenient" primitive.
type Driver interface {
	RequestWorkSlice(fn WorkFunc)
}

// SliceDeadline is a wall-clock Deadline.
type SliceDeadline struct {
	end time.Time
	now func() time.Time
}

// NewSliceDeadline returns a deadline d from now.
func NewSliceDeadline(d time.Duration) SliceDeadline {
	return SliceDeadline{end: time.Now().Add(d), now: time.Now}
}

// TimeRemaining implements Deadline.
func (d SliceDeadline) TimeRemaining() time.Duration {
	now := d.now
	if now == nil {
		now = time.Now
	}
	if rem := d.end.Sub(now()); rem > 0 {
		return rem
	}
	return 0
}

// Unlimited is a Deadline that never runs out.
type Unlimited struct{}

// TimeRemaining implements Deadline.
func (Unlimited) TimeRemaining() time.Duration { return time.Duration(1<<63 - 1) }

// LoopDriver queues slice requests and runs them on the caller's
// goroutine, each with a fixed wall-clock budget.
type LoopDriver struct {
	slice time.Duration

	mu    sync.Mutex
	queue []WorkFunc
}

// NewLoopDriver creates a driver giving each slice the given budget.
func NewLoopDriver(slice time.Duration) *LoopDriver {
	if slice <= 0 {
		slice = 5 * time.Millisecond
	}
	return &LoopDriver{slice: slice}
}

// RequestWorkSlice implements Driver.
func (d *LoopDriver) RequestWorkSlice(fn WorkFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queue = append(d.queue, fn)
}

// Pending returns the number of queued slices.
func (d *LoopDriver) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

func (d *LoopDriver) pop() WorkFunc {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.queue) == 0 {
		return nil
	}
	fn := d.queue[0]
	d.queue = d.queue[1:]
	return fn
}

// Step runs one queued slice with the given deadline. It reports whether a
// slice was run.
func (d *LoopDriver) Step(ctx context.Context, dl Deadline) (bool, error) {
	fn := d.pop()
	if fn == nil {
		return false, nil
	}
	return true, fn(ctx, dl)
}

// Run runs queued slices until none are left, a slice fails, or ctx is done.
func (d *LoopDriver) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn := d.pop()
		if fn == nil {
			return nil
		}
		if err := fn(ctx, NewSliceDeadline(d.slice)); err != nil {
			return err
		}
	}
}
