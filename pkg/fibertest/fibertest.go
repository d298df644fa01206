// Package fibertest mounts components against an in-memory host for tests
// and asserts on the committed result.
//
//	h := fibertest.Mount(t, fiber.Comp(Counter, nil))
//	h.Click("inc")
//	h.ExpectContains(`<span class="value">1</span>`)
package fibertest

import (
	"context"
	"strings"
	"testing"

	"github.com/vango-dev/fiber/pkg/fiber"
	"github.com/vango-dev/fiber/pkg/host"
	"github.com/vango-dev/fiber/pkg/render"
	"github.com/vango-dev/fiber/pkg/vdom"
	"github.com/vango-dev/fiber/pkg/vtest"
)

// Harness is a mounted view. Every helper fails the test on error.
type Harness struct {
	t testing.TB

	Scheduler *fiber.Scheduler
	Memory    *host.Memory
	Recorder  *vtest.Recorder
}

// Mount renders view into a fresh Memory host and settles.
func Mount(t testing.TB, view *vdom.VNode, opts ...fiber.Option) *Harness {
	t.Helper()
	mem := host.NewMemory()
	rec := vtest.NewRecorder(mem)
	h := &Harness{
		t:         t,
		Scheduler: fiber.New(rec, nil, opts...),
		Memory:    mem,
		Recorder:  rec,
	}
	if err := h.Scheduler.Render(view, mem.Container()); err != nil {
		t.Fatalf("render: %v", err)
	}
	h.Flush()
	return h
}

// Flush runs pending work to completion.
func (h *Harness) Flush() {
	h.t.Helper()
	if err := h.Scheduler.Flush(context.Background()); err != nil {
		h.t.Fatalf("flush: %v", err)
	}
}

// ByID returns the attached node whose id attribute is id.
func (h *Harness) ByID(id string) *host.Node {
	h.t.Helper()
	n := h.Memory.Find(func(n *host.Node) bool { return n.Attrs["id"] == id })
	if n == nil {
		h.t.Fatalf("no node with id %q in %s", id, h.Memory.Shape())
	}
	return n
}

// Dispatch fires event on the node with the given id inside a batch, then
// settles.
func (h *Harness) Dispatch(id, event string, payload any) {
	h.t.Helper()
	h.DispatchNode(h.ByID(id), event, payload)
}

// DispatchNode is Dispatch for a node found some other way.
func (h *Harness) DispatchNode(n *host.Node, event string, payload any) {
	h.t.Helper()
	var err error
	h.Scheduler.Batch(func() {
		err = h.Memory.Dispatch(n, event, payload)
	})
	if err != nil {
		h.t.Fatalf("dispatch %s on %s: %v", event, n, err)
	}
	h.Flush()
}

// Click dispatches a click on the node with the given id.
func (h *Harness) Click(id string) {
	h.t.Helper()
	h.Dispatch(id, "click", nil)
}

// HTML renders the committed host tree.
func (h *Harness) HTML() string {
	h.t.Helper()
	html, err := render.New(render.Options{}).String(h.Memory.Container())
	if err != nil {
		h.t.Fatalf("render html: %v", err)
	}
	return html
}

// ExpectShape asserts the compact shape of the host tree.
func (h *Harness) ExpectShape(want string) {
	h.t.Helper()
	if got := h.Memory.Shape(); got != want {
		h.t.Errorf("shape mismatch\ngot:  %s\nwant: %s", got, want)
	}
}

// ExpectContains asserts that the HTML contains expected.
func (h *Harness) ExpectContains(expected string) {
	h.t.Helper()
	if html := h.HTML(); !strings.Contains(html, expected) {
		h.t.Errorf("expected output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that the HTML does not contain unexpected.
func (h *Harness) ExpectNotContains(unexpected string) {
	h.t.Helper()
	if html := h.HTML(); strings.Contains(html, unexpected) {
		h.t.Errorf("expected output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that a tag is present.
func (h *Harness) ExpectElement(tag string) {
	h.t.Helper()
	if h.Memory.Find(func(n *host.Node) bool { return n.Tag == tag }) == nil {
		h.t.Errorf("expected a <%s> element, got:\n%s", tag, truncate(h.HTML(), 500))
	}
}

// ExpectAttribute asserts an attribute value on the node with the given id.
func (h *Harness) ExpectAttribute(id, attr string, value any) {
	h.t.Helper()
	if got := h.ByID(id).Attrs[attr]; got != value {
		h.t.Errorf("#%s %s = %v, want %v", id, attr, got, value)
	}
}

// ExpectText asserts the text content of the node with the given id.
func (h *Harness) ExpectText(id, want string) {
	h.t.Helper()
	if got := h.ByID(id).TextContent(); got != want {
		h.t.Errorf("#%s text = %q, want %q", id, got, want)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
