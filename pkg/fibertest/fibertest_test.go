package fibertest

import (
	"fmt"
	"testing"

	"github.com/vango-dev/fiber/pkg/fiber"
	"github.com/vango-dev/fiber/pkg/vdom"
)

var toggle = vdom.Func("Toggle", func(vdom.Props) *vdom.VNode {
	on, setOn := fiber.UseState(false)
	label := "off"
	if on {
		label = "on"
	}
	return vdom.Div(vdom.ID("box"), vdom.Class(label),
		vdom.Button(vdom.ID("flip"), vdom.OnClick(func() {
			setOn.Update(func(v bool) bool { return !v })
		}), label),
	)
})

func TestHarness(t *testing.T) {
	h := Mount(t, vdom.Comp(toggle, nil))

	h.ExpectShape(`root[div(class=off id=box)[button(id=flip @click)["off"]]]`)
	h.ExpectElement("button")
	h.ExpectText("flip", "off")

	h.Recorder.Reset()
	h.Click("flip")

	h.ExpectAttribute("box", "class", "on")
	h.ExpectContains(`<button id="flip">on</button>`)
	h.ExpectNotContains("off")
	// class, the click listener swap and the text
	if got := h.Recorder.Mutations(); got != 4 {
		t.Errorf("mutations = %d, want 4: %v", got, h.Recorder.Names())
	}
}

// recordingTB captures failures instead of failing the enclosing test.
type recordingTB struct {
	testing.TB
	errors []string
	fatal  bool
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recordingTB) Fatalf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
	r.fatal = true
}

func TestHarnessReportsFailures(t *testing.T) {
	h := Mount(t, vdom.Comp(toggle, nil))
	rec := &recordingTB{}
	h.t = rec

	h.ExpectShape("root")
	h.ExpectContains("missing")
	h.ExpectNotContains("off")
	h.ExpectElement("table")
	h.ExpectText("flip", "on")
	h.ExpectAttribute("box", "class", "on")

	if len(rec.errors) != 6 {
		t.Errorf("recorded %d failures, want 6: %q", len(rec.errors), rec.errors)
	}
	if rec.fatal {
		t.Error("assertions should not be fatal")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 3); got != "abc..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abc", 3); got != "abc" {
		t.Errorf("truncate = %q", got)
	}
}
