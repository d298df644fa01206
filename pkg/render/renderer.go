package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/fiber/pkg/host"
)

// Options configures a Renderer.
type Options struct {
	// Pretty puts block elements on their own indented lines.
	Pretty bool

	// Indent is one indentation level in pretty mode. Default: two spaces.
	Indent string

	// Markers adds data-node="<id>" to every element and
	// data-on-<event> for every listener.
	Markers bool
}

// Renderer writes host trees as HTML.
type Renderer struct {
	opts Options
}

// New creates a Renderer.
func New(opts Options) *Renderer {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	return &Renderer{opts: opts}
}

// String renders the children of root.
func (r *Renderer) String(root *host.Node) (string, error) {
	var buf bytes.Buffer
	if err := r.Write(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Write streams the children of root to w.
func (r *Renderer) Write(w io.Writer, root *host.Node) error {
	if root == nil {
		return nil
	}
	ew := &errWriter{w: w}
	for _, c := range root.Children {
		r.node(ew, c, 0, r.opts.Pretty)
	}
	return ew.err
}

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) str(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

// node writes n. pretty is cleared inside inline content.
func (r *Renderer) node(w *errWriter, n *host.Node, depth int, pretty bool) {
	if n.Tag == host.TextKind {
		if pretty {
			w.str(strings.Repeat(r.opts.Indent, depth))
			w.str(escapeText(n.Text()))
			w.str("\n")
			return
		}
		w.str(escapeText(n.Text()))
		return
	}

	if pretty {
		w.str(strings.Repeat(r.opts.Indent, depth))
	}
	r.openTag(w, n)

	if voidElements[n.Tag] {
		if pretty {
			w.str("\n")
		}
		return
	}

	if !pretty || inlineContent(n) {
		for _, c := range n.Children {
			r.node(w, c, 0, false)
		}
		w.str("</" + n.Tag + ">")
		if pretty {
			w.str("\n")
		}
		return
	}

	w.str("\n")
	for _, c := range n.Children {
		r.node(w, c, depth+1, true)
	}
	w.str(strings.Repeat(r.opts.Indent, depth))
	w.str("</" + n.Tag + ">\n")
}

// inlineContent reports whether every child is text or an inline element.
func inlineContent(n *host.Node) bool {
	for _, c := range n.Children {
		if c.Tag != host.TextKind && !inlineElements[c.Tag] {
			return false
		}
	}
	return true
}

func (r *Renderer) openTag(w *errWriter, n *host.Node) {
	w.str("<" + n.Tag)

	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := n.Attrs[key]
		if booleanAttrs[key] {
			if b, ok := value.(bool); ok {
				if b {
					w.str(" " + key)
				}
				continue
			}
		}
		w.str(" " + key + `="` + escapeAttr(attrString(value)) + `"`)
	}

	if r.opts.Markers {
		w.str(` data-node="` + strconv.Itoa(n.ID) + `"`)
		events := make([]string, 0, len(n.Listeners))
		for e := range n.Listeners {
			events = append(events, e)
		}
		sort.Strings(events)
		for _, e := range events {
			w.str(" data-on-" + e)
		}
	}
	w.str(">")
}

func attrString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
