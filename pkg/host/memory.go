package host

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xlab/treeprint"
)

// TextKind is the kind Memory treats as a text node. It matches the text
// tag used by the view-tree builder.
const TextKind = "TEXT_ELEMENT"

// textAttr is the attribute holding a text node's content.
const textAttr = "nodeValue"

var (
	// ErrForeignHandle is returned when a handle was not created by this Memory.
	ErrForeignHandle = errors.New("host: handle not owned by this tree")

	// ErrNotChild is returned when removing or inserting relative to a node
	// that is not a child of the given parent.
	ErrNotChild = errors.New("host: node is not a child of parent")

	// ErrAttached is returned when appending a node that already has a parent.
	ErrAttached = errors.New("host: node already attached")

	// ErrNoListener is returned by Dispatch when no listener is registered.
	ErrNoListener = errors.New("host: no listener for event")
)

// Node is one node of a Memory host tree.
type Node struct {
	ID        int
	Tag       string
	Attrs     map[string]any
	Listeners map[string]any
	Children  []*Node
	Parent    *Node

	owner *Memory
}

// Text returns the content of a text node.
func (n *Node) Text() string {
	s, _ := n.Attrs[textAttr].(string)
	return s
}

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	if n.Tag == TextKind {
		return n.Text()
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// Attached reports whether the node is reachable from its tree's container.
func (n *Node) Attached() bool {
	for p := n; p != nil; p = p.Parent {
		if p.owner != nil && p == p.owner.root {
			return true
		}
	}
	return false
}

// String returns a short label such as div#3 or "hello"#4.
func (n *Node) String() string {
	if n.Tag == TextKind {
		return fmt.Sprintf("%q#%d", n.Text(), n.ID)
	}
	return fmt.Sprintf("%s#%d", n.Tag, n.ID)
}

// Memory is an in-memory host tree. It is the reference Adapter used by
// tests, fiberctl and the inspector. Memory is not safe for concurrent use.
type Memory struct {
	root   *Node
	nextID int
}

// NewMemory creates an empty tree with a "root" container node.
func NewMemory() *Memory {
	m := &Memory{}
	m.root = m.newNode("root")
	return m
}

// Container returns the root container handle.
func (m *Memory) Container() *Node {
	return m.root
}

func (m *Memory) newNode(kind string) *Node {
	m.nextID++
	return &Node{
		ID:        m.nextID,
		Tag:       kind,
		Attrs:     make(map[string]any),
		Listeners: make(map[string]any),
		owner:     m,
	}
}

// node resolves a handle to a node owned by m.
func (m *Memory) node(h Handle) (*Node, error) {
	n, ok := h.(*Node)
	if !ok || n == nil || n.owner != m {
		return nil, fmt.Errorf("%w: %v", ErrForeignHandle, h)
	}
	return n, nil
}

// CreateHandle implements Adapter.
func (m *Memory) CreateHandle(kind string) (Handle, error) {
	if kind == "" {
		return nil, errors.New("host: empty kind")
	}
	return m.newNode(kind), nil
}

// SetAttribute implements Adapter.
func (m *Memory) SetAttribute(h Handle, key string, value any) error {
	n, err := m.node(h)
	if err != nil {
		return err
	}
	n.Attrs[key] = value
	return nil
}

// RemoveAttribute implements Adapter.
func (m *Memory) RemoveAttribute(h Handle, key string) error {
	n, err := m.node(h)
	if err != nil {
		return err
	}
	delete(n.Attrs, key)
	return nil
}

// AddListener implements Adapter. One listener per event is kept.
func (m *Memory) AddListener(h Handle, event string, cb any) error {
	n, err := m.node(h)
	if err != nil {
		return err
	}
	n.Listeners[event] = cb
	return nil
}

// RemoveListener implements Adapter.
func (m *Memory) RemoveListener(h Handle, event string, cb any) error {
	n, err := m.node(h)
	if err != nil {
		return err
	}
	delete(n.Listeners, event)
	return nil
}

// AppendChild implements Adapter.
func (m *Memory) AppendChild(parent, child Handle) error {
	p, c, err := m.pair(parent, child)
	if err != nil {
		return err
	}
	if c.Parent != nil {
		return fmt.Errorf("%w: %s", ErrAttached, c)
	}
	c.Parent = p
	p.Children = append(p.Children, c)
	return nil
}

// InsertBefore implements Inserter.
func (m *Memory) InsertBefore(parent, child, ref Handle) error {
	p, c, err := m.pair(parent, child)
	if err != nil {
		return err
	}
	r, err := m.node(ref)
	if err != nil {
		return err
	}
	if c.Parent != nil {
		return fmt.Errorf("%w: %s", ErrAttached, c)
	}
	idx := indexOf(p.Children, r)
	if idx < 0 {
		return fmt.Errorf("%w: %s in %s", ErrNotChild, r, p)
	}
	p.Children = append(p.Children, nil)
	copy(p.Children[idx+1:], p.Children[idx:])
	p.Children[idx] = c
	c.Parent = p
	return nil
}

// RemoveChild implements Adapter.
func (m *Memory) RemoveChild(parent, child Handle) error {
	p, c, err := m.pair(parent, child)
	if err != nil {
		return err
	}
	idx := indexOf(p.Children, c)
	if idx < 0 {
		return fmt.Errorf("%w: %s in %s", ErrNotChild, c, p)
	}
	p.Children = append(p.Children[:idx], p.Children[idx+1:]...)
	c.Parent = nil
	return nil
}

func (m *Memory) pair(parent, child Handle) (*Node, *Node, error) {
	p, err := m.node(parent)
	if err != nil {
		return nil, nil, err
	}
	c, err := m.node(child)
	if err != nil {
		return nil, nil, err
	}
	return p, c, nil
}

func indexOf(nodes []*Node, n *Node) int {
	for i, c := range nodes {
		if c == n {
			return i
		}
	}
	return -1
}

// Dispatch invokes the listener registered on n for event. Listeners of
// type func() and func(any) are supported.
func (m *Memory) Dispatch(n *Node, event string, payload any) error {
	if _, err := m.node(n); err != nil {
		return err
	}
	switch cb := n.Listeners[strings.ToLower(event)].(type) {
	case func():
		cb()
	case func(any):
		cb(payload)
	case func(string):
		s, _ := payload.(string)
		cb(s)
	case nil:
		return fmt.Errorf("%w: %s on %s", ErrNoListener, event, n)
	default:
		return fmt.Errorf("host: unsupported listener type %T", cb)
	}
	return nil
}

// Find returns the first attached node, in pre-order, matching pred.
func (m *Memory) Find(pred func(*Node) bool) *Node {
	var found *Node
	walk(m.root, func(n *Node) bool {
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindByID returns the attached node with the given ID.
func (m *Memory) FindByID(id int) *Node {
	return m.Find(func(n *Node) bool { return n.ID == id })
}

// Count returns the number of attached nodes, excluding the container.
func (m *Memory) Count() int {
	count := -1
	walk(m.root, func(*Node) bool {
		count++
		return true
	})
	return count
}

// walk visits n and its descendants in pre-order until fn returns false.
func walk(n *Node, fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

// Shape returns a compact, deterministic rendering of the tree: tags with
// sorted attributes, text in quotes, children in brackets. Listeners are
// listed by event name. Used for shape assertions in tests.
//
//	root[div(id=app)[h1["hi"] button(@click)["+"]]]
func (m *Memory) Shape() string {
	var b strings.Builder
	writeShape(&b, m.root)
	return b.String()
}

func writeShape(b *strings.Builder, n *Node) {
	if n.Tag == TextKind {
		fmt.Fprintf(b, "%q", n.Text())
		return
	}
	b.WriteString(n.Tag)
	if label := attrLabel(n); label != "" {
		b.WriteString("(" + label + ")")
	}
	if len(n.Children) == 0 {
		return
	}
	b.WriteString("[")
	for i, c := range n.Children {
		if i > 0 {
			b.WriteString(" ")
		}
		writeShape(b, c)
	}
	b.WriteString("]")
}

func attrLabel(n *Node) string {
	var parts []string
	for _, k := range sortedKeys(n.Attrs) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, n.Attrs[k]))
	}
	for _, k := range sortedKeys(n.Listeners) {
		parts = append(parts, "@"+k)
	}
	return strings.Join(parts, " ")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Dump renders the tree as an indented outline.
func (m *Memory) Dump() string {
	tree := treeprint.New()
	dumpChildren(tree.AddBranch(m.root.String()), m.root)
	return tree.String()
}

func dumpChildren(branch treeprint.Tree, n *Node) {
	for _, c := range n.Children {
		label := c.String()
		if attrs := attrLabel(c); attrs != "" && c.Tag != TextKind {
			label += " " + attrs
		}
		if len(c.Children) == 0 {
			branch.AddNode(label)
			continue
		}
		dumpChildren(branch.AddBranch(label), c)
	}
}

// NodeSnapshot is a JSON-friendly copy of one node.
type NodeSnapshot struct {
	ID        int             `json:"id"`
	Tag       string          `json:"tag"`
	Text      string          `json:"text,omitempty"`
	Attrs     map[string]any  `json:"attrs,omitempty"`
	Listeners []string        `json:"listeners,omitempty"`
	Children  []*NodeSnapshot `json:"children,omitempty"`
}

// Snapshot returns a deep, JSON-friendly copy of the attached tree.
func (m *Memory) Snapshot() *NodeSnapshot {
	return snapshot(m.root)
}

func snapshot(n *Node) *NodeSnapshot {
	s := &NodeSnapshot{ID: n.ID, Tag: n.Tag}
	if n.Tag == TextKind {
		s.Text = n.Text()
	} else if len(n.Attrs) > 0 {
		s.Attrs = make(map[string]any, len(n.Attrs))
		for k, v := range n.Attrs {
			s.Attrs[k] = v
		}
	}
	s.Listeners = sortedKeys(n.Listeners)
	if len(s.Listeners) == 0 {
		s.Listeners = nil
	}
	for _, c := range n.Children {
		s.Children = append(s.Children, snapshot(c))
	}
	return s
}
