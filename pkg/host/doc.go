// Package host defines the narrow contract through which fiber mutates an
// output tree, and provides Memory, an in-memory reference implementation.
//
// The committer never touches a host tree directly. It creates handles,
// sets and removes attributes, attaches and detaches listeners, and
// inserts and removes children through an Adapter. A handle is opaque to
// the core; only the adapter that created it knows what it refers to.
//
// Adapters that can insert at a position implement Inserter as well; the
// committer then keeps newly created nodes in their view-tree order instead
// of appending them after existing siblings.
package host
