// Package render serializes a committed host tree to HTML.
//
// The renderer walks a host.Memory tree, not a view tree: what it prints
// is exactly what the scheduler committed. It handles:
//
//   - Text and attribute escaping
//   - Void elements (input, br, img, etc.)
//   - Boolean attributes (disabled, checked, etc.)
//   - Optional data-node and data-on-* markers naming host node numbers
//     and registered listeners
//
// # Basic Usage
//
//	r := render.New(render.Options{Pretty: true, Markers: true})
//	html, err := r.String(mem.Container())
//
// The container itself is not printed, only its children.
package render
