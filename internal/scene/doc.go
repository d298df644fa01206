// Package scene decodes YAML scene files into view trees.
//
// A scene names a root node. Nodes are host elements (tag), references to
// registered components (component) or plain text (a bare scalar):
//
//	name: counter
//	root:
//	  tag: div
//	  attrs: {id: app}
//	  children:
//	    - tag: h1
//	      children: ["Counter"]
//	    - component: counter
//	      props: {start: 3, label: Clicks}
//
// Builtins returns a registry holding the demo components used by fiberctl
// and the inspector.
package scene
