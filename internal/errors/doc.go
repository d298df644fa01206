// Package errors provides structured, coded errors for the fiber runtime
// and the fiberctl tool.
//
// Every error carries a code (e.g. "E103") that maps to a registered
// category, short message and longer explanation. Runtime failures raised
// by the scheduler wrap the underlying cause so errors.Is and errors.As keep
// working through them.
//
// # Error Categories
//
//   - hook: misuse of the hook runtime (call outside render, order change)
//   - host: the host adapter rejected a mutation
//   - render: a component function failed while rendering
//   - scene: a scene file could not be turned into a view tree
//   - config: fiber.json is malformed or invalid
//
// # Usage
//
//	err := errors.New("E103").
//	    WithDetail("appendChild(div#7, span#9)").
//	    Wrap(cause)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E103: Host adapter mutation failed
//	//
//	//   appendChild(div#7, span#9)
//	//
//	//   Learn more: https://fiber.vango.dev/errors/E103
package errors
