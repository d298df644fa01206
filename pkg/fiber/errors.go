package fiber

import "errors"

// ErrNoContainer is wrapped by the error Render returns for a nil container.
var ErrNoContainer = errors.New("fiber: render needs a container handle")

// ErrNotRendering is wrapped by the panic raised when a hook is called
// outside a component render.
var ErrNotRendering = errors.New("fiber: hook called outside render")
