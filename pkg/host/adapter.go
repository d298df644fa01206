package host

// Handle is an opaque reference to one node of a host tree.
type Handle any

// Adapter is the set of host mutation primitives consumed by the committer.
// CreateHandle must not attach the new node anywhere.
type Adapter interface {
	CreateHandle(kind string) (Handle, error)
	SetAttribute(h Handle, key string, value any) error
	RemoveAttribute(h Handle, key string) error
	AddListener(h Handle, event string, cb any) error
	RemoveListener(h Handle, event string, cb any) error
	AppendChild(parent, child Handle) error
	RemoveChild(parent, child Handle) error
}

// Inserter is implemented by adapters that can insert a child before an
// existing one. ref is always a current child of parent.
type Inserter interface {
	InsertBefore(parent, child, ref Handle) error
}
