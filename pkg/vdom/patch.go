package vdom

// AttrOpKind is the type of a host attribute operation.
type AttrOpKind uint8

const (
	OpSetAttr        AttrOpKind = 0x01 // Set/update attribute
	OpRemoveAttr     AttrOpKind = 0x02 // Remove attribute
	OpAddListener    AttrOpKind = 0x03 // Attach event listener
	OpRemoveListener AttrOpKind = 0x04 // Detach event listener
)

// String returns the string representation of the AttrOpKind.
func (op AttrOpKind) String() string {
	switch op {
	case OpSetAttr:
		return "SetAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	case OpAddListener:
		return "AddListener"
	case OpRemoveListener:
		return "RemoveListener"
	default:
		return "Unknown"
	}
}

// AttrOp is a single host attribute operation produced by DiffProps.
type AttrOp struct {
	Op    AttrOpKind
	Key   string // Prop key ("class", "onClick")
	Event string // Event name for listener ops ("click")
	Value any    // New value, or the listener to add/remove
}
