package vdom

import (
	"reflect"
)

// DiffProps compares two attribute maps and returns the host operations
// needed to transform prev into next.
//
// Removals come first, then sets, each in sorted key order. A changed
// listener yields a RemoveListener for the old callback followed by an
// AddListener for the new one. The children key never reaches the host.
func DiffProps(prev, next Props) []AttrOp {
	var ops []AttrOp

	// Removed props
	for _, key := range prev.Keys() {
		if !isHostProp(key) {
			continue
		}
		if _, exists := next[key]; exists {
			continue
		}
		if IsEventKey(key) {
			ops = append(ops, AttrOp{Op: OpRemoveListener, Key: key, Event: EventName(key), Value: prev[key]})
		} else {
			ops = append(ops, AttrOp{Op: OpRemoveAttr, Key: key})
		}
	}

	// Added or changed props
	for _, key := range next.Keys() {
		if !isHostProp(key) {
			continue
		}
		nextVal := next[key]
		prevVal, exists := prev[key]

		if IsEventKey(key) {
			if exists && sameListener(prevVal, nextVal) {
				continue
			}
			if exists && prevVal != nil {
				ops = append(ops, AttrOp{Op: OpRemoveListener, Key: key, Event: EventName(key), Value: prevVal})
			}
			if nextVal != nil {
				ops = append(ops, AttrOp{Op: OpAddListener, Key: key, Event: EventName(key), Value: nextVal})
			}
			continue
		}

		if exists && PropsEqual(prevVal, nextVal) {
			continue
		}
		ops = append(ops, AttrOp{Op: OpSetAttr, Key: key, Value: nextVal})
	}

	return ops
}

// isHostProp filters out props that are not host attributes.
func isHostProp(key string) bool {
	return key != ChildrenKey && key != "key"
}

// sameListener reports whether two listener values are the same callback.
// Closures from one literal share a code pointer but not their captured
// state, so func listeners always count as changed.
func sameListener(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if va.Kind() == reflect.Func {
		return false
	}
	return PropsEqual(a, b)
}

// PropsEqual compares two prop values for equality.
func PropsEqual(a, b any) bool {
	// Fast path for common types
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return av == bv
		}
		return false
	case int:
		if bv, ok := b.(int); ok {
			return av == bv
		}
		return false
	case int64:
		if bv, ok := b.(int64); ok {
			return av == bv
		}
		return false
	case float64:
		if bv, ok := b.(float64); ok {
			return av == bv
		}
		return false
	case bool:
		if bv, ok := b.(bool); ok {
			return av == bv
		}
		return false
	case nil:
		return b == nil
	}
	// Fallback to reflect for complex types
	return reflect.DeepEqual(a, b)
}
