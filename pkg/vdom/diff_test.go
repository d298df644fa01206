package vdom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func opKinds(ops []AttrOp) []string {
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = op.Op.String() + ":" + op.Key
	}
	return out
}

func TestDiffPropsAttributes(t *testing.T) {
	prev := Props{"id": "a", "class": "x"}
	next := Props{"class": "y", "title": "t"}

	ops := DiffProps(prev, next)

	want := []AttrOp{
		{Op: OpRemoveAttr, Key: "id"},
		{Op: OpSetAttr, Key: "class", Value: "y"},
		{Op: OpSetAttr, Key: "title", Value: "t"},
	}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Errorf("DiffProps (-want +got):\n%s", diff)
	}
}

func TestDiffPropsUnchanged(t *testing.T) {
	ops := DiffProps(Props{"id": "a", "n": 1}, Props{"id": "a", "n": 1})
	if len(ops) != 0 {
		t.Errorf("expected no ops, got %v", opKinds(ops))
	}
}

func TestDiffPropsFromNil(t *testing.T) {
	ops := DiffProps(nil, Props{"b": 1, "a": 2, ChildrenKey: []*VNode{}})
	want := []string{"SetAttr:a", "SetAttr:b"}
	if diff := cmp.Diff(want, opKinds(ops)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDiffPropsListenerReplaced(t *testing.T) {
	oldFn := func() {}
	newFn := func() {}

	ops := DiffProps(Props{"onClick": oldFn}, Props{"onClick": newFn})

	want := []string{"RemoveListener:onClick", "AddListener:onClick"}
	if diff := cmp.Diff(want, opKinds(ops)); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if ops[0].Event != "click" || ops[1].Event != "click" {
		t.Errorf("event names = %q, %q", ops[0].Event, ops[1].Event)
	}
}

func TestDiffPropsListenerAddedAndRemoved(t *testing.T) {
	fn := func() {}

	added := DiffProps(Props{}, Props{"onInput": fn})
	if diff := cmp.Diff([]string{"AddListener:onInput"}, opKinds(added)); diff != "" {
		t.Errorf("added (-want +got):\n%s", diff)
	}

	removed := DiffProps(Props{"onInput": fn}, Props{})
	if diff := cmp.Diff([]string{"RemoveListener:onInput"}, opKinds(removed)); diff != "" {
		t.Errorf("removed (-want +got):\n%s", diff)
	}
	if removed[0].Event != "input" {
		t.Errorf("event = %q", removed[0].Event)
	}
}

func TestDiffPropsTextNode(t *testing.T) {
	ops := DiffProps(Text("a").Props, Text("b").Props)
	if len(ops) != 1 || ops[0].Op != OpSetAttr || ops[0].Key != NodeValue || ops[0].Value != "b" {
		t.Errorf("ops = %+v", ops)
	}
}

func TestPropsEqual(t *testing.T) {
	tests := []struct {
		a, b any
		want bool
	}{
		{"a", "a", true},
		{"a", "b", false},
		{1, 1, true},
		{1, int64(1), false},
		{int64(2), int64(2), true},
		{1.5, 1.5, true},
		{true, false, false},
		{nil, nil, true},
		{nil, "x", false},
		{[]int{1, 2}, []int{1, 2}, true},
		{map[string]int{"a": 1}, map[string]int{"a": 2}, false},
	}
	for _, tt := range tests {
		if got := PropsEqual(tt.a, tt.b); got != tt.want {
			t.Errorf("PropsEqual(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestAttrOpKindString(t *testing.T) {
	if OpSetAttr.String() != "SetAttr" || AttrOpKind(99).String() != "Unknown" {
		t.Error("AttrOpKind.String mismatch")
	}
}
