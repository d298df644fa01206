package inspect

import "github.com/vango-dev/fiber/pkg/fiber"

// FiberNode describes one committed fiber.
type FiberNode struct {
	Name      string       `json:"name"`
	Component bool         `json:"component,omitempty"`
	Effect    string       `json:"effect"`
	Children  []*FiberNode `json:"children,omitempty"`
}

func describeFiber(f *fiber.Fiber) *FiberNode {
	if f == nil {
		return nil
	}
	n := &FiberNode{
		Name:      f.Name(),
		Component: f.IsComponent(),
		Effect:    f.EffectTag.String(),
	}
	for c := f.Child(); c != nil; c = c.Sibling() {
		n.Children = append(n.Children, describeFiber(c))
	}
	return n
}
