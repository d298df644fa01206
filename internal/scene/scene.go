package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/fiber/internal/errors"
	"github.com/vango-dev/fiber/pkg/vdom"
)

// Scene is a decoded scene file.
type Scene struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Root        *Node  `yaml:"root"`
}

// Node is one node of a scene. Exactly one of Tag, Component and Text is
// set.
type Node struct {
	Tag       string         `yaml:"tag,omitempty"`
	Component string         `yaml:"component,omitempty"`
	Text      string         `yaml:"text,omitempty"`
	Attrs     map[string]any `yaml:"attrs,omitempty"`
	Props     map[string]any `yaml:"props,omitempty"`
	Children  []*Node        `yaml:"children,omitempty"`

	line int
}

// UnmarshalYAML decodes a scalar as a text node and a mapping as a full
// node.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	n.line = value.Line
	if value.Kind == yaml.ScalarNode {
		n.Text = value.Value
		return nil
	}
	type plain Node
	if err := value.Decode((*plain)(n)); err != nil {
		return err
	}
	n.line = value.Line
	return nil
}

// Parse decodes a scene from YAML.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.New("E120").Wrap(err)
	}
	if s.Root == nil {
		return nil, errors.New("E120").
			WithDetail("The scene has no root node.").
			WithSuggestion("Add a root: entry with a tag or component")
	}
	return &s, nil
}

// Load reads and decodes a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E120").
			WithDetail("Cannot read " + path).
			Wrap(err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Build converts the scene into a view tree, resolving components in reg.
func (s *Scene) Build(reg *Registry) (*vdom.VNode, error) {
	return s.Root.build(reg)
}

func (n *Node) build(reg *Registry) (*vdom.VNode, error) {
	set := 0
	for _, v := range []string{n.Tag, n.Component, n.Text} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return nil, errors.New("E120").
			WithDetail(fmt.Sprintf("line %d: a node needs exactly one of tag, component or text", n.line))
	}

	if n.Text != "" {
		return vdom.Text(n.Text), nil
	}

	children := make([]any, 0, len(n.Children))
	for _, c := range n.Children {
		child, err := c.build(reg)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	if n.Tag != "" {
		return vdom.CreateElement(n.Tag, vdom.Props(n.Attrs), children...), nil
	}

	comp, ok := reg.Lookup(n.Component)
	if !ok {
		return nil, errors.New("E121").
			WithDetail(fmt.Sprintf("line %d: no component named %q", n.line, n.Component)).
			WithSuggestion(fmt.Sprintf("Registered components: %v", reg.Names()))
	}
	return vdom.CreateElement(comp, vdom.Props(n.Props), children...), nil
}
