package scene

import (
	"sort"
	"sync"

	"github.com/vango-dev/fiber/pkg/vdom"
)

// Registry maps scene component names to components.
type Registry struct {
	mu         sync.RWMutex
	components map[string]vdom.Component
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{components: make(map[string]vdom.Component)}
}

// Register adds or replaces a component.
func (r *Registry) Register(name string, c vdom.Component) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.components[name] = c
}

// Lookup returns the component registered under name.
func (r *Registry) Lookup(name string) (vdom.Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.components[name]
	return c, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtins returns a registry holding the demo components.
func Builtins() *Registry {
	r := NewRegistry()
	r.Register("counter", Counter)
	r.Register("todo", Todo)
	return r
}
