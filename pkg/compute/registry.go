// Package compute keeps named form computations so declarative form
// definitions can refer to them by name.
package compute

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-f2f/internal/suggest"
	"github.com/goliatone/go-f2f/pkg/form"
)

// Registry stores computations by name and rejects duplicates.
type Registry struct {
	mu           sync.RWMutex
	computations map[string]form.Computation
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		computations: make(map[string]form.Computation),
	}
}

// Register adds fn under name.
func (r *Registry) Register(name string, fn form.Computation) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("compute: name is required")
	}
	if fn == nil {
		return fmt.Errorf("compute: computation %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.computations[name]; exists {
		return fmt.Errorf("compute: computation %q already registered", name)
	}
	r.computations[name] = fn
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, fn form.Computation) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// Get retrieves a computation by name. Unknown names suggest the closest
// registered one.
func (r *Registry) Get(name string) (form.Computation, error) {
	r.mu.RLock()
	fn, ok := r.computations[name]
	r.mu.RUnlock()
	if ok {
		return fn, nil
	}
	if suggestion := suggest.Closest(name, r.List()); suggestion != "" {
		return nil, fmt.Errorf("compute: computation %q not found (did you mean %q?)", name, suggestion)
	}
	return nil, fmt.Errorf("compute: computation %q not found", name)
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.computations))
	for name := range r.computations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.computations[name]
	return ok
}
