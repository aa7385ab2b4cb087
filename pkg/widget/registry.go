package widget

import (
	"sort"
	"strings"
	"sync"
)

// Field is the declarative description a Registry resolves a widget kind
// from. It is filled by the YAML and OpenAPI form loaders.
type Field struct {
	Name   string
	Type   string
	Format string
	Enum   []string
	Hint   string
}

// Matcher decides whether a widget kind should handle the supplied field.
type Matcher func(field Field) bool

type rule struct {
	kind     Kind
	priority int
	match    Matcher
	order    int
}

// Registry selects a widget kind for declarative fields based on explicit
// hints or registered matchers. Higher priority wins; ties fall back to
// registration order.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher for kind with the provided priority.
func (r *Registry) Register(kind Kind, priority int, matcher Matcher) {
	if r == nil || matcher == nil || strings.TrimSpace(string(kind)) == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		kind:     kind,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget kind for a field. An explicit hint naming a
// known kind is honoured before matcher evaluation.
func (r *Registry) Resolve(field Field) (Kind, bool) {
	if explicit, ok := explicitKind(field.Hint); ok {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.kind, true
		}
	}
	return "", false
}

func explicitKind(hint string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(hint))) {
	case KindText:
		return KindText, true
	case KindCheckBox, "toggle", "bool":
		return KindCheckBox, true
	case KindSelect, "enum":
		return KindSelect, true
	default:
		return "", false
	}
}

func (r *Registry) registerBuiltins() {
	r.Register(KindCheckBox, 90, func(field Field) bool {
		return strings.EqualFold(field.Type, "boolean")
	})

	r.Register(KindSelect, 70, func(field Field) bool {
		if strings.EqualFold(field.Type, "array") || strings.EqualFold(field.Type, "matrix") {
			return false
		}
		return len(field.Enum) > 0
	})

	r.Register(KindText, 10, func(Field) bool {
		return true
	})
}
