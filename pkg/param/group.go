package param

import (
	"strings"

	"github.com/goliatone/go-f2f/pkg/fault"
)

// Group is an immutable, ordered set of params forming one form.
type Group struct {
	name        string
	description string
	params      []Param
	index       map[string]int
}

// Name returns the group name, used as the form namespace.
func (g *Group) Name() string {
	return g.name
}

// Description returns the optional group description.
func (g *Group) Description() string {
	return g.description
}

// Params returns a copy of the params in declaration order.
func (g *Group) Params() []Param {
	return append([]Param(nil), g.params...)
}

// Len reports the number of params.
func (g *Group) Len() int {
	return len(g.params)
}

// Param looks a param up by name.
func (g *Group) Param(name string) (Param, bool) {
	idx, ok := g.index[name]
	if !ok {
		return Param{}, false
	}
	return g.params[idx], true
}

// Names lists param names in declaration order.
func (g *Group) Names() []string {
	names := make([]string, 0, len(g.params))
	for _, p := range g.params {
		names = append(names, p.Name)
	}
	return names
}

// Builder assembles a Group. The first definition error is kept and returned
// by Build; later calls are ignored once an error is recorded.
type Builder struct {
	group *Group
	err   error
	built bool
}

// Define starts a group with the given name.
func Define(name string) *Builder {
	name = strings.TrimSpace(name)
	b := &Builder{group: &Group{name: name, index: make(map[string]int)}}
	b.err = ValidateName("group", name)
	return b
}

// Describe sets the group description.
func (b *Builder) Describe(text string) *Builder {
	if b.err == nil && !b.built {
		b.group.description = strings.TrimSpace(text)
	}
	return b
}

// Add appends params in order. Duplicate or malformed names and params
// without a widget fail immediately.
func (b *Builder) Add(params ...Param) *Builder {
	if b.err != nil {
		return b
	}
	if b.built {
		b.err = fault.Definition(b.group.name, "group is frozen")
		return b
	}
	for _, p := range params {
		subject := b.group.name + "." + p.Name
		if err := ValidateName(subject, p.Name); err != nil {
			b.err = err
			return b
		}
		if p.Widget == nil {
			b.err = fault.Definition(subject, "widget is required")
			return b
		}
		if _, exists := b.group.index[p.Name]; exists {
			b.err = fault.Definition(b.group.name, "duplicate param %q", p.Name)
			return b
		}
		b.group.index[p.Name] = len(b.group.params)
		b.group.params = append(b.group.params, p)
	}
	return b
}

// Err returns the first definition error recorded so far.
func (b *Builder) Err() error {
	return b.err
}

// Build freezes the group.
func (b *Builder) Build() (*Group, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.group.params) == 0 {
		return nil, fault.Definition(b.group.name, "group has no params")
	}
	b.built = true
	return b.group, nil
}

// MustBuild panics when Build fails. Useful for init-time wiring.
func (b *Builder) MustBuild() *Group {
	group, err := b.Build()
	if err != nil {
		panic(err)
	}
	return group
}

// NewGroup is shorthand for Define(name).Add(params...).Build().
func NewGroup(name string, params ...Param) (*Group, error) {
	return Define(name).Add(params...).Build()
}
