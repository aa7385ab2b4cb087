// Package param declares the fields of a form: a Param binds a stable name to
// a widget, and a Group is the ordered, name-unique set of params making up
// one form. Groups are assembled with a Builder and frozen on Build.
package param

import (
	"strings"
	"unicode"

	"github.com/goliatone/go-f2f/pkg/fault"
	"github.com/goliatone/go-f2f/pkg/widget"
)

// Param is one named, labelled field.
type Param struct {
	Name        string
	Widget      widget.Widget
	Label       string
	Description string
}

// Option customises a Param.
type Option func(*Param)

// WithLabel overrides the display label (defaults to the name).
func WithLabel(label string) Option {
	return func(p *Param) {
		p.Label = strings.TrimSpace(label)
	}
}

// WithDescription attaches help text shown behind a toggle.
func WithDescription(text string) Option {
	return func(p *Param) {
		p.Description = strings.TrimSpace(text)
	}
}

// New declares a param. Name validation happens when the param is added to a
// group.
func New(name string, w widget.Widget, options ...Option) Param {
	p := Param{Name: strings.TrimSpace(name), Widget: w}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&p)
	}
	if p.Label == "" {
		p.Label = p.Name
	}
	return p
}

// ValidateName reports whether name can be used as a group or param name.
// Names become segments of dotted query keys, so separators and whitespace
// are rejected.
func ValidateName(subject, name string) error {
	if name == "" {
		return fault.Definition(subject, "name is required")
	}
	for _, r := range name {
		if r == '.' || r == '&' || r == '=' || r == '#' || r == '?' || unicode.IsSpace(r) {
			return fault.Definition(subject, "name %q contains %q", name, r)
		}
	}
	return nil
}
