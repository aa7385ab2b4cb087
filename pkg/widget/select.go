package widget

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-f2f/pkg/dom"
	"github.com/goliatone/go-f2f/pkg/fault"
)

// Choice binds a user-facing option name to the value it reads as.
type Choice[T any] struct {
	Name     string
	Value    T
	Selected bool
}

// Option declares a choice.
func Option[T any](name string, value T) Choice[T] {
	return Choice[T]{Name: name, Value: value}
}

// Selected declares the choice selected by default.
func Selected[T any](name string, value T) Choice[T] {
	return Choice[T]{Name: name, Value: value, Selected: true}
}

// SelectWidget offers a fixed, ordered set of named choices.
type SelectWidget[T any] struct {
	names       []string
	values      map[string]T
	defaultName string
}

var _ Widget = (*SelectWidget[string])(nil)

// Select builds a select over choices in declaration order. Option names must
// be non-empty and unique; at most one choice may be marked Selected. Without
// a Selected choice the first one is the default.
func Select[T any](choices ...Choice[T]) (*SelectWidget[T], error) {
	if len(choices) == 0 {
		return nil, fault.Definition("select", "at least one option is required")
	}
	w := &SelectWidget[T]{
		names:  make([]string, 0, len(choices)),
		values: make(map[string]T, len(choices)),
	}
	for _, choice := range choices {
		name := strings.TrimSpace(choice.Name)
		if name == "" {
			return nil, fault.Definition("select", "option name is required")
		}
		if _, exists := w.values[name]; exists {
			return nil, fault.Definition("select", "duplicate option %q", name)
		}
		if choice.Selected {
			if w.defaultName != "" {
				return nil, fault.Definition("select", "options %q and %q are both selected", w.defaultName, name)
			}
			w.defaultName = name
		}
		w.names = append(w.names, name)
		w.values[name] = choice.Value
	}
	if w.defaultName == "" {
		w.defaultName = w.names[0]
	}
	return w, nil
}

// MustSelect panics when Select fails. Useful for init-time wiring.
func MustSelect[T any](choices ...Choice[T]) *SelectWidget[T] {
	w, err := Select(choices...)
	if err != nil {
		panic(err)
	}
	return w
}

// Names builds a select whose values equal their names.
func Names(names ...string) (*SelectWidget[string], error) {
	choices := make([]Choice[string], 0, len(names))
	for _, name := range names {
		choices = append(choices, Option(name, name))
	}
	return Select(choices...)
}

func (w *SelectWidget[T]) Kind() Kind {
	return KindSelect
}

func (w *SelectWidget[T]) Describe() Descriptor {
	return Descriptor{
		Kind:          KindSelect,
		Options:       append([]string(nil), w.names...),
		DefaultOption: w.defaultName,
		DefaultText:   w.defaultName,
	}
}

func (w *SelectWidget[T]) Create(key string) *html.Node {
	control := dom.Element("select",
		dom.Attr("id", key),
		dom.Attr("name", key),
	)
	for _, name := range w.names {
		option := dom.Element("option", dom.Attr("value", name))
		dom.ToggleAttr(option, "selected", name == w.defaultName)
		dom.Append(control, dom.Append(option, dom.Text(name)))
	}
	return control
}

func (w *SelectWidget[T]) Read(key string, data url.Values) Result {
	name := data.Get(key)
	if name == "" && !data.Has(key) {
		name = w.defaultName
	}
	value, ok := w.values[name]
	if !ok {
		return Invalid("unknown option " + strconv.Quote(name) + " for " + key)
	}
	return Ok(value)
}

func (w *SelectWidget[T]) Write(control *html.Node, key string, data url.Values) {
	if control == nil {
		return
	}
	name := w.defaultName
	if data.Has(key) {
		if candidate := data.Get(key); w.has(candidate) {
			name = candidate
		}
	}
	for _, option := range dom.Children(control) {
		value, _ := dom.GetAttr(option, "value")
		dom.ToggleAttr(option, "selected", value == name)
	}
}

func (w *SelectWidget[T]) has(name string) bool {
	_, ok := w.values[name]
	return ok
}
