package form

import (
	"sort"

	"github.com/goliatone/go-f2f/pkg/fault"
)

// Input holds the converted values of one submission keyed by param name.
type Input map[string]any

// Names lists the input keys in sorted order.
func (in Input) Names() []string {
	names := make([]string, 0, len(in))
	for name := range in {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the value of name as T.
func Get[T any](in Input, name string) (T, error) {
	var zero T
	raw, ok := in[name]
	if !ok {
		return zero, fault.Structural("input %q is not defined", name)
	}
	value, ok := raw.(T)
	if !ok {
		return zero, fault.Structural("input %q holds %T, not %T", name, raw, zero)
	}
	return value, nil
}

// Must is Get for computations that treat a type mismatch as a defect. The
// panic is recovered by Submit and surfaced as a computation error.
func Must[T any](in Input, name string) T {
	value, err := Get[T](in, name)
	if err != nil {
		panic(err)
	}
	return value
}
