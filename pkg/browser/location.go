//go:build js && wasm

package browser

import (
	"strings"
	"syscall/js"
)

// Location is a navigator over window.location and window.history.
type Location struct {
	window js.Value
}

// NewLocation binds to the global window.
func NewLocation() *Location {
	return &Location{window: js.Global()}
}

// Query returns location.search without the leading "?".
func (l *Location) Query() string {
	return strings.TrimPrefix(l.window.Get("location").Get("search").String(), "?")
}

// Push adds a history entry for query, keeping path and fragment.
func (l *Location) Push(query string) {
	location := l.window.Get("location")
	target := location.Get("pathname").String()
	if query != "" {
		target += "?" + query
	}
	target += location.Get("hash").String()
	l.window.Get("history").Call("pushState", js.Null(), "", target)
}

// OnPopState registers fn for back/forward navigation and returns a function
// that removes it.
func (l *Location) OnPopState(fn func()) func() {
	callback := js.FuncOf(func(js.Value, []js.Value) any {
		fn()
		return nil
	})
	l.window.Call("addEventListener", "popstate", callback)
	return func() {
		l.window.Call("removeEventListener", "popstate", callback)
		callback.Release()
	}
}
