//go:build js && wasm

package browser

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"sync"
	"syscall/js"

	"github.com/goliatone/go-f2f/pkg/dom"
	"github.com/goliatone/go-f2f/pkg/fault"
	"github.com/goliatone/go-f2f/pkg/form"
	"github.com/goliatone/go-f2f/pkg/urlsync"
)

// Option customises a Bridge.
type Option func(*Bridge)

// WithLogger sets the bridge logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Bridge keeps a page in step with a session.
type Bridge struct {
	session  *form.Session
	document js.Value
	logger   *slog.Logger

	mu       sync.Mutex
	releases []func()
}

// NewBridge binds session to the global document. The bridge replays the
// address on back/forward navigation itself, off the event callback and after
// any running submission, so the session should be created with
// form.WithPopStateReplay(false).
func NewBridge(session *form.Session, options ...Option) *Bridge {
	b := &Bridge{
		session:  session,
		document: js.Global().Get("document"),
		logger:   slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// Mount replaces the content of the page element containerID with the
// session's rendering of the same container.
func (b *Bridge) Mount(containerID string) error {
	node := dom.FindByID(b.session.Document(), containerID)
	if node == nil {
		return fault.Structural("browser: no container %q in session document", containerID)
	}
	el := b.document.Call("getElementById", containerID)
	if !el.Truthy() {
		return fault.Structural("browser: no element %q in page", containerID)
	}
	el.Set("innerHTML", dom.InnerHTML(node))
	return nil
}

// Start installs the submit, click and popstate listeners.
func (b *Bridge) Start() {
	b.listen(b.document, "submit", b.onSubmit)
	b.listen(b.document, "click", b.onClick)
	if source, ok := b.session.Navigator().(urlsync.PopStateSource); ok {
		b.releases = append(b.releases, source.OnPopState(func() { go b.replay() }))
	}
}

// Stop removes every listener installed by Start.
func (b *Bridge) Stop() {
	for _, release := range b.releases {
		release()
	}
	b.releases = nil
}

func (b *Bridge) listen(target js.Value, event string, handler func(js.Value)) {
	fn := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) > 0 {
			handler(args[0])
		}
		return nil
	})
	target.Call("addEventListener", event, fn)
	b.releases = append(b.releases, func() {
		target.Call("removeEventListener", event, fn)
		fn.Release()
	})
}

func (b *Bridge) onSubmit(event js.Value) {
	target := event.Get("target")
	if !target.Get("classList").Call("contains", "f2f-form").Bool() {
		return
	}
	event.Call("preventDefault")
	name := target.Get("dataset").Get("form").String()
	data := formData(target)

	// Computations may block; event callbacks must not.
	go func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		sub, err := b.session.Submit(context.Background(), name, data)
		var computation *fault.ComputationError
		if err != nil && !errors.As(err, &computation) {
			b.logger.Error("submit failed", "form", name, "error", err)
		}
		if f, lookupErr := b.session.Lookup(name); lookupErr == nil {
			b.refresh(f)
		}
		b.logger.Debug("submitted", "form", name, "state", sub.State, "query", sub.Query)
	}()
}

func (b *Bridge) onClick(event js.Value) {
	toggle := event.Get("target").Call("closest", ".f2f-help-toggle")
	if !toggle.Truthy() {
		return
	}
	key := toggle.Get("dataset").Get("helpFor").String()
	visible, err := b.session.ToggleHelp(key)
	if err != nil {
		b.logger.Warn("help toggle", "key", key, "error", err)
		return
	}
	if help := b.document.Call("getElementById", key+".help"); help.Truthy() {
		help.Call("toggleAttribute", "hidden", !visible)
	}
	toggle.Call("setAttribute", "aria-expanded", boolString(visible))
}

// replay applies the current address to every form and mirrors the result.
func (b *Bridge) replay() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.session.Replay()
	for _, f := range b.session.Forms() {
		b.refresh(f)
	}
}

// refresh swaps the page copies of a form and its output for the session's.
func (b *Bridge) refresh(f *form.Form) {
	b.replace(f.QualifiedName(), dom.String(f.Element()))
	b.replace(f.QualifiedName()+".output", dom.String(f.Stream().Root()))
}

func (b *Bridge) replace(id, markup string) {
	el := b.document.Call("getElementById", id)
	if !el.Truthy() {
		b.logger.Warn("element missing from page", "id", id)
		return
	}
	el.Set("outerHTML", markup)
}

// formData collects the successful controls of a form element.
func formData(el js.Value) url.Values {
	data := url.Values{}
	entries := js.Global().Get("FormData").New(el).Call("entries")
	for {
		next := entries.Call("next")
		if next.Get("done").Bool() {
			return data
		}
		pair := next.Get("value")
		data.Add(pair.Index(0).String(), pair.Index(1).String())
	}
}

func boolString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
