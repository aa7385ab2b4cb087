// Package form binds param groups to live controls in a document. A Session
// owns the form registry and the address synchroniser; CreateForm builds the
// controls, Submit runs the read/validate/compute cycle and Replay restores
// controls from the current address.
//
// Submit and Replay run to completion one at a time: a back navigation that
// arrives while a computation is running is applied after it finishes.
package form

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/net/html"

	"github.com/goliatone/go-f2f/internal/suggest"
	"github.com/goliatone/go-f2f/pkg/fault"
	"github.com/goliatone/go-f2f/pkg/urlsync"
)

// Namespace prefixes every qualified form name.
const Namespace = "f2f"

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. The synchroniser shares it.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPopStateReplay controls whether New subscribes Replay to the
// navigator's back/forward events. Defaults to true. Hosts that must not
// block inside the navigation callback disable it and call Replay
// themselves.
func WithPopStateReplay(enabled bool) Option {
	return func(s *Session) {
		s.replayOnPopState = enabled
	}
}

// Session is the single per-document application state: registered forms,
// the navigable address and the last applied query.
type Session struct {
	doc    *html.Node
	nav    urlsync.Navigator
	sync   *urlsync.Synchronizer
	logger *slog.Logger

	mu     sync.RWMutex
	forms  []*Form
	byName map[string]*Form

	// run serialises Submit and Replay.
	run sync.Mutex

	replayOnPopState bool
	cancelPopState   func()
}

// New binds a session to doc and nav. When nav reports back/forward
// navigation, every registered form is replayed from the new address.
func New(doc *html.Node, nav urlsync.Navigator, options ...Option) *Session {
	s := &Session{
		doc:    doc,
		nav:    nav,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		byName: make(map[string]*Form),

		replayOnPopState: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	s.sync = urlsync.New(nav, urlsync.WithLogger(s.logger))
	if source, ok := nav.(urlsync.PopStateSource); ok && s.replayOnPopState {
		s.cancelPopState = source.OnPopState(s.Replay)
	}
	return s
}

// Close detaches the session from navigation events.
func (s *Session) Close() {
	if s.cancelPopState != nil {
		s.cancelPopState()
		s.cancelPopState = nil
	}
}

// Document returns the document the session renders into.
func (s *Session) Document() *html.Node {
	return s.doc
}

// Navigator returns the navigable address.
func (s *Session) Navigator() urlsync.Navigator {
	return s.nav
}

// Forms lists registered forms in creation order.
func (s *Session) Forms() []*Form {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Form(nil), s.forms...)
}

// Lookup finds a form by group name or qualified name.
func (s *Session) Lookup(name string) (*Form, error) {
	name = strings.TrimPrefix(strings.TrimSpace(name), Namespace+".")

	s.mu.RLock()
	defer s.mu.RUnlock()
	if f, ok := s.byName[name]; ok {
		return f, nil
	}
	if suggestion := suggest.Closest(name, s.names()); suggestion != "" {
		return nil, fault.Structural("unknown form %q (did you mean %q?)", name, suggestion)
	}
	return nil, fault.Structural("unknown form %q", name)
}

// Replay writes the current address into every registered form without
// computing or pushing history.
func (s *Session) Replay() {
	s.run.Lock()
	defer s.run.Unlock()

	forms := s.Forms()
	targets := make([]urlsync.Target, 0, len(forms))
	for _, f := range forms {
		targets = append(targets, f)
	}
	s.sync.Replay(targets...)
}

// ToggleHelp flips the visibility of the help block attached to a field key
// and reports whether it is now visible.
func (s *Session) ToggleHelp(key string) (bool, error) {
	for _, f := range s.Forms() {
		name, ok := strings.CutPrefix(key, f.prefix())
		if !ok {
			continue
		}
		help, ok := f.help[name]
		if !ok {
			return false, fault.Structural("field %q has no help text", key)
		}
		wasHidden := hidden(help)
		setHidden(help, !wasHidden)
		return wasHidden, nil
	}
	return false, fault.Structural("unknown field %q", key)
}

func (s *Session) register(f *Form) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byName[f.Name()]; exists {
		return fault.Definition(f.QualifiedName(), "form already registered")
	}
	s.byName[f.Name()] = f
	s.forms = append(s.forms, f)
	return nil
}

func (s *Session) names() []string {
	names := make([]string, 0, len(s.forms))
	for _, f := range s.forms {
		names = append(names, f.Name())
	}
	return names
}

func qualify(name string) string {
	return fmt.Sprintf("%s.%s", Namespace, name)
}
