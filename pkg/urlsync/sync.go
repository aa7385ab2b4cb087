// Package urlsync keeps the navigable address in step with submitted forms.
// Each form owns the keys under its namespace prefix; reconciliation replaces
// only those keys and leaves everything else untouched.
package urlsync

import (
	"io"
	"log/slog"
	"strings"
)

// Navigator is the navigable address: its current query string and a way to
// push a new history entry without reloading.
type Navigator interface {
	Query() string
	Push(query string)
}

// PopStateSource is implemented by navigators that report back/forward
// navigation. The returned function cancels the subscription.
type PopStateSource interface {
	OnPopState(fn func()) func()
}

// Target receives the parsed address during replay.
type Target interface {
	Populate(query Query)
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithLogger sets the logger used for address updates.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synchronizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Synchronizer reconciles submitted form data into the navigable address.
type Synchronizer struct {
	nav         Navigator
	lastApplied string
	logger      *slog.Logger
}

// New constructs a Synchronizer seeded with the navigator's current query.
func New(nav Navigator, options ...Option) *Synchronizer {
	s := &Synchronizer{
		nav:    nav,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	s.lastApplied = normalize(nav.Query())
	return s
}

// LastApplied returns the last query string pushed or observed.
func (s *Synchronizer) LastApplied() string {
	return s.lastApplied
}

// Current parses the navigator's current query string.
func (s *Synchronizer) Current() Query {
	return ParseQuery(s.nav.Query())
}

// Reconcile drops every key starting with prefix from the current address,
// appends the non-empty pairs of submitted in order, and pushes the result
// when it differs from both the last-applied and the current query. It
// returns the resulting query string and whether a push happened.
func (s *Synchronizer) Reconcile(prefix string, submitted Query) (string, bool) {
	current := normalize(s.nav.Query())
	query := ParseQuery(current)
	query.DeletePrefix(prefix)
	for _, p := range submitted.pairs {
		if p.value == "" {
			continue
		}
		query.Add(p.key, p.value)
	}

	encoded := query.Encode()
	if encoded == s.lastApplied || encoded == current {
		s.lastApplied = encoded
		return encoded, false
	}
	s.nav.Push(encoded)
	s.lastApplied = encoded
	s.logger.Debug("address updated", "prefix", prefix, "query", encoded)
	return encoded, true
}

// Replay re-reads the current address and hands it to every target. It never
// pushes history entries.
func (s *Synchronizer) Replay(targets ...Target) {
	query := s.Current()
	s.lastApplied = normalize(s.nav.Query())
	s.logger.Debug("replaying address", "query", s.lastApplied, "forms", len(targets))
	for _, target := range targets {
		if target == nil {
			continue
		}
		target.Populate(query)
	}
}

func normalize(raw string) string {
	return strings.TrimPrefix(raw, "?")
}
