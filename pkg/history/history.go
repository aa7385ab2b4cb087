// Package history provides an in-memory navigable address with back/forward
// navigation, used by tests, the CLI and any host without a real browser.
package history

import (
	"errors"
	"strings"
	"sync"
)

// ErrNoEntry is returned when navigating past either end of the history.
var ErrNoEntry = errors.New("history: no entry in that direction")

// Memory is a history stack of query strings.
type Memory struct {
	mu        sync.Mutex
	entries   []string
	index     int
	listeners map[int]func()
	nextID    int
}

// NewMemory starts a history whose only entry is initial.
func NewMemory(initial string) *Memory {
	return &Memory{
		entries:   []string{strings.TrimPrefix(initial, "?")},
		listeners: make(map[int]func()),
	}
}

// Query returns the query string of the current entry.
func (m *Memory) Query() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[m.index]
}

// Push adds an entry after the current one, discarding forward entries. Like
// pushState it does not notify listeners.
func (m *Memory) Push(query string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries[:m.index+1], strings.TrimPrefix(query, "?"))
	m.index = len(m.entries) - 1
}

// Replace overwrites the current entry without notifying listeners.
func (m *Memory) Replace(query string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[m.index] = strings.TrimPrefix(query, "?")
}

// Back moves one entry back and notifies listeners.
func (m *Memory) Back() error {
	return m.Go(-1)
}

// Forward moves one entry forward and notifies listeners.
func (m *Memory) Forward() error {
	return m.Go(1)
}

// Go moves delta entries and notifies listeners.
func (m *Memory) Go(delta int) error {
	m.mu.Lock()
	target := m.index + delta
	if delta == 0 || target < 0 || target >= len(m.entries) {
		m.mu.Unlock()
		return ErrNoEntry
	}
	m.index = target
	listeners := make([]func(), 0, len(m.listeners))
	for id := 0; id < m.nextID; id++ {
		if fn, ok := m.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	m.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
	return nil
}

// OnPopState registers fn for back/forward navigation.
func (m *Memory) OnPopState(fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// Len reports the number of entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Entries returns a copy of all entries, oldest first.
func (m *Memory) Entries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.entries...)
}
