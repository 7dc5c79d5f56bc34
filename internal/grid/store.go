package grid

import (
	"log/slog"
	"sync"
)

// Listener receives every new snapshot.
type Listener func(*State)

type subscription struct {
	id uint64
	fn Listener
}

// Store owns one grid's state.
//
// Transitions are serialized and each one runs to completion before any
// listener sees the result. Listeners run outside the lock, so a listener
// may itself issue a transition.
type Store struct {
	mu        sync.Mutex
	state     *State
	listeners []subscription // copy-on-write
	nextID    uint64
	log       *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for transition tracing.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithColumns installs column definitions at construction.
func WithColumns(defs []ColumnDef) Option {
	return func(s *Store) {
		next := *s.state
		applyColumns(&next, defs)
		s.state = &next
	}
}

// NewStore returns a store with an empty dataset.
func NewStore(opts ...Option) *Store {
	s := &Store{
		state: emptyState(),
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current state. The result must not be modified.
func (s *Store) Snapshot() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn for every subsequent transition and returns a
// function that removes it. Registrations made while a notification pass is
// running take effect from the next pass.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	next := make([]subscription, len(s.listeners), len(s.listeners)+1)
	copy(next, s.listeners)
	s.listeners = append(next, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

func (s *Store) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]subscription, 0, len(s.listeners))
	for _, sub := range s.listeners {
		if sub.id != id {
			next = append(next, sub)
		}
	}
	s.listeners = next
}

// apply runs fn against a shallow copy of the current state, installs the
// copy as the new snapshot and notifies. fn must replace, never mutate, any
// map or slice it changes. fn returns false to report a guarded no-op; the
// snapshot is still replaced and listeners still run.
func (s *Store) apply(action string, fn func(next *State) bool) {
	s.mu.Lock()
	next := *s.state
	changed := fn(&next)
	s.state = &next
	listeners := s.listeners
	s.mu.Unlock()

	if changed {
		s.log.Debug("grid transition", "action", action, "rows", len(next.RowOrder), "sort", len(next.Sort))
	} else {
		s.log.Debug("grid transition ignored", "action", action)
	}

	for _, sub := range listeners {
		sub.fn(&next)
	}
}
