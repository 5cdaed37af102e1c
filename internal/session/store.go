package session

import (
	"log/slog"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// Observer receives session state transitions.
//
// Observers are called synchronously, in subscription order, for every
// transition. They must return quickly and must not call Store.Set.
type Observer interface {
	OnSessionChange(state domain.SessionState)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(state domain.SessionState)

// OnSessionChange calls f(state)
func (f ObserverFunc) OnSessionChange(state domain.SessionState) { f(state) }

// Source is the read side of the session store. Everything except the auth
// gateway receives a Source, never the *Store itself.
type Source interface {
	Current() domain.SessionState
	Subscribe(o Observer) *Subscription
}

// Store is the single source of truth for authentication state.
//
// Every Set is delivered to every observer, in the order the Sets happened,
// with no coalescing. A new subscriber first receives the current value.
type Store struct {
	deliver sync.Mutex // Serializes Set and Subscribe so delivery order matches write order

	mu        sync.RWMutex // Protects state and observers
	state     domain.SessionState
	observers []registration
	nextID    uint64

	logger *slog.Logger
}

type registration struct {
	id       uint64
	observer Observer
}

// NewStore creates a store holding initial. A nil initial means LoggedOut.
func NewStore(initial domain.SessionState, logger *slog.Logger) *Store {
	if initial == nil {
		initial = domain.LoggedOut{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{state: initial, logger: logger}
}

// Current returns the latest state
func (s *Store) Current() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers o and immediately replays the current state to it
func (s *Store) Subscribe(o Observer) *Subscription {
	s.deliver.Lock()
	defer s.deliver.Unlock()

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, registration{id: id, observer: o})
	current := s.state
	s.mu.Unlock()

	o.OnSessionChange(current)
	return &Subscription{store: s, id: id}
}

// Set replaces the state and notifies every observer. Only the auth gateway
// calls Set.
func (s *Store) Set(state domain.SessionState) {
	if state == nil {
		state = domain.LoggedOut{}
	}

	s.deliver.Lock()
	defer s.deliver.Unlock()

	s.mu.Lock()
	prev := s.state
	s.state = state
	observers := make([]registration, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	s.logger.Debug("session transition", "from", prev.String(), "to", state.String(), "observers", len(observers))

	for _, r := range observers {
		r.observer.OnSessionChange(state)
	}
}

func (s *Store) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.observers {
		if r.id == id {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Subscription is the handle returned by Subscribe
type Subscription struct {
	store *Store
	id    uint64
	once  sync.Once
}

// Cancel stops delivery to the observer. Safe to call more than once and
// from inside an observer callback.
func (sub *Subscription) Cancel() {
	if sub == nil {
		return
	}
	sub.once.Do(func() {
		sub.store.unsubscribe(sub.id)
	})
}
