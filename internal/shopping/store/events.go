package store

// EventKind names the slice of state a mutation touched
type EventKind string

const (
	EventCatalog   EventKind = "catalog"
	EventFilter    EventKind = "filter"
	EventFavorites EventKind = "favorites"
	EventCart      EventKind = "cart"
	EventSession   EventKind = "session"
)

// Event is published after a mutation completes. Subscribers read the
// new state through the store's accessors.
type Event struct {
	Kind EventKind `json:"kind"`
}

// Subscribe registers a callback invoked after each mutation. Callbacks
// run synchronously on the mutating goroutine, outside the store lock,
// so they may call accessors but should return quickly.
func (s *Store) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) publish(kind EventKind) {
	s.mu.Lock()
	subs := make([]func(Event), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	event := Event{Kind: kind}
	for _, fn := range subs {
		fn(event)
	}
}
