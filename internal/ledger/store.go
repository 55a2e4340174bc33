package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Listener observes committed state changes. Listeners run synchronously on
// the writer's goroutine and must not block.
type Listener func(State)

type registration struct {
	id uuid.UUID
	fn Listener
}

// Store owns the authoritative ledger state. All reads and writes go
// through it; a single mutex serializes the whole
// validate-mutate-recompute-persist sequence so transaction id generation
// never races.
type Store struct {
	mu        sync.Mutex
	snap      Snapshotter
	logger    *slog.Logger
	seed      func() *State
	state     *State
	listeners []registration
}

// NewStore constructs a Store. State is initialized lazily on first access:
// a persisted snapshot wins, otherwise seed() provides the default chart.
func NewStore(snap Snapshotter, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{snap: snap, logger: logger, seed: DefaultState}
}

// WithSeed overrides the first-use seed, mainly for tests.
func (s *Store) WithSeed(seed func() *State) {
	if seed != nil {
		s.seed = seed
	}
}

// init must be called with the mutex held.
func (s *Store) init(ctx context.Context) error {
	if s.state != nil {
		return nil
	}
	loaded, err := s.snap.Load(ctx)
	if err != nil {
		return err
	}
	if loaded != nil {
		s.state = loaded
		return nil
	}
	s.state = s.seed()
	if err := s.snap.Save(ctx, s.state); err != nil {
		s.state = nil
		return fmt.Errorf("%w: %v", ErrSnapshot, err)
	}
	s.logger.Info("ledger store seeded",
		slog.Int("accounts", len(s.state.Accounts)),
		slog.Int("funds", len(s.state.Funds)))
	return nil
}

// State returns a deep copy of the current state.
func (s *Store) State(ctx context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.init(ctx); err != nil {
		return State{}, err
	}
	return *s.state.Clone(), nil
}

// Update applies fn to a copy of the state, recalculates balances,
// persists the snapshot, swaps the copy in, and notifies listeners in
// registration order. When fn or the snapshot write fails the store is
// untouched and no listener fires.
func (s *Store) Update(ctx context.Context, fn func(*State) error) error {
	s.mu.Lock()
	if err := s.init(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	next := s.state.Clone()
	if err := fn(next); err != nil {
		s.mu.Unlock()
		return err
	}
	Recalculate(next)
	if err := s.snap.Save(ctx, next); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrSnapshot, err)
	}
	s.state = next
	regs := append([]registration(nil), s.listeners...)
	s.mu.Unlock()

	for _, reg := range regs {
		reg.fn(*next.Clone())
	}
	return nil
}

// Subscribe registers a listener and returns its unsubscribe function.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.listeners = append(s.listeners, registration{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, reg := range s.listeners {
			if reg.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}
