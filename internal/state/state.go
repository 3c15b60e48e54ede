// Package state owns the live application state. It loads (or seeds) the
// state through a storage adapter at construction and is the single
// mutation path afterwards.
package state

import (
	"fmt"
	"sync"

	"github.com/nhle/todo-mock-api/internal/model"
	"github.com/nhle/todo-mock-api/internal/storage"
)

// Options configures a Store.
type Options struct {
	// Adapter supplies persistence. Nil selects an ephemeral in-memory
	// adapter.
	Adapter storage.Adapter

	// Initial, when non-nil, is written through the adapter before the
	// state is loaded, replacing whatever was stored.
	Initial *model.GlobalState
}

// Store holds the canonical state reference. Features receive snapshots
// and hand back replacements; the store never mutates state in place.
type Store struct {
	mu      sync.RWMutex
	adapter storage.Adapter
	current *model.GlobalState
}

// New initializes a Store: seed the adapter if needed, load the stored
// state, and validate it. Corrupted persisted state is a fatal error by
// design — it is surfaced to the developer, never silently repaired.
func New(opts Options) (*Store, error) {
	adapter := opts.Adapter
	if adapter == nil {
		adapter = storage.NewMemoryAdapter(opts.Initial)
	}

	if opts.Initial != nil {
		if err := adapter.SetData(opts.Initial); err != nil {
			return nil, fmt.Errorf("writing initial state: %w", err)
		}
	}

	current, err := adapter.GetData()
	if err != nil {
		return nil, fmt.Errorf("loading persisted state: %w", err)
	}
	if current == nil {
		current = model.DefaultState()
		if err := adapter.SetData(current); err != nil {
			return nil, fmt.Errorf("seeding default state: %w", err)
		}
	}

	if err := model.ValidateGlobalState(current); err != nil {
		return nil, fmt.Errorf("persisted state is corrupt: %w", err)
	}

	return &Store{adapter: adapter, current: current}, nil
}

// State returns the current snapshot. Callers must not mutate it; features
// clone before changing anything.
func (s *Store) State() *model.GlobalState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update writes next through the adapter, then installs it as the current
// snapshot. Two requests that interleave a full read-modify-write can
// still lose one update; multi-writer consistency is out of scope for a
// mock backend.
func (s *Store) Update(next *model.GlobalState) error {
	if err := s.adapter.SetData(next); err != nil {
		return fmt.Errorf("persisting state: %w", err)
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
	return nil
}
