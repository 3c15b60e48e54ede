package storage

import "github.com/nhle/todo-mock-api/internal/model"

// MemoryAdapter is the ephemeral Adapter: GetData always yields the
// construction-time state and SetData is a no-op. Mutations still work
// within a session because the state store keeps its own in-memory copy;
// nothing survives a restart.
type MemoryAdapter struct {
	initial *model.GlobalState
}

// NewMemoryAdapter builds an ephemeral adapter seeded with initial, or
// with the built-in default state when initial is nil.
func NewMemoryAdapter(initial *model.GlobalState) *MemoryAdapter {
	if initial == nil {
		initial = model.DefaultState()
	}
	return &MemoryAdapter{initial: initial}
}

// GetData returns a copy of the seed state, so callers never alias it.
func (a *MemoryAdapter) GetData() (*model.GlobalState, error) {
	return a.initial.Clone(), nil
}

// SetData discards the write.
func (a *MemoryAdapter) SetData(*model.GlobalState) error {
	return nil
}
