// Package storage persists the application state as a single JSON blob
// behind a small adapter interface, so the state store does not care
// whether state survives a restart.
package storage

import "github.com/nhle/todo-mock-api/internal/model"

// Adapter reads and writes the whole application state.
type Adapter interface {
	// GetData returns the persisted state, nil when nothing has been
	// stored yet, or an error when the stored payload cannot be decoded.
	GetData() (*model.GlobalState, error)

	// SetData replaces the persisted state.
	SetData(state *model.GlobalState) error
}
