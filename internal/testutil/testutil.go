// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"testing"

	"github.com/nhle/todo-mock-api/internal/model"
	"github.com/nhle/todo-mock-api/internal/state"
	"github.com/nhle/todo-mock-api/internal/storage"
)

// NewStore creates an ephemeral state store seeded with initial (or the
// built-in default when nil).
func NewStore(t *testing.T, initial *model.GlobalState) *state.Store {
	t.Helper()

	s, err := state.New(state.Options{Adapter: storage.NewMemoryAdapter(initial)})
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	return s
}

// UserFixture builds a registered user, logged in when token is non-empty.
func UserFixture(username, token string) model.UserState {
	return model.UserState{
		User: model.User{Username: username, Password: "pw", Token: token},
		ID:   model.DeriveID(username),
	}
}

// StateFixture builds a state holding the given users and tasks.
func StateFixture(users []model.UserState, tasks []model.TaskState) *model.GlobalState {
	if users == nil {
		users = []model.UserState{}
	}
	if tasks == nil {
		tasks = []model.TaskState{}
	}
	return &model.GlobalState{Users: users, Tasks: tasks}
}
