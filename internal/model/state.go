package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// GlobalState is the entire application state: every registered user and
// every task, persisted as a single JSON blob.
type GlobalState struct {
	Users []UserState `json:"users"`
	Tasks []TaskState `json:"tasks"`
}

// Clone returns a deep copy of the state. Feature code mutates only clones,
// so an installed state is never aliased by a later mutation.
func (s *GlobalState) Clone() *GlobalState {
	out := &GlobalState{
		Users: make([]UserState, len(s.Users)),
		Tasks: make([]TaskState, len(s.Tasks)),
	}
	copy(out.Users, s.Users)
	for i, t := range s.Tasks {
		out.Tasks[i] = t.Clone()
	}
	return out
}

// DeriveID produces a deterministic entity id: the hex SHA-256 digest of
// the joined parts. Not a security measure, just a stable opaque id.
func DeriveID(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, ":")))
	return hex.EncodeToString(sum[:])
}

// DefaultState seeds a fresh installation with a single guest account and
// no tasks, so the API is usable before any registration call.
func DefaultState() *GlobalState {
	return &GlobalState{
		Users: []UserState{
			{
				User: User{Username: "guest", Password: "password"},
				ID:   DeriveID("guest"),
			},
		},
		Tasks: []TaskState{},
	}
}
