package feature

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/nhle/todo-mock-api/internal/apperr"
	"github.com/nhle/todo-mock-api/internal/model"
)

// sessionClaims is the payload encoded into a session token. The token is
// opaque to clients; nothing decodes it, it only has to be unique per
// login and token68-safe.
type sessionClaims struct {
	Username string `json:"username"`
	IssuedAt int64  `json:"issued_at"`
}

func newSessionToken(username string, now time.Time) string {
	raw, _ := json.Marshal(sessionClaims{Username: username, IssuedAt: now.UnixNano()})
	return base64.StdEncoding.EncodeToString(raw)
}

// RegisterUser appends a new account. The id is a digest of the username,
// so re-registering a deleted name would yield the same id; usernames are
// unique, enforced here rather than structurally.
func RegisterUser(state *model.GlobalState, username, password string) (*model.GlobalState, error) {
	for _, u := range state.Users {
		if u.Username == username {
			return nil, apperr.Newf(apperr.CodeConflictUser, "user %q already exists", username)
		}
	}

	next := state.Clone()
	next.Users = append(next.Users, model.UserState{
		User: model.User{Username: username, Password: password},
		ID:   model.DeriveID(username),
	})
	return next, nil
}

// LoginUser checks the credentials and issues a fresh session token,
// replacing any existing one. The single-session model means a second
// login invalidates the token from the first.
func LoginUser(state *model.GlobalState, username, password string) (*model.GlobalState, string, error) {
	idx := -1
	for i, u := range state.Users {
		if u.Username == username {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, "", apperr.Newf(apperr.CodeUserNotFound, "user %q not found", username)
	}
	if state.Users[idx].Password != password {
		return nil, "", apperr.New(apperr.CodeMismatchedPassword, "password does not match")
	}

	token := newSessionToken(username, time.Now())
	next := state.Clone()
	next.Users[idx].Token = token
	return next, token, nil
}

// LogoutUser clears the session token of the matching user. Logging out a
// user with no active session is a no-op; the call still returns a fresh
// state copy.
func LogoutUser(state *model.GlobalState, user model.UserState) *model.GlobalState {
	next := state.Clone()
	for i := range next.Users {
		if next.Users[i].ID == user.ID {
			next.Users[i].Token = ""
		}
	}
	return next
}
