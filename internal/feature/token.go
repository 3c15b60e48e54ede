// Package feature implements the domain operations. Every function takes
// a state snapshot and never mutates it; mutating operations clone first
// and return the replacement state for the caller to install.
package feature

import (
	"strings"

	"github.com/nhle/todo-mock-api/internal/apperr"
	"github.com/nhle/todo-mock-api/internal/model"
)

// CheckAndGetBearerToken extracts the token from an Authorization header
// of the form "Bearer <token>". The token must match the RFC 7235 token68
// character class.
func CheckAndGetBearerToken(header string) (string, error) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", apperr.New(apperr.CodeInvalidToken, `authorization header must be of the form "Bearer <token>"`)
	}
	if !model.IsToken68(token) {
		return "", apperr.New(apperr.CodeInvalidToken, "token is not a valid token68 string")
	}
	return token, nil
}

// GetUserFromToken resolves an Authorization header to the user holding
// that session token. An absent header (empty string) is TokenRequired; a
// malformed header is InvalidToken; a token no user holds is
// MismatchedToken.
func GetUserFromToken(state *model.GlobalState, header string) (model.UserState, error) {
	if header == "" {
		return model.UserState{}, apperr.New(apperr.CodeTokenRequired, "authorization header is required")
	}

	token, err := CheckAndGetBearerToken(header)
	if err != nil {
		return model.UserState{}, err
	}

	for _, u := range state.Users {
		if u.Token != "" && u.Token == token {
			return u, nil
		}
	}

	return model.UserState{}, apperr.New(apperr.CodeMismatchedToken, "no session matches the provided token")
}
