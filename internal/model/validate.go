package model

import (
	"regexp"
	"time"

	"github.com/nhle/todo-mock-api/internal/apperr"
)

// token68Re is the RFC 7235 token68 character class used for both bearer
// header parsing and stored-token validation.
var token68Re = regexp.MustCompile(`^[0-9a-zA-Z\-._~+/]+=*$`)

// IsToken68 reports whether s matches the token68 syntax.
func IsToken68(s string) bool {
	return token68Re.MatchString(s)
}

// Request bodies arrive as untyped JSON; the validators below assert one
// field each and return a typed domain error on mismatch. Only the type is
// checked: empty strings are accepted wherever a string is required.

// AssertValidUserName requires v to be a string.
func AssertValidUserName(v any) error {
	if _, ok := v.(string); !ok {
		return apperr.New(apperr.CodeInvalidUser, "username must be a string")
	}
	return nil
}

// AssertValidPassword requires v to be a string.
func AssertValidPassword(v any) error {
	if _, ok := v.(string); !ok {
		return apperr.New(apperr.CodeInvalidUser, "password must be a string")
	}
	return nil
}

// AssertValidToken permits an absent value or a token68-format string.
func AssertValidToken(v any) error {
	if v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok || !IsToken68(s) {
		return apperr.New(apperr.CodeInvalidUser, "token must be a token68 string")
	}
	return nil
}

// AssertValidTaskID requires v to be a string.
func AssertValidTaskID(v any) error {
	if _, ok := v.(string); !ok {
		return apperr.New(apperr.CodeInvalidTask, "task id must be a string")
	}
	return nil
}

// AssertValidTaskTitle requires v to be a string.
func AssertValidTaskTitle(v any) error {
	if _, ok := v.(string); !ok {
		return apperr.New(apperr.CodeInvalidTask, "task title must be a string")
	}
	return nil
}

// AssertValidTaskDetail permits an absent value or a string.
func AssertValidTaskDetail(v any) error {
	if v == nil {
		return nil
	}
	if _, ok := v.(string); !ok {
		return apperr.New(apperr.CodeInvalidTask, "task detail must be a string")
	}
	return nil
}

// AssertValidTaskIsComplete requires v to be a boolean.
func AssertValidTaskIsComplete(v any) error {
	if _, ok := v.(bool); !ok {
		return apperr.New(apperr.CodeInvalidTask, "is_complete must be a boolean")
	}
	return nil
}

// AssertValidTaskCreatedAt requires v to be a string parseable as an
// RFC 3339 timestamp.
func AssertValidTaskCreatedAt(v any) error {
	s, ok := v.(string)
	if !ok {
		return apperr.New(apperr.CodeInvalidTask, "created_at must be a string")
	}
	if _, err := time.Parse(time.RFC3339, s); err != nil {
		return apperr.New(apperr.CodeInvalidTask, "created_at must be a valid timestamp")
	}
	return nil
}

// AssertValidIncomingPartialTask validates a loosely-typed PATCH payload.
// Only the keys present are checked; unknown keys are ignored.
func AssertValidIncomingPartialTask(body map[string]any) error {
	if body == nil {
		return apperr.New(apperr.CodeInvalidTask, "task payload must be an object")
	}
	if v, ok := body["title"]; ok && v != nil {
		if err := AssertValidTaskTitle(v); err != nil {
			return err
		}
	}
	if v, ok := body["detail"]; ok && v != nil {
		if err := AssertValidTaskDetail(v); err != nil {
			return err
		}
	}
	return nil
}

// ValidateGlobalState structurally validates state loaded from storage.
// JSON decoding already guarantees field types; this checks the parts the
// decoder cannot: both collections must be present and every user must be
// a well-formed account. A failure here is fatal at startup — corrupted
// persisted state is surfaced, never silently repaired.
func ValidateGlobalState(s *GlobalState) error {
	if s == nil {
		return apperr.New(apperr.CodeValidateError, "state must be an object")
	}
	if s.Users == nil {
		return apperr.New(apperr.CodeValidateError, "state.users must be an array")
	}
	if s.Tasks == nil {
		return apperr.New(apperr.CodeValidateError, "state.tasks must be an array")
	}
	for _, u := range s.Users {
		if u.ID == "" {
			return apperr.Newf(apperr.CodeValidateError, "user %q has no id", u.Username)
		}
		if u.Token != "" && !IsToken68(u.Token) {
			return apperr.Newf(apperr.CodeValidateError, "user %q has a malformed token", u.Username)
		}
	}
	return nil
}
