package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nhle/todo-mock-api/internal/apperr"
	"github.com/nhle/todo-mock-api/internal/model"
	"github.com/nhle/todo-mock-api/internal/testutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := testutil.NewStore(t, nil)
	srv := httptest.NewServer(New(store, Options{}))
	t.Cleanup(srv.Close)
	return srv
}

// call issues a request and decodes the JSON response into out (skipped
// when out is nil). token, when non-empty, is sent as a bearer token.
func call(t *testing.T, srv *httptest.Server, method, path, token string, body any, out any) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()

	if ct := res.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("%s %s: expected JSON response, got %q", method, path, ct)
	}
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decoding response: %v", method, path, err)
		}
	}
	return res.StatusCode
}

func errCode(t *testing.T, srv *httptest.Server, method, path, token string, body any) (int, apperr.Code) {
	t.Helper()
	var response apperr.Response
	status := call(t, srv, method, path, token, body, &response)
	return status, response.Code
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]string
	status := call(t, srv, http.MethodGet, "/api/health", "", nil, &body)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["message"] != "I'm healthy!" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestEndToEndScenario(t *testing.T) {
	srv := newTestServer(t)

	// Register bob.
	var registered map[string]any
	status := call(t, srv, http.MethodPost, "/api/users/register", "",
		map[string]string{"username": "bob", "password": "pw"}, &registered)
	if status != http.StatusOK || registered["success"] != true {
		t.Fatalf("register failed: %d %+v", status, registered)
	}

	// Login with the same credentials.
	var login struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	status = call(t, srv, http.MethodPost, "/api/users/login", "",
		map[string]string{"username": "bob", "password": "pw"}, &login)
	if status != http.StatusOK || !login.Success || login.Token == "" {
		t.Fatalf("login failed: %d %+v", status, login)
	}

	// Create a task.
	var created model.Task
	status = call(t, srv, http.MethodPost, "/api/tasks", login.Token,
		map[string]string{"title": "Buy milk"}, &created)
	if status != http.StatusOK {
		t.Fatalf("create task failed: %d", status)
	}
	if created.Title != "Buy milk" || created.IsComplete {
		t.Fatalf("unexpected task: %+v", created)
	}

	// Complete it.
	var completed model.Task
	status = call(t, srv, http.MethodPut, "/api/tasks/"+created.ID+"/completion", login.Token, nil, &completed)
	if status != http.StatusOK || !completed.IsComplete {
		t.Fatalf("complete failed: %d %+v", status, completed)
	}

	// List tasks: exactly the one, complete.
	var tasks []model.Task
	status = call(t, srv, http.MethodGet, "/api/tasks", login.Token, nil, &tasks)
	if status != http.StatusOK {
		t.Fatalf("list failed: %d", status)
	}
	if len(tasks) != 1 || tasks[0].ID != created.ID || !tasks[0].IsComplete {
		t.Fatalf("unexpected task list: %+v", tasks)
	}
}

func TestRegisterValidationAndConflict(t *testing.T) {
	srv := newTestServer(t)

	status, code := errCode(t, srv, http.MethodPost, "/api/users/register", "",
		map[string]any{"username": 42, "password": "pw"})
	if status != http.StatusBadRequest || code != apperr.CodeInvalidUser {
		t.Fatalf("expected 400 InvalidUser, got %d %s", status, code)
	}

	status, code = errCode(t, srv, http.MethodPost, "/api/users/register", "",
		map[string]any{"password": "pw"})
	if status != http.StatusBadRequest || code != apperr.CodeInvalidUser {
		t.Fatalf("missing username: expected 400 InvalidUser, got %d %s", status, code)
	}

	// guest is seeded by default.
	status, code = errCode(t, srv, http.MethodPost, "/api/users/register", "",
		map[string]string{"username": "guest", "password": "pw"})
	if status != http.StatusConflict || code != apperr.CodeConflictUser {
		t.Fatalf("expected 409 ConflictUser, got %d %s", status, code)
	}
}

func TestLoginFailures(t *testing.T) {
	srv := newTestServer(t)

	status, code := errCode(t, srv, http.MethodPost, "/api/users/login", "",
		map[string]string{"username": "nobody", "password": "pw"})
	if status != http.StatusNotFound || code != apperr.CodeUserNotFound {
		t.Fatalf("expected 404 UserNotFound, got %d %s", status, code)
	}

	status, code = errCode(t, srv, http.MethodPost, "/api/users/login", "",
		map[string]string{"username": "guest", "password": "wrong"})
	if status != http.StatusUnauthorized || code != apperr.CodeMismatchedPassword {
		t.Fatalf("expected 401 MismatchedPassword, got %d %s", status, code)
	}
}

func TestAuthErrors(t *testing.T) {
	srv := newTestServer(t)

	status, code := errCode(t, srv, http.MethodGet, "/api/tasks", "", nil)
	if status != http.StatusUnauthorized || code != apperr.CodeTokenRequired {
		t.Fatalf("expected 401 TokenRequired, got %d %s", status, code)
	}

	status, code = errCode(t, srv, http.MethodGet, "/api/tasks", "unknown-token", nil)
	if status != http.StatusUnauthorized || code != apperr.CodeMismatchedToken {
		t.Fatalf("expected 401 MismatchedToken, got %d %s", status, code)
	}

	// Malformed bearer value: send the header directly.
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/tasks", nil)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer not a token")
	res, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer res.Body.Close()

	var body apperr.Response
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if res.StatusCode != http.StatusBadRequest || body.Code != apperr.CodeInvalidToken {
		t.Fatalf("expected 400 InvalidToken, got %d %s", res.StatusCode, body.Code)
	}
}

func TestLogoutInvalidatesToken(t *testing.T) {
	srv := newTestServer(t)

	var login struct {
		Token string `json:"token"`
	}
	call(t, srv, http.MethodPost, "/api/users/login", "",
		map[string]string{"username": "guest", "password": "password"}, &login)

	var out map[string]any
	status := call(t, srv, http.MethodPost, "/api/users/logout", login.Token, nil, &out)
	if status != http.StatusOK || out["success"] != true {
		t.Fatalf("logout failed: %d %+v", status, out)
	}

	status, code := errCode(t, srv, http.MethodGet, "/api/tasks", login.Token, nil)
	if status != http.StatusUnauthorized || code != apperr.CodeMismatchedToken {
		t.Fatalf("token must be invalid after logout, got %d %s", status, code)
	}
}

func TestTaskEndpointsScopeToOwner(t *testing.T) {
	srv := newTestServer(t)

	register := func(name string) string {
		call(t, srv, http.MethodPost, "/api/users/register", "",
			map[string]string{"username": name, "password": "pw"}, nil)
		var login struct {
			Token string `json:"token"`
		}
		call(t, srv, http.MethodPost, "/api/users/login", "",
			map[string]string{"username": name, "password": "pw"}, &login)
		return login.Token
	}

	aliceToken := register("alice")
	bobToken := register("bob")

	var created model.Task
	call(t, srv, http.MethodPost, "/api/tasks", aliceToken,
		map[string]string{"title": "alice's task"}, &created)

	status, code := errCode(t, srv, http.MethodGet, "/api/tasks/"+created.ID, bobToken, nil)
	if status != http.StatusNotFound || code != apperr.CodeTaskNotFound {
		t.Fatalf("expected 404 TaskNotFound for bob, got %d %s", status, code)
	}

	status, code = errCode(t, srv, http.MethodDelete, "/api/tasks/"+created.ID, bobToken, nil)
	if status != http.StatusNotFound || code != apperr.CodeTaskNotFound {
		t.Fatalf("expected 404 on cross-user delete, got %d %s", status, code)
	}

	var bobTasks []model.Task
	call(t, srv, http.MethodGet, "/api/tasks", bobToken, nil, &bobTasks)
	if len(bobTasks) != 0 {
		t.Fatalf("bob must not see alice's tasks: %+v", bobTasks)
	}
}

func TestPatchTaskPartialUpdate(t *testing.T) {
	srv := newTestServer(t)

	var login struct {
		Token string `json:"token"`
	}
	call(t, srv, http.MethodPost, "/api/users/login", "",
		map[string]string{"username": "guest", "password": "password"}, &login)

	var created model.Task
	call(t, srv, http.MethodPost, "/api/tasks", login.Token,
		map[string]string{"title": "original", "detail": "keep me"}, &created)

	var updated model.Task
	status := call(t, srv, http.MethodPatch, "/api/tasks/"+created.ID, login.Token,
		map[string]string{"title": "renamed"}, &updated)
	if status != http.StatusOK {
		t.Fatalf("patch failed: %d", status)
	}
	if updated.Title != "renamed" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if updated.Detail == nil || *updated.Detail != "keep me" {
		t.Fatalf("detail must survive a title-only patch: %v", updated.Detail)
	}

	status, code := errCode(t, srv, http.MethodPatch, "/api/tasks/"+created.ID, login.Token,
		map[string]any{"title": 42})
	if status != http.StatusBadRequest || code != apperr.CodeInvalidTask {
		t.Fatalf("expected 400 InvalidTask, got %d %s", status, code)
	}

	status, code = errCode(t, srv, http.MethodPatch, "/api/tasks/missing", login.Token,
		map[string]string{"title": "x"})
	if status != http.StatusNotFound || code != apperr.CodeTaskNotFound {
		t.Fatalf("expected 404 TaskNotFound, got %d %s", status, code)
	}
}

func TestCompletionDelete(t *testing.T) {
	srv := newTestServer(t)

	var login struct {
		Token string `json:"token"`
	}
	call(t, srv, http.MethodPost, "/api/users/login", "",
		map[string]string{"username": "guest", "password": "password"}, &login)

	var created model.Task
	call(t, srv, http.MethodPost, "/api/tasks", login.Token,
		map[string]string{"title": "toggle"}, &created)

	var completed model.Task
	call(t, srv, http.MethodPut, "/api/tasks/"+created.ID+"/completion", login.Token, nil, &completed)
	if !completed.IsComplete {
		t.Fatal("PUT completion must set is_complete")
	}

	var reopened model.Task
	call(t, srv, http.MethodDelete, "/api/tasks/"+created.ID+"/completion", login.Token, nil, &reopened)
	if reopened.IsComplete {
		t.Fatal("DELETE completion must clear is_complete")
	}
}

func TestMalformedBodyIsValidateError(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/users/register",
		bytes.NewReader([]byte("{not json")))
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	res, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer res.Body.Close()

	var body apperr.Response
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if res.StatusCode != http.StatusBadRequest || body.Code != apperr.CodeValidateError {
		t.Fatalf("expected 400 ValidateError, got %d %s", res.StatusCode, body.Code)
	}
}
