package api

import (
	"net/http"

	"github.com/nhle/todo-mock-api/internal/feature"
	"github.com/nhle/todo-mock-api/internal/model"
)

func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	body, err := decodeJSONBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := model.AssertValidUserName(body["username"]); err != nil {
		writeError(w, err)
		return
	}
	if err := model.AssertValidPassword(body["password"]); err != nil {
		writeError(w, err)
		return
	}
	username := body["username"].(string)
	password := body["password"].(string)

	next, err := feature.RegisterUser(h.store.State(), username, password)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.Update(next); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, successBody)
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	body, err := decodeJSONBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := model.AssertValidUserName(body["username"]); err != nil {
		writeError(w, err)
		return
	}
	if err := model.AssertValidPassword(body["password"]); err != nil {
		writeError(w, err)
		return
	}
	username := body["username"].(string)
	password := body["password"].(string)

	next, token, err := feature.LoginUser(h.store.State(), username, password)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.Update(next); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": token})
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	snapshot, user, err := h.authenticate(r)
	if err != nil {
		writeError(w, err)
		return
	}

	next := feature.LogoutUser(snapshot, user)
	if err := h.store.Update(next); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, successBody)
}

// authenticate resolves the Authorization header against the current
// snapshot and returns both, so the handler operates on the same state
// generation it authenticated against.
func (h *handlers) authenticate(r *http.Request) (*model.GlobalState, model.UserState, error) {
	snapshot := h.store.State()
	user, err := feature.GetUserFromToken(snapshot, r.Header.Get("Authorization"))
	if err != nil {
		return nil, model.UserState{}, err
	}
	return snapshot, user, nil
}
