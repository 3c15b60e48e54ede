package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nhle/todo-mock-api/internal/feature"
	"github.com/nhle/todo-mock-api/internal/model"
)

func (h *handlers) listTasks(w http.ResponseWriter, r *http.Request) {
	snapshot, user, err := h.authenticate(r)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, feature.GetTasks(snapshot, user))
}

func (h *handlers) createTask(w http.ResponseWriter, r *http.Request) {
	snapshot, user, err := h.authenticate(r)
	if err != nil {
		writeError(w, err)
		return
	}

	body, err := decodeJSONBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := model.AssertValidTaskTitle(body["title"]); err != nil {
		writeError(w, err)
		return
	}
	if err := model.AssertValidTaskDetail(body["detail"]); err != nil {
		writeError(w, err)
		return
	}
	title := body["title"].(string)
	var detail *string
	if v, ok := body["detail"].(string); ok {
		detail = &v
	}

	next, task := feature.AddTask(snapshot, user, title, detail)
	if err := h.store.Update(next); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *handlers) getTask(w http.ResponseWriter, r *http.Request) {
	snapshot, user, err := h.authenticate(r)
	if err != nil {
		writeError(w, err)
		return
	}

	task, err := feature.GetTask(snapshot, user, chi.URLParam(r, "taskID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *handlers) updateTask(w http.ResponseWriter, r *http.Request) {
	snapshot, user, err := h.authenticate(r)
	if err != nil {
		writeError(w, err)
		return
	}

	body, err := decodeJSONBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := model.AssertValidIncomingPartialTask(body); err != nil {
		writeError(w, err)
		return
	}

	// A field set to JSON null decodes the same as an absent field; both
	// leave the stored value unchanged.
	var partial feature.PartialTask
	if v, ok := body["title"].(string); ok {
		partial.Title = &v
	}
	if v, ok := body["detail"].(string); ok {
		partial.Detail = &v
	}

	next, task, err := feature.UpdateTask(snapshot, user, chi.URLParam(r, "taskID"), partial)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.Update(next); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *handlers) deleteTask(w http.ResponseWriter, r *http.Request) {
	snapshot, user, err := h.authenticate(r)
	if err != nil {
		writeError(w, err)
		return
	}

	next, err := feature.DeleteTask(snapshot, user, chi.URLParam(r, "taskID"))
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

func (h *handlers) completeTask(w http.ResponseWriter, r *http.Request) {
	h.setTaskCompletion(w, r, true)
}

func (h *handlers) uncompleteTask(w http.ResponseWriter, r *http.Request) {
	h.setTaskCompletion(w, r, false)
}

func (h *handlers) setTaskCompletion(w http.ResponseWriter, r *http.Request, isComplete bool) {
	snapshot, user, err := h.authenticate(r)
	if err != nil {
		writeError(w, err)
		return
	}

	next, task, err := feature.UpdateTaskCompletion(snapshot, user, chi.URLParam(r, "taskID"), isComplete)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.Update(next); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}
