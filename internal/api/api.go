// Package api exposes the REST surface. The returned handler is plain
// http.Handler, so it can back a real server or be mounted directly in a
// test — the in-process counterpart of the original's request
// interception.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/nhle/todo-mock-api/internal/state"
)

// Options tunes the transport-level middleware. The zero value is fine
// for tests.
type Options struct {
	// CORSOrigins lists the origins allowed to call the API. Empty
	// disables the CORS middleware entirely.
	CORSOrigins []string

	// LogRequests enables per-request logging.
	LogRequests bool
}

type handlers struct {
	store *state.Store
}

// New builds the router over the given state store.
func New(store *state.Store, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(recoverer)
	if opts.LogRequests {
		r.Use(logRequests)
	}
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	h := &handlers{store: store}

	r.Get("/api/health", h.health)

	r.Post("/api/users/register", h.register)
	r.Post("/api/users/login", h.login)
	r.Post("/api/users/logout", h.logout)

	r.Get("/api/tasks", h.listTasks)
	r.Post("/api/tasks", h.createTask)
	r.Get("/api/tasks/{taskID}", h.getTask)
	r.Patch("/api/tasks/{taskID}", h.updateTask)
	r.Delete("/api/tasks/{taskID}", h.deleteTask)
	r.Put("/api/tasks/{taskID}/completion", h.completeTask)
	r.Delete("/api/tasks/{taskID}/completion", h.uncompleteTask)

	return r
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "I'm healthy!"})
}
