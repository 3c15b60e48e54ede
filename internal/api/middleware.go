package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/todo-mock-api/internal/apperr"
)

// contextKey is a private type to avoid context key collisions.
type contextKey string

const requestIDKey contextKey = "requestID"

// requestID tags each request with an id, honoring one supplied by the
// client, and echoes it in the response.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// recoverer converts a panic into a 500 with the standard error body, so
// even a crashed handler answers well-formed JSON.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic handling %s %s: %v", r.Method, r.URL.Path, rec)
				writeError(w, apperr.New(apperr.CodeUnexpectedError, "unexpected error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// logRequests logs one line per request.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		id, _ := r.Context().Value(requestIDKey).(string)
		log.Printf("[%s] %s %s (%s)", id, r.Method, r.URL.Path, time.Since(start))
	})
}
