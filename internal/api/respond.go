package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/nhle/todo-mock-api/internal/apperr"
)

// writeJSON formats and sends a JSON response. An unmarshalable payload is
// a programming error; it is logged and downgraded to the standard 500
// body so the client still receives well-formed JSON.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("encoding response payload: %v", err)
		status = http.StatusInternalServerError
		response, _ = json.Marshal(apperr.Response{
			Code:    apperr.CodeUnexpectedError,
			Message: "unexpected error",
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

// writeError funnels every failure through the error taxonomy, so each
// error response is well-formed {code, message} JSON.
func writeError(w http.ResponseWriter, err error) {
	status, body := apperr.Translate(err)
	writeJSON(w, status, body)
}

// successBody is the payload for operations with no natural output.
var successBody = map[string]bool{"success": true}

// decodeJSONBody parses the request body into an untyped map, the input to
// the field-by-field validators.
func decodeJSONBody(r *http.Request) (map[string]any, error) {
	defer r.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, apperr.New(apperr.CodeValidateError, "request body must be a JSON object")
	}
	return body, nil
}
