package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/arjun-dc/blog-platform/backend/internal/apperr"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError renders err as {"error": message} with its mapped status.
// Unclassified errors surface as a generic 500.
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, apperr.Status(err), map[string]string{"error": apperr.Message(err)})
}

// DecodeJSON decodes the request body into dst, mapping malformed bodies to
// an InvalidInput error.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.InvalidInput("invalid request body")
	}
	return nil
}
