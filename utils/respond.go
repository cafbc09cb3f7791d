package utils

import (
	"encoding/json"
	"net/http"

	"github.com/kevinaaaquil/myb/backend/apperr"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// Error writes err as { "error": message, "details": {field: reason} } with the status of its
// apperr code. details is omitted when empty. Errors outside the taxonomy become a generic 500.
func Error(w http.ResponseWriter, err error) {
	JSON(w, apperr.Status(err), errorBody{Error: apperr.Message(err), Details: apperr.DetailsOf(err)})
}
