package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/flicklist/flicklist-go/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// writeServerError logs a store or internal failure with context and
// returns an opaque 500 to the caller.
func writeServerError(w http.ResponseWriter, op string, err error) {
	slog.Error("internal error", "op", op, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
}

// decodeJSON decodes a size-capped JSON request body, writing the error
// response itself on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return false
	}

	return true
}

// writeValidationError writes a 422 carrying every violated field rule.
func writeValidationError(w http.ResponseWriter, verr *service.ValidationError) {
	writeJSON(w, http.StatusUnprocessableEntity, verr)
}
