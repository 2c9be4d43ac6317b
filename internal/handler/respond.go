package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// listResponse wraps collection responses so metadata can be added later
// without breaking clients.
type listResponse[T any] struct {
	Data []T `json:"data"`
}

// writeJSON encodes v as the response body. Encoding errors are ignored:
// the status line has already been sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads the request body into dst. A failure is written to w as a
// 413 or 422 and reported as false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil || r.Body == http.NoBody {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body is required"))
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge,
				errorBody("payload_too_large", fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)))
			return false
		}
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("malformed request body: "+err.Error()))
		return false
	}
	return true
}

// pathUUID parses a UUID path parameter. A malformed ID cannot name an
// existing resource, so it is reported as 404.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not_found", name+" is not a valid id"))
		return uuid.Nil, false
	}
	return id, true
}
