package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// requestBody returns an ErrorResponse for a request rejected before reaching
// the service layer (e.g. missing or malformed body).
func requestBody(message string) ErrorResponse {
	return errorBody("validation_error", message)
}

// writeError maps a service error onto its HTTP status. Unexpected errors are
// logged and reported as a bare 500 so internals do not leak.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	var body ErrorResponse
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, body = http.StatusNotFound, errorBody("not_found", unwrapMessage(err, domain.ErrNotFound))
	case errors.Is(err, domain.ErrValidation):
		status, body = http.StatusUnprocessableEntity, errorBody("validation_error", unwrapMessage(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrInvalidState):
		status, body = http.StatusConflict, errorBody("invalid_state", unwrapMessage(err, domain.ErrInvalidState))
	case errors.Is(err, domain.ErrExternalFetch):
		s.log.WarnContext(r.Context(), "external fetch failed", "path", r.URL.Path, "error", err)
		status, body = http.StatusBadGateway, errorBody("external_fetch_failed", "booking provider unavailable")
	default:
		s.log.ErrorContext(r.Context(), "unhandled error", "method", r.Method, "path", r.URL.Path, "error", err)
		status, body = http.StatusInternalServerError, errorBody("internal_error", "internal server error")
	}
	writeJSON(w, status, body)
}

// unwrapMessage extracts the human-readable part that follows the sentinel.
// e.g. "service.TripService.Create: validation error: name is required" → "name is required"
// When nothing follows the sentinel, its own text is returned.
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return sentinel.Error()
}
