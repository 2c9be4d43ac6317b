package domain

import "errors"

// ErrNotFound is returned when the requested resource does not exist, or does
// not belong to the trip named in the request.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidState is returned when an operation is not allowed in the trip's
// current state: a return flight chosen before an outbound one, a plan requested
// before every city has a hotel, a feedback item reset to pending.
// Handlers should map this to HTTP 409 Conflict.
var ErrInvalidState = errors.New("invalid state")

// ErrExternalFetch wraps failures of third-party detail lookups.
// It is never cached; the same request may simply be retried.
// Handlers should map this to HTTP 502 Bad Gateway.
var ErrExternalFetch = errors.New("external fetch failed")
