package apperr

import "errors"

// ErrInvalid is returned when input or a requested action fails validation
// against the current state.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a state conflict, e.g. a command already in flight
// for the same segment (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrUnavailable indicates that a remote collaborator failed or rejected
// the request (HTTP 502).
var ErrUnavailable = errors.New("upstream unavailable")
