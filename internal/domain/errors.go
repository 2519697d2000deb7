package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. empty title, inverted time window). Validation is fail-fast: the
// error message names the first offending constraint only.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidRange is returned by day-count computation when the end date
// precedes the start date. It wraps ErrValidation so callers that only
// distinguish "valid or not" keep working.
var ErrInvalidRange = fmt.Errorf("%w: end date before start date", ErrValidation)

// ErrOutOfRange is returned by mutation operations when a requested day
// number falls outside [1, dayCount]. Wraps ErrValidation.
var ErrOutOfRange = fmt.Errorf("%w: day number out of range", ErrValidation)

// ErrMissingPlace is returned by mutation operations when an item references
// a place that cannot be resolved. Wraps ErrValidation.
var ErrMissingPlace = fmt.Errorf("%w: place not found", ErrValidation)

// ErrRemote wraps any failure surfaced by the persistence service — network
// errors, non-success statuses, malformed responses. The editor catches these
// at the sync boundary; they never propagate as panics to the caller.
var ErrRemote = errors.New("remote persistence failure")
