// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios and map
// them onto the HTTP taxonomy: ErrInsufficientSeats becomes a 400 when
// the seat race is lost, ErrFlightNotFound a 404, ErrForbidden a 403
// when a caller touches a reservation they do not own.
package repository

import "errors"

// ErrFlightNotFound is returned when a flight ID does not denote an
// existing flight.  Handlers should translate this into an HTTP 404.
var ErrFlightNotFound = errors.New("flight not found")

// ErrInsufficientSeats is returned when the conditional seat decrement
// matches no row because the flight exists but has fewer seats available
// than requested.  Handlers should translate this into an HTTP 400.
var ErrInsufficientSeats = errors.New("insufficient seats available")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a write cannot proceed because of
// conflicting state, such as a duplicate unique key. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrNoCrew is returned by payroll queries when no users carry the
// requested crew role.  The observed system reports this as a 404
// rather than an empty payroll; that behavior is kept.
var ErrNoCrew = errors.New("no users with requested role")
