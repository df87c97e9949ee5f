package domain

import "errors"

// Sentinel errors shared across services and repositories. Repositories
// translate store-level failures (missing rows, constraint violations) into
// these; controllers map them to HTTP status codes.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrForbidden        = errors.New("forbidden")
	ErrVenueConflict    = errors.New("venue already booked for this time window")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrAlreadyCheckedIn = errors.New("already checked in")
	ErrDuplicateVenue   = errors.New("venue name already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateEmail   = errors.New("email already in use")
)
