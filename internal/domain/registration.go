package domain

import (
	"context"
	"time"
)

// Registration represents a user's registration for an event. At most one
// registration exists per (user, event) pair, enforced by the store. Ticket
// holds the QR-encoded check-in URL as a base64 data URL; it may be empty if
// encoding failed after the row was created, in which case it is regenerated
// on next read.
// swagger:model Registration
type Registration struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	EventID      string     `json:"event_id"`
	RegisteredAt time.Time  `json:"registered_at"`
	IsCheckedIn  bool       `json:"is_checked_in"`
	CheckinTime  *time.Time `json:"checkin_time,omitempty"`
	Ticket       string     `json:"ticket,omitempty"`
}

// NewRegistration creates a new Registration. ID is typically set by the repository on create.
func NewRegistration(eventID, userID string, registeredAt time.Time) *Registration {
	return &Registration{
		EventID:      eventID,
		UserID:       userID,
		RegisteredAt: registeredAt,
	}
}

// RegistrationWithEvent bundles a registration with its related event.
type RegistrationWithEvent struct {
	Registration *Registration `json:"registration"`
	Event        *Event        `json:"event"`
}

// RegistrationRepository defines storage operations for registrations.
// Create is an insert-if-absent: a duplicate (user, event) pair fails with
// ErrAlreadyRegistered via the store's uniqueness constraint. CheckIn is a
// conditional update that transitions the row only when is_checked_in is
// still false.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Registration, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Registration, error)
	ListByUserID(ctx context.Context, userID string) ([]*Registration, error)
	SetTicket(ctx context.Context, id, ticket string) error
	// CheckIn sets is_checked_in and checkin_time iff the registration
	// exists and is not yet checked in. Returns ErrNotFound when no row
	// matches (user, event) and ErrAlreadyCheckedIn when the flag was
	// already set.
	CheckIn(ctx context.Context, eventID, userID string, at time.Time) (*Registration, error)
}

// TicketEncoder renders a check-in URL as a scannable ticket image.
type TicketEncoder interface {
	Encode(url string) (string, error)
}

// AttendeeService defines attendee-facing registration operations.
type AttendeeService interface {
	// Register creates a registration for (eventID, userID) and issues the
	// ticket. Fails with ErrNotFound when the event is missing and
	// ErrAlreadyRegistered on a duplicate.
	Register(ctx context.Context, eventID, userID string) (*Registration, error)
	// ListEventRegistrations returns all registrations for the event. Only
	// the event owner may call it.
	ListEventRegistrations(ctx context.Context, eventID, callerID string) ([]*Registration, error)
	// ListUserRegistrations returns the user's registrations joined with
	// their events, most recent registration first.
	ListUserRegistrations(ctx context.Context, userID string) ([]*RegistrationWithEvent, error)
}

// CheckinService transitions a registration from registered to checked in,
// exactly once.
type CheckinService interface {
	CheckIn(ctx context.Context, eventID, userID string) (*Registration, error)
}
