package domain

import (
	"context"
	"time"
)

// Event represents a published event at a venue. The time window is the
// half-open interval [FromTime, ToTime): two events at the same venue may
// touch back to back without conflicting.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	BannerURL   *string   `json:"banner_url,omitempty"`
	VenueID     string    `json:"venue_id"`
	FromTime    time.Time `json:"from_time"`
	ToTime      time.Time `json:"to_time"`
	OwnerID     string    `json:"owner_id"`
	Club        string    `json:"club"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(title, venueID, ownerID, club string, fromTime, toTime, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:     title,
		VenueID:   venueID,
		OwnerID:   ownerID,
		Club:      club,
		FromTime:  fromTime,
		ToTime:    toTime,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// Overlaps reports whether the half-open intervals [aFrom, aTo) and
// [bFrom, bTo) intersect.
func Overlaps(aFrom, aTo, bFrom, bTo time.Time) bool {
	return aFrom.Before(bTo) && bFrom.Before(aTo)
}

// EventUpdate carries the optional fields of an event update. Nil fields are
// left unchanged.
type EventUpdate struct {
	Title       *string
	Description *string
	BannerURL   *string
	VenueID     *string
	FromTime    *time.Time
	ToTime      *time.Time
	Club        *string
}

// EventRepository defines the interface for event storage. Create and Update
// are conditional writes: they fail with ErrVenueConflict when the venue is
// already booked for an overlapping window, atomically with the write.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Event, error)
	Update(ctx context.Context, eventID string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
	// FindConflicting returns an event at the venue whose stored window
	// overlaps [from, to), or ErrNotFound when the slot is free. Read-only;
	// used for diagnostics, never as the enforcement path.
	FindConflicting(ctx context.Context, venueID string, from, to time.Time) (*Event, error)
}

// EventService defines organizer-facing event and venue operations.
type EventService interface {
	CreateVenue(ctx context.Context, callerID, callerRole, name string, capacity int) (*Venue, error)
	ListVenues(ctx context.Context) ([]*Venue, error)
	CreateEvent(ctx context.Context, callerID, callerRole string, event *Event) error
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	ListEventsByOwner(ctx context.Context, ownerID string) ([]*Event, error)
	UpdateEvent(ctx context.Context, eventID, callerID string, upd EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, eventID, callerID string) error
}
