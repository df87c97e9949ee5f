package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventify/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	venueRepo      domain.VenueRepository
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository, venueRepo domain.VenueRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		venueRepo:      venueRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateVenue(ctx context.Context, callerID, callerRole, name string, capacity int) (*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerRole != domain.RoleOrganizer {
		return nil, domain.ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" || capacity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	venue := domain.NewVenue(name, capacity, now, now)
	if err := s.venueRepo.Create(ctx, venue); err != nil {
		if errors.Is(err, domain.ErrDuplicateVenue) {
			return nil, domain.ErrDuplicateVenue
		}
		return nil, fmt.Errorf("create venue: %w", err)
	}
	return venue, nil
}

func (s *eventService) ListVenues(ctx context.Context) ([]*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	venues, err := s.venueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return venues, nil
}

// CreateEvent validates the window, then relies on the repository's
// conditional insert for conflict enforcement. The follow-up FindConflicting
// read only names the offending event for the error message.
func (s *eventService) CreateEvent(ctx context.Context, callerID, callerRole string, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerRole != domain.RoleOrganizer {
		return domain.ErrForbidden
	}
	if strings.TrimSpace(event.Title) == "" || event.VenueID == "" || strings.TrimSpace(event.Club) == "" {
		return domain.ErrInvalidInput
	}
	if !event.FromTime.Before(event.ToTime) {
		return domain.ErrInvalidInput
	}

	if _, err := s.venueRepo.GetByID(ctx, event.VenueID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get venue: %w", err)
	}

	event.OwnerID = callerID
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()

	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrVenueConflict) {
			return s.conflictError(ctx, event.VenueID, event.FromTime, event.ToTime)
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) conflictError(ctx context.Context, venueID string, from, to time.Time) error {
	conflicting, err := s.eventRepo.FindConflicting(ctx, venueID, from, to)
	if err != nil {
		return domain.ErrVenueConflict
	}
	return fmt.Errorf("%w: conflicts with event %s", domain.ErrVenueConflict, conflicting.ID)
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) ListEventsByOwner(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.ListByOwnerID(ctx, ownerID)
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID, callerID string, upd domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != callerID {
		return nil, domain.ErrForbidden
	}

	// Validate the effective window before touching the store.
	newFrom := event.FromTime
	if upd.FromTime != nil {
		newFrom = *upd.FromTime
	}
	newTo := event.ToTime
	if upd.ToTime != nil {
		newTo = *upd.ToTime
	}
	if !newFrom.Before(newTo) {
		return nil, domain.ErrInvalidInput
	}
	if upd.VenueID != nil {
		if _, err := s.venueRepo.GetByID(ctx, *upd.VenueID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get venue: %w", err)
		}
	}

	updated, err := s.eventRepo.Update(ctx, eventID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		if errors.Is(err, domain.ErrVenueConflict) {
			// No diagnostics lookup here: the event's own stored window
			// would match the overlap query against itself.
			return nil, domain.ErrVenueConflict
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != callerID {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
