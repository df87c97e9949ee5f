package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventify/internal/domain"
)

type checkinService struct {
	registrationRepo domain.RegistrationRepository
	contextTimeout   time.Duration
}

// NewCheckinService creates the service that performs the one-way
// registered -> checked-in transition. It is deliberately unauthenticated so
// a physical scanner can call it; an organizer-scope restriction can be
// layered on at the router without changing the transition rule.
func NewCheckinService(registrationRepo domain.RegistrationRepository, timeout time.Duration) domain.CheckinService {
	return &checkinService{
		registrationRepo: registrationRepo,
		contextTimeout:   timeout,
	}
}

// CheckIn transitions the registration for (eventID, userID) exactly once.
// The repository's conditional update carries the idempotency guard; a
// second scan of the same ticket surfaces as ErrAlreadyCheckedIn and leaves
// the recorded checkin_time untouched.
func (s *checkinService) CheckIn(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.registrationRepo.CheckIn(ctx, eventID, userID, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrAlreadyCheckedIn) {
			return nil, err
		}
		return nil, fmt.Errorf("check in: %w", err)
	}
	return reg, nil
}
