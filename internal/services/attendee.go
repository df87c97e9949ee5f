package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventify/internal/domain"
)

type attendeeService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.RegistrationRepository
	userRepo         domain.UserRepository
	ticketEncoder    domain.TicketEncoder
	emailService     domain.EmailService
	frontendURL      string
	logger           *slog.Logger
	contextTimeout   time.Duration
}

// NewAttendeeService creates an AttendeeService with the given repositories
// and ticket/email collaborators.
func NewAttendeeService(
	eventRepo domain.EventRepository,
	registrationRepo domain.RegistrationRepository,
	userRepo domain.UserRepository,
	ticketEncoder domain.TicketEncoder,
	emailService domain.EmailService,
	frontendURL string,
	logger *slog.Logger,
	timeout time.Duration,
) domain.AttendeeService {
	return &attendeeService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		userRepo:         userRepo,
		ticketEncoder:    ticketEncoder,
		emailService:     emailService,
		frontendURL:      strings.TrimSuffix(frontendURL, "/"),
		logger:           logger,
		contextTimeout:   timeout,
	}
}

func (s *attendeeService) checkinURL(eventID, userID string) string {
	return fmt.Sprintf("%s/checkin/%s/%s", s.frontendURL, eventID, userID)
}

// Register creates the registration row first, then attaches the ticket. The
// row is the source of truth: duplicate detection rides on the store's
// uniqueness constraint, and a ticket encoding failure leaves a valid row
// whose ticket is regenerated on next read.
func (s *attendeeService) Register(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	reg := domain.NewRegistration(eventID, userID, time.Now())
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}

	ticket, err := s.ticketEncoder.Encode(s.checkinURL(eventID, userID))
	if err != nil {
		// The registration stands; the ticket will be regenerated lazily.
		s.logger.ErrorContext(ctx, "ticket encoding failed", "registration_id", reg.ID, "err", err)
	} else {
		if err := s.registrationRepo.SetTicket(ctx, reg.ID, ticket); err != nil {
			s.logger.ErrorContext(ctx, "ticket persist failed", "registration_id", reg.ID, "err", err)
		} else {
			reg.Ticket = ticket
		}
	}

	s.sendConfirmation(ctx, event, reg, userID)
	return reg, nil
}

// sendConfirmation emails the ticket to the registrant. Best effort: a
// delivery failure never rolls back the registration.
func (s *attendeeService) sendConfirmation(ctx context.Context, event *domain.Event, reg *domain.Registration, userID string) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.WarnContext(ctx, "confirmation email skipped", "user_id", userID, "err", err)
		return
	}
	data := &domain.TicketEmailData{
		Email:      user.Email,
		Username:   user.Username,
		EventTitle: event.Title,
		Ticket:     reg.Ticket,
	}
	if err := s.emailService.SendTicket(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "confirmation email failed", "user_id", userID, "err", err)
	}
}

func (s *attendeeService) ListEventRegistrations(ctx context.Context, eventID, callerID string) ([]*domain.Registration, error) {
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

	regs, err := s.registrationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return regs, nil
}

func (s *attendeeService) ListUserRegistrations(ctx context.Context, userID string) ([]*domain.RegistrationWithEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	regs, err := s.registrationRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	eventsByID := make(map[string]*domain.Event)
	result := make([]*domain.RegistrationWithEvent, 0, len(regs))
	for _, reg := range regs {
		ev, ok := eventsByID[reg.EventID]
		if !ok {
			ev, err = s.eventRepo.GetByID(ctx, reg.EventID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					// Event deleted but registration remains; skip this entry.
					continue
				}
				return nil, fmt.Errorf("get event for registration: %w", err)
			}
			eventsByID[reg.EventID] = ev
		}
		s.ensureTicket(ctx, reg)
		result = append(result, &domain.RegistrationWithEvent{
			Registration: reg,
			Event:        ev,
		})
	}
	return result, nil
}

// ensureTicket regenerates a ticket that failed to encode at registration
// time, so a read never returns a registration with no remediation path.
func (s *attendeeService) ensureTicket(ctx context.Context, reg *domain.Registration) {
	if reg.Ticket != "" {
		return
	}
	ticket, err := s.ticketEncoder.Encode(s.checkinURL(reg.EventID, reg.UserID))
	if err != nil {
		s.logger.ErrorContext(ctx, "ticket regeneration failed", "registration_id", reg.ID, "err", err)
		return
	}
	if err := s.registrationRepo.SetTicket(ctx, reg.ID, ticket); err != nil {
		s.logger.ErrorContext(ctx, "ticket persist failed", "registration_id", reg.ID, "err", err)
		return
	}
	reg.Ticket = ticket
}
