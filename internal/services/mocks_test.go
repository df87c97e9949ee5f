package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"eventify/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockEventRepository struct {
	events      map[string]*domain.Event
	createErr   error
	conflicting *domain.Event
	updateErr   error
	err         error
}

func (m *mockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	if m.createErr != nil {
		return m.createErr
	}
	event.ID = "ev-created"
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*domain.Event, 0, len(m.events))
	for _, ev := range m.events {
		out = append(out, ev)
	}
	return out, nil
}

func (m *mockEventRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*domain.Event, 0)
	for _, ev := range m.events {
		if ev.OwnerID == ownerID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *mockEventRepository) Update(ctx context.Context, eventID string, upd domain.EventUpdate) (*domain.Event, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	ev, ok := m.events[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Title != nil {
		ev.Title = *upd.Title
	}
	if upd.FromTime != nil {
		ev.FromTime = *upd.FromTime
	}
	if upd.ToTime != nil {
		ev.ToTime = *upd.ToTime
	}
	return ev, nil
}

func (m *mockEventRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *mockEventRepository) FindConflicting(ctx context.Context, venueID string, from, to time.Time) (*domain.Event, error) {
	if m.conflicting == nil {
		return nil, domain.ErrNotFound
	}
	return m.conflicting, nil
}

type mockVenueRepository struct {
	venues    map[string]*domain.Venue
	createErr error
}

func (m *mockVenueRepository) Create(ctx context.Context, venue *domain.Venue) error {
	if m.createErr != nil {
		return m.createErr
	}
	venue.ID = "venue-created"
	return nil
}

func (m *mockVenueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	v, ok := m.venues[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (m *mockVenueRepository) List(ctx context.Context) ([]*domain.Venue, error) {
	out := make([]*domain.Venue, 0, len(m.venues))
	for _, v := range m.venues {
		out = append(out, v)
	}
	return out, nil
}

type mockRegistrationRepository struct {
	regs         map[string]*domain.Registration
	regsByUser   map[string][]*domain.Registration
	createErr    error
	setTicketErr error
	checkInErr   error
	nextID       string
}

func regKey(eventID, userID string) string { return eventID + ":" + userID }

func (m *mockRegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.regs[regKey(reg.EventID, reg.UserID)]; exists {
		return domain.ErrAlreadyRegistered
	}
	reg.ID = m.nextID
	if reg.ID == "" {
		reg.ID = "reg-created"
	}
	if m.regs == nil {
		m.regs = make(map[string]*domain.Registration)
	}
	m.regs[regKey(reg.EventID, reg.UserID)] = reg
	return nil
}

func (m *mockRegistrationRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	reg, ok := m.regs[regKey(eventID, userID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return reg, nil
}

func (m *mockRegistrationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	out := make([]*domain.Registration, 0)
	for _, reg := range m.regs {
		if reg.EventID == eventID {
			out = append(out, reg)
		}
	}
	return out, nil
}

func (m *mockRegistrationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Registration, error) {
	return m.regsByUser[userID], nil
}

func (m *mockRegistrationRepository) SetTicket(ctx context.Context, id, ticket string) error {
	if m.setTicketErr != nil {
		return m.setTicketErr
	}
	for _, reg := range m.regs {
		if reg.ID == id {
			reg.Ticket = ticket
			return nil
		}
	}
	for _, regs := range m.regsByUser {
		for _, reg := range regs {
			if reg.ID == id {
				reg.Ticket = ticket
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (m *mockRegistrationRepository) CheckIn(ctx context.Context, eventID, userID string, at time.Time) (*domain.Registration, error) {
	if m.checkInErr != nil {
		return nil, m.checkInErr
	}
	reg, ok := m.regs[regKey(eventID, userID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if reg.IsCheckedIn {
		return nil, domain.ErrAlreadyCheckedIn
	}
	reg.IsCheckedIn = true
	reg.CheckinTime = &at
	return reg, nil
}

type mockUserRepository struct {
	users        map[string]*domain.User
	usersByEmail map[string]*domain.User
	createErr    error
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = "user-created"
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := m.usersByEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

type mockAnalyticsRepository struct {
	registrants int
	attendees   int
	countErr    error
	dimCounts   map[domain.Dimension]map[domain.Population][]domain.DimensionCount
	dimErr      error
	hourly      map[time.Time]int
	hourlyErr   error
}

func (m *mockAnalyticsRepository) CountRegistrations(ctx context.Context, eventID string) (int, int, error) {
	if m.countErr != nil {
		return 0, 0, m.countErr
	}
	return m.registrants, m.attendees, nil
}

func (m *mockAnalyticsRepository) DimensionCounts(ctx context.Context, eventID string, dim domain.Dimension, pop domain.Population) ([]domain.DimensionCount, error) {
	if m.dimErr != nil {
		return nil, m.dimErr
	}
	return m.dimCounts[dim][pop], nil
}

func (m *mockAnalyticsRepository) HourlyCheckinCounts(ctx context.Context, eventID string) (map[time.Time]int, error) {
	if m.hourlyErr != nil {
		return nil, m.hourlyErr
	}
	return m.hourly, nil
}

type mockTicketEncoder struct {
	ticket string
	err    error
	calls  int
}

func (m *mockTicketEncoder) Encode(url string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.ticket, nil
}

type mockEmailService struct {
	ticketsSent []*domain.TicketEmailData
	welcomeSent []*domain.WelcomeEmailData
	err         error
}

func (m *mockEmailService) SendTicket(ctx context.Context, data *domain.TicketEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.ticketsSent = append(m.ticketsSent, data)
	return nil
}

func (m *mockEmailService) SendWelcome(ctx context.Context, data *domain.WelcomeEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.welcomeSent = append(m.welcomeSent, data)
	return nil
}
