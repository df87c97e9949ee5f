package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"eventify/internal/domain"
)

type analyticsService struct {
	eventRepo      domain.EventRepository
	analyticsRepo  domain.AnalyticsRepository
	contextTimeout time.Duration
}

// NewAnalyticsService creates the read-only analytics aggregator.
func NewAnalyticsService(eventRepo domain.EventRepository, analyticsRepo domain.AnalyticsRepository, timeout time.Duration) domain.AnalyticsService {
	return &analyticsService{
		eventRepo:      eventRepo,
		analyticsRepo:  analyticsRepo,
		contextTimeout: timeout,
	}
}

func (s *analyticsService) getEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func attendancePercentage(registrants, attendees int) int {
	if registrants == 0 {
		return 0
	}
	return int(math.Round(float64(attendees) / float64(registrants) * 100))
}

func (s *analyticsService) BasicStats(ctx context.Context, eventID string) (*domain.BasicStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return s.basicStats(ctx, event)
}

func (s *analyticsService) basicStats(ctx context.Context, event *domain.Event) (*domain.BasicStats, error) {
	registrants, attendees, err := s.analyticsRepo.CountRegistrations(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	return &domain.BasicStats{
		EventID:              event.ID,
		EventTitle:           event.Title,
		TotalRegistrants:     registrants,
		TotalAttendees:       attendees,
		AttendancePercentage: attendancePercentage(registrants, attendees),
		FromTime:             event.FromTime,
		ToTime:               event.ToTime,
	}, nil
}

func (s *analyticsService) Distribution(ctx context.Context, eventID string, dim domain.Dimension, pop domain.Population) ([]domain.DimensionCount, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.getEvent(ctx, eventID); err != nil {
		return nil, err
	}
	counts, err := s.analyticsRepo.DimensionCounts(ctx, eventID, dim, pop)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return nil, domain.ErrInvalidInput
		}
		return nil, fmt.Errorf("dimension counts: %w", err)
	}
	return counts, nil
}

// buildCheckinSlots walks every hour of the closed range
// [floor_to_hour(from), to] and left-joins the sparse raw counts onto it, so
// the series never has gaps regardless of data sparsity. A sub-hour event
// still produces at least one slot.
func buildCheckinSlots(from, to time.Time, raw map[time.Time]int) []domain.CheckinSlot {
	slots := make([]domain.CheckinSlot, 0)
	for t := from.UTC().Truncate(time.Hour); !t.After(to.UTC()); t = t.Add(time.Hour) {
		slots = append(slots, domain.CheckinSlot{
			TimeSlot: t,
			Hour:     fmt.Sprintf("%02d:00", t.Hour()),
			Count:    raw[t],
		})
	}
	return slots
}

func (s *analyticsService) CheckinSeries(ctx context.Context, eventID string) (*domain.CheckinDistribution, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	slots, total, err := s.checkinSeries(ctx, event)
	if err != nil {
		return nil, err
	}
	return &domain.CheckinDistribution{
		EventID:       event.ID,
		FromTime:      event.FromTime,
		ToTime:        event.ToTime,
		Slots:         slots,
		TotalCheckins: total,
	}, nil
}

func (s *analyticsService) checkinSeries(ctx context.Context, event *domain.Event) ([]domain.CheckinSlot, int, error) {
	raw, err := s.analyticsRepo.HourlyCheckinCounts(ctx, event.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("hourly checkin counts: %w", err)
	}
	slots := buildCheckinSlots(event.FromTime, event.ToTime, raw)
	total := 0
	for _, slot := range slots {
		total += slot.Count
	}
	return slots, total, nil
}

// Comprehensive composes the full payload from the same building blocks as
// the individual operations; there is no separate aggregation logic.
func (s *analyticsService) Comprehensive(ctx context.Context, eventID string) (*domain.ComprehensiveAnalytics, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	stats, err := s.basicStats(ctx, event)
	if err != nil {
		return nil, err
	}

	dims := []domain.Dimension{domain.DimensionGender, domain.DimensionBranch, domain.DimensionGraduationYear}
	distributions := make(map[domain.Dimension]domain.PopulationDistributions, len(dims))
	for _, dim := range dims {
		registrants, err := s.analyticsRepo.DimensionCounts(ctx, eventID, dim, domain.PopulationRegistrants)
		if err != nil {
			return nil, fmt.Errorf("dimension counts (%s): %w", dim, err)
		}
		attendees, err := s.analyticsRepo.DimensionCounts(ctx, eventID, dim, domain.PopulationAttendees)
		if err != nil {
			return nil, fmt.Errorf("dimension counts (%s): %w", dim, err)
		}
		distributions[dim] = domain.PopulationDistributions{
			Registrants: registrants,
			Attendees:   attendees,
		}
	}

	slots, total, err := s.checkinSeries(ctx, event)
	if err != nil {
		return nil, err
	}

	return &domain.ComprehensiveAnalytics{
		EventID:       event.ID,
		BasicStats:    *stats,
		Distributions: distributions,
		CheckinSeries: slots,
		TotalCheckins: total,
	}, nil
}
