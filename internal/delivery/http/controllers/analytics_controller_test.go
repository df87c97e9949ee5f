package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventify/internal/delivery/http/helpers"
	"eventify/internal/domain"
)

type mockAnalyticsService struct {
	stats         *domain.BasicStats
	counts        []domain.DimensionCount
	series        *domain.CheckinDistribution
	comprehensive *domain.ComprehensiveAnalytics
	err           error

	gotDim domain.Dimension
	gotPop domain.Population
}

func (m *mockAnalyticsService) BasicStats(ctx context.Context, eventID string) (*domain.BasicStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.stats, nil
}

func (m *mockAnalyticsService) Distribution(ctx context.Context, eventID string, dim domain.Dimension, pop domain.Population) ([]domain.DimensionCount, error) {
	m.gotDim = dim
	m.gotPop = pop
	if m.err != nil {
		return nil, m.err
	}
	return m.counts, nil
}

func (m *mockAnalyticsService) CheckinSeries(ctx context.Context, eventID string) (*domain.CheckinDistribution, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.series, nil
}

func (m *mockAnalyticsService) Comprehensive(ctx context.Context, eventID string) (*domain.ComprehensiveAnalytics, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.comprehensive, nil
}

func TestAnalyticsController_Stats(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &mockAnalyticsService{
			stats: &domain.BasicStats{EventID: testEventID, TotalRegistrants: 3, TotalAttendees: 3, AttendancePercentage: 100},
		}
		ctrl := NewAnalyticsController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodGet, "/events/"+testEventID+"/stats", nil)
		req.SetPathValue("eventID", testEventID)
		w := httptest.NewRecorder()

		ctrl.Stats(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("missing event is 404", func(t *testing.T) {
		ctrl := NewAnalyticsController(testLogger(), &mockAnalyticsService{err: domain.ErrNotFound})

		req := httptest.NewRequest(http.MethodGet, "/events/"+testEventID+"/stats", nil)
		req.SetPathValue("eventID", testEventID)
		w := httptest.NewRecorder()

		ctrl.Stats(w, req)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestAnalyticsController_Distribution(t *testing.T) {
	t.Run("defaults to registrants", func(t *testing.T) {
		svc := &mockAnalyticsService{counts: []domain.DimensionCount{{Value: "CSE", Count: 3}}}
		ctrl := NewAnalyticsController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodGet, "/events/"+testEventID+"/distribution/branch", nil)
		req.SetPathValue("eventID", testEventID)
		req.SetPathValue("dimension", "branch")
		w := httptest.NewRecorder()

		ctrl.Distribution(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if svc.gotDim != domain.DimensionBranch {
			t.Fatalf("expected branch dimension, got %s", svc.gotDim)
		}
		if svc.gotPop != domain.PopulationRegistrants {
			t.Fatalf("expected registrants default, got %s", svc.gotPop)
		}
	})

	t.Run("attendees via query parameter", func(t *testing.T) {
		svc := &mockAnalyticsService{counts: []domain.DimensionCount{}}
		ctrl := NewAnalyticsController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodGet, "/events/"+testEventID+"/distribution/gender?type=attendees", nil)
		req.SetPathValue("eventID", testEventID)
		req.SetPathValue("dimension", "gender")
		w := httptest.NewRecorder()

		ctrl.Distribution(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if svc.gotPop != domain.PopulationAttendees {
			t.Fatalf("expected attendees, got %s", svc.gotPop)
		}
	})

	t.Run("unknown dimension is 400", func(t *testing.T) {
		ctrl := NewAnalyticsController(testLogger(), &mockAnalyticsService{})

		req := httptest.NewRequest(http.MethodGet, "/events/"+testEventID+"/distribution/age", nil)
		req.SetPathValue("eventID", testEventID)
		req.SetPathValue("dimension", "age")
		w := httptest.NewRecorder()

		ctrl.Distribution(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		resp := decodeEnvelope(t, w)
		if resp.Error == nil || resp.Error.Code != helpers.ErrCodeBadRequest {
			t.Fatalf("expected bad_request, got %+v", resp.Error)
		}
	})

	t.Run("unknown population is 400", func(t *testing.T) {
		ctrl := NewAnalyticsController(testLogger(), &mockAnalyticsService{})

		req := httptest.NewRequest(http.MethodGet, "/events/"+testEventID+"/distribution/gender?type=everyone", nil)
		req.SetPathValue("eventID", testEventID)
		req.SetPathValue("dimension", "gender")
		w := httptest.NewRecorder()

		ctrl.Distribution(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestAnalyticsController_CheckinDistribution(t *testing.T) {
	from := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC)
	svc := &mockAnalyticsService{
		series: &domain.CheckinDistribution{
			EventID:  testEventID,
			FromTime: from,
			ToTime:   to,
			Slots: []domain.CheckinSlot{
				{TimeSlot: from, Hour: "09:00", Count: 2},
				{TimeSlot: from.Add(time.Hour), Hour: "10:00", Count: 1},
				{TimeSlot: from.Add(2 * time.Hour), Hour: "11:00", Count: 0},
			},
			TotalCheckins: 3,
		},
	}
	ctrl := NewAnalyticsController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/events/"+testEventID+"/checkin-distribution", nil)
	req.SetPathValue("eventID", testEventID)
	w := httptest.NewRecorder()

	ctrl.CheckinDistribution(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := decodeEnvelope(t, w)
	if resp.Error != nil {
		t.Fatalf("expected no error, got %+v", resp.Error)
	}
}

func TestAnalyticsController_Comprehensive(t *testing.T) {
	t.Run("missing event is 404", func(t *testing.T) {
		ctrl := NewAnalyticsController(testLogger(), &mockAnalyticsService{err: domain.ErrNotFound})

		req := httptest.NewRequest(http.MethodGet, "/events/"+testEventID+"/analytics", nil)
		req.SetPathValue("eventID", testEventID)
		w := httptest.NewRecorder()

		ctrl.Comprehensive(w, req)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		svc := &mockAnalyticsService{
			comprehensive: &domain.ComprehensiveAnalytics{EventID: testEventID, TotalCheckins: 3},
		}
		ctrl := NewAnalyticsController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodGet, "/events/"+testEventID+"/analytics", nil)
		req.SetPathValue("eventID", testEventID)
		w := httptest.NewRecorder()

		ctrl.Comprehensive(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
