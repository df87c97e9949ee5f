package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventify/internal/delivery/http/helpers"
	"eventify/internal/domain"
)

type AnalyticsController struct {
	Logger  *slog.Logger
	Service domain.AnalyticsService
}

func NewAnalyticsController(logger *slog.Logger, svc domain.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{
		Logger:  logger,
		Service: svc,
	}
}

// Stats godoc
// @Summary Basic attendance stats for an event
// @Description Returns registrant and attendee totals with the rounded attendance percentage.
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is BasicStats"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/stats [get]
func (c *AnalyticsController) Stats(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	stats, err := c.Service.BasicStats(r.Context(), eventID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}

// Distribution godoc
// @Summary Demographic distribution for an event
// @Description Groups the event's registrations by gender, branch, or graduation_year. The type query parameter selects registrants (default) or attendees. Users without a value fall into the "Not Specified" bucket.
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param dimension path string true "gender | branch | graduation_year"
// @Param type query string false "registrants (default) | attendees"
// @Success 200 {object} helpers.APIResponse "data is an array of DimensionCount"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/distribution/{dimension} [get]
func (c *AnalyticsController) Distribution(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	dim, ok := parseDimension(w, r)
	if !ok {
		return
	}
	pop, ok := parsePopulation(w, r)
	if !ok {
		return
	}

	counts, err := c.Service.Distribution(r.Context(), eventID, dim, pop)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, counts)
}

// CheckinDistribution godoc
// @Summary Hourly check-in time series for an event
// @Description Returns one slot per hour from the hour containing the event start through the event end, with zero counts for quiet hours.
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is CheckinDistribution"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/checkin-distribution [get]
func (c *AnalyticsController) CheckinDistribution(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	dist, err := c.Service.CheckinSeries(r.Context(), eventID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, dist)
}

// Comprehensive godoc
// @Summary Full analytics payload for an event
// @Description Combines basic stats, all demographic distributions for both populations, and the hourly check-in series in one response.
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is ComprehensiveAnalytics"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/analytics [get]
func (c *AnalyticsController) Comprehensive(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	analytics, err := c.Service.Comprehensive(r.Context(), eventID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, analytics)
}

func (c *AnalyticsController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

func parseDimension(w http.ResponseWriter, r *http.Request) (domain.Dimension, bool) {
	switch d := domain.Dimension(r.PathValue("dimension")); d {
	case domain.DimensionGender, domain.DimensionBranch, domain.DimensionGraduationYear:
		return d, true
	default:
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest,
			"dimension must be one of gender, branch, graduation_year")
		return "", false
	}
}

func parsePopulation(w http.ResponseWriter, r *http.Request) (domain.Population, bool) {
	switch p := r.URL.Query().Get("type"); p {
	case "", string(domain.PopulationRegistrants):
		return domain.PopulationRegistrants, true
	case string(domain.PopulationAttendees):
		return domain.PopulationAttendees, true
	default:
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest,
			"type must be registrants or attendees")
		return "", false
	}
}
