package domain

import (
	"context"
	"time"
)

// Dimension is a demographic grouping key for distributions.
type Dimension string

const (
	DimensionGender         Dimension = "gender"
	DimensionBranch         Dimension = "branch"
	DimensionGraduationYear Dimension = "graduation_year"
)

// Population selects which registrations a distribution covers.
type Population string

const (
	PopulationRegistrants Population = "registrants"
	PopulationAttendees   Population = "attendees"
)

// NotSpecified is the sentinel bucket for users with a missing dimension value.
const NotSpecified = "Not Specified"

// BasicStats holds headline numbers for one event. AttendancePercentage is
// rounded and defined as 0 when there are no registrants.
// swagger:model BasicStats
type BasicStats struct {
	EventID              string    `json:"event_id"`
	EventTitle           string    `json:"event_title"`
	TotalRegistrants     int       `json:"total_registrants"`
	TotalAttendees       int       `json:"total_attendees"`
	AttendancePercentage int       `json:"attendance_percentage"`
	FromTime             time.Time `json:"from_time"`
	ToTime               time.Time `json:"to_time"`
}

// DimensionCount is one bucket of a categorical distribution.
// swagger:model DimensionCount
type DimensionCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CheckinSlot is one hourly bucket of the check-in time series. Slots with
// no check-ins are present with Count 0.
// swagger:model CheckinSlot
type CheckinSlot struct {
	TimeSlot time.Time `json:"time_slot"`
	Hour     string    `json:"hour"`
	Count    int       `json:"count"`
}

// CheckinDistribution is the gap-free hourly check-in series for an event.
// swagger:model CheckinDistribution
type CheckinDistribution struct {
	EventID       string        `json:"event_id"`
	FromTime      time.Time     `json:"from_time"`
	ToTime        time.Time     `json:"to_time"`
	Slots         []CheckinSlot `json:"checkin_distribution"`
	TotalCheckins int           `json:"total_checkins"`
}

// PopulationDistributions holds one distribution per population.
type PopulationDistributions struct {
	Registrants []DimensionCount `json:"registrants"`
	Attendees   []DimensionCount `json:"attendees"`
}

// ComprehensiveAnalytics is the full analytics payload for one event,
// composed from the same building blocks as the individual endpoints.
// swagger:model ComprehensiveAnalytics
type ComprehensiveAnalytics struct {
	EventID       string                            `json:"event_id"`
	BasicStats    BasicStats                        `json:"basic_stats"`
	Distributions map[Dimension]PopulationDistributions `json:"distributions"`
	CheckinSeries []CheckinSlot                     `json:"checkin_time_distribution"`
	TotalCheckins int                               `json:"total_checkins"`
}

// AnalyticsRepository defines the raw read-side queries analytics is built
// from. It never mutates state.
type AnalyticsRepository interface {
	// CountRegistrations returns total registrations and checked-in count.
	CountRegistrations(ctx context.Context, eventID string) (registrants, attendees int, err error)
	// DimensionCounts groups the event's registrations by the joined user's
	// dimension value. Missing values surface as NotSpecified. Gender and
	// branch are ordered by count descending, graduation year ascending.
	DimensionCounts(ctx context.Context, eventID string, dim Dimension, pop Population) ([]DimensionCount, error)
	// HourlyCheckinCounts returns raw per-hour check-in counts keyed by the
	// UTC hour start. Hours with no check-ins are absent.
	HourlyCheckinCounts(ctx context.Context, eventID string) (map[time.Time]int, error)
}

// AnalyticsService computes aggregate attendance analytics for one event.
// Every operation fails with ErrNotFound before aggregating when the event
// does not exist.
type AnalyticsService interface {
	BasicStats(ctx context.Context, eventID string) (*BasicStats, error)
	Distribution(ctx context.Context, eventID string, dim Dimension, pop Population) ([]DimensionCount, error)
	CheckinSeries(ctx context.Context, eventID string) (*CheckinDistribution, error)
	Comprehensive(ctx context.Context, eventID string) (*ComprehensiveAnalytics, error)
}
