package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"eventify/internal/domain"
)

type analyticsRepository struct {
	DB *sql.DB
}

func NewAnalyticsRepository(db *sql.DB) domain.AnalyticsRepository {
	return &analyticsRepository{
		DB: db,
	}
}

func (r *analyticsRepository) CountRegistrations(ctx context.Context, eventID string) (int, int, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_checked_in)
		FROM registrations
		WHERE event_id = $1
	`
	var registrants, attendees int
	if err := r.DB.QueryRowContext(ctx, query, eventID).Scan(&registrants, &attendees); err != nil {
		return 0, 0, err
	}
	return registrants, attendees, nil
}

// dimensionColumns whitelists the user columns a distribution may group by.
// Never interpolate the dimension itself into SQL.
var dimensionColumns = map[domain.Dimension]struct {
	groupBy string
	value   string
}{
	domain.DimensionGender:         {groupBy: "u.gender", value: "u.gender"},
	domain.DimensionBranch:         {groupBy: "u.branch", value: "u.branch"},
	domain.DimensionGraduationYear: {groupBy: "u.graduation_year", value: "u.graduation_year::text"},
}

func (r *analyticsRepository) DimensionCounts(ctx context.Context, eventID string, dim domain.Dimension, pop domain.Population) ([]domain.DimensionCount, error) {
	col, ok := dimensionColumns[dim]
	if !ok {
		return nil, domain.ErrInvalidInput
	}

	// Graduation year sorts ascending by year; the other dimensions sort by
	// count descending. NULLS LAST keeps the Not Specified bucket at the end
	// of a year-ordered listing.
	orderBy := "count DESC, value"
	if dim == domain.DimensionGraduationYear {
		orderBy = col.groupBy + " ASC NULLS LAST"
	}

	checkedIn := ""
	if pop == domain.PopulationAttendees {
		checkedIn = "AND r.is_checked_in"
	}

	query := fmt.Sprintf(`
		SELECT COALESCE(%s, '%s') AS value, COUNT(*) AS count
		FROM registrations r
		JOIN users u ON u.id = r.user_id
		WHERE r.event_id = $1 %s
		GROUP BY %s
		ORDER BY %s
	`, col.value, domain.NotSpecified, checkedIn, col.groupBy, orderBy)

	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]domain.DimensionCount, 0)
	for rows.Next() {
		var dc domain.DimensionCount
		if err := rows.Scan(&dc.Value, &dc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, dc)
	}
	return counts, rows.Err()
}

func (r *analyticsRepository) HourlyCheckinCounts(ctx context.Context, eventID string) (map[time.Time]int, error) {
	query := `
		SELECT date_trunc('hour', checkin_time AT TIME ZONE 'UTC') AS slot, COUNT(*)
		FROM registrations
		WHERE event_id = $1 AND is_checked_in AND checkin_time IS NOT NULL
		GROUP BY slot
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[time.Time]int)
	for rows.Next() {
		var slot time.Time
		var count int
		if err := rows.Scan(&slot, &count); err != nil {
			return nil, err
		}
		counts[slot.UTC()] = count
	}
	return counts, rows.Err()
}
