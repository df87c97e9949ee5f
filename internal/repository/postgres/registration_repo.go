package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"eventify/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

const registrationColumns = `id, user_id, event_id, registered_at, is_checked_in, checkin_time, ticket`

func scanRegistration(row interface{ Scan(...any) error }) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var checkinNull sql.NullTime
	var ticketNull sql.NullString
	err := row.Scan(
		&reg.ID, &reg.UserID, &reg.EventID, &reg.RegisteredAt,
		&reg.IsCheckedIn, &checkinNull, &ticketNull,
	)
	if err != nil {
		return nil, err
	}
	if checkinNull.Valid {
		reg.CheckinTime = &checkinNull.Time
	}
	if ticketNull.Valid {
		reg.Ticket = ticketNull.String
	}
	return reg, nil
}

// Create is an insert-if-absent: the unique (user_id, event_id) constraint
// rejects duplicates atomically, so two concurrent registrations yield one
// row and one ErrAlreadyRegistered.
func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (user_id, event_id, registered_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, reg.UserID, reg.EventID, reg.RegisteredAt).Scan(&reg.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

func (r *registrationRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE event_id = $1 AND user_id = $2
	`
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx, query, eventID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE event_id = $1
		ORDER BY registered_at
	`
	return r.queryRegistrations(ctx, query, eventID)
}

func (r *registrationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE user_id = $1
		ORDER BY registered_at DESC
	`
	return r.queryRegistrations(ctx, query, userID)
}

func (r *registrationRepository) queryRegistrations(ctx context.Context, query string, args ...any) ([]*domain.Registration, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (r *registrationRepository) SetTicket(ctx context.Context, id, ticket string) error {
	query := `UPDATE registrations SET ticket = $2 WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id, ticket)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CheckIn performs the registered -> checked-in transition as a single
// conditional update. The WHERE NOT is_checked_in guard makes a concurrent
// double check-in impossible: exactly one update wins, the other sees zero
// rows and is disambiguated by a follow-up read.
func (r *registrationRepository) CheckIn(ctx context.Context, eventID, userID string, at time.Time) (*domain.Registration, error) {
	query := `
		UPDATE registrations
		SET is_checked_in = TRUE, checkin_time = $3
		WHERE event_id = $1 AND user_id = $2 AND NOT is_checked_in
		RETURNING ` + registrationColumns + `
	`
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx, query, eventID, userID, at))
	if err == nil {
		return reg, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	// Zero rows: either no registration or already checked in.
	if _, getErr := r.GetByEventAndUser(ctx, eventID, userID); getErr != nil {
		return nil, getErr
	}
	return nil, domain.ErrAlreadyCheckedIn
}
