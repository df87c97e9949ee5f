package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"eventify/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		event      *domain.Event
		mock       func(mock sqlmock.Sqlmock)
		wantID     string
		wantErr    bool
		isConflict bool
	}{
		{
			name: "success",
			event: &domain.Event{
				Title:    "Tech Talk",
				VenueID:  "venue-1",
				FromTime: from,
				ToTime:   to,
				OwnerID:  "user-1",
				Club:     "GDSC",
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-uuid-1"))
			},
			wantID:  "ev-uuid-1",
			wantErr: false,
		},
		{
			name: "venue conflict from exclusion constraint",
			event: &domain.Event{
				Title:    "Overlapping Talk",
				VenueID:  "venue-1",
				FromTime: from,
				ToTime:   to,
				OwnerID:  "user-1",
				Club:     "GDSC",
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(&pq.Error{Code: "23P01"})
			},
			wantErr:    true,
			isConflict: true,
		},
		{
			name: "db error",
			event: &domain.Event{
				Title:    "Talk",
				VenueID:  "venue-1",
				FromTime: from,
				ToTime:   to,
				OwnerID:  "user-1",
				Club:     "GDSC",
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Create(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				if tt.isConflict {
					require.True(t, errors.Is(err, domain.ErrVenueConflict))
				}
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC)
	created := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	cols := []string{"id", "title", "description", "banner_url", "venue_id", "from_time", "to_time", "owner_id", "club", "created_at", "updated_at"}

	tests := []struct {
		name       string
		id         string
		mock       func(mock sqlmock.Sqlmock)
		want       *domain.Event
		wantErr    bool
		isNotFound bool
	}{
		{
			name: "success",
			id:   "ev-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, description, banner_url, venue_id, from_time, to_time, owner_id, club, created_at, updated_at`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows(cols).
						AddRow("ev-1", "Tech Talk", "Intro to Go", nil, "venue-1", from, to, "user-1", "GDSC", created, created))
			},
			want: &domain.Event{
				ID:          "ev-1",
				Title:       "Tech Talk",
				Description: strPtr("Intro to Go"),
				VenueID:     "venue-1",
				FromTime:    from,
				ToTime:      to,
				OwnerID:     "user-1",
				Club:        "GDSC",
				CreatedAt:   created,
				UpdatedAt:   created,
			},
			wantErr: false,
		},
		{
			name: "not found",
			id:   "ev-missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, description, banner_url`).
					WithArgs("ev-missing").
					WillReturnError(sql.ErrNoRows)
			},
			want:       nil,
			wantErr:    true,
			isNotFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, got)
				if tt.isNotFound {
					require.True(t, errors.Is(err, domain.ErrNotFound))
				}
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_FindConflicting(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC)
	created := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	cols := []string{"id", "title", "description", "banner_url", "venue_id", "from_time", "to_time", "owner_id", "club", "created_at", "updated_at"}

	t.Run("returns overlapping event", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE venue_id = \$1 AND from_time < \$3 AND \$2 < to_time`).
			WithArgs("venue-1", from, to).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("ev-1", "Existing", nil, nil, "venue-1", from, to, "user-1", "GDSC", created, created))

		repo := NewEventRepository(db)
		got, err := repo.FindConflicting(ctx, "venue-1", from, to)
		require.NoError(t, err)
		require.Equal(t, "ev-1", got.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no conflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE venue_id = \$1 AND from_time < \$3 AND \$2 < to_time`).
			WithArgs("venue-1", from, to).
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		got, err := repo.FindConflicting(ctx, "venue-1", from, to)
		require.True(t, errors.Is(err, domain.ErrNotFound))
		require.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC)
	created := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	cols := []string{"id", "title", "description", "banner_url", "venue_id", "from_time", "to_time", "owner_id", "club", "created_at", "updated_at"}

	t.Run("updates title only", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE events SET updated_at = NOW\(\), title = \$1`).
			WithArgs("New Title", "ev-1").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("ev-1", "New Title", nil, nil, "venue-1", from, to, "user-1", "GDSC", created, created))

		repo := NewEventRepository(db)
		got, err := repo.Update(ctx, "ev-1", domain.EventUpdate{Title: strPtr("New Title")})
		require.NoError(t, err)
		require.Equal(t, "New Title", got.Title)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("venue conflict on window change", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE events SET updated_at = NOW\(\), from_time = \$1, to_time = \$2`).
			WithArgs(from, to, "ev-1").
			WillReturnError(&pq.Error{Code: "23P01"})

		repo := NewEventRepository(db)
		got, err := repo.Update(ctx, "ev-1", domain.EventUpdate{FromTime: &from, ToTime: &to})
		require.True(t, errors.Is(err, domain.ErrVenueConflict))
		require.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE events SET updated_at = NOW\(\), title = \$1`).
			WithArgs("X", "ev-missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		got, err := repo.Update(ctx, "ev-missing", domain.EventUpdate{Title: strPtr("X")})
		require.True(t, errors.Is(err, domain.ErrNotFound))
		require.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		mock       func(mock sqlmock.Sqlmock)
		wantErr    bool
		isNotFound bool
	}{
		{
			name: "success",
			id:   "ev-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
					WithArgs("ev-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			id:   "ev-missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
					WithArgs("ev-missing").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr:    true,
			isNotFound: true,
		},
		{
			name: "db error",
			id:   "ev-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
					WithArgs("ev-1").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Delete(ctx, tt.id)
			if tt.wantErr {
				require.Error(t, err)
				if tt.isNotFound {
					require.True(t, errors.Is(err, domain.ErrNotFound))
				}
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
