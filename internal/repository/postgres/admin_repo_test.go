package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goonj/internal/domain"
)

func TestAdminRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO admins`).
					WithArgs("ops@goonj.in", "hash", "salt", "Ops", now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("admin-uuid-1"))
			},
		},
		{
			name: "unique violation returns ErrDuplicateEmail",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO admins`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			a := domain.NewAdmin("ops@goonj.in", "Ops", "hash", "salt", now, now)
			err = NewAdminRepository(db).Create(ctx, a)
			if tt.wantErr {
				require.ErrorIs(t, err, tt.errIs)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "admin-uuid-1", a.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAdminRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectQuery(`SELECT id, email, password_hash, salt, name, created_at, updated_at\s+FROM admins`).
			WithArgs("ops@goonj.in").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "salt", "name", "created_at", "updated_at"}).
				AddRow("admin-1", "ops@goonj.in", "hash", "salt", "Ops", now, now))

		a, err := NewAdminRepository(db).GetByEmail(ctx, "ops@goonj.in")

		require.NoError(t, err)
		assert.Equal(t, "admin-1", a.ID)
		assert.Equal(t, "hash", a.PasswordHash)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectQuery(`FROM admins`).WillReturnError(sql.ErrNoRows)

		_, err = NewAdminRepository(db).GetByEmail(ctx, "nobody@goonj.in")

		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
