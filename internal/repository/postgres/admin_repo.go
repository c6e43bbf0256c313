package postgres

import (
	"context"
	"database/sql"
	"errors"

	"goonj/internal/domain"
)

type adminRepository struct {
	DB *sql.DB
}

func NewAdminRepository(db *sql.DB) domain.AdminRepository {
	return &adminRepository{DB: db}
}

func (r *adminRepository) Create(ctx context.Context, a *domain.Admin) error {
	query := `
		INSERT INTO admins (email, password_hash, salt, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, a.Email, a.PasswordHash, a.Salt, a.Name, a.CreatedAt, a.UpdatedAt).Scan(&a.ID)
	if err != nil {
		if isPQCode(err, pqUniqueViolation) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	query := `
		SELECT id, email, password_hash, salt, name, created_at, updated_at
		FROM admins
		WHERE email = $1
	`
	a := &domain.Admin{}
	err := r.DB.QueryRowContext(ctx, query, email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Salt, &a.Name, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}
