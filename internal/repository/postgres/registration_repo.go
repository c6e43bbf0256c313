package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"goonj/internal/domain"
)

const (
	pqUniqueViolation    = "23505"
	pqInvalidTextForType = "22P02"
)

const registrationColumns = `id, name, email, phone, college, course, year, events, total_amount, ` +
	`payment_method, transaction_id, payment_status, status, idempotency_key, created_at, updated_at, submitted_at`

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{DB: db}
}

// Create inserts one row. Timestamps come from the database clock.
func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	events, err := json.Marshal(reg.Events)
	if err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}
	query := `
		INSERT INTO registrations (name, email, phone, college, course, year, events, total_amount,
			payment_method, transaction_id, payment_status, status, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at, submitted_at
	`
	err = r.DB.QueryRowContext(ctx, query,
		reg.Name, reg.Email, reg.Phone, reg.College, reg.Course, reg.Year, events, reg.TotalAmount,
		string(reg.PaymentMethod), nullString(reg.TransactionID), string(reg.PaymentStatus), string(reg.Status),
		nullString(reg.IdempotencyKey),
	).Scan(&reg.ID, &reg.CreatedAt, &reg.UpdatedAt, &reg.SubmittedAt)
	if err != nil {
		if isPQCode(err, pqUniqueViolation) {
			return domain.ErrDuplicateSubmission
		}
		return err
	}
	return nil
}

func (r *registrationRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE idempotency_key = $1`
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) ListAll(ctx context.Context) ([]*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []*domain.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	return regs, nil
}

func (r *registrationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		if isPQCode(err, pqInvalidTextForType) {
			return domain.ErrNotFound
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row rowScanner) (*domain.Registration, error) {
	var (
		reg                           domain.Registration
		events                        []byte
		method, paymentStatus, status string
		txID, key                     sql.NullString
	)
	err := row.Scan(&reg.ID, &reg.Name, &reg.Email, &reg.Phone, &reg.College, &reg.Course, &reg.Year,
		&events, &reg.TotalAmount, &method, &txID, &paymentStatus, &status, &key,
		&reg.CreatedAt, &reg.UpdatedAt, &reg.SubmittedAt)
	if err != nil {
		return nil, err
	}
	if len(events) > 0 {
		if err := json.Unmarshal(events, &reg.Events); err != nil {
			return nil, fmt.Errorf("registration %s: failed to decode events: %w", reg.ID, err)
		}
	}
	if reg.Events == nil {
		reg.Events = []domain.RegisteredEvent{}
	}
	reg.PaymentMethod = domain.PaymentMethod(method)
	reg.PaymentStatus = domain.PaymentStatus(paymentStatus)
	reg.Status = domain.RegistrationStatus(status)
	reg.TransactionID = txID.String
	reg.IdempotencyKey = key.String
	return &reg, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isPQCode(err error, code pq.ErrorCode) bool {
	var perr *pq.Error
	return errors.As(err, &perr) && perr.Code == code
}
