package domain

import (
	"context"
	"time"
)

// RoleAdmin is the only role issued by this service.
const RoleAdmin = "admin"

// Admin is a dashboard operator account.
// swagger:model Admin
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewAdmin returns a new Admin with the given fields. ID is typically set by the repository on create.
func NewAdmin(email, name, passwordHash, salt string, createdAt, updatedAt time.Time) *Admin {
	return &Admin{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Salt:         salt,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated admin.
type TokenIssuer interface {
	Issue(subject, email string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// AdminRepository defines the interface for admin account storage.
type AdminRepository interface {
	Create(ctx context.Context, admin *Admin) error
	GetByEmail(ctx context.Context, email string) (*Admin, error)
}

// AuthService authenticates dashboard operators.
type AuthService interface {
	CreateAdmin(ctx context.Context, email, password, name string) (*Admin, error)
	Login(ctx context.Context, email, password string) (token string, err error)
}
