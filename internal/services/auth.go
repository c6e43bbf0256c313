package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"goonj/internal/clock"
	"goonj/internal/domain"
)

const minPasswordLen = 8

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authService struct {
	adminRepo   domain.AdminRepository
	hasher      domain.PasswordHasher
	tokenIssuer domain.TokenIssuer
	tokenExpiry time.Duration
	clock       clock.Clock
}

// NewAuthService creates an AuthService for dashboard operators.
func NewAuthService(adminRepo domain.AdminRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, tokenExpiry time.Duration, clk clock.Clock) domain.AuthService {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &authService{
		adminRepo:   adminRepo,
		hasher:      hasher,
		tokenIssuer: tokenIssuer,
		tokenExpiry: tokenExpiry,
		clock:       clk,
	}
}

func (s *authService) CreateAdmin(ctx context.Context, email, password, name string) (*domain.Admin, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}
	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	now := s.clock.Now()
	admin := domain.NewAdmin(email, strings.TrimSpace(name), hash, salt, now, now)
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to get admin: %w", err)
	}
	if err := s.hasher.Compare(admin.PasswordHash, admin.Salt, password); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	token, err := s.tokenIssuer.Issue(admin.ID, admin.Email, []string{domain.RoleAdmin}, s.tokenExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}
