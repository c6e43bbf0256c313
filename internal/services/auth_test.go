package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goonj/internal/domain"
)

func TestAuthService_CreateAdmin(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid", email: " Admin@Goonj.in ", password: "supersecret"},
		{name: "bad email", email: "admin", password: "supersecret", wantErr: domain.ErrInvalidInput},
		{name: "short password", email: "admin@goonj.in", password: "short", wantErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeAdminRepo()
			svc := NewAuthService(repo, &fakePasswordHasher{salt: "s"}, &fakeTokenIssuer{}, time.Hour, nil)

			admin, err := svc.CreateAdmin(context.Background(), tt.email, tt.password, "Ops")

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.byEmail)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "admin@goonj.in", admin.Email)
			assert.Equal(t, "hash-ssupersecret", admin.PasswordHash)
			assert.NotEmpty(t, admin.ID)
		})
	}
}

func TestAuthService_CreateAdminDuplicate(t *testing.T) {
	repo := newFakeAdminRepo()
	svc := NewAuthService(repo, &fakePasswordHasher{salt: "s"}, &fakeTokenIssuer{}, time.Hour, nil)
	_, err := svc.CreateAdmin(context.Background(), "admin@goonj.in", "supersecret", "")
	require.NoError(t, err)

	_, err = svc.CreateAdmin(context.Background(), "admin@goonj.in", "supersecret", "")

	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestAuthService_Login(t *testing.T) {
	repo := newFakeAdminRepo()
	issuer := &fakeTokenIssuer{}
	svc := NewAuthService(repo, &fakePasswordHasher{salt: "s"}, issuer, time.Hour, nil)
	admin, err := svc.CreateAdmin(context.Background(), "admin@goonj.in", "supersecret", "Ops")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		token, err := svc.Login(context.Background(), "ADMIN@goonj.in", "supersecret")
		require.NoError(t, err)
		assert.Equal(t, "token-"+admin.ID, token)
		assert.Equal(t, []string{domain.RoleAdmin}, issuer.roles)
	})
	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "admin@goonj.in", "nope")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "who@goonj.in", "supersecret")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
	t.Run("repository error", func(t *testing.T) {
		repo.getErr = errors.New("db down")
		defer func() { repo.getErr = nil }()
		_, err := svc.Login(context.Background(), "admin@goonj.in", "supersecret")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
