package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goonj/internal/clock"
	"goonj/internal/domain"
)

const testSecret = "test-secret"

var issuedAt = time.Date(2025, 2, 14, 10, 0, 0, 0, time.UTC)

func TestJWT_Issue(t *testing.T) {
	j := NewJWT(testSecret, "goonj", domain.RoleAdmin, clock.NewFixed(issuedAt))

	token, err := j.Issue("admin-123", "ops@example.com", []string{domain.RoleAdmin}, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	}, jwt.WithTimeFunc(func() time.Time { return issuedAt }))
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "admin-123", claims.Subject)
	assert.Equal(t, "goonj", claims.Issuer)
	assert.Equal(t, "ops@example.com", claims.Email)
	assert.Equal(t, []string{domain.RoleAdmin}, claims.Roles)
	assert.Equal(t, issuedAt.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestJWT_Verify(t *testing.T) {
	issuer := NewJWT(testSecret, "goonj", domain.RoleAdmin, clock.NewFixed(issuedAt))
	adminToken, err := issuer.Issue("admin-123", "ops@example.com", []string{domain.RoleAdmin}, time.Hour)
	require.NoError(t, err)
	noRoleToken, err := issuer.Issue("user-9", "u@example.com", []string{"volunteer"}, time.Hour)
	require.NoError(t, err)
	otherIssuer, err := NewJWT(testSecret, "someone-else", "", clock.NewFixed(issuedAt)).Issue("admin-123", "ops@example.com", []string{domain.RoleAdmin}, time.Hour)
	require.NoError(t, err)
	otherSecret, err := NewJWT("other-secret", "goonj", "", clock.NewFixed(issuedAt)).Issue("admin-123", "ops@example.com", []string{domain.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		now     time.Time
		want    string
		wantErr bool
		errIs   error
	}{
		{name: "valid admin token", token: adminToken, now: issuedAt.Add(time.Minute), want: "admin-123"},
		{name: "expired", token: adminToken, now: issuedAt.Add(2 * time.Hour), wantErr: true},
		{name: "missing role", token: noRoleToken, now: issuedAt, wantErr: true, errIs: ErrMissingRole},
		{name: "wrong issuer", token: otherIssuer, now: issuedAt, wantErr: true},
		{name: "wrong secret", token: otherSecret, now: issuedAt, wantErr: true},
		{name: "garbage", token: "not-a-jwt", now: issuedAt, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := NewJWT(testSecret, "goonj", domain.RoleAdmin, clock.NewFixed(tt.now))
			got, err := verifier.Verify(tt.token)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJWT_Verify_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "goonj",
			Subject:   "admin-123",
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
		Roles: []string{domain.RoleAdmin},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWT(testSecret, "goonj", domain.RoleAdmin, clock.NewFixed(issuedAt)).Verify(token)
	assert.Error(t, err)
}

func TestJWT_EmptySecret(t *testing.T) {
	j := NewJWT("", "goonj", domain.RoleAdmin, clock.NewFixed(issuedAt))

	_, err := j.Issue("admin-123", "ops@example.com", []string{domain.RoleAdmin}, time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)

	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "goonj",
			Subject:   "admin-123",
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
		Roles: []string{domain.RoleAdmin},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte{})
	require.NoError(t, err)

	_, err = j.Verify(forged)
	assert.ErrorIs(t, err, ErrEmptySecret)
}
