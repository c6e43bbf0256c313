package auth

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"goonj/internal/clock"
	"goonj/internal/domain"
)

var (
	// ErrMissingRole is returned by Verify when the token does not carry the required role.
	ErrMissingRole = errors.New("token does not carry the required role")
	// ErrEmptySecret is returned by Issue and Verify when no signing secret is configured.
	ErrEmptySecret = errors.New("jwt secret is empty")
)

type jwtClaims struct {
	jwt.RegisteredClaims
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// JWT signs and verifies HS256 tokens with a shared secret.
type JWT struct {
	secret       []byte
	issuer       string
	requiredRole string
	clock        clock.Clock
}

// NewJWT returns a JWT issuer/verifier. Verify only accepts tokens carrying requiredRole
// when it is non-empty.
func NewJWT(secret, issuer, requiredRole string, clk clock.Clock) *JWT {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &JWT{secret: []byte(secret), issuer: issuer, requiredRole: requiredRole, clock: clk}
}

var (
	_ domain.TokenIssuer   = (*JWT)(nil)
	_ domain.TokenVerifier = (*JWT)(nil)
)

func (j *JWT) Issue(subject, email string, roles []string, expiry time.Duration) (string, error) {
	if len(j.secret) == 0 {
		return "", ErrEmptySecret
	}
	now := j.clock.Now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Email: email,
		Roles: roles,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify rejects every token when the secret is empty; an HMAC over an empty key is forgeable.
func (j *JWT) Verify(tokenString string) (string, error) {
	if len(j.secret) == 0 {
		return "", ErrEmptySecret
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.clock.Now),
		jwt.WithExpirationRequired(),
	}
	if j.issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.issuer))
	}
	claims := &jwtClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return j.secret, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if j.requiredRole != "" && !slices.Contains(claims.Roles, j.requiredRole) {
		return "", ErrMissingRole
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("invalid token: missing subject")
	}
	return claims.Subject, nil
}
