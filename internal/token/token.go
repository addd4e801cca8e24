package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails verification.
// Callers must not distinguish between the individual failure modes.
var ErrInvalidToken = errors.New("invalid token")

// DefaultTTL is used when no token lifetime is configured.
const DefaultTTL = 15 * time.Minute

// Service issues and verifies signed bearer tokens. It is stateless:
// token validity is a pure function of the secret, the claims and the clock.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// New creates a token service signing with the given secret.
// A non-positive ttl falls back to DefaultTTL.
func New(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue creates a signed token with the user's email as subject,
// expiring after the configured TTL.
func (s *Service) Issue(email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses the token, checks signature and expiry, and returns the
// subject email. Every failure mode (malformed, bad signature, expired,
// missing subject) collapses into ErrInvalidToken.
func (s *Service) Verify(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
