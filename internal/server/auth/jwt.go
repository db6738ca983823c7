// Package auth issues and verifies HS256 bearer tokens and hashes passwords.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/marketpulse/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the username in "sub" and the expiry in "exp".
type Claims struct {
	jwt.RegisteredClaims
}

// TokenManager signs and verifies access tokens with a process-wide secret.
type TokenManager struct {
	secretKey        []byte
	validityDuration time.Duration
	now              func() time.Time
}

// NewTokenManager returns an error for an empty secret or a non-positive TTL.
func NewTokenManager(secretKey string, validityDuration time.Duration) (*TokenManager, error) {
	if secretKey == "" {
		return nil, errors.New("auth: empty token secret")
	}
	if validityDuration <= 0 {
		return nil, errors.New("auth: token validity must be positive")
	}
	return &TokenManager{
		secretKey:        []byte(secretKey),
		validityDuration: validityDuration,
		now:              time.Now,
	}, nil
}

// WithClock replaces the time source. Used by tests.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	m.now = now
	return m
}

// Issue signs {sub: subject, exp: now + TTL}. The "exp" claim has whole
// second precision, so a fractional expiry is rounded up to the next second
// and the token never expires before the full TTL has passed.
func (m *TokenManager) Issue(subject string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(ceilSecond(m.now().Add(m.validityDuration))),
		},
	})

	return token.SignedString(m.secretKey)
}

// Verify checks signature, algorithm and expiry and returns the claims.
// Every failure is reported as common.ErrInvalidToken; a token is valid only
// while now is strictly before exp.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return m.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

func ceilSecond(t time.Time) time.Time {
	if floor := t.Truncate(time.Second); floor.Before(t) {
		return floor.Add(time.Second)
	}
	return t
}

// ValidityDuration is the TTL applied by Issue.
func (m *TokenManager) ValidityDuration() time.Duration {
	return m.validityDuration
}
