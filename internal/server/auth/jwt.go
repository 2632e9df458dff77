// Package auth holds the credential primitives of the server: password
// hashing and signed access tokens.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/soulbloom/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService mints and verifies HS256 access tokens carrying {sub, iat, exp}.
// It keeps no state besides the secret and the TTL, both fixed at creation.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl}
}

// Issue returns a token for subject and the exact moment it expires.
//
// NumericDate claims carry whole seconds, so the issue instant is now rounded
// up to the next second: the token is accepted during all of [now, now+TTL)
// and expires at the returned time, which is what the claims encode.
func (s *TokenService) Issue(subject string, now time.Time) (string, time.Time, error) {
	issued := ceilSecond(now)
	exp := issued.Add(s.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(exp),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

func ceilSecond(t time.Time) time.Time {
	whole := t.Truncate(time.Second)
	if whole.Before(t) {
		whole = whole.Add(time.Second)
	}
	return whole
}

// Validate checks the signature first and then the expiry against now.
// It returns the subject, or common.ErrInvalidToken for a bad signature or
// algorithm, common.ErrTokenExpired once now reaches exp, and
// common.ErrMalformedToken for anything that does not decode into the
// expected claims.
func (s *TokenService) Validate(tokenString string, now time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	_, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "", common.ErrMalformedToken
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return "", common.ErrInvalidToken
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", common.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing), errors.Is(err, jwt.ErrTokenInvalidClaims):
		return "", common.ErrMalformedToken
	default:
		return "", common.ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", common.ErrMalformedToken
	}
	return claims.Subject, nil
}
