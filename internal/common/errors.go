// Package common defines shared constants and sentinel errors used across
// client and server layers of soulbloom. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal        = errors.New("internal error")
	ErrorUnauthenticated = errors.New("unauthenticated")
	ErrorForbidden       = errors.New("forbidden")
	ErrInvalidArgument   = errors.New("invalid argument")

	// Credential check failed. Unknown email and wrong password both map here.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// Login throttling.
	ErrTooManyAttempts = errors.New("too many attempts")

	// Token validation outcomes.
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrMalformedToken = errors.New("malformed token")
)
