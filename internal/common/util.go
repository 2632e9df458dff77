package common

import (
	"strings"
)

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Used to drop passwords from memory once they were sent.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// BearerToken extracts the token from an authorization header value.
// The scheme is matched case-insensitively. ok is false when the value is
// not a bearer credential or the token part is empty.
func BearerToken(header string) (token string, ok bool) {
	if len(header) < len(BearerPrefix) || !strings.EqualFold(header[:len(BearerPrefix)], BearerPrefix) {
		return "", false
	}
	token = strings.TrimSpace(header[len(BearerPrefix):])
	return token, token != ""
}

// NormalizeEmail trims surrounding spaces and lowercases an email address so
// lookups and uniqueness checks are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
