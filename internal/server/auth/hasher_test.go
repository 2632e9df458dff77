package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	for _, pw := range []string{"pw1", "correct horse battery staple", "пароль", ""} {
		digest, err := h.Hash(pw)
		require.NoError(t, err)
		assert.True(t, h.Verify(pw, digest), "password %q", pw)
		assert.False(t, h.Verify(pw+"x", digest), "password %q", pw)
	}
}

func TestBcryptHasher_SaltedDigest(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	a, err := h.Hash("pw1")
	require.NoError(t, err)
	b, err := h.Hash("pw1")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "$2a$04$"), "digest encodes algorithm and cost: %s", a)

	cost, err := bcrypt.Cost([]byte(a))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestBcryptHasher_MalformedDigest(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	for _, digest := range []string{"", "plain", "$2a$04$short", "$9z$10$" + strings.Repeat("a", 53)} {
		assert.NotPanics(t, func() {
			assert.False(t, h.Verify("pw1", digest))
		})
	}
}

func TestBcryptHasher_TooLong(t *testing.T) {
	t.Parallel()

	_, err := NewBcryptHasher(bcrypt.MinCost).Hash(strings.Repeat("a", 73))
	require.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(1).cost)
	assert.Equal(t, bcrypt.MaxCost, NewBcryptHasher(99).cost)
	assert.Equal(t, 12, NewBcryptHasher(12).cost)
}
