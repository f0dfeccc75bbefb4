package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a settable time source for TokenService.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func TestTokenService_IssueVerify(t *testing.T) {
	tokens, err := NewTokenService("test-secret-key", 0)
	require.NoError(t, err)

	token, err := tokens.Issue("user-1")
	require.NoError(t, err)

	subject, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)
}

func TestTokenService_Claims(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tokens, err := NewTokenService("test-secret-key", 0, WithClock(func() time.Time { return issued }))
	require.NoError(t, err)

	token, err := tokens.Issue("user-1")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.True(t, claims.IssuedAt.Time.Equal(issued))
	assert.True(t, claims.ExpiresAt.Time.Equal(issued.Add(DefaultTokenTTL)))
}

func TestTokenService_Expiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	tokens, err := NewTokenService("test-secret-key", DefaultTokenTTL, WithClock(clock.Now))
	require.NoError(t, err)

	token, err := tokens.Issue("user-1")
	require.NoError(t, err)

	issued := clock.now
	clock.now = issued.Add(6 * 24 * time.Hour)
	subject, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)

	clock.now = issued.Add(8 * 24 * time.Hour)
	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Rejects(t *testing.T) {
	tokens, err := NewTokenService("test-secret-key", time.Hour)
	require.NoError(t, err)

	other, err := NewTokenService("another-secret-key", time.Hour)
	require.NoError(t, err)
	foreign, err := other.Issue("user-1")
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-secret-key"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "user-1",
	}).SignedString([]byte("test-secret-key"))
	require.NoError(t, err)

	noSubject, err := tokens.Issue("")
	require.NoError(t, err)

	tests := map[string]string{
		"empty":        "",
		"garbage":      "garbage",
		"wrong secret": foreign,
		"alg none":     unsigned,
		"other alg":    hs512,
		"no expiry":    noExpiry,
		"no subject":   noSubject,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := tokens.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := NewTokenService("", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)
}
