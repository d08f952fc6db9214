// internal/stockx/auth_test.go
package stockx

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedTestToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
		"sub": "test",
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestTokenExpiryFromJWTClaim(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)

	got := tokenExpiry(tokenResponse{
		AccessToken: signedTestToken(t, exp),
		ExpiresIn:   60, // claim wins over expires_in
	})

	assert.True(t, got.Equal(exp.Add(-expiryBuffer)),
		"expiry must come from the exp claim minus the refresh buffer")
}

func TestTokenExpiryFallsBackToExpiresIn(t *testing.T) {
	before := time.Now()
	got := tokenExpiry(tokenResponse{
		AccessToken: "not-a-jwt",
		ExpiresIn:   3600,
	})

	lower := before.Add(3600*time.Second - expiryBuffer - time.Second)
	upper := time.Now().Add(3600*time.Second - expiryBuffer + time.Second)
	assert.True(t, got.After(lower) && got.Before(upper))
}

func TestTokenExpiryShortLifetimeKeepsFullWindow(t *testing.T) {
	// A lifetime at or below the buffer must not go negative.
	before := time.Now()
	got := tokenExpiry(tokenResponse{
		AccessToken: "not-a-jwt",
		ExpiresIn:   60,
	})
	assert.True(t, got.After(before), "short-lived token still expires in the future")
}
