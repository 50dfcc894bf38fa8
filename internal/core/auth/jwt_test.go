package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTer(ttl time.Duration) *JWTer {
	return &JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: ttl}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	j := newTestJWTer(3 * time.Hour)
	tok, err := j.Issue(42, "a@b.co")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := j.VerifyHeader("Bearer " + tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "a@b.co", claims.Email)
}

func TestVerifyWithoutBearerPrefix(t *testing.T) {
	j := newTestJWTer(time.Hour)
	tok, err := j.Issue(7, "x@y.co")
	require.NoError(t, err)

	claims, err := j.VerifyHeader(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
}

func TestVerifyMissingHeader(t *testing.T) {
	j := newTestJWTer(time.Hour)

	_, err := j.VerifyHeader("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = j.VerifyHeader("Bearer ")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestVerifyExpiredToken(t *testing.T) {
	j := newTestJWTer(-time.Minute) // 签出来就过期
	tok, err := j.Issue(1, "a@b.co")
	require.NoError(t, err)

	_, err = j.VerifyHeader("Bearer " + tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyGarbageToken(t *testing.T) {
	j := newTestJWTer(time.Hour)

	_, err := j.VerifyHeader("Bearer not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyWrongSecret(t *testing.T) {
	j := newTestJWTer(time.Hour)
	tok, err := j.Issue(1, "a@b.co")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("different"), TTL: time.Hour}
	_, err = other.VerifyHeader(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
