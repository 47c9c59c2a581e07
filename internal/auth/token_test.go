package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomadfest/api/internal/apperr"
)

var testSecret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	token, err := IssueToken(testSecret, "user-1", "a@b.c", "alice", RoleAdmin, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "a@b.c", claims.Email)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, RoleAdmin, claims.UserRole())
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := IssueToken(testSecret, "user-1", "a@b.c", "alice", RoleUser, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken([]byte("other-secret"), token)
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := IssueToken(testSecret, "user-1", "a@b.c", "alice", RoleUser, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken(testSecret, "not-a-token")
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}
