package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/leavedesk/leave"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Issue(leave.User{ID: 42, Email: "jane@example.com", Admin: true})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	actor, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), actor.ID)
	assert.True(t, actor.Admin)
}

func TestTokenWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-a", time.Hour)
	other := NewTokenManager("secret-b", time.Hour)

	token, err := tm.Issue(leave.User{ID: 1})
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)

	token, err := tm.Issue(leave.User{ID: 1})
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	_, err := tm.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.NoError(t, CheckPassword(hash, "s3cret"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong"), ErrInvalidCredentials)
}
