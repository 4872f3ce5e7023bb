package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_AccessToken(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	token, err := m.GenerateToken("6f1c0d0e-4a4e-4d1b-9d55-8a8c0b7e7a10", "ayse", "ayse@example.com", "admin")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "6f1c0d0e-4a4e-4d1b-9d55-8a8c0b7e7a10", claims.UserID)
	assert.Equal(t, "ayse", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	_, err = m.ValidateRefreshToken(token)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestJWTManager_RefreshToken(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	token, err := m.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	claims, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	_, err = m.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, time.Hour)
	other := NewJWTManager("other-secret", time.Hour, time.Hour)
	expired := NewJWTManager("test-secret", -time.Minute, time.Hour)

	foreign, err := other.GenerateToken("u", "n", "e", "user")
	require.NoError(t, err)
	_, err = m.ValidateToken(foreign)
	assert.Error(t, err)

	old, err := expired.GenerateToken("u", "n", "e", "user")
	require.NoError(t, err)
	_, err = m.ValidateToken(old)
	assert.Error(t, err)

	_, err = m.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret!", hash)
	assert.True(t, CheckPasswordHash("s3cret!", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
