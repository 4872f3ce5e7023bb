package service

import (
	"context"
	"testing"
	"time"

	"vitrifiye-studio/internal/dto"
	"vitrifiye-studio/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService() *AuthService {
	return NewAuthService(newMemoryUsers(), auth.NewJWTManager("test-secret", time.Hour, 24*time.Hour), zap.NewNop())
}

func TestAuthService_RegisterLoginRefresh(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.RegisterRequest{Username: "ayse", Email: "ayse@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "user", registered.User.Role)
	assert.Equal(t, "Bearer", registered.TokenType)
	assert.Equal(t, int64(3600), registered.ExpiresIn)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Username: "ayse2", Email: "ayse@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "ayse@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	loggedIn, err := svc.Login(ctx, &dto.LoginRequest{Email: "ayse@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	refreshed, err := svc.RefreshToken(ctx, loggedIn.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken(ctx, loggedIn.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials, "access tokens cannot be used to refresh")
}
