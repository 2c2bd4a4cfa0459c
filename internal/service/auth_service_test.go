package service

import (
	"context"
	"teamhealth/internal/config"
	"teamhealth/internal/model"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuth(password string) (*AuthService, *fakeSessions) {
	sessions := newFakeSessions()
	svc := NewAuthService(config.AuthConfig{
		AdminPassword: password,
		JWTSecret:     "test-secret",
		TokenTTL:      time.Hour,
	}, sessions, zap.NewNop())
	return svc, sessions
}

func TestLoginAndValidate(t *testing.T) {
	ctx := context.Background()
	svc, sessions := newTestAuth("hunter2")

	resp, err := svc.Login(ctx, "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := svc.ValidateToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, time.Hour, sessions.ids[claims.SessionID])
}

func TestLoginRejects(t *testing.T) {
	ctx := context.Background()

	svc, _ := newTestAuth("hunter2")
	_, err := svc.Login(ctx, "hunter3")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	unset, _ := newTestAuth("")
	_, err = unset.Login(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejects(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuth("hunter2")

	_, err := svc.ValidateToken(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, _ := newTestAuth("hunter2")
	other.jwtSecret = []byte("another-secret")
	foreign, err := other.Login(ctx, "hunter2")
	require.NoError(t, err)
	_, err = svc.ValidateToken(ctx, foreign.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &model.AdminClaims{SessionID: "x"})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateToken(ctx, raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuth("hunter2")

	resp, err := svc.Login(ctx, "hunter2")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.ValidateToken(ctx, resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuth("hunter2")

	resp, err := svc.Login(ctx, "hunter2")
	require.NoError(t, err)
	claims, err := svc.ValidateToken(ctx, resp.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims.SessionID))
	_, err = svc.ValidateToken(ctx, resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
