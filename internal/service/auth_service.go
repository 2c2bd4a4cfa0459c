package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"teamhealth/internal/cache"
	"teamhealth/internal/config"
	"teamhealth/internal/model"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles administrator authentication
type AuthService struct {
	adminPassword []byte
	jwtSecret     []byte
	ttl           time.Duration
	sessions      cache.SessionCache
	logger        *zap.Logger
	now           func() time.Time
}

// NewAuthService creates a new auth service. The admin password comes from
// configuration; an empty password disables login.
func NewAuthService(cfg config.AuthConfig, sessions cache.SessionCache, logger *zap.Logger) *AuthService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		adminPassword: []byte(cfg.AdminPassword),
		jwtSecret:     []byte(cfg.JWTSecret),
		ttl:           ttl,
		sessions:      sessions,
		logger:        logger,
		now:           time.Now,
	}
}

// Login checks the admin password and returns a signed token
func (s *AuthService) Login(ctx context.Context, password string) (*model.LoginResponse, error) {
	if len(s.adminPassword) == 0 || subtle.ConstantTimeCompare([]byte(password), s.adminPassword) != 1 {
		s.logger.Info("admin login rejected")
		return nil, ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	now := s.now()
	claims := &model.AdminClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	if err := s.sessions.Set(ctx, sessionID, s.ttl); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.Info("admin logged in", zap.String("session", sessionID))
	return &model.LoginResponse{
		Token:     tokenString,
		ExpiresIn: int64(s.ttl / time.Second),
	}, nil
}

// ValidateToken validates an admin JWT and checks its session is still live
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*model.AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.AdminClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}

	live, err := s.sessions.Exists(ctx, claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	if !live {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Logout revokes the session behind a token
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.logger.Info("admin logged out", zap.String("session", sessionID))
	return nil
}
