package model

import "github.com/golang-jwt/jwt/v5"

// AdminClaims are JWT claims for administrator sessions
type AdminClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for admin login
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"` // seconds
}
