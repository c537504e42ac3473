package service

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims are the claims of a Supabase-issued access token that the dashboard relies on.
type AccessClaims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenService validates access tokens presented to the dashboard.
type TokenService interface {
	// ValidateToken parses the token, checks its signature and expiry and returns its claims.
	ValidateToken(tokenString string) (*AccessClaims, error)
}
