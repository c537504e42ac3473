// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"basecamp/config"
	"basecamp/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// ErrSecretNotConfigured is returned when a token is validated without a signing secret.
var ErrSecretNotConfigured = errors.New("jwt secret is not configured")

// jwtService validates HS256 access tokens issued by the Supabase auth server.
type jwtService struct {
	secret []byte
}

// NewJWTService is the constructor for jwtService.
// A nil or disabled auth section yields a service that rejects every token.
func NewJWTService(cfg *config.Config) service.TokenService {
	svc := &jwtService{}
	if cfg.Auth != nil {
		svc.secret = []byte(cfg.Auth.JWTSecret)
	}

	return svc
}

// ValidateToken checks signature, algorithm and expiry, and returns the token's claims.
func (s *jwtService) ValidateToken(tokenString string) (*service.AccessClaims, error) {
	if len(s.secret) == 0 {
		return nil, ErrSecretNotConfigured
	}

	claims := &service.AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse access token")
	}
	if !token.Valid {
		return nil, errors.New("access token is not valid")
	}

	return claims, nil
}
