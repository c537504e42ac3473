package middleware

import (
	"log/slog"
	"strings"

	"basecamp/config"
	deliverycontext "basecamp/internal/delivery/context"
	domainerrors "basecamp/internal/domain/errors"
	"basecamp/internal/domain/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenSvc service.TokenService
	Config   *config.Config
	Logger   *slog.Logger
}

// AuthMiddleware guards the dashboard with Supabase access tokens.
type AuthMiddleware struct {
	tokenSvc     service.TokenService
	logger       *slog.Logger
	enabled      bool
	requiredRole string
	cookieName   string
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	m := &AuthMiddleware{
		tokenSvc:   params.TokenSvc,
		logger:     params.Logger,
		cookieName: config.DefaultCookieName,
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if auth := params.Config.Auth; auth != nil {
		m.enabled = auth.Enabled
		m.requiredRole = auth.RequiredRole
		if auth.CookieName != "" {
			m.cookieName = auth.CookieName
		}
	}

	return m
}

// Authenticate validates the caller's token and, when configured, its role.
// It passes every request through when the guard is disabled.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.enabled {
			return next(c)
		}

		tokenString := m.extractToken(c)
		if tokenString == "" {
			return domainerrors.ErrTokenMissing
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Debug("Rejected access token", slog.Any("error", err))

			return domainerrors.ErrTokenInvalid.WrapMessage(err.Error())
		}

		if m.requiredRole != "" && claims.Role != m.requiredRole {
			return domainerrors.ErrRoleRequired
		}

		deliverycontext.SetClaims(c, claims)

		return next(c)
	}
}

// extractToken reads a Bearer header first, then the session cookie.
func (m *AuthMiddleware) extractToken(c echo.Context) string {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}

		return ""
	}

	cookie, err := c.Cookie(m.cookieName)
	if err != nil {
		return ""
	}

	return cookie.Value
}
