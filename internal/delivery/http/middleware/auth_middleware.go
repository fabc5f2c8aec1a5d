package middleware

import (
	"log/slog"
	"strings"

	"gatekeeper/internal/delivery/http/response"
	"gatekeeper/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Context keys under which the guard stores the caller's identity.
const (
	ContextKeyClaims    = "claims"
	ContextKeyAccountID = "accountID"
)

// AuthMiddleware guards protected routes by validating the Bearer token on
// every request before it reaches protected logic.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// Authenticate validates the session token and attaches its claims to the
// request context. All failures are rejected uniformly as unauthorized; the
// specific subtype (expired, bad signature, malformed) is logged internally
// and never leaked to the caller.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Authorization required")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			m.logger.Debug("Rejected non-bearer authorization header", slog.String("path", c.Request().URL.Path))

			return response.Unauthorized(c, "UNAUTHORIZED", "Authorization required")
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			m.logger.Debug("Token validation failed",
				slog.Any("error", err),
				slog.String("path", c.Request().URL.Path),
			)

			return response.Unauthorized(c, "UNAUTHORIZED", "Authorization required")
		}

		accountID, err := claims.AccountID()
		if err != nil {
			m.logger.Warn("Token subject is not a valid account id", slog.String("subject", claims.Subject))

			return response.Unauthorized(c, "UNAUTHORIZED", "Authorization required")
		}

		c.Set(ContextKeyClaims, claims)
		c.Set(ContextKeyAccountID, accountID)

		return next(c)
	}
}
