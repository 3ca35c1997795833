package middleware

import (
	"log/slog"
	"strings"

	"taskops/internal/domain/entity"
	domainerrors "taskops/internal/domain/errors"
	"taskops/internal/domain/repository"
	"taskops/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Context keys under which the middleware stores the resolved identity.
const (
	ContextKeyUserID = "userID"
	ContextKeyUser   = "user"
)

// AuthMiddleware provides middleware for token authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo, logger: logger}
}

// Authenticate validates the bearer token and resolves it to a stored user.
// Every failure is logged with its concrete cause but answered with the same
// generic 401, so responses reveal nothing about why validation failed.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return m.unauthorized(c, "authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return m.unauthorized(c, "authorization header is not a bearer token")
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			return m.unauthorized(c, "token validation failed: "+err.Error())
		}

		// The token may outlive the account. Resolve the subject against the
		// store so a deleted user cannot keep acting.
		user, err := m.userRepo.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			return m.unauthorized(c, "token subject not found: "+err.Error())
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyUser, user)

		return next(c)
	}
}

// RequireActive rejects authenticated but deactivated users.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireActive(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := c.Get(ContextKeyUser).(*entity.User)
		if !ok {
			return m.unauthorized(c, "user missing from context, Authenticate not applied")
		}

		if !user.IsActive {
			m.logger.Warn("Inactive user rejected", "userID", user.ID)

			return domainerrors.ErrInactiveUser
		}

		return next(c)
	}
}

func (m *AuthMiddleware) unauthorized(c echo.Context, cause string) error {
	m.logger.Warn("Authentication failed",
		"cause", cause,
		"path", c.Request().URL.Path,
	)
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")

	return domainerrors.ErrUnauthenticated
}
