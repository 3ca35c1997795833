package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskops/internal/domain/entity"
	"taskops/internal/domain/repository"
	"taskops/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTokenService struct {
	claims *service.Claims
	err    error
}

func (s *stubTokenService) Issue(uuid.UUID) (string, error) {
	return "", errors.New("not used")
}

func (s *stubTokenService) Validate(string) (*service.Claims, error) {
	return s.claims, s.err
}

func (s *stubTokenService) AccessTokenDuration() time.Duration {
	return 30 * time.Minute
}

type stubUserRepository struct {
	user *entity.User
}

func (r *stubUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if r.user == nil || r.user.ID != id {
		return nil, repository.ErrUserNotFound
	}

	return r.user, nil
}

func (r *stubUserRepository) FindByEmail(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrUserNotFound
}

func (r *stubUserRepository) Create(context.Context, *entity.User) error {
	return errors.New("not used")
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = NewErrorMiddleware(testLogger()).HandleHTTPError

	return e
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func performRequest(e *echo.Echo, mw *AuthMiddleware, withActiveCheck bool, authHeader string) *httptest.ResponseRecorder {
	handlers := []echo.MiddlewareFunc{mw.Authenticate}
	if withActiveCheck {
		handlers = append(handlers, mw.RequireActive)
	}
	e.GET("/protected", okHandler, handlers...)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	activeUser := &entity.User{ID: uuid.New(), Email: "user@example.com", IsActive: true}

	t.Run("passes a valid token through to the handler", func(t *testing.T) {
		t.Parallel()

		mw := NewAuthMiddleware(
			&stubTokenService{claims: &service.Claims{UserID: activeUser.ID}},
			&stubUserRepository{user: activeUser},
			testLogger(),
		)

		rec := performRequest(newTestEcho(), mw, false, "Bearer good-token")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		t.Parallel()

		mw := NewAuthMiddleware(&stubTokenService{}, &stubUserRepository{}, testLogger())

		rec := performRequest(newTestEcho(), mw, false, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
	})

	t.Run("rejects a non-bearer header", func(t *testing.T) {
		t.Parallel()

		mw := NewAuthMiddleware(&stubTokenService{}, &stubUserRepository{}, testLogger())

		rec := performRequest(newTestEcho(), mw, false, "Basic dXNlcjpwdw==")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects an invalid token", func(t *testing.T) {
		t.Parallel()

		mw := NewAuthMiddleware(
			&stubTokenService{err: errors.New("token is expired")},
			&stubUserRepository{user: activeUser},
			testLogger(),
		)

		rec := performRequest(newTestEcho(), mw, false, "Bearer expired-token")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a token whose subject no longer exists", func(t *testing.T) {
		t.Parallel()

		mw := NewAuthMiddleware(
			&stubTokenService{claims: &service.Claims{UserID: uuid.New()}},
			&stubUserRepository{user: nil},
			testLogger(),
		)

		rec := performRequest(newTestEcho(), mw, false, "Bearer orphaned-token")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthMiddleware_RequireActive(t *testing.T) {
	t.Parallel()

	t.Run("lets an active user through", func(t *testing.T) {
		t.Parallel()

		user := &entity.User{ID: uuid.New(), IsActive: true}
		mw := NewAuthMiddleware(
			&stubTokenService{claims: &service.Claims{UserID: user.ID}},
			&stubUserRepository{user: user},
			testLogger(),
		)

		rec := performRequest(newTestEcho(), mw, true, "Bearer good-token")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects an inactive user with 403", func(t *testing.T) {
		t.Parallel()

		user := &entity.User{ID: uuid.New(), IsActive: false}
		mw := NewAuthMiddleware(
			&stubTokenService{claims: &service.Claims{UserID: user.ID}},
			&stubUserRepository{user: user},
			testLogger(),
		)

		rec := performRequest(newTestEcho(), mw, true, "Bearer good-token")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), "INACTIVE_USER")
	})
}
