package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inkwell/blog/internal/core/domain"
)

// Context keys set by Auth.
const (
	IdentityKey     = "identity"
	SessionTokenKey = "session_token"
)

// Authenticator resolves session tokens and records user activity.
// ports.AccountService satisfies it.
type Authenticator interface {
	Authenticate(ctx context.Context, sessionToken string) (*domain.User, error)
	Ping(ctx context.Context, user *domain.User) error
}

// Auth resolves the caller's identity. A request without an Authorization
// header proceeds as domain.Anonymous; a malformed header or a rejected
// session token is a 401. Authenticated users are pinged on every request.
func Auth(accounts Authenticator, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				c.Set(IdentityKey, domain.Identity(domain.Anonymous{}))
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			ctx := c.Request().Context()
			user, err := accounts.Authenticate(ctx, parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				return err
			}

			if err := accounts.Ping(ctx, user); err != nil {
				log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record activity")
			}

			c.Set(IdentityKey, domain.Identity(user))
			c.Set(SessionTokenKey, parts[1])
			return next(c)
		}
	}
}

// IdentityFrom returns the identity set by Auth, or domain.Anonymous when
// the middleware did not run.
func IdentityFrom(c echo.Context) domain.Identity {
	if id, ok := c.Get(IdentityKey).(domain.Identity); ok && id != nil {
		return id
	}
	return domain.Anonymous{}
}

// UserFrom returns the authenticated user, if any.
func UserFrom(c echo.Context) (*domain.User, bool) {
	u, ok := IdentityFrom(c).(*domain.User)
	return u, ok && u != nil
}
