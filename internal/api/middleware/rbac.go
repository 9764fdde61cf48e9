package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog/internal/core/domain"
)

// RequireAuthenticated rejects anonymous callers with 401.
func RequireAuthenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !IdentityFrom(c).IsAuthenticated() {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}
			return next(c)
		}
	}
}

// RequireConfirmed rejects users that have not confirmed their address.
// Anonymous callers get 401.
func RequireConfirmed() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := UserFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}
			if !user.Confirmed {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "account not confirmed"})
			}
			return next(c)
		}
	}
}

// RequirePermission enforces permission-based access control: the caller's
// role must grant perm. Anonymous callers get 401, others 403.
func RequirePermission(perm domain.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := IdentityFrom(c)
			if !id.Can(perm) {
				if !id.IsAuthenticated() {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				}
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// RequireAdmin is RequirePermission(domain.PermissionAdmin).
func RequireAdmin() echo.MiddlewareFunc {
	return RequirePermission(domain.PermissionAdmin)
}
