package middleware

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"
)

// RequireRole admits operators whose token carries one of roles.  It runs
// after JWTAuth; a request without an identity is treated like a wrong
// role and answered with 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id, ok := CurrentIdentity(c); ok && slices.Contains(roles, id.Role) {
				return next(c)
			}
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden", "message": "role not allowed for this operation"})
		}
	}
}
