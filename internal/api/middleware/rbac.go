package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/primstrade/platform/internal/core/domain"
)

// RequireRole lets the request through only when the authenticated principal
// holds one of allowedRoles. It must run after Auth.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := domain.PrincipalFromContext(c.Request().Context())
			if !ok {
				return domain.ErrUnauthorized
			}
			if _, ok := allowed[p.Role]; !ok {
				return domain.Forbidden("insufficient permissions")
			}
			return next(c)
		}
	}
}
