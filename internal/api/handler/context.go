package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/primstrade/platform/internal/core/domain"
)

// principalFrom returns the principal injected by the Auth middleware. A
// missing principal means the route was mounted without the middleware and
// is treated as unauthenticated.
func principalFrom(c echo.Context) (*domain.Principal, error) {
	p, ok := domain.PrincipalFromContext(c.Request().Context())
	if !ok || p.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	return p, nil
}

// bindPath binds and validates path parameters into dst.
func bindPath(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindPathParams(c, dst); err != nil {
		return domain.ErrInvalidID
	}
	return c.Validate(dst)
}

// bindBody binds and validates the JSON body into dst.
func bindBody(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return domain.NewValidationError("body", "request body must be valid JSON of the expected shape")
	}
	return c.Validate(dst)
}
