package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/primstrade/platform/pkg/logger"
)

func TestRequestContext_CopiesRequestID(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Response().Header().Set(echo.HeaderXRequestID, "req-42")

	var got string
	handler := RequestContext()(func(c echo.Context) error {
		got = logger.RequestIDFromContext(c.Request().Context())
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got != "req-42" {
		t.Fatalf("expected req-42, got %q", got)
	}
}
