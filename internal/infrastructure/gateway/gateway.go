package gateway

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/primstrade/platform/internal/api/metrics"
	"github.com/primstrade/platform/internal/api/response"
)

type Options struct {
	Log zerolog.Logger

	CORSOrigins []string

	// RateWindow and RateMax bound requests per client across /api.
	RateWindow time.Duration
	RateMax    int
	// AuthRateMax is the stricter per-client budget for AuthPrefix.
	AuthRateMax int
	AuthPrefix  string
}

// Use installs the edge middleware on e: secure headers, CORS and rate limits.
func Use(e *echo.Echo, opts Options) {
	e.Use(middleware.Secure())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     opts.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, echo.HeaderXRequestID},
		AllowCredentials: true,
	}))

	if opts.RateMax > 0 {
		e.Use(rateLimiter(opts.RateWindow, opts.RateMax, "Too many requests", func(c echo.Context) bool {
			return !strings.HasPrefix(c.Request().URL.Path, "/api/")
		}))
	}
	if opts.AuthRateMax > 0 && opts.AuthPrefix != "" {
		e.Use(rateLimiter(opts.RateWindow, opts.AuthRateMax, "Too many auth attempts", func(c echo.Context) bool {
			return !strings.HasPrefix(c.Request().URL.Path, opts.AuthPrefix)
		}))
	}
}

// Register mounts one reverse proxy per route. The inbound path, body and
// Authorization header pass through unchanged; the request id is forwarded.
func Register(e *echo.Echo, routes []Route, log zerolog.Logger) error {
	for _, r := range routes {
		target, err := url.Parse(r.Upstream)
		if err != nil {
			return err
		}
		name := r.Name
		if name == "" {
			name = r.Prefix
		}

		g := e.Group(r.Prefix)
		g.Use(forwardRequestID())
		g.Use(middleware.ProxyWithConfig(middleware.ProxyConfig{
			Balancer: middleware.NewRoundRobinBalancer([]*middleware.ProxyTarget{{Name: name, URL: target}}),
			ErrorHandler: func(c echo.Context, err error) error {
				metrics.UpstreamErrorsTotal.WithLabelValues(name).Inc()
				log.Error().Err(err).
					Str("upstream", name).
					Str("path", c.Request().URL.Path).
					Msg("proxy request failed")
				return echo.NewHTTPError(http.StatusBadGateway, "Upstream service unavailable")
			},
		}))
	}
	return nil
}

func forwardRequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
				c.Request().Header.Set(echo.HeaderXRequestID, id)
			}
			return next(c)
		}
	}
}

// rateLimiter allows limit requests per window per client IP, with the whole
// budget available as burst.
func rateLimiter(window time.Duration, limit int, message string, skip middleware.Skipper) echo.MiddlewareFunc {
	if window <= 0 {
		window = 15 * time.Minute
	}
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(limit) / window.Seconds()),
		Burst:     limit,
		ExpiresIn: window,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: skip,
		Store:   store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return response.Fail(c, http.StatusTooManyRequests, message, nil)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return response.Fail(c, http.StatusForbidden, "Unable to identify client", nil)
		},
	})
}

