// Package http builds the echo server shared by every service mode: global
// middleware, error handling, health probes and the metrics endpoint.
package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/primstrade/platform/internal/api"
	"github.com/primstrade/platform/internal/api/handler"
	apimiddleware "github.com/primstrade/platform/internal/api/middleware"
	"github.com/primstrade/platform/internal/infrastructure/http/handlers"
)

const metricsSubsystem = "http"

type ServerOptions struct {
	// Service names the process in the liveness payload.
	Service    string
	Log        zerolog.Logger
	Production bool
	// Checks are run by the readiness probe, keyed by dependency name.
	Checks map[string]handlers.Check
	// BodyLimit caps request bodies, e.g. "100K". Empty disables the limit.
	BodyLimit string
}

// NewServer returns an echo instance with global middleware, probes and
// /metrics registered. Domain routes are added by the caller.
func NewServer(opts ServerOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(opts.Log, opts.Production)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(apimiddleware.RequestContext())
	e.Use(apimiddleware.RequestLogger(opts.Log))
	e.Use(echoprometheus.NewMiddleware(metricsSubsystem))
	if opts.BodyLimit != "" {
		e.Use(middleware.BodyLimit(opts.BodyLimit))
	}

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler(opts.Service)
	healthDepsHandler := handlers.NewHealthDependenciesHandler(opts.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
