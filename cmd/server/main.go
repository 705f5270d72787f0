// Command server runs one service of the trade signal platform, selected
// with --service: auth, user, signals, gateway, or all of the backends in one
// process.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/primstrade/platform/docs"
	"github.com/primstrade/platform/internal/api"
	"github.com/primstrade/platform/internal/api/handler"
	"github.com/primstrade/platform/internal/core/ports"
	"github.com/primstrade/platform/internal/core/service"
	"github.com/primstrade/platform/internal/infrastructure/cache"
	"github.com/primstrade/platform/internal/infrastructure/config"
	mongodb "github.com/primstrade/platform/internal/infrastructure/db/mongo"
	redisdb "github.com/primstrade/platform/internal/infrastructure/db/redis"
	"github.com/primstrade/platform/internal/infrastructure/gateway"
	httpserver "github.com/primstrade/platform/internal/infrastructure/http"
	"github.com/primstrade/platform/internal/infrastructure/http/handlers"
	"github.com/primstrade/platform/internal/infrastructure/queue"
	"github.com/primstrade/platform/internal/infrastructure/storage"
	"github.com/primstrade/platform/pkg/logger"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
)

var serviceNames = map[string]string{
	"auth":    "auth-service",
	"user":    "user-service",
	"signals": "trade-signal-service",
	"gateway": "api-gateway",
	"all":     "prims-trade",
}

// @title                       Prims Trade API
// @version                     1.0
// @description                 Trade signals, admin review and community discussions.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var mode, port, envFile string

	flagSet := pflag.NewFlagSet("server", pflag.ContinueOnError)
	flagSet.StringVar(&mode, "service", "all", "service to run: auth, user, signals, gateway or all")
	flagSet.StringVar(&port, "port", "", "listen port (overrides PORT)")
	flagSet.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	serviceName, ok := serviceNames[mode]
	if !ok {
		return fmt.Errorf("unknown service %q", mode)
	}

	envErr := loadEnvFile(envFile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Port = port
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: serviceName,
	})
	if envErr != nil {
		log.Warn().Err(envErr).Str("file", envFile).Msg("env file not loaded")
	}

	app, err := build(ctx, mode, serviceName, cfg, log)
	if err != nil {
		return err
	}
	defer app.close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.echo,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server stopped gracefully")
	return nil
}

// app is the wired echo instance plus the resources it owns.
type app struct {
	echo    *echo.Echo
	closers []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func build(ctx context.Context, mode, serviceName string, cfg *config.Config, log zerolog.Logger) (*app, error) {
	a := &app{}
	checks := map[string]handlers.Check{}

	tokens, err := service.NewTokenService([]byte(cfg.JWT.Secret),
		service.WithAccessTTL(cfg.JWT.AccessTTL),
		service.WithRefreshTTL(cfg.JWT.RefreshTTL),
		service.WithIssuer(cfg.JWT.Issuer),
	)
	if err != nil {
		return nil, err
	}

	backend := mode != "gateway"

	var db *mongo.Database
	if backend {
		client, database, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		})
		db = database
		checks["mongodb"] = handlers.MongoCheck(db)
	}

	bodyLimit := "100K"
	if mode == "gateway" || mode == "all" {
		bodyLimit = "6M"
	}

	e := httpserver.NewServer(httpserver.ServerOptions{
		Service:    serviceName,
		Log:        log,
		Production: cfg.IsProduction(),
		Checks:     checks,
		BodyLimit:  bodyLimit,
	})
	a.echo = e

	serves := func(m string) bool { return mode == m || mode == "all" }

	if serves("auth") || serves("user") {
		users := mongodb.NewUserRepository(db)
		if err := mongodb.EnsureIndexes(ctx, users); err != nil {
			return nil, err
		}
		if serves("auth") {
			api.RegisterAuthRoutes(e, handler.NewAuthHandler(service.NewAuthService(users, tokens, log)))
		}
		if serves("user") {
			api.RegisterUserRoutes(e, handler.NewUserHandler(service.NewUserService(users, log)), tokens)
		}
	}

	if serves("signals") {
		if err := wireSignals(ctx, a, db, cfg, tokens, checks, log); err != nil {
			return nil, err
		}
	}

	if mode == "gateway" {
		routes := gateway.DefaultRoutes(gateway.Upstreams{
			Auth:         cfg.Gateway.AuthServiceURL,
			Users:        cfg.Gateway.UserServiceURL,
			TradeSignals: cfg.Gateway.TradeSignalServiceURL,
		})
		if cfg.Gateway.RoutesFile != "" {
			if routes, err = gateway.LoadRoutes(cfg.Gateway.RoutesFile); err != nil {
				return nil, err
			}
		}
		gateway.Use(e, gateway.Options{
			Log:         log,
			CORSOrigins: cfg.Gateway.CORSOrigins,
			RateWindow:  cfg.Gateway.RateLimitWindow(),
			RateMax:     cfg.Gateway.RateLimitMax,
			AuthRateMax: cfg.Gateway.AuthRateLimitMax,
			AuthPrefix:  api.Prefix + "/auth",
		})
		if err := gateway.Register(e, routes, log); err != nil {
			return nil, err
		}
	}

	if mode == "gateway" || mode == "all" {
		var images ports.ImageStorage
		uploader, err := storage.NewCloudinary(storage.CloudinaryConfig{
			CloudName: cfg.Cloudinary.CloudName,
			APIKey:    cfg.Cloudinary.APIKey,
			APISecret: cfg.Cloudinary.APISecret,
		})
		switch {
		case err == nil:
			images = uploader
		case errors.Is(err, storage.ErrNotConfigured):
			log.Warn().Msg("cloudinary not configured, image upload disabled")
		default:
			return nil, err
		}
		api.RegisterUploadRoutes(e, handler.NewUploadHandler(images), tokens)
		api.RegisterDocs(e)
	}

	return a, nil
}

func wireSignals(ctx context.Context, a *app, db *mongo.Database, cfg *config.Config, tokens ports.TokenVerifier, checks map[string]handlers.Check, log zerolog.Logger) error {
	signals := mongodb.NewSignalRepository(db)
	discussions := mongodb.NewDiscussionRepository(db)
	audits := mongodb.NewAuditRepository(db)
	if err := mongodb.EnsureIndexes(ctx, signals, discussions, audits); err != nil {
		return err
	}

	var signalCache ports.Cache
	switch cfg.Cache.Driver {
	case "redis":
		rdb, err := redisdb.Connect(ctx, redisdb.Config{URL: cfg.Redis.URL, Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		checks["redis"] = handlers.RedisCheck(rdb)
		signalCache = redisdb.NewCache(rdb)
	default:
		mem := cache.NewMemory(time.Now)
		go mem.RunSweeper(ctx, sweepInterval)
		signalCache = mem
	}

	auditService := service.NewAuditService(audits, log)
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditService, log)
	dispatcher.Start(context.WithoutCancel(ctx))
	a.closers = append(a.closers, dispatcher.Close)

	signalService := service.NewTradeSignalService(signals, signalCache, cfg.Cache.TTL(), dispatcher, log)
	discussionService := service.NewDiscussionService(discussions, log)

	api.RegisterSignalRoutes(a.echo, handler.NewSignalHandler(signalService, auditService), tokens, true)
	api.RegisterDiscussionRoutes(a.echo, handler.NewDiscussionHandler(discussionService), tokens)
	return nil
}

// loadEnvFile applies a dotenv file. A missing file is normal outside local
// development and is not an error.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
