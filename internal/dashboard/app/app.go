package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	httpapi "github.com/zamanihq/dashboard/internal/dashboard/http"
	"github.com/zamanihq/dashboard/internal/dashboard/querycache"
	"github.com/zamanihq/dashboard/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application is the dashboard gateway with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	redis       redis.UniversalClient // nil without REDIS_ADDR
	cache       *querycache.Cache
	housekeeper *querycache.Housekeeper // nil with REDIS_ADDR

	server   *http.Server
	router   *httpapi.Router
	listener net.Listener
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "dashboard-gateway",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initCache(); err != nil {
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler exposes the gateway router.
func (app *Application) Handler() http.Handler {
	return app.server.Handler
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.Serve(ctx)
}

// Serve listens on the configured port until ctx is done, then shuts down.
func (app *Application) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", app.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", app.server.Addr, err)
	}
	app.listener = ln

	if app.housekeeper != nil {
		app.housekeeper.Start()
	}

	app.logger.Info("dashboard gateway starting",
		"addr", ln.Addr().String(),
		"version", BuildVersion,
		"backend", app.cfg.BackendAPIURL,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		app.logger.Info("shutdown signal received")
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Addr is the bound listener address once Serve has started.
func (app *Application) Addr() string {
	if app.listener == nil {
		return ""
	}
	return app.listener.Addr().String()
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down dashboard gateway...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.housekeeper != nil {
		app.housekeeper.Stop()
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
			return err
		}
	}

	app.logger.Info("dashboard gateway stopped")
	return nil
}

// initCache picks the query cache backend: Redis when configured, memory
// otherwise.
func (app *Application) initCache() error {
	opts := []querycache.Option{querycache.WithStaleTime(app.cfg.QueryStaleTime)}

	if len(app.cfg.RedisAddrs) == 0 {
		store := querycache.NewMemoryStore()
		app.housekeeper = querycache.NewHousekeeper(store, app.logger, app.cfg.CacheSweepInterval)
		app.cache = querycache.New(store, opts...)
		app.logger.Info("query cache: in-memory", "sweep_interval", app.housekeeper.Interval)
		return nil
	}

	app.redis = querycache.NewRedisClient(app.cfg.RedisAddrs, app.cfg.RedisPassword)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.redis.Ping(ctx).Err(); err != nil {
		_ = app.redis.Close()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	app.cache = querycache.New(querycache.NewRedisStore(app.redis, app.cfg.RedisNamespace), opts...)
	app.logger.Info("query cache: redis", "addrs", app.cfg.RedisAddrs)
	return nil
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.cfg.BackendAPIURL,
		BuildVersion,
		app.cache,
		app.logger,
	)
	router.PublicAPIBaseURL = app.cfg.PublicAPIBaseURL
	router.StaticDir = app.cfg.StaticDir
	if app.redis != nil {
		router.CachePinger = app.cache
	}

	if len(app.cfg.CORSAllowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   app.cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", slogx.RequestIDHeader},
			ExposedHeaders:   []string{slogx.RequestIDHeader, "Retry-After"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
