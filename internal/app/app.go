// Package app is the application bootstrap and dependency injection root.
// It creates and holds all shared infrastructure (DB pool, Redis client,
// Echo instance) and wires together the auth and users plugins.
package app

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/keyxmakerx/mesto/internal/apperror"
	"github.com/keyxmakerx/mesto/internal/config"
	"github.com/keyxmakerx/mesto/internal/database"
	"github.com/keyxmakerx/mesto/internal/middleware"
)

// msgRouteNotFound is the body message for any unknown route.
const msgRouteNotFound = "route not found"

// App holds all shared dependencies and the Echo HTTP server instance.
// Created once at startup in main.go and used to register all routes.
type App struct {
	// Config holds the loaded application configuration.
	Config *config.Config

	// DB is the MariaDB connection pool. May be nil in tests.
	DB *sql.DB

	// Redis is the optional Redis client used for rate limiting. Nil when
	// Redis is not configured.
	Redis *redis.Client

	// Echo is the HTTP server instance.
	Echo *echo.Echo
}

// New creates a new App instance with the given dependencies and configures
// the Echo server with global middleware and error handling.
func New(cfg *config.Config, db *sql.DB, rdb *redis.Client) *App {
	e := echo.New()

	// Disable Echo's default banner and startup message -- we log our own.
	e.HideBanner = true
	e.HidePort = true

	// c.RealIP() keys the rate limiter, so forwarded headers are honoured
	// only from private-range proxies.
	middleware.TrustedProxies(e, middleware.DefaultTrustedProxies)

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Echo:   e,
	}

	app.setupMiddleware()

	e.HTTPErrorHandler = app.errorHandler

	return app
}

// setupMiddleware registers global middleware on the Echo instance.
// Order matters: outermost (recovery) runs first.
func (a *App) setupMiddleware() {
	// Panic recovery -- must be outermost to catch panics from all other middleware.
	a.Echo.Use(middleware.Recovery())

	// Request logging -- log every request with method, route, status, latency.
	a.Echo.Use(middleware.RequestLogger())

	a.Echo.Use(middleware.SecurityHeaders())

	// Bearer tokens travel in a header, not a cookie, so credentials
	// mode is not needed.
	a.Echo.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: a.Config.CORSOrigins,
	}))
}

// limiterFactory selects shared Redis counters when Redis is available and
// per-process counters otherwise.
func (a *App) limiterFactory() middleware.LimiterFactory {
	if a.Redis != nil {
		return middleware.NewRedisLimiterFactory(a.Redis)
	}
	return middleware.NewMemoryLimiterFactory()
}

// pingers lists the backends /healthz checks.
func (a *App) pingers() map[string]database.Pinger {
	pingers := make(map[string]database.Pinger)
	if a.DB != nil {
		pingers["mariadb"] = database.SQLPinger{DB: a.DB}
	}
	if a.Redis != nil {
		pingers["redis"] = database.RedisPinger{Client: a.Redis}
	}
	return pingers
}

// errorHandler is the custom Echo error handler. Every error leaves as
// {"message": "..."} with the status of its AppError. Internal causes are
// logged and never sent to the client.
func (a *App) errorHandler(err error, c echo.Context) {
	// Don't double-write if response is already committed.
	if c.Response().Committed {
		return
	}

	code := apperror.SafeCode(err)
	message := apperror.SafeMessage(err)

	var appErr *apperror.AppError
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		if appErr.Internal != nil {
			slog.Error("internal error",
				slog.String("type", appErr.Type),
				slog.Any("internal", appErr.Internal),
				slog.String("path", c.Request().URL.Path),
			)
		}

	case errors.As(err, &echoErr):
		// Router and binder errors.
		code = echoErr.Code
		message = echoMessage(echoErr)

	default:
		slog.Error("unhandled error",
			slog.Any("error", err),
			slog.String("path", c.Request().URL.Path),
		)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, map[string]string{"message": message})
}

// echoMessage maps Echo's own errors to client messages.
func echoMessage(err *echo.HTTPError) string {
	switch err.Code {
	case http.StatusNotFound:
		return msgRouteNotFound
	case http.StatusMethodNotAllowed:
		return "method not allowed"
	}
	if msg, ok := err.Message.(string); ok {
		return msg
	}
	return http.StatusText(err.Code)
}

// Start begins listening for HTTP requests on the configured port.
func (a *App) Start() error {
	addr := fmt.Sprintf(":%d", a.Config.Port)
	slog.Info("starting Mesto API server",
		slog.String("addr", addr),
		slog.String("env", a.Config.Env),
	)
	return a.Echo.Start(addr)
}
