// Package main is the entrypoint for the DearYou API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dearyou/dearyou/internal/cache"
	"github.com/dearyou/dearyou/internal/config"
	"github.com/dearyou/dearyou/internal/handler"
	"github.com/dearyou/dearyou/internal/metrics"
	"github.com/dearyou/dearyou/internal/middleware"
	"github.com/dearyou/dearyou/internal/repository"
	"github.com/dearyou/dearyou/internal/server"
	"github.com/dearyou/dearyou/internal/service"
)

func main() {
	// Initialize context
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to Redis")

	// Initialize services
	recorder := metrics.NewInMemory()
	letterService := service.NewLetterService(repo, recorder)
	authService := service.NewAuthService(repo, cacheClient, cfg.SessionTTL, recorder)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	letterHandler := handler.NewLetterHandler(letterService, logger)
	authHandler := handler.NewAuthHandler(authService, logger, cfg.SessionCookieName, cfg.SessionTTL, cfg.IsProduction())
	profileHandler := handler.NewProfileHandler(letterService, logger)

	// Setup router
	r := setupRouter(h, healthHandler, letterHandler, authHandler, profileHandler, authService, cfg, logger)

	// Create and run server
	srv := server.New(server.Options{
		Handler:         r,
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Logger:          logger,
	})

	// Storage closes last, after everything that might still use it.
	srv.OnShutdown("postgres", func(ctx context.Context) error {
		repo.Close()
		return nil
	})
	srv.OnShutdown("redis", func(ctx context.Context) error {
		return cacheClient.Close()
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"base_url", cfg.BaseURL,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	letterHandler *handler.LetterHandler,
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	authService *service.AuthService,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment:      cfg.IsDevelopment(),
		MaxRequestBodySize: cfg.MaxRequestBodySize,
	}))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	// Health endpoints (no auth required)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	// Root info endpoint
	r.Get("/", h.Hello)

	// Session middleware configuration
	sessionCfg := middleware.SessionConfig{
		Logger:     logger,
		Auth:       authService,
		CookieName: cfg.SessionCookieName,
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Resolve the caller's session for every API route. Routes stay
		// reachable without one; guarded routes add RequireUser.
		r.Use(middleware.Session(sessionCfg))

		// Accounts and sessions
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
		})

		// Letters
		r.Route("/letters", func(r chi.Router) {
			r.Get("/", letterHandler.List)
			r.Get("/{id}", letterHandler.Get)
			r.Post("/", letterHandler.Create)
			r.With(middleware.RequireUser()).Patch("/{id}", letterHandler.Update)
			r.With(middleware.RequireUser()).Delete("/{id}", letterHandler.Delete)
			r.With(middleware.RequireUser()).Post("/{id}/react", letterHandler.React)
		})

		// Profile (requires a session)
		r.With(middleware.RequireUser()).Get("/profile", profileHandler.Profile)
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
