// Package main is the entrypoint for the Mealdex API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/mealdex/mealdex/internal/auth"
	"github.com/mealdex/mealdex/internal/config"
	"github.com/mealdex/mealdex/internal/handler"
	"github.com/mealdex/mealdex/internal/mealdb"
	"github.com/mealdex/mealdex/internal/middleware"
	"github.com/mealdex/mealdex/internal/repository"
	"github.com/mealdex/mealdex/internal/server"
	"github.com/mealdex/mealdex/internal/service"
)

func main() {
	ctx := context.Background()

	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	// Auth plumbing
	tokens := auth.NewTokenService(cfg.JWTSecret)
	resolver := auth.NewSessionResolver(tokens, repo)

	// Upstream recipe gateway
	recipeCache := mealdb.NewCache(cfg.RecipeCacheTTL)
	gateway := mealdb.NewGateway(cfg.MealDBBaseURL, recipeCache, nil, logger)

	// Services
	authService := service.NewAuthService(repo, tokens)
	favoriteService := service.NewFavoriteService(repo)
	activityService := service.NewActivityService(repo)

	// Handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo)
	authHandler := handler.NewAuthHandler(authService, logger, cfg.IsProduction())
	recipeHandler := handler.NewRecipeHandler(gateway, logger)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService, logger)
	activityHandler := handler.NewActivityHandler(activityService, logger)

	r := setupRouter(
		h, healthHandler, authHandler, recipeHandler, favoriteHandler, activityHandler,
		resolver, cfg, logger,
	)

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"mealdb_base_url", cfg.MealDBBaseURL,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
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
	authHandler *handler.AuthHandler,
	recipeHandler *handler.RecipeHandler,
	favoriteHandler *handler.FavoriteHandler,
	activityHandler *handler.ActivityHandler,
	resolver *auth.SessionResolver,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))
	r.Use(chimiddleware.Timeout(60 * time.Second))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	// Health endpoints (no auth required)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	// Root info endpoint
	r.Get("/", h.Hello)

	r.Route("/api", func(r chi.Router) {
		// Every API route sees the resolved session; anonymous passes through.
		r.Use(middleware.Session(resolver))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/session", authHandler.Session)
			r.Get("/check", authHandler.Check)
		})

		// Recipe browsing is public.
		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", recipeHandler.All)
			r.Get("/featured", recipeHandler.Featured)
			r.Get("/search", recipeHandler.Search)
			r.Get("/categories", recipeHandler.Categories)
			r.Get("/areas", recipeHandler.Areas)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Use(middleware.RequireAuth())
			r.Get("/", favoriteHandler.List)
			r.Post("/", favoriteHandler.Toggle)
		})

		r.Route("/activities", func(r chi.Router) {
			r.Use(middleware.RequireAuth())
			r.Get("/", activityHandler.Recent)
			r.Post("/", activityHandler.Record)
		})
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
