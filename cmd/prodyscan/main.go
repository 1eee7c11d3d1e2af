package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"github.com/prodyscan/ProdyScan/internal/analyzer"
	"github.com/prodyscan/ProdyScan/internal/api"
	"github.com/prodyscan/ProdyScan/internal/cache"
	"github.com/prodyscan/ProdyScan/internal/config"
	"github.com/prodyscan/ProdyScan/internal/fetcher"
	"github.com/prodyscan/ProdyScan/internal/ratelimit"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	// Setup logging
	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cache backend: Redis when configured, in-memory otherwise.
	var store cache.Store
	if cfg.Cache.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Error("failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		store = cache.NewRedisStore(redisClient, cfg.Cache.TTL)
		logger.Info("using redis cache", "addr", cfg.Cache.RedisAddr)
	} else {
		store = cache.NewMemoryStore(cfg.Cache.TTL)
		logger.Info("using in-memory cache", "ttl", cfg.Cache.TTL)
	}

	// Politeness delays between outbound fetches.
	var limiter ratelimit.Limiter = ratelimit.NopLimiter{}
	if cfg.Fetcher.DelayMax > 0 {
		limiter = ratelimit.NewSimpleLimiter(cfg.Fetcher.DelayMin, cfg.Fetcher.DelayMax)
	}

	f := fetcher.New(
		fetcher.WithLimiter(limiter),
		fetcher.WithTimeout(cfg.Fetcher.Timeout),
	)

	a := analyzer.New(f, store, analyzer.WithDomain(cfg.Market.Domain))
	handlers := api.NewHandlers(a, logger)

	// Setup Chi router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", handlers.Health)

	// API Routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", handlers.Analyze)
		r.Post("/supplier", handlers.Supplier)
		r.Get("/track/{code}", handlers.Track)
		r.Get("/search-url", handlers.SearchURL)
		// Answer 503 until a describer / similarity backend is configured.
		r.Post("/describe", handlers.Describe)
		r.Post("/similar", handlers.Similar)
	})

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down server...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	logger.Info("server starting", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
