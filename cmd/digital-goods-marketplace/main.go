package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/api/handlers"
	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/api/middleware"
	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/cache"
	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/config"
	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/health"
	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/metrics"
	repository "github.com/aaravmahajanofficial/digital-goods-marketplace/internal/repositories"
	service "github.com/aaravmahajanofficial/digital-goods-marketplace/internal/services"
	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/tracing"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := tracing.Setup(context.Background(), &cfg.Tracing)
	if err != nil {
		slog.Error("❌ Error setting up tracing", "error", err.Error())
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup; the facet cache is best-effort, so a missing Redis only
	// disables caching instead of failing startup.
	var facetCache cache.Cache

	redisOpt, err := redis.ParseURL(cfg.RedisConnect.GetDSN())
	if err != nil {
		slog.Warn("⚠️ Invalid Redis configuration, facet caching disabled", slog.String("error", err.Error()))
	} else {
		redisClient := redis.NewClient(redisOpt)

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			slog.Warn("⚠️ Redis unreachable, facet caching disabled", slog.String("error", err.Error()))
		} else {
			facetCache = cache.NewRedisCache(redisClient, &cfg.Cache)

			slog.Info("✅ Successfully connected to Redis")
		}

		cancel()
	}

	catalogService := service.NewCatalogService(repos.Catalog, facetCache, cfg.Cache.FacetTTL)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	platformService := service.NewPlatformService(repos.Platform)
	platformHandler := handlers.NewPlatformHandler(platformService)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating health handler", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("✅ Catalog services initialized", slog.String("env", cfg.Env))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/catalog/products", catalogHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/catalog/facets", catalogHandler.Facets())
	routerMux.HandleFunc("GET /api/v1/products/{slug}", catalogHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/platforms", platformHandler.ListPlatforms())
	routerMux.HandleFunc("GET /api/v1/platforms/{id}/categories", platformHandler.ListCategories())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "digital-goods-marketplace")

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracer shutdown encountered an issue", slog.String("error", err.Error()))
	}
}
