package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/tair/shopfront/internal/catalog"
	"github.com/tair/shopfront/internal/shopping"
	httpDelivery "github.com/tair/shopfront/internal/shopping/delivery/http"
	"github.com/tair/shopfront/internal/shopping/repository"
	"github.com/tair/shopfront/pkg/auth"
	"github.com/tair/shopfront/pkg/database"
	"github.com/tair/shopfront/pkg/logger"
	"github.com/tair/shopfront/pkg/tracing"
)

func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "shopfront")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Msg("Starting shopfront")

	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Tracing disabled")
	}

	// An unusable local store is a startup-abort condition
	db, err := database.Open(database.Config{
		Driver: getEnv("DB_DRIVER", database.DriverSQLite),
		DSN:    getEnv("DB_DSN", "shopfront.db"),
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to open local store")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	if err := repository.AutoMigrate(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Local store initialized")

	client := catalog.NewClient(
		getEnv("CATALOG_BASE_URL", "https://dummyjson.com"),
		10*time.Second,
	)
	tokens := auth.NewTokenMaker(getEnv("SESSION_SECRET", "shopfront-dev-secret"), 24*time.Hour)

	app, err := shopping.InitializeApp(db, client, tokens, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer app.Store.Close()

	// Rehydrate favorites, cart and session before serving
	if err := app.Store.LoadPersisted(context.Background()); err != nil {
		logger.Logger.Warn().Err(err).Msg("Persisted state only partially restored")
	}

	// Catalog load happens in the background; browsing starts on the
	// sample set until the remote answer lands
	go func() {
		source := app.Store.LoadCatalog(context.Background())
		logger.Logger.Info().Str("source", string(source)).Msg("Catalog loaded")
	}()

	var redisClient *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: addr})
		logger.Logger.Info().Str("addr", addr).Msg("Catalog response cache enabled")
	}

	router := mux.NewRouter()
	app.Handler.RegisterMiddlewares(router)
	if redisClient != nil {
		router.Use(httpDelivery.CacheMiddleware(redisClient, httpDelivery.DefaultCacheConfig()))
	}
	app.Handler.RegisterRoutes(router)
	app.Handler.RegisterHealthCheck(router, sqlDB.Ping)
	router.Handle("/metrics", promhttp.Handler())

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(router)

	httpPort := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:    ":" + httpPort,
		Handler: handler,
	}

	go func() {
		logger.Logger.Info().Str("port", httpPort).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if tp != nil {
		if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Tracer shutdown failed")
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
