// backend-go/cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/analytics"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/api"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/auth"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/cache"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/config"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/repository"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/service"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/storage"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/telemetry"
	"github.com/andresuchdata/supplychain-whatif/backend-go/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.LogLevel)
	log := logger.Component("server")
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Initialize company store
	store, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("Failed to open company store")
	}
	repo := repository.NewSeeder(store, analytics.RecalculateAllMetrics)

	forecastCache, err := cache.NewForecastCache(cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, forecast cache disabled")
		forecastCache = cache.NewNoopForecastCache()
	}

	metrics := telemetry.NewRegistry()

	var snapshots *storage.SnapshotStore
	if cfg.ObjectStorage.Enabled() {
		objects, err := storage.NewS3Client(cfg.ObjectStorage)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize object storage")
		}
		snapshots = storage.NewSnapshotStore(objects, cfg.ObjectStorage.Prefix)
	}

	// Initialize services
	network := service.NewNetworkService(repo, service.Options{
		Cache:   forecastCache,
		Metrics: metrics,
		Admin: auth.Admin{
			Username: cfg.Auth.AdminUsername,
			Password: cfg.Auth.AdminPassword,
		},
	})

	persisted := make(chan struct{})
	go func() {
		defer close(persisted)
		network.RunPersistence(ctx)
	}()

	go func() {
		if err := network.Load(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to load companies")
			return
		}
		log.Info().Int("companies", len(network.Companies())).Msg("Companies loaded")
	}()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		Network:   network,
		Tokens:    tokens,
		Metrics:   metrics,
		Snapshots: snapshots,
	}, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Flush the last pending snapshot before exiting
	stop()
	<-persisted

	log.Info().Msg("Server exiting")
}
