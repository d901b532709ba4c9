package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/excel-analyzer-api/internal/api"
	"github.com/excel-analyzer-api/internal/config"
	"github.com/excel-analyzer-api/internal/models"
	"github.com/excel-analyzer-api/internal/service"
	"github.com/excel-analyzer-api/internal/storage"
	"github.com/excel-analyzer-api/pkg/logger"
)

func main() {
	// Local development convenience; missing .env is fine
	_ = godotenv.Load()

	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting Excel Analyzer API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect the blob store
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	blobs, err := storage.NewRedisStore(ctx, cfg.Storage.RedisURL, cfg.Storage.Namespace)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to blob store")
	}
	defer blobs.Close()

	// Load record collections and seed the super admin
	records := storage.NewRecords(blobs, log)
	if err := records.Load(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to load record collections")
	}
	seed := models.Account{
		ID:       cfg.Seed.ID,
		Name:     cfg.Seed.Name,
		Email:    cfg.Seed.Email,
		Password: cfg.Seed.Password,
	}
	if err := records.EnsureSuperAdmin(context.Background(), seed); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed super admin account")
	}

	// Restore the persisted session, if any
	session := storage.NewSession(blobs, log)
	if err := session.Restore(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to restore session")
	}

	// Initialize services
	services := service.NewServices(records, session, cfg, log)

	// Initialize router
	router := api.NewRouter(services, session, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
