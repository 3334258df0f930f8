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

	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/api"
	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/auth"
	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/config"
	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/database"
	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/logger"
	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/metrics"
	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/monitoring"
	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(logger.Options{
		Level:      cfg.LogLevel,
		Production: cfg.IsProduction(),
		File:       cfg.LogFile,
	})

	// Ensure the backup directory exists
	if err := os.MkdirAll(cfg.BackupPath, 0755); err != nil {
		log.Fatal().Err(err).Str("path", cfg.BackupPath).Msg("Failed to create backup directory")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up auth
	whitelist, err := auth.NewIPWhitelist(cfg.AdminIPWhitelist, cfg.TrustProxy)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid admin IP whitelist")
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret)

	// Set up metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// Set up services
	auditService := services.NewAuditService(db)
	backupService := services.NewBackupService(cfg.BackupPath)

	// Set up and run the backup inventory scheduler
	scheduler, err := monitoring.NewScheduler(cfg.BackupAuditSchedule, backupService, auditService, m)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up scheduler")
	}
	scheduler.Start()

	// Set up router
	router := api.NewRouter(api.Deps{
		BackupService: backupService,
		AuditService:  auditService,
		Whitelist:     whitelist,
		Tokens:        tokens,
		Metrics:       m,
		Gatherer:      registry,
		BackupPath:    cfg.BackupPath,
	})

	// Set up server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("env", cfg.AppEnv).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
