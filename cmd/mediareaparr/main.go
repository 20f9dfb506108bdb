package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ramonskie/mediareaparr/internal/api"
	"github.com/ramonskie/mediareaparr/internal/cache"
	"github.com/ramonskie/mediareaparr/internal/config"
	"github.com/ramonskie/mediareaparr/internal/models"
	"github.com/ramonskie/mediareaparr/internal/scheduler"
	"github.com/ramonskie/mediareaparr/internal/services"
	"github.com/ramonskie/mediareaparr/internal/storage"
	"github.com/ramonskie/mediareaparr/internal/utils"
	"github.com/rs/zerolog/log"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "", "Path to configuration file")
	runOnce := flag.Bool("run-once", false, "Execute a single cleanup run and exit")
	flag.Parse()

	// Initialize logger
	logLevel := getEnv("LOG_LEVEL", "info")
	logFormat := getEnv("LOG_FORMAT", "json")
	utils.InitLogger(logLevel, logFormat)

	log.Info().Msg("Starting Mediareaparr...")

	// Load configuration (priority: flag > env var > default)
	configPathValue := *configPath
	if configPathValue == "" {
		configPathValue = getEnv("CONFIG_PATH", "")
	}
	cfg, err := config.Load(configPathValue)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().
		Str("tag_label", cfg.Rule.TagLabel).
		Int("days_old", cfg.Rule.DaysOld).
		Bool("dry_run", cfg.Rule.DryRun).
		Str("cron", cfg.Schedule.Cron).
		Str("config_path", configPathValue).
		Msg("Configuration loaded")

	// Initialize storage
	dataPath := getEnv("DATA_PATH", "./data")
	runStore, err := storage.NewRunStore(dataPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize run-state storage")
	}
	log.Info().Int("history", len(runStore.History())).Msg("Run state loaded")

	// Initialize cache
	appCache := cache.New()

	// Initialize runner
	runner := services.NewRunner(runStore, appCache)

	if *runOnce {
		os.Exit(executeOnce(runner))
	}

	// Initialize JWT
	jwtSecret := getEnv("JWT_SECRET", "")
	jwtExpiry, _ := time.ParseDuration(getEnv("JWT_EXPIRATION", "24h"))
	utils.InitJWT(jwtSecret, jwtExpiry)

	// Initialize services
	authService := services.NewAuthService(cfg)

	// Start scheduler
	sched := scheduler.New(runner)
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}

	// Create router with dependencies
	router := api.NewRouter(&api.RouterDependencies{
		AuthService: authService,
		Runner:      runner,
		RunStore:    runStore,
		OnSettingsUpdated: func() {
			appCache.Flush()
			if err := sched.Restart(); err != nil {
				log.Error().Err(err).Msg("Failed to restart scheduler after settings update")
			}
		},
	})
	log.Info().Msg("Router initialized")

	// Start config watcher for hot-reload
	if err := config.StartWatcher(func() {
		log.Info().Msg("Configuration reloaded, clearing cache and restarting scheduler")
		appCache.Flush()
		if err := sched.Restart(); err != nil {
			log.Error().Err(err).Msg("Failed to restart scheduler after config reload")
		}
	}); err != nil {
		log.Warn().Err(err).Msg("Failed to start config watcher, hot-reload disabled")
	}

	// Optionally fire a run at startup
	if cfg.App.RunOnStartup {
		go func() {
			log.Info().Msg("Run on startup enabled, starting cleanup run")
			if _, err := runner.RunOnce(context.Background()); err != nil {
				log.Error().Err(err).Msg("Startup cleanup run failed")
			}
		}()
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().
			Str("address", addr).
			Msg("HTTP server starting")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	log.Info().Msg("Mediareaparr started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	sched.Stop()

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// executeOnce runs a single cleanup run and maps its outcome to an exit
// code. Only a failed run is a non-zero exit; a skipped run (tag missing)
// exits clean so cron wrappers do not page on it.
func executeOnce(runner *services.Runner) int {
	result, err := runner.RunOnce(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("Cleanup run failed")
	}

	if result.Status == models.RunStatusFailed {
		return 1
	}
	return 0
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
