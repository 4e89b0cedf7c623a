package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"MedicApp/cache"
	"MedicApp/config"
	"MedicApp/database"
	"MedicApp/logger"
	"MedicApp/routes"
	"MedicApp/utils"
)

func main() {
	// Load configuration from config package
	cfg, err := config.Load()
	if err != nil {
		logger.New("info").Fatalf("failed to load configuration: %v", err)
	}

	log := logger.New(cfg.LogLevel)
	if !cfg.EnvFileLoaded {
		log.Warn(".env file not found, using system environment variables")
	}

	backend, err := openBackend(context.Background(), cfg, log)
	if err != nil {
		log.Fatalf("failed to initialize backend: %v", err)
	}

	store, err := openStore(context.Background(), cfg, log)
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}

	tokens, err := utils.NewTokenMaker(cfg.SymmetricKey, cfg.DeviceTokenTTL)
	if err != nil {
		log.Fatalf("failed to initialize device tokens: %v", err)
	}

	handler := routes.SetupRoutes(cfg, log, backend, store, tokens)

	// Configure and start the server
	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        handler,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
		IdleTimeout:    30 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		log.Infof("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listenAndServe(): %v", err)
		}
	}()

	// Graceful shutdown handling
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	// Create a context with a timeout for shutdown
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown failed: %+v", err)
	}

	wg.Wait() // Wait for all goroutines to finish before exiting
	log.Info("Server exited gracefully")
}

// openBackend connects the data access layer selected by BACKEND.
func openBackend(ctx context.Context, cfg *config.AppConfig, log *logger.Logger) (database.Backend, error) {
	var backend database.Backend
	switch cfg.Backend {
	case config.BackendPostgres:
		db, err := database.InitDB(ctx, cfg.DBURL, !cfg.IsProduction())
		if err != nil {
			return nil, err
		}
		backend = database.NewGormBackend(db)
	case config.BackendMemory:
		log.Warn("Using the in-memory backend, data is lost on restart")
		backend = database.NewMemoryBackend()
	default:
		supabase, err := database.NewSupabaseBackend(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			return nil, err
		}
		backend = supabase
	}
	return database.Instrument(backend, log), nil
}

// openStore uses Redis when REDIS_URL is set and process memory otherwise.
func openStore(ctx context.Context, cfg *config.AppConfig, log *logger.Logger) (cache.Store, error) {
	if cfg.RedisAddress == "" {
		log.Warn("REDIS_URL is not set, sessions and caches are kept in memory")
		return cache.NewMemoryCache(), nil
	}

	redisConfig, err := database.LoadRedisConfig(cfg.RedisAddress, log)
	if err != nil {
		return nil, err
	}
	client, err := database.NewRedisClient(ctx, redisConfig, log)
	if err != nil {
		return nil, err
	}
	database.MonitorRedisPool(client, log)
	return cache.NewCache(client)
}
