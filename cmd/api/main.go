package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GoSim-25-26J-441/projects-catalog/config"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/auth"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/auth/cache"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/auth/repository"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/bootstrap"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/logging"
	projectrepo "github.com/GoSim-25-26J-441/projects-catalog/internal/projects/repository"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/storage/postgres"
)

const serviceName = "projects-catalog"

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logging.New("info", "development")
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logging.New(cfg.App.LogLevel, cfg.App.Environment)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database)})
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migrate schema")
	}

	db, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("open sql connection")
	}
	defer db.Close()

	deps := bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		Logger:         log,
		DB:             pool,
		Projects:       projectrepo.NewProjectRepository(db),
		Admins:         repository.NewAdminRepository(db),
		CORSOrigins:    cfg.CORS.AllowedOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
		MaxUploadBytes: cfg.Storage.MaxUploadBytes,
		LocalBaseURL:   cfg.Storage.LocalBaseURL,
	}

	redisClient, err := bootstrap.OpenRedis(ctx, cfg.Redis.URL)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable; continuing without admin cache")
	}
	if redisClient != nil {
		defer redisClient.Close()
		deps.AdminCache = cache.NewAdminCache(redisClient, cfg.Redis.AdminCacheTTL)
	}

	firebaseAuth, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize firebase")
	}
	if firebaseAuth != nil {
		deps.Verifier = firebaseAuth
		log.Info().Msg("firebase token verification enabled")
	}

	deps.Store, err = bootstrap.NewAttachmentStore(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("configure image storage")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           bootstrap.BuildRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("env", cfg.App.Environment).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
