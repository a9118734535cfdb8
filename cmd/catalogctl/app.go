package main

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/projects-catalog/config"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/auth/cache"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/auth/domain"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/auth/repository"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/auth/service"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/bootstrap"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/logging"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/storage/postgres"
)

// AdminManager is the admin set as operated from the command line.
type AdminManager interface {
	Grant(ctx context.Context, ssoID string) (*domain.Admin, error)
	Revoke(ctx context.Context, ssoID string) error
	Get(ctx context.Context, ssoID string) (*domain.Admin, error)
	List(ctx context.Context) ([]domain.Admin, error)
}

// App holds the connectors used by the commands. Tests replace them.
type App struct {
	migrate    func(ctx context.Context) error
	openAdmins func(ctx context.Context) (AdminManager, func(), error)
}

func newApp() *App {
	return &App{
		migrate:    migrateDatabase,
		openAdmins: openAdminService,
	}
}

func migrateDatabase(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database)})
	if err != nil {
		return err
	}
	defer pool.Close()

	return postgres.Migrate(ctx, pool)
}

// openAdminService connects to Postgres and, when configured, Redis so that
// revocations also drop cached decisions.
func openAdminService(ctx context.Context) (AdminManager, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logging.New(cfg.App.LogLevel, cfg.App.Environment)

	db, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	closers := []func(){func() { db.Close() }}
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var invalidator service.CacheInvalidator
	client, err := bootstrap.OpenRedis(ctx, cfg.Redis.URL)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable; cached admin decisions expire on their own")
	}
	if client != nil {
		closers = append(closers, func() { client.Close() })
		invalidator = cache.NewAdminCache(client, cfg.Redis.AdminCacheTTL)
	}

	return service.NewAdminService(repository.NewAdminRepository(db), invalidator), closeAll, nil
}
