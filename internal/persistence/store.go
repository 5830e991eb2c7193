package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/identity-service/internal/config"
	"github.com/spec-kit/identity-service/internal/repository"
)

// Stores holds the opened backends and the identity repository selected by
// STORE_DRIVER.
type Stores struct {
	Driver     string
	Postgres   *Postgres
	Redis      *Redis
	Identities repository.IdentityRepository
}

// Open connects the backend required by cfg.Store.Driver.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Stores, error) {
	stores := &Stores{Driver: cfg.Store.Driver}

	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pg, err := NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		stores.Postgres = pg
		if cfg.Postgres.RunMigrations {
			if err := RunMigrations(ctx, pg.Pool, cfg.Postgres.MigrationsDir, logger); err != nil {
				stores.Close()
				return nil, err
			}
		}
		stores.Identities = repository.NewIdentityRepository(pg.Pool)
	case config.StoreDriverRedis:
		rdb, err := NewRedis(ctx, cfg.Redis, true, logger)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		stores.Redis = rdb
		stores.Identities = repository.NewRedisIdentityRepository(rdb.Client, cfg.Redis.KeyPrefix)
	case config.StoreDriverMemory:
		logger.Warn("using in-memory identity store; data is lost on restart")
		stores.Identities = repository.NewMemoryIdentityRepository()
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	logger.Info("identity store ready", zap.String("driver", cfg.Store.Driver))
	return stores, nil
}

// Ping checks every opened backend and reports per-backend results.
func (s *Stores) Ping(ctx context.Context) map[string]error {
	results := map[string]error{}
	if s.Postgres != nil {
		results["postgres"] = s.Postgres.Ping(ctx)
	}
	if s.Redis != nil {
		results["redis"] = s.Redis.Ping(ctx)
	}
	return results
}

// Close releases every opened backend.
func (s *Stores) Close() {
	if s == nil {
		return
	}
	s.Postgres.Close()
	s.Redis.Close()
}
