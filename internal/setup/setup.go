package setup

import (
	"context"
	"fmt"

	"github.com/go-sod/kdrange/internal/cache"
	"github.com/go-sod/kdrange/internal/database"
	"github.com/go-sod/kdrange/internal/index"
	"github.com/go-sod/kdrange/internal/logging"
	"github.com/go-sod/kdrange/internal/srvenv"
	"github.com/kelseyhightower/envconfig"
)

type DatabaseConfigProvider interface {
	DatabaseConfig() *database.Config
}

type CacheConfigProvider interface {
	CacheConfig() *cache.Config
}

type IndexConfigProvider interface {
	IndexConfig() *index.Config
}

// Setup fills config from the environment and opens what the providers ask for.
func Setup(ctx context.Context, config interface{}) (*srvenv.SrvEnv, error) {
	logger := logging.FromContext(ctx)
	var serverEnvOpts []srvenv.Option
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	var (
		db       *database.DB
		resCache cache.Cache = cache.Noop{}
	)
	if dbConfigProvider, ok := config.(DatabaseConfigProvider); ok {
		logger.Info("Configuring db")
		dbFromEnv, err := database.NewFromEnv(ctx, dbConfigProvider.DatabaseConfig())
		if err != nil {
			return nil, fmt.Errorf("unable to connect to database: %v", err)
		}
		db = dbFromEnv
		serverEnvOpts = append(serverEnvOpts, srvenv.WithDatabase(db))
	}

	if cacheConfigProvider, ok := config.(CacheConfigProvider); ok {
		cfg := cacheConfigProvider.CacheConfig()
		if cfg.RedisAddr != "" {
			logger.Infof("Configuring redis cache at %s", cfg.RedisAddr)
		}
		resCache = cache.New(cfg)
		serverEnvOpts = append(serverEnvOpts, srvenv.WithCache(resCache))
	}

	if indexConfigProvider, ok := config.(IndexConfigProvider); ok {
		logger.Info("Configuring index")
		if db == nil {
			return nil, fmt.Errorf("index requires a database")
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithIndex(
			ProvideIndexFor(indexConfigProvider.IndexConfig(), db, resCache),
		))
	}

	return srvenv.New(serverEnvOpts...), nil
}

func ProvideIndexFor(cfg *index.Config, db *database.DB, c cache.Cache) index.ProvideFn {
	return func() (index.Manager, error) {
		opts := append(index.FromConfig(cfg), index.WithCache(c))
		return index.New(db, opts...)
	}
}
