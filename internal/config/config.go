package kdrange

import (
	"github.com/go-sod/kdrange/internal/cache"
	"github.com/go-sod/kdrange/internal/database"
	"github.com/go-sod/kdrange/internal/httputil"
	"github.com/go-sod/kdrange/internal/index"
	"github.com/go-sod/kdrange/internal/ingest"
	"github.com/go-sod/kdrange/internal/search"
	"github.com/go-sod/kdrange/internal/setup"
)

var (
	_ setup.DatabaseConfigProvider = (*Config)(nil)
	_ setup.CacheConfigProvider    = (*Config)(nil)
	_ setup.IndexConfigProvider    = (*Config)(nil)
)

type Config struct {
	SrvAddr  string `envconfig:"KDR_ADDR" default:":8787"`
	GRPCAddr string `envconfig:"KDR_GRPC_ADDR" default:":8788"`
	// Zero means unlimited
	MaxConns         int    `envconfig:"KDR_MAX_CONNS" default:"0"`
	MetricsNamespace string `envconfig:"KDR_METRICS_NAMESPACE" default:"kdrange"`

	HTTP     httputil.ServerConfig
	Index    index.Config
	Ingest   ingest.Config
	Search   search.Config
	Database database.Config
	Cache    cache.Config
}

func (c *Config) DatabaseConfig() *database.Config {
	return &c.Database
}

func (c *Config) CacheConfig() *cache.Config {
	return &c.Cache
}

func (c *Config) IndexConfig() *index.Config {
	return &c.Index
}
