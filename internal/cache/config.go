package cache

import "time"

type Config struct {
	// Empty address disables caching
	RedisAddr string        `envconfig:"KDR_REDIS_ADDR"`
	RedisDB   int           `envconfig:"KDR_REDIS_DB" default:"0"`
	TTL       time.Duration `envconfig:"KDR_CACHE_TTL" default:"5m"`
}
