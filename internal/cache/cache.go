package cache

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-sod/kdrange/internal/geom"
	"github.com/go-sod/kdrange/internal/util"
	"github.com/google/uuid"
)

const keyPrefix = "kdrange:search:"

// Cache keeps range query results. Datasets never change after they are stored,
// so a key only depends on the dataset id and the query box.
type Cache interface {
	Get(ctx context.Context, key string) ([]geom.Point, bool, error)
	Set(ctx context.Context, key string, points []geom.Point) error
	Close() error
}

func Key(datasetID uuid.UUID, min, max geom.Point) string {
	sum := util.HashVectors(min, max)
	return keyPrefix + datasetID.String() + ":" + hex.EncodeToString(sum[:])
}

// New returns a redis cache, or a no-op one when no address is configured.
func New(cfg *Config) Cache {
	if cfg.RedisAddr == "" {
		return Noop{}
	}
	return &redisCache{
		client: redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB}),
		ttl:    cfg.TTL,
	}
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func (c *redisCache) Get(ctx context.Context, key string) ([]geom.Point, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	var points []geom.Point
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, false, fmt.Errorf("json unmarshal error, %q", err)
	}
	return points, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, points []geom.Point) error {
	if points == nil {
		points = []geom.Point{}
	}
	data, err := json.Marshal(points)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *redisCache) Close() error {
	return c.client.Close()
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]geom.Point, bool, error) {
	return nil, false, nil
}

func (Noop) Set(context.Context, string, []geom.Point) error {
	return nil
}

func (Noop) Close() error {
	return nil
}
