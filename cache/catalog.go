// Package cache keeps a read-through copy of the service catalog in Redis.
// The catalog is only written by seeding, so a short TTL is enough to pick up
// changes without explicit invalidation.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sittawut/doctors-portal/models"
)

const (
	servicesKey     = "doctors-portal:services"
	serviceNamesKey = "doctors-portal:services:names"
)

// CatalogSource is the store the cache reads through to.
type CatalogSource interface {
	List(ctx context.Context) ([]models.Service, error)
	ListNames(ctx context.Context) ([]models.ServiceName, error)
}

type Catalog struct {
	source CatalogSource
	rdb    *redis.Client
	ttl    time.Duration
}

func NewCatalog(source CatalogSource, rdb *redis.Client, ttl time.Duration) *Catalog {
	return &Catalog{source: source, rdb: rdb, ttl: ttl}
}

func (c *Catalog) List(ctx context.Context) ([]models.Service, error) {
	return readThrough(ctx, c, servicesKey, c.source.List)
}

func (c *Catalog) ListNames(ctx context.Context) ([]models.ServiceName, error) {
	return readThrough(ctx, c, serviceNamesKey, c.source.ListNames)
}

// Invalidate drops the cached catalog, used after seeding.
func (c *Catalog) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, servicesKey, serviceNamesKey).Err()
}

// readThrough serves key from Redis when possible. Redis failures are logged
// and fall back to the source; they never fail the request.
func readThrough[T any](ctx context.Context, c *Catalog, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var items []T
		jsonErr := json.Unmarshal(raw, &items)
		if jsonErr == nil {
			return items, nil
		}
		log.Printf("[CatalogCache] discarding corrupt %s entry: %v", key, jsonErr)
	case !errors.Is(err, redis.Nil):
		log.Printf("[CatalogCache] get %s: %v", key, err)
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(items); err == nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			log.Printf("[CatalogCache] set %s: %v", key, err)
		}
	}
	return items, nil
}
