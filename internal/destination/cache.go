package destination

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"tourbooking/pkg/config"
)

const catalogKey = "cache:destinations"

// CachedCatalog serves the public catalog list through redis. Lookups by id
// always hit the database: the booking flow must snapshot authoritative
// pricing, never a cached copy.
type CachedCatalog struct {
	repo   *Repository
	client *redis.Client
	ttl    time.Duration
}

func NewCachedCatalog(repo *Repository, cfg config.RedisConfig) *CachedCatalog {
	return &CachedCatalog{
		repo:   repo,
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    time.Duration(cfg.DestinationsTTLSeconds) * time.Second,
	}
}

func (c *CachedCatalog) List(ctx context.Context) ([]Destination, error) {
	if data, err := c.client.Get(ctx, catalogKey).Bytes(); err == nil {
		var cached []Destination
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	} else if err != redis.Nil {
		// Cache being down should not take the catalog down with it.
		log.Printf("destination cache read failed: %v", err)
	}

	items, err := c.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(items); err == nil {
		if err := c.client.Set(ctx, catalogKey, payload, c.ttl).Err(); err != nil {
			log.Printf("destination cache write failed: %v", err)
		}
	}
	return items, nil
}

func (c *CachedCatalog) GetByID(ctx context.Context, id int64) (*Destination, error) {
	return c.repo.GetByID(ctx, id)
}
