package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Client caches rendered list responses. A nil *Client is a valid no-op
// cache, so callers never have to branch on whether caching is configured.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{rdb: rdb, ttl: cfg.TTL}, nil
}

func eventsListKey(page, limit int) string {
	return fmt.Sprintf("events:list:%d:%d", page, limit)
}

// GetEventsListRaw returns the cached JSON body for an unfiltered events
// page. Raw bytes avoid an unmarshal/marshal round trip on the hot path.
func (c *Client) GetEventsListRaw(ctx context.Context, page, limit int) ([]byte, error) {
	if c == nil {
		return nil, redis.Nil
	}
	return c.rdb.Get(ctx, eventsListKey(page, limit)).Bytes()
}

// SetEventsList stores a rendered events page. Failures are swallowed;
// the cache is never allowed to fail a request.
func (c *Client) SetEventsList(ctx context.Context, page, limit int, payload any) {
	if c == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, eventsListKey(page, limit), data, c.ttl)
}

// InvalidateEventsList drops all cached events pages after a write
func (c *Client) InvalidateEventsList(ctx context.Context) {
	if c == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, "events:list:*", 100).Iterator()
	for iter.Next(ctx) {
		c.rdb.Del(ctx, iter.Val())
	}
}

func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
