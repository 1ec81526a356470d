package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rookieryder/golf-backend/models"
)

// WeatherCache stores successful lookups. Cache failures are never fatal.
type WeatherCache interface {
	Get(ctx context.Context, key string) (*models.Weather, bool)
	Set(ctx context.Context, key string, w *models.Weather, ttl time.Duration)
}

type memoryEntry struct {
	weather   models.Weather
	expiresAt time.Time
}

type MemoryWeatherCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryWeatherCache() *MemoryWeatherCache {
	return &MemoryWeatherCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryWeatherCache) Get(_ context.Context, key string) (*models.Weather, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	w := e.weather
	return &w, true
}

func (c *MemoryWeatherCache) Set(_ context.Context, key string, w *models.Weather, ttl time.Duration) {
	if w == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	// чистим протухшие записи, чтобы карта не росла бесконечно
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = memoryEntry{weather: *w, expiresAt: now.Add(ttl)}
}

type RedisWeatherCache struct {
	client *redis.Client
}

func NewRedisWeatherCache(client *redis.Client) *RedisWeatherCache {
	return &RedisWeatherCache{client: client}
}

func (c *RedisWeatherCache) Get(ctx context.Context, key string) (*models.Weather, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.WarnContext(ctx, "weather cache read failed", slog.String("key", key), slog.Any("error", err))
		}
		return nil, false
	}
	var w models.Weather
	if err := json.Unmarshal(raw, &w); err != nil {
		slog.WarnContext(ctx, "weather cache entry corrupt", slog.String("key", key), slog.Any("error", err))
		return nil, false
	}
	return &w, true
}

func (c *RedisWeatherCache) Set(ctx context.Context, key string, w *models.Weather, ttl time.Duration) {
	raw, err := json.Marshal(w)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		slog.WarnContext(ctx, "weather cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}
