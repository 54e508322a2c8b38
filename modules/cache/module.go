package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/example/storefront-demo/config"
	"github.com/go-monolith/mono"
	"github.com/redis/go-redis/v9"
)

// Module owns the Redis connection. With caching disabled it hands out Noop.
type Module struct {
	cfg    config.CacheConfig
	client *redis.Client
	cache  *RedisCache
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates the cache module. The Redis client is created eagerly but
// does not dial until Start.
func NewModule(cfg config.CacheConfig) *Module {
	m := &Module{cfg: cfg}
	if cfg.Enabled() {
		m.client = redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			PoolSize:     50,
			MinIdleConns: 5,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		m.cache = New(m.client, cfg.Prefix, cfg.TTL)
	}
	return m
}

// Name returns the module name.
func (m *Module) Name() string {
	return "cache"
}

// Service returns the cache for other modules to use.
func (m *Module) Service() CacheService {
	if m.cache == nil {
		return Noop{}
	}
	return m.cache
}

// Start verifies the Redis connection.
func (m *Module) Start(ctx context.Context) error {
	if m.client == nil {
		log.Println("[cache] REDIS_ADDR not set, caching disabled")
		return nil
	}
	if err := m.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Printf("[cache] Connected to Redis at %s (prefix: %s, TTL: %s)", m.cfg.RedisAddr, m.cfg.Prefix, m.cfg.TTL)
	return nil
}

// Stop closes the Redis connection.
func (m *Module) Stop(_ context.Context) error {
	if m.client == nil {
		return nil
	}
	if err := m.client.Close(); err != nil {
		log.Printf("[cache] Error closing Redis connection: %v", err)
		return fmt.Errorf("failed to close Redis connection: %w", err)
	}
	log.Println("[cache] Module stopped")
	return nil
}

// Health reports Redis reachability.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.cache == nil {
		return mono.HealthStatus{
			Healthy: true,
			Message: "disabled",
		}
	}
	if err := m.cache.Ping(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("redis ping failed: %v", err),
		}
	}
	s := m.cache.Stats()
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"addr":     m.cfg.RedisAddr,
			"hit_rate": s.HitRate,
		},
	}
}
