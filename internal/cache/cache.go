// Package cache stores computed results keyed by a normalized request.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
)

// Cache is a byte store with per-entry expiry. A miss is reported with ok ==
// false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// Config selects and configures a cache backend.
type Config struct {
	Backend       string `yaml:"backend"` // none, memory, redis
	TTLSeconds    int    `yaml:"ttlSeconds"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDB"`
	KeyPrefix     string `yaml:"keyPrefix"`
}

// TTL returns the configured expiry, falling back to the default.
func (c Config) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return constants.DefaultCacheTTLSeconds * time.Second
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

// New builds the backend named by cfg.Backend. An empty backend disables
// caching.
func New(cfg Config) (Cache, error) {
	backend := strings.TrimSpace(cfg.Backend)
	if backend == "" {
		backend = constants.CacheBackendNone
	}
	if err := validation.ValidateCacheBackend(backend); err != nil {
		return nil, err
	}

	switch backend {
	case constants.CacheBackendMemory:
		return NewMemory(cfg.TTL()), nil
	case constants.CacheBackendRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis cache requires redisAddr")
		}
		return NewRedis(cfg), nil
	default:
		return Nop{}, nil
	}
}

// Nop never stores anything.
type Nop struct{}

// Get always misses.
func (Nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards value.
func (Nop) Set(context.Context, string, []byte) error { return nil }
