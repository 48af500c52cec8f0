package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NewStoreWithFallback returns a Redis-backed store when client is set and
// answers a ping, otherwise an in-process MemoryStore of memorySize entries.
func NewStoreWithFallback(ctx context.Context, client *redis.Client, memorySize int, log zerolog.Logger) (Store, error) {
	log = log.With().Str("component", "cache").Logger()

	if client != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		err := client.Ping(pingCtx).Err()
		if err == nil {
			log.Info().Str("backend", "redis").Msg("Cache store ready")
			return NewRedisStore(client), nil
		}
		log.Warn().Err(err).Msg("Redis unreachable, falling back to in-memory cache")
	}

	mem, err := NewMemoryStore(memorySize)
	if err != nil {
		return nil, err
	}
	log.Info().Str("backend", "memory").Int("size", memorySize).Msg("Cache store ready")
	return mem, nil
}
