package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/treido/treido-go/internal/pkg/env"
)

// SetupCache initializes the connection to the Redis-compatible cache server.
// A failed ping is logged; callers decide whether to run without a cache.
func SetupCache(cfg env.CacheConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr()).Msg("could not connect to cache")
		_ = client.Close()
		return nil, err
	}
	log.Info().Str("addr", cfg.Addr()).Str("pong", pong).Msg("connected to cache")
	return client, nil
}
