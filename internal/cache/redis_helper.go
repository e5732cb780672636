package cache

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/develop-ac/requisicao-backend/internal/config"
	"github.com/redis/go-redis/v9"
)

const (
	defaultEntryTTL = 5 * time.Minute
	dialTimeout     = 5 * time.Second
)

// redisConn is a verified redis client plus the TTL applied to every entry.
type redisConn struct {
	client *redis.Client
	ttl    time.Duration
}

func dialRedis(cfg config.CacheConfig) (*redisConn, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}

	return &redisConn{client: client, ttl: entryTTL(cfg.TTLSeconds)}, nil
}

func entryTTL(seconds int) time.Duration {
	if seconds <= 0 {
		return defaultEntryTTL
	}
	return time.Duration(seconds) * time.Second
}

// redisOptions prefers REDIS_URL and falls back to host/port/password/db.
func redisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opts, nil
	}

	host, port := cfg.RedisHost, cfg.RedisPort
	if host == "" {
		host = "127.0.0.1"
	}
	if port == "" {
		port = "6379"
	}
	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

// purge unlinks every key matching pattern, count keys per SCAN page,
// and returns how many were removed.
func (c *redisConn) purge(ctx context.Context, pattern string, count int64) (int, error) {
	removed := 0
	iter := c.client.Scan(ctx, 0, pattern, count).Iterator()
	batch := make([]string, 0, count)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := c.client.Unlink(ctx, batch...).Result()
		if err != nil {
			return fmt.Errorf("redis unlink: %w", err)
		}
		removed += int(n)
		batch = batch[:0]
		return nil
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if int64(len(batch)) >= count {
			if err := flush(); err != nil {
				return removed, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("redis scan %s: %w", pattern, err)
	}
	if err := flush(); err != nil {
		return removed, err
	}
	return removed, nil
}
