package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/develop-ac/requisicao-backend/internal/config"
	"github.com/develop-ac/requisicao-backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	requisicaoKeyPrefix     = "requisicao:batch"
	requisicaoScanBatchSize = 100
)

// RequisicaoCache stores batch results per (window, product list).
type RequisicaoCache interface {
	GetBatch(ctx context.Context, windowStart string, codes []string) (*domain.BatchResult, bool, error)
	SetBatch(ctx context.Context, windowStart string, codes []string, result *domain.BatchResult) error
	// InvalidateAll drops every cached batch and reports how many were removed.
	InvalidateAll(ctx context.Context) (int, error)
}

type redisRequisicaoCache struct {
	*redisConn
}

type noopRequisicaoCache struct{}

func NewRequisicaoCache(cfg config.CacheConfig) (RequisicaoCache, error) {
	if !cfg.Enabled {
		return &noopRequisicaoCache{}, nil
	}

	conn, err := dialRedis(cfg)
	if err != nil {
		return nil, err
	}

	return &redisRequisicaoCache{redisConn: conn}, nil
}

func NewNoopRequisicaoCache() RequisicaoCache {
	return &noopRequisicaoCache{}
}

func (c *redisRequisicaoCache) GetBatch(ctx context.Context, windowStart string, codes []string) (*domain.BatchResult, bool, error) {
	key := buildRequisicaoKey(windowStart, codes)

	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var result domain.BatchResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, false, fmt.Errorf("decode requisicao cache: %w", err)
	}

	return &result, true, nil
}

func (c *redisRequisicaoCache) SetBatch(ctx context.Context, windowStart string, codes []string, result *domain.BatchResult) error {
	key := buildRequisicaoKey(windowStart, codes)
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode requisicao cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisRequisicaoCache) InvalidateAll(ctx context.Context) (int, error) {
	return c.purge(ctx, requisicaoKeyPrefix+":*", requisicaoScanBatchSize)
}

func (n *noopRequisicaoCache) GetBatch(ctx context.Context, windowStart string, codes []string) (*domain.BatchResult, bool, error) {
	return nil, false, nil
}

func (n *noopRequisicaoCache) SetBatch(ctx context.Context, windowStart string, codes []string, result *domain.BatchResult) error {
	return nil
}

func (n *noopRequisicaoCache) InvalidateAll(ctx context.Context) (int, error) {
	return 0, nil
}

// buildRequisicaoKey keeps the submitted order in the hash: results are
// returned in input order, so reordered batches are different entries.
func buildRequisicaoKey(windowStart string, codes []string) string {
	raw := "window=" + windowStart + "|codes=" + strings.Join(codes, "\x1f")
	sum := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", requisicaoKeyPrefix, hex.EncodeToString(sum[:]))
}
