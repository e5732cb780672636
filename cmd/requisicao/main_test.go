package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/develop-ac/requisicao-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCache struct {
	entries int
	err     error
}

func (c *countingCache) GetBatch(context.Context, string, []string) (*domain.BatchResult, bool, error) {
	return nil, false, nil
}

func (c *countingCache) SetBatch(context.Context, string, []string, *domain.BatchResult) error {
	c.entries++
	return nil
}

func (c *countingCache) InvalidateAll(context.Context) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n := c.entries
	c.entries = 0
	return n, nil
}

func TestFlushCache(t *testing.T) {
	c := &countingCache{entries: 3}
	var out bytes.Buffer

	require.NoError(t, flushCache(context.Background(), c, &out))
	assert.Equal(t, "3 cached batches removed\n", out.String())
	assert.Zero(t, c.entries)
}

func TestFlushCache_Error(t *testing.T) {
	var out bytes.Buffer
	err := flushCache(context.Background(), &countingCache{err: errors.New("NOAUTH")}, &out)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOAUTH")
	assert.Empty(t, out.String())
}
