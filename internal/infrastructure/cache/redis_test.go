package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedPage struct {
	IDs   []int64 `json:"ids"`
	Total int64   `json:"total"`
}

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewRedisCache(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Connect(context.Background()))
	return c, mr
}

func TestRedisCache_SetGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "species:list:a", cachedPage{IDs: []int64{1, 2}, Total: 2}, time.Minute))

	var got cachedPage
	found, err := c.Get(ctx, "species:list:a", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []int64{1, 2}, got.IDs)
	assert.Equal(t, int64(2), got.Total)
}

func TestRedisCache_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	var got cachedPage
	found, err := c.Get(context.Background(), "missing", &got)

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got.IDs)
}

func TestRedisCache_TTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	mr.FastForward(2 * time.Minute)

	var got string
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_DeletePattern(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	for _, k := range []string{"species:list:1", "species:list:2", "species:42"} {
		require.NoError(t, c.Set(ctx, k, cachedPage{}, time.Minute))
	}

	require.NoError(t, c.DeletePattern(ctx, "species:list:*"))

	assert.False(t, mr.Exists("species:list:1"))
	assert.False(t, mr.Exists("species:list:2"))
	assert.True(t, mr.Exists("species:42"))
}

func TestRedisCache_PingFailsWhenDown(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	assert.Error(t, c.Ping(context.Background()))
}
