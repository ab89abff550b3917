package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(10))
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k", "v", time.Minute))

	var got string
	require.NoError(t, mc.Get(ctx, "k", &got))
	assert.Equal(t, "v", got)

	err := mc.Get(ctx, "absent", &got)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(10))
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k", "v", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	var got string
	assert.ErrorIs(t, mc.Get(ctx, "k", &got), ErrCacheMiss)

	ok, err := mc.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheDeleteAndExists(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(10))
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "a", "1", time.Minute))
	require.NoError(t, mc.Set(ctx, "b", "2", time.Minute))

	ok, err := mc.Exists(ctx, "a", "b")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, mc.Delete(ctx, "a", "b"))
	ok, err = mc.Exists(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheIncrement(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(10))
	ctx := context.Background()

	n, err := mc.Increment(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = mc.Increment(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, mc.Set(ctx, "str", "x", time.Minute))
	_, err = mc.Increment(ctx, "str")
	assert.Error(t, err)
}

func TestMemoryCacheTryLock(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(10))
	ctx := context.Background()

	ok, err := mc.TryLock(ctx, "scan:h1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = mc.TryLock(ctx, "scan:h1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, mc.Unlock(ctx, "scan:h1"))
	ok, err = mc.TryLock(ctx, "scan:h1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGenerateKey(t *testing.T) {
	assert.Equal(t, "chart:abc123", GenerateKey("chart", "abc123"))
	assert.Equal(t, "dasha:vimshottari:abc", GenerateKeyWithParams("dasha", "vimshottari", "abc"))
}
