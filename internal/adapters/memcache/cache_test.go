package memcache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review_insights/internal/adapters/memcache"
)

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := memcache.New()

	require.NoError(t, c.Set(ctx, "k", map[string]int{"a": 1}, 0))

	var got map[string]int
	ok, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, map[string]int{"a": 1}, got)
}

func TestMiss(t *testing.T) {
	var got string
	ok, err := memcache.New().Get(context.Background(), "absent", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDel(t *testing.T) {
	ctx := context.Background()
	c := memcache.New()
	require.NoError(t, c.Set(ctx, "k", "v", 0))
	require.NoError(t, c.Del(ctx, "k"))

	var got string
	ok, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCachedValueDoesNotAliasSource(t *testing.T) {
	ctx := context.Background()
	c := memcache.New()

	src := []string{"original"}
	require.NoError(t, c.Set(ctx, "k", src, 0))
	src[0] = "mutated"

	var got []string
	ok, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"original"}, got)
}
