package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)

	var miss sample
	found, err := c.Get(ctx, "k", &miss)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "k", sample{Name: "wind", Value: 12.5}, time.Minute))

	var got sample
	found, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, sample{Name: "wind", Value: 12.5}, got)
}

func TestMemoryCacheExpires(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)
	require.NoError(t, c.Set(ctx, "k", sample{Name: "x"}, 10*time.Millisecond))

	time.Sleep(30 * time.Millisecond)

	var got sample
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
