package viewcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_Cooldown(t *testing.T) {
	c := NewMemoryCache(time.Hour, 5*time.Minute)
	ctx := context.Background()
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, c.ShouldAccept(ctx, "m1", "v1", t0))
	c.Record(ctx, "m1", "v1", t0)

	assert.False(t, c.ShouldAccept(ctx, "m1", "v1", t0.Add(59*time.Minute)))
	assert.True(t, c.ShouldAccept(ctx, "m1", "v2", t0))
	assert.True(t, c.ShouldAccept(ctx, "m2", "v1", t0))
	assert.True(t, c.ShouldAccept(ctx, "m1", "v1", t0.Add(time.Hour)))
}

func TestMemoryCache_Sweep(t *testing.T) {
	c := NewMemoryCache(time.Hour, 5*time.Minute)
	ctx := context.Background()
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	c.Record(ctx, "m1", "old", t0)
	c.Record(ctx, "m1", "fresh", t0.Add(4*time.Minute))

	assert.Equal(t, 1, c.Sweep(t0.Add(6*time.Minute)))
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.ShouldAccept(ctx, "m1", "old", t0.Add(6*time.Minute)))
	assert.False(t, c.ShouldAccept(ctx, "m1", "fresh", t0.Add(6*time.Minute)))
}

func TestMemoryCache_Lifecycle(t *testing.T) {
	c := NewMemoryCache(time.Hour, 10*time.Millisecond)
	base := time.Now()
	c.now = func() time.Time { return base.Add(time.Hour) }
	require.NoError(t, c.Init())
	require.NoError(t, c.Init())

	c.Record(context.Background(), "m1", "v1", base)
	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)

	c.Shutdown()
	c.Shutdown()
}
