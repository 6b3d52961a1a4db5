package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/ventas-ops/pkg/logger"
)

func newTestCache(t *testing.T, ttl time.Duration) (*PermissionCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewPermissionCache(client, ttl, logger.Nop()), mr
}

func TestPermissionCache_SetGet(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, ok := c.Get(ctx, "supervisor", "tab:sales")
	assert.False(t, ok, "entrada inexistente debe ser miss")

	c.Set(ctx, "supervisor", "tab:sales", true)
	allowed, ok := c.Get(ctx, "supervisor", "tab:sales")
	require.True(t, ok)
	assert.True(t, allowed)

	c.Set(ctx, "supervisor", "tab:reports", false)
	allowed, ok = c.Get(ctx, "supervisor", "tab:reports")
	require.True(t, ok)
	assert.False(t, allowed, "la denegación también se cachea")
}

func TestPermissionCache_Invalidate(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "digitacion", "field:sales.status_id", true)
	_, ok := c.Get(ctx, "digitacion", "field:sales.status_id")
	require.True(t, ok)

	c.Invalidate(ctx, "digitacion", "field:sales.status_id")
	_, ok = c.Get(ctx, "digitacion", "field:sales.status_id")
	assert.False(t, ok, "tras invalidar debe ser miss")
}

func TestPermissionCache_TTLExpiry(t *testing.T) {
	c, mr := newTestCache(t, time.Second)
	ctx := context.Background()

	c.Set(ctx, "representative", "tab:overview", true)
	_, ok := c.Get(ctx, "representative", "tab:overview")
	require.True(t, ok)

	mr.FastForward(2 * time.Second)
	_, ok = c.Get(ctx, "representative", "tab:overview")
	assert.False(t, ok, "expirado el TTL debe ser miss")
}

func TestPermissionCache_RedisDownDegradesToMiss(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "supervisor", "tab:sales", true)
	mr.Close()

	_, ok := c.Get(ctx, "supervisor", "tab:sales")
	assert.False(t, ok, "con Redis caído toda lectura es miss, nunca error")
}
