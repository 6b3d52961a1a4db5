// Package cache implementa la caché Redis de evaluaciones de permisos.
// Es estrictamente opcional: si Redis no está configurado el evaluador
// consulta PostgreSQL directo.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/tu-usuario/ventas-ops/internal/application/authz"
	"github.com/tu-usuario/ventas-ops/pkg/logger"
)

var _ authz.RuleCache = (*PermissionCache)(nil)

// PermissionCache guarda decisiones (role, resource_key) -> "1"/"0" con TTL.
// Los fallos de Redis degradan a cache-miss: la fuente de verdad siempre es
// la base de datos.
type PermissionCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewPermissionCache construye la caché.
func NewPermissionCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *PermissionCache {
	return &PermissionCache{client: client, ttl: ttl, log: log}
}

func cacheKey(role, resourceKey string) string {
	return fmt.Sprintf("perm:%s|%s", role, resourceKey)
}

// Get devuelve la decisión cacheada; ok=false si no está o Redis falla.
func (c *PermissionCache) Get(ctx context.Context, role, resourceKey string) (bool, bool) {
	val, err := c.client.Get(ctx, cacheKey(role, resourceKey)).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("caché de permisos: fallo en Get")
		}
		return false, false
	}
	return val == "1", true
}

// Set guarda la decisión con el TTL configurado.
func (c *PermissionCache) Set(ctx context.Context, role, resourceKey string, allowed bool) {
	val := "0"
	if allowed {
		val = "1"
	}
	if err := c.client.Set(ctx, cacheKey(role, resourceKey), val, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("caché de permisos: fallo en Set")
	}
}

// Invalidate borra la entrada; se llama tras cada upsert de la regla.
func (c *PermissionCache) Invalidate(ctx context.Context, role, resourceKey string) {
	if err := c.client.Del(ctx, cacheKey(role, resourceKey)).Err(); err != nil {
		c.log.Warn().Err(err).Msg("caché de permisos: fallo en Invalidate")
	}
}
