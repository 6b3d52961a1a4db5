package repository

import (
	"context"

	"github.com/tu-usuario/ventas-ops/internal/domain/entity"
)

// PermissionFilter filtros opcionales para listar reglas.
type PermissionFilter struct {
	Role        string
	ResourceKey string
}

// PermissionRepository puerto de persistencia de la matriz de permisos.
// La tabla app_permissions es única por (role, resource_key); las reglas se
// apagan, no se borran, en operación normal.
type PermissionRepository interface {
	// Get devuelve la regla para (role, resourceKey) o (nil, nil) si no existe.
	Get(ctx context.Context, role, resourceKey string) (*entity.PermissionRule, error)
	// List devuelve reglas ordenadas por resource_key y luego role
	// (orden estable para pintar la matriz).
	List(ctx context.Context, filter PermissionFilter) ([]entity.PermissionRule, error)
	// Upsert inserta o sobrescribe is_allowed/updated_at; conflicto por
	// (role, resource_key). Atómico por regla.
	Upsert(ctx context.Context, rule entity.PermissionRule) error
	// InsertBatch inserta varias reglas (seeding de defaults).
	InsertBatch(ctx context.Context, rules []entity.PermissionRule) error
	// CountByResourceKey cuenta reglas existentes para una clave, sin importar
	// el rol. El seeding es no-op si devuelve > 0.
	CountByResourceKey(ctx context.Context, resourceKey string) (int, error)
}
