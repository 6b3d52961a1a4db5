package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/ventas-ops/internal/domain/entity"
	"github.com/tu-usuario/ventas-ops/internal/domain/repository"
)

var _ repository.PermissionRepository = (*PermissionRepo)(nil)

// PermissionRepo matriz de permisos sobre PostgreSQL. La tabla
// app_permissions lleva UNIQUE (role, resource_key); el upsert resuelve el
// conflicto sobre ese par, así que cada escritura es atómica por regla.
type PermissionRepo struct {
	db querier
}

// NewPermissionRepository construye el adaptador.
func NewPermissionRepository(db querier) *PermissionRepo {
	return &PermissionRepo{db: db}
}

// Get devuelve la regla para (role, resourceKey), o (nil, nil) si no existe
// (la ausencia es denegación implícita, nunca un error).
func (r *PermissionRepo) Get(ctx context.Context, role, resourceKey string) (*entity.PermissionRule, error) {
	query := `
		SELECT role, resource_key, is_allowed, updated_at
		FROM app_permissions WHERE role = $1 AND resource_key = $2`
	var rule entity.PermissionRule
	err := r.db.QueryRow(ctx, query, role, resourceKey).Scan(
		&rule.Role, &rule.ResourceKey, &rule.IsAllowed, &rule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get permission rule: %w", err)
	}
	return &rule, nil
}

// List devuelve reglas ordenadas por resource_key y luego role (orden estable
// para pintar la matriz en el panel).
func (r *PermissionRepo) List(ctx context.Context, filter repository.PermissionFilter) ([]entity.PermissionRule, error) {
	query := `
		SELECT role, resource_key, is_allowed, updated_at
		FROM app_permissions
		WHERE ($1 = '' OR role = $1) AND ($2 = '' OR resource_key = $2)
		ORDER BY resource_key, role`
	rows, err := r.db.Query(ctx, query, filter.Role, filter.ResourceKey)
	if err != nil {
		return nil, fmt.Errorf("list permission rules: %w", err)
	}
	defer rows.Close()

	var list []entity.PermissionRule
	for rows.Next() {
		var rule entity.PermissionRule
		if err := rows.Scan(&rule.Role, &rule.ResourceKey, &rule.IsAllowed, &rule.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan permission rule: %w", err)
		}
		list = append(list, rule)
	}
	return list, rows.Err()
}

// Upsert inserta o sobrescribe is_allowed/updated_at; conflicto por
// (role, resource_key).
func (r *PermissionRepo) Upsert(ctx context.Context, rule entity.PermissionRule) error {
	query := `
		INSERT INTO app_permissions (role, resource_key, is_allowed, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (role, resource_key)
		DO UPDATE SET is_allowed = EXCLUDED.is_allowed, updated_at = EXCLUDED.updated_at`
	_, err := r.db.Exec(ctx, query, rule.Role, rule.ResourceKey, rule.IsAllowed, rule.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert permission rule: %w", err)
	}
	return nil
}

// InsertBatch inserta varias reglas (seeding). No pisa reglas existentes:
// ON CONFLICT DO NOTHING por si dos seeders corren a la vez.
func (r *PermissionRepo) InsertBatch(ctx context.Context, rules []entity.PermissionRule) error {
	query := `
		INSERT INTO app_permissions (role, resource_key, is_allowed, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (role, resource_key) DO NOTHING`
	for _, rule := range rules {
		if _, err := r.db.Exec(ctx, query, rule.Role, rule.ResourceKey, rule.IsAllowed, rule.UpdatedAt); err != nil {
			return fmt.Errorf("insert permission rule (%s, %s): %w", rule.Role, rule.ResourceKey, err)
		}
	}
	return nil
}

// CountByResourceKey cuenta reglas para una clave, sin importar el rol.
func (r *PermissionRepo) CountByResourceKey(ctx context.Context, resourceKey string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM app_permissions WHERE resource_key = $1`, resourceKey,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count permission rules: %w", err)
	}
	return count, nil
}
