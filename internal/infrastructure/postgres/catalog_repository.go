package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/ventas-ops/internal/domain"
	"github.com/tu-usuario/ventas-ops/internal/domain/entity"
	"github.com/tu-usuario/ventas-ops/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo catálogos (productos, estados, campañas) sobre PostgreSQL.
type CatalogRepo struct {
	db querier
}

// NewCatalogRepository construye el adaptador de catálogos.
func NewCatalogRepository(db querier) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// ListProducts lista todos los productos, ordenados por nombre.
func (r *CatalogRepo) ListProducts(ctx context.Context) ([]entity.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, is_active, created_at FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ListStatuses lista todos los estados de venta, ordenados por nombre.
func (r *CatalogRepo) ListStatuses(ctx context.Context) ([]entity.Status, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, color, is_pending, created_at FROM sale_statuses ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	defer rows.Close()

	var list []entity.Status
	for rows.Next() {
		var s entity.Status
		if err := rows.Scan(&s.ID, &s.Name, &s.Color, &s.IsPending, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan status: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// ListCampaigns lista todas las campañas, ordenadas por nombre.
func (r *CatalogRepo) ListCampaigns(ctx context.Context) ([]entity.Campaign, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, is_active, created_at FROM campaigns ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var list []entity.Campaign
	for rows.Next() {
		var c entity.Campaign
		if err := rows.Scan(&c.ID, &c.Name, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// GetProduct obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (r *CatalogRepo) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	var p entity.Product
	err := r.db.QueryRow(ctx,
		`SELECT id, name, is_active, created_at FROM products WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.IsActive, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetPendingStatus devuelve el estado marcado como pendiente, o (nil, nil) si
// ninguno lo está.
func (r *CatalogRepo) GetPendingStatus(ctx context.Context) (*entity.Status, error) {
	var s entity.Status
	err := r.db.QueryRow(ctx,
		`SELECT id, name, color, is_pending, created_at FROM sale_statuses WHERE is_pending = true LIMIT 1`,
	).Scan(&s.ID, &s.Name, &s.Color, &s.IsPending, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pending status: %w", err)
	}
	return &s, nil
}

// CreateProduct crea un producto.
func (r *CatalogRepo) CreateProduct(ctx context.Context, p *entity.Product) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO products (id, name, is_active, created_at) VALUES ($1, $2, $3, $4)`,
		p.ID, p.Name, p.IsActive, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// CreateStatus crea un estado de venta.
func (r *CatalogRepo) CreateStatus(ctx context.Context, s *entity.Status) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO sale_statuses (id, name, color, is_pending, created_at) VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.Name, s.Color, s.IsPending, s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert status: %w", err)
	}
	return nil
}

// CreateCampaign crea una campaña.
func (r *CatalogRepo) CreateCampaign(ctx context.Context, c *entity.Campaign) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO campaigns (id, name, is_active, created_at) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, c.IsActive, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert campaign: %w", err)
	}
	return nil
}
