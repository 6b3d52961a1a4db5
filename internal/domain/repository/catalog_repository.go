package repository

import (
	"context"

	"github.com/tu-usuario/ventas-ops/internal/domain/entity"
)

// CatalogRepository puerto de los catálogos referenciados por sales
// (productos, estados, campañas). Lecturas simples; las ventas los apuntan
// por ID.
type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	ListStatuses(ctx context.Context) ([]entity.Status, error)
	ListCampaigns(ctx context.Context) ([]entity.Campaign, error)
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	// GetPendingStatus devuelve el estado marcado como pendiente, o (nil, nil)
	// si ninguno lo está.
	GetPendingStatus(ctx context.Context) (*entity.Status, error)
	CreateProduct(ctx context.Context, p *entity.Product) error
	CreateStatus(ctx context.Context, s *entity.Status) error
	CreateCampaign(ctx context.Context, c *entity.Campaign) error
}
