package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/ventas-ops/internal/application/dto"
	"github.com/tu-usuario/ventas-ops/internal/domain"
	"github.com/tu-usuario/ventas-ops/internal/domain/entity"
	"github.com/tu-usuario/ventas-ops/internal/domain/repository"
)

// CatalogUseCase catálogos referenciados por sales (productos, estados,
// campañas). También resuelve al arrancar el estado pendiente que usa el
// motor de auto-asignación.
type CatalogUseCase struct {
	repo repository.CatalogRepository
}

// NewCatalogUseCase construye el caso de uso de catálogos.
func NewCatalogUseCase(repo repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo}
}

// ResolvePendingStatusID devuelve el ID del estado pendiente del catálogo.
// Si no hay ninguno marcado devuelve "" (el motor contará cero cargas y el
// ranking degenera en orden por ID; mejor que fallar el arranque).
func (uc *CatalogUseCase) ResolvePendingStatusID(ctx context.Context) (string, error) {
	st, err := uc.repo.GetPendingStatus(ctx)
	if err != nil {
		return "", err
	}
	if st == nil {
		return "", nil
	}
	return st.ID, nil
}

// ListProducts lista productos.
func (uc *CatalogUseCase) ListProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ProductResponse{ID: p.ID, Name: p.Name, IsActive: p.IsActive, CreatedAt: p.CreatedAt})
	}
	return out, nil
}

// ListStatuses lista estados.
func (uc *CatalogUseCase) ListStatuses(ctx context.Context) ([]dto.StatusResponse, error) {
	list, err := uc.repo.ListStatuses(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StatusResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.StatusResponse{ID: s.ID, Name: s.Name, Color: s.Color, IsPending: s.IsPending, CreatedAt: s.CreatedAt})
	}
	return out, nil
}

// ListCampaigns lista campañas.
func (uc *CatalogUseCase) ListCampaigns(ctx context.Context) ([]dto.CampaignResponse, error) {
	list, err := uc.repo.ListCampaigns(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CampaignResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CampaignResponse{ID: c.ID, Name: c.Name, IsActive: c.IsActive, CreatedAt: c.CreatedAt})
	}
	return out, nil
}

// CreateProduct alta de producto.
func (uc *CatalogUseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	p := &entity.Product{ID: uuid.New().String(), Name: in.Name, IsActive: true, CreatedAt: time.Now()}
	if err := uc.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return &dto.ProductResponse{ID: p.ID, Name: p.Name, IsActive: p.IsActive, CreatedAt: p.CreatedAt}, nil
}

// CreateStatus alta de estado.
func (uc *CatalogUseCase) CreateStatus(ctx context.Context, in dto.CreateStatusRequest) (*dto.StatusResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	s := &entity.Status{ID: uuid.New().String(), Name: in.Name, Color: in.Color, IsPending: in.IsPending, CreatedAt: time.Now()}
	if err := uc.repo.CreateStatus(ctx, s); err != nil {
		return nil, err
	}
	return &dto.StatusResponse{ID: s.ID, Name: s.Name, Color: s.Color, IsPending: s.IsPending, CreatedAt: s.CreatedAt}, nil
}

// CreateCampaign alta de campaña.
func (uc *CatalogUseCase) CreateCampaign(ctx context.Context, in dto.CreateCampaignRequest) (*dto.CampaignResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.Campaign{ID: uuid.New().String(), Name: in.Name, IsActive: true, CreatedAt: time.Now()}
	if err := uc.repo.CreateCampaign(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CampaignResponse{ID: c.ID, Name: c.Name, IsActive: c.IsActive, CreatedAt: c.CreatedAt}, nil
}
