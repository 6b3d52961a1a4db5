package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/ventas-ops/internal/domain/entity"
)

// SaleFilter filtros del listado de ventas. UserID restringe a las ventas
// del agente (roles representative/agent solo ven las propias). OSMadre,
// OSHija y ContactNumber son búsquedas por fragmento, sin distinguir
// mayúsculas. EndDate es exclusivo: el caller entrega el inicio del día
// siguiente para cubrir el día final completo.
type SaleFilter struct {
	UserID        string
	StartDate     *time.Time
	EndDate       *time.Time
	OSMadre       string
	OSHija        string
	ContactNumber string
	ConceptID     string
	StatusID      string
	Limit         int
	Offset        int
}

// SaleFieldUpdate actualización de una sola columna editable de sales.
// Cuando Field es status_id se estampan además StatusUpdatedBy/At.
type SaleFieldUpdate struct {
	SaleID          string
	Field           string
	Value           any
	StatusUpdatedBy string
	StatusUpdatedAt *time.Time
}

// SaleRepository puerto de persistencia para ventas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, int, error)
	// UpdateField actualiza una única columna; devuelve domain.ErrNotFound si
	// la venta no existe.
	UpdateField(ctx context.Context, upd SaleFieldUpdate) error
	// CountPendingAssigned cuenta ventas asignadas al usuario con el estado
	// pendiente exacto (carga actual del candidato para auto-asignación).
	CountPendingAssigned(ctx context.Context, userID, pendingStatusID string) (int, error)
	// DeleteAll borra todas las ventas y devuelve cuántas había.
	DeleteAll(ctx context.Context) (int64, error)
	// DeleteByDateRange borra ventas con sale_date en [start, end).
	DeleteByDateRange(ctx context.Context, start, end time.Time) (int64, error)
	// InsertBatch inserta ventas en bloque (restore).
	InsertBatch(ctx context.Context, sales []*entity.Sale) error
}
