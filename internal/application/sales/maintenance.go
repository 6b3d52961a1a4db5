package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/ventas-ops/internal/application/audit"
	"github.com/tu-usuario/ventas-ops/internal/application/dto"
	"github.com/tu-usuario/ventas-ops/internal/domain"
	"github.com/tu-usuario/ventas-ops/internal/domain/entity"
	"github.com/tu-usuario/ventas-ops/internal/domain/repository"
)

// TxRunner ejecuta un callback con un SaleRepository atado a una transacción.
// Lo implementa postgres.TxRunner; la restauración necesita que el borrado y
// la inserción en bloque sean atómicos.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(sales repository.SaleRepository) error) error
}

// MaintenanceUseCase operaciones destructivas sobre la tabla de ventas
// (botones del panel, cada uno gateado por su regla button:sales.* en el
// router). Todas dejan evento de auditoría con severidad WARNING.
type MaintenanceUseCase struct {
	sales repository.SaleRepository
	tx    TxRunner
	audit *audit.Recorder
}

// NewMaintenanceUseCase construye el caso de uso de mantenimiento.
func NewMaintenanceUseCase(sales repository.SaleRepository, tx TxRunner, rec *audit.Recorder) *MaintenanceUseCase {
	return &MaintenanceUseCase{sales: sales, tx: tx, audit: rec}
}

// Truncate borra todas las ventas y devuelve cuántas había.
func (uc *MaintenanceUseCase) Truncate(ctx context.Context, actorUserID string) (int64, error) {
	count, err := uc.sales.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("truncar ventas: %w", err)
	}
	uc.audit.Record(ctx, audit.Entry{
		Category:  entity.AuditCategorySystem,
		Action:    "sales.truncate",
		Severity:  entity.AuditSeverityWarning,
		TableName: "sales",
		ChangedBy: actorUserID,
		Metadata:  map[string]any{"deleted": count},
	})
	return count, nil
}

// ClearByMonth borra las ventas con sale_date dentro del mes dado
// ([inicio de mes, inicio del mes siguiente) — el rollover de diciembre lo
// resuelve AddDate).
func (uc *MaintenanceUseCase) ClearByMonth(ctx context.Context, actorUserID string, year, month int) (int64, error) {
	if year <= 0 || month < 1 || month > 12 {
		return 0, domain.ErrInvalidInput
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	count, err := uc.sales.DeleteByDateRange(ctx, start, end)
	if err != nil {
		return 0, fmt.Errorf("limpiar ventas por rango: %w", err)
	}
	uc.audit.Record(ctx, audit.Entry{
		Category:  entity.AuditCategorySystem,
		Action:    "sales.clear_range",
		Severity:  entity.AuditSeverityWarning,
		TableName: "sales",
		ChangedBy: actorUserID,
		Metadata:  map[string]any{"year": year, "month": month, "deleted": count},
	})
	return count, nil
}

// Restore reemplaza todas las ventas por las del dump: borrado e inserción
// en bloque dentro de la misma transacción (o se restaura todo o nada).
// Los IDs del dump se respetan; filas sin ID reciben uno nuevo.
func (uc *MaintenanceUseCase) Restore(ctx context.Context, actorUserID string, in dto.RestoreSalesRequest) (int64, error) {
	if len(in.Sales) == 0 {
		return 0, domain.ErrInvalidInput
	}
	rows := make([]*entity.Sale, 0, len(in.Sales))
	for _, s := range in.Sales {
		rows = append(rows, fromSaleResponse(s))
	}

	err := uc.tx.RunSales(ctx, func(salesRepo repository.SaleRepository) error {
		if _, err := salesRepo.DeleteAll(ctx); err != nil {
			return err
		}
		return salesRepo.InsertBatch(ctx, rows)
	})
	if err != nil {
		return 0, fmt.Errorf("restaurar ventas: %w", err)
	}

	uc.audit.Record(ctx, audit.Entry{
		Category:  entity.AuditCategorySystem,
		Action:    "sales.restore",
		Severity:  entity.AuditSeverityWarning,
		TableName: "sales",
		ChangedBy: actorUserID,
		Metadata:  map[string]any{"restored": len(rows)},
	})
	return int64(len(rows)), nil
}

func fromSaleResponse(s dto.SaleResponse) *entity.Sale {
	id := s.ID
	if id == "" {
		id = uuid.New().String()
	}
	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return &entity.Sale{
		ID:              id,
		UserID:          s.UserID,
		CampaignID:      s.CampaignID,
		ProductID:       s.ProductID,
		ConceptID:       s.ConceptID,
		StatusID:        s.StatusID,
		SaleDate:        s.SaleDate,
		CustomerName:    s.CustomerName,
		Conteo:          s.Conteo,
		ContactNumber:   s.ContactNumber,
		IDDocument:      s.IDDocument,
		OSMadre:         s.OSMadre,
		OSHija:          s.OSHija,
		PlanSold:        s.PlanSold,
		PP:              s.PP,
		AssignedTo:      s.AssignedTo,
		CommentClaro:    s.CommentClaro,
		CommentOrion:    s.CommentOrion,
		CommentDofu:     s.CommentDofu,
		InstalledNumber: s.InstalledNumber,
		StatusUpdatedBy: s.StatusUpdatedBy,
		StatusUpdatedAt: s.StatusUpdatedAt,
		CreatedAt:       createdAt,
	}
}
