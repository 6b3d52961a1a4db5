// Package sales implementa el ciclo de vida de una venta: creación con
// auto-asignación, listado con restricción por rol, y edición por campo
// sujeta a la matriz de permisos.
package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/ventas-ops/internal/application/assignment"
	"github.com/tu-usuario/ventas-ops/internal/application/audit"
	"github.com/tu-usuario/ventas-ops/internal/application/authz"
	"github.com/tu-usuario/ventas-ops/internal/application/dto"
	"github.com/tu-usuario/ventas-ops/internal/domain"
	domauthz "github.com/tu-usuario/ventas-ops/internal/domain/authz"
	"github.com/tu-usuario/ventas-ops/internal/domain/entity"
	"github.com/tu-usuario/ventas-ops/internal/domain/repository"
)

// UseCase casos de uso de ventas.
type UseCase struct {
	sales    repository.SaleRepository
	perms    *authz.Service
	assigner *assignment.Engine
	audit    *audit.Recorder
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	sales repository.SaleRepository,
	perms *authz.Service,
	assigner *assignment.Engine,
	rec *audit.Recorder,
) *UseCase {
	return &UseCase{sales: sales, perms: perms, assigner: assigner, audit: rec}
}

// Create registra una venta. UserID se fuerza al usuario autenticado. Si la
// venta llega sin asignar, el motor elige digitador antes del INSERT, de modo
// que assigned_to se escribe atómicamente con el resto de la fila.
func (uc *UseCase) Create(ctx context.Context, actorUserID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		UserID:        actorUserID,
		CampaignID:    in.CampaignID,
		ProductID:     in.ProductID,
		ConceptID:     in.ConceptID,
		StatusID:      in.StatusID,
		SaleDate:      in.SaleDate,
		CustomerName:  in.CustomerName,
		Conteo:        in.Conteo,
		ContactNumber: in.ContactNumber,
		IDDocument:    in.IDDocument,
		OSMadre:       in.OSMadre,
		OSHija:        in.OSHija,
		PlanSold:      in.PlanSold,
		PP:            in.PP,
		AssignedTo:    in.AssignedTo,
		CreatedAt:     time.Now(),
	}
	if sale.SaleDate.IsZero() {
		sale.SaleDate = sale.CreatedAt
	}

	autoAssigned := false
	if sale.AssignedTo == "" {
		if assignee := uc.assigner.PickAssignee(ctx, sale.ProductID); assignee != "" {
			sale.AssignedTo = assignee
			autoAssigned = true
		}
	}

	if err := uc.sales.Create(ctx, sale); err != nil {
		return nil, fmt.Errorf("crear venta: %w", err)
	}

	if autoAssigned {
		uc.audit.Record(ctx, audit.Entry{
			Category:  entity.AuditCategorySystem,
			Action:    "sale.auto_assigned",
			Severity:  entity.AuditSeverityInfo,
			TableName: "sales",
			RecordID:  sale.ID,
			ChangedBy: actorUserID,
			Metadata: map[string]any{
				"assigned_to": sale.AssignedTo,
				"product_id":  sale.ProductID,
			},
		})
	}

	return toSaleResponse(sale), nil
}

// List devuelve ventas filtradas y paginadas. Los roles representative y
// agent solo ven sus propias ventas; el resto ve todo.
func (uc *UseCase) List(ctx context.Context, actorUserID, actorRole string, in dto.SaleListRequest) (*dto.SaleListResponse, error) {
	in.DefaultPage()
	filter := repository.SaleFilter{
		OSMadre:       in.OSMadre,
		OSHija:        in.OSHija,
		ContactNumber: in.ContactNumber,
		ConceptID:     in.ConceptID,
		StatusID:      in.StatusID,
		Limit:         in.Limit,
		Offset:        in.Offset,
	}
	if isRestrictedRole(actorRole) {
		filter.UserID = actorUserID
	}
	filter.StartDate, filter.EndDate = in.DateRange()

	list, total, err := uc.sales.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listar ventas: %w", err)
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// UpdateField edita una sola columna de la venta. La columna debe estar en el
// registro de campos editables y el rol del actor debe tener permitida la
// clave field:sales.<col> correspondiente (creator pasa siempre). Cambiar el
// estado estampa además status_updated_by/at.
func (uc *UseCase) UpdateField(ctx context.Context, actorUserID, actorRole, saleID string, in dto.UpdateSaleFieldRequest) error {
	resourceKey, ok := domauthz.EditableSaleFields[in.Field]
	if !ok {
		return fmt.Errorf("campo '%s': %w", in.Field, domain.ErrUnknownResource)
	}

	allowed, err := uc.perms.IsAllowed(ctx, actorRole, resourceKey)
	if err != nil {
		return err
	}
	if !allowed {
		return fmt.Errorf("el rol '%s' no puede editar '%s': %w", actorRole, in.Field, domain.ErrForbidden)
	}

	upd := repository.SaleFieldUpdate{
		SaleID: saleID,
		Field:  in.Field,
		Value:  in.Value,
	}
	if in.Field == "status_id" {
		now := time.Now()
		upd.StatusUpdatedBy = actorUserID
		upd.StatusUpdatedAt = &now
	}
	if err := uc.sales.UpdateField(ctx, upd); err != nil {
		return err
	}

	uc.audit.Record(ctx, audit.Entry{
		Category:  entity.AuditCategoryConfig,
		Action:    "sale.field_updated",
		Severity:  entity.AuditSeverityInfo,
		TableName: "sales",
		RecordID:  saleID,
		ChangedBy: actorUserID,
		NewData:   map[string]any{in.Field: in.Value},
	})
	return nil
}

// GetByID obtiene una venta. Los roles restringidos solo pueden ver las suyas.
func (uc *UseCase) GetByID(ctx context.Context, actorUserID, actorRole, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	if isRestrictedRole(actorRole) && sale.UserID != actorUserID {
		return nil, domain.ErrForbidden
	}
	return toSaleResponse(sale), nil
}

// isRestrictedRole roles que solo ven sus propias ventas. "agent" es un rol
// histórico que algunas filas de users todavía cargan; se trata igual que
// representative.
func isRestrictedRole(role string) bool {
	return role == entity.RoleRepresentative || role == "agent"
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:              s.ID,
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
		CreatedAt:       s.CreatedAt,
	}
}
