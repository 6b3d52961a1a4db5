package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest alta de una venta. AssignedTo vacío activa la
// auto-asignación al digitador menos cargado.
type CreateSaleRequest struct {
	CampaignID    string          `json:"campaign_id"`
	ProductID     string          `json:"product_id"`
	ConceptID     string          `json:"concept_id"`
	StatusID      string          `json:"status_id"`
	SaleDate      time.Time       `json:"sale_date"`
	CustomerName  string          `json:"customer_name"`
	Conteo        int             `json:"conteo"`
	ContactNumber string          `json:"contact_number"`
	IDDocument    string          `json:"id_document"`
	OSMadre       string          `json:"os_madre"`
	OSHija        string          `json:"os_hija"`
	PlanSold      string          `json:"plan_sold"`
	PP            decimal.Decimal `json:"pp"`
	AssignedTo    string          `json:"assigned_to"`
}

// SaleResponse representación de una venta.
type SaleResponse struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	CampaignID      string          `json:"campaign_id,omitempty"`
	ProductID       string          `json:"product_id,omitempty"`
	ConceptID       string          `json:"concept_id,omitempty"`
	StatusID        string          `json:"status_id,omitempty"`
	SaleDate        time.Time       `json:"sale_date"`
	CustomerName    string          `json:"customer_name,omitempty"`
	Conteo          int             `json:"conteo,omitempty"`
	ContactNumber   string          `json:"contact_number,omitempty"`
	IDDocument      string          `json:"id_document,omitempty"`
	OSMadre         string          `json:"os_madre,omitempty"`
	OSHija          string          `json:"os_hija,omitempty"`
	PlanSold        string          `json:"plan_sold,omitempty"`
	PP              decimal.Decimal `json:"pp"`
	AssignedTo      string          `json:"assigned_to,omitempty"`
	CommentClaro    string          `json:"comment_claro,omitempty"`
	CommentOrion    string          `json:"comment_orion,omitempty"`
	CommentDofu     string          `json:"comment_dofu,omitempty"`
	InstalledNumber string          `json:"installed_number,omitempty"`
	StatusUpdatedBy string          `json:"status_updated_by,omitempty"`
	StatusUpdatedAt *time.Time      `json:"status_updated_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// SaleListRequest filtros del listado.
type SaleListRequest struct {
	StartDate     string `query:"start_date"` // YYYY-MM-DD
	EndDate       string `query:"end_date"`
	OSMadre       string `query:"os_madre"`
	OSHija        string `query:"os_hija"`
	ContactNumber string `query:"contact_number"`
	ConceptID     string `query:"concept_id"`
	StatusID      string `query:"status_id"`
	PageRequest
}

// DateRange interpreta StartDate/EndDate (YYYY-MM-DD) como límites del
// listado. El fin cubre el día completo: se devuelve el inicio del día
// siguiente, para comparar con < en la consulta. Fechas mal formadas se
// ignoran.
func (r SaleListRequest) DateRange() (start, end *time.Time) {
	if t, err := time.Parse("2006-01-02", r.StartDate); err == nil {
		start = &t
	}
	if t, err := time.Parse("2006-01-02", r.EndDate); err == nil {
		u := t.AddDate(0, 0, 1)
		end = &u
	}
	return start, end
}

// SaleListResponse listado paginado.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// UpdateSaleFieldRequest edición de una sola columna, sujeta a la regla
// field:sales.<col> del rol del actor.
type UpdateSaleFieldRequest struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// ClearSalesRequest borrado por rango mensual.
type ClearSalesRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"` // 1-12
}

// RestoreSalesRequest restauración desde un dump JSON: borra todo e inserta
// en la misma transacción.
type RestoreSalesRequest struct {
	Sales []SaleResponse `json:"sales"`
}

// MaintenanceResponse resultado de operaciones de mantenimiento.
type MaintenanceResponse struct {
	Count int64 `json:"count"`
}
