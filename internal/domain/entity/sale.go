package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta registrada por un agente del call center.
// AssignedTo referencia al digitador de back-office responsable; vacío = sin asignar.
// Una vez asignada, AssignedTo solo cambia por reasignación explícita de un
// actor autorizado (el motor de auto-asignación actúa únicamente en la creación).
type Sale struct {
	ID           string
	UserID       string // agente que registró la venta
	CampaignID   string
	ProductID    string
	ConceptID    string
	StatusID     string
	SaleDate     time.Time
	CustomerName string

	Conteo        int
	ContactNumber string
	IDDocument    string // cédula del cliente
	OSMadre       string
	OSHija        string
	PlanSold      string          // snapshot del plan del producto al vender
	PP            decimal.Decimal // precio del plan
	AssignedTo    string

	CommentClaro string
	CommentOrion string
	CommentDofu  string

	InstalledNumber string

	StatusUpdatedBy string
	StatusUpdatedAt *time.Time

	CreatedAt time.Time
}
