package repository

import (
	"context"

	"github.com/tu-usuario/ventas-ops/internal/domain/entity"
)

// AuditFilter filtros del listado de auditoría.
type AuditFilter struct {
	Category  string
	Severity  string
	TableName string
	Limit     int
	Offset    int
}

// AuditRepository puerto del registro de auditoría (append-only).
type AuditRepository interface {
	Insert(ctx context.Context, log *entity.AuditLog) error
	// List devuelve eventos más recientes primero.
	List(ctx context.Context, filter AuditFilter) ([]entity.AuditLog, int, error)
}
