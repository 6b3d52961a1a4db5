package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/ventas-ops/internal/domain/entity"
	"github.com/tu-usuario/ventas-ops/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo registro de auditoría sobre PostgreSQL. Solo inserta y lista:
// audit_logs es append-only, nunca se actualiza ni borra desde la app.
type AuditRepo struct {
	db querier
}

// NewAuditRepository construye el adaptador de auditoría.
func NewAuditRepository(db querier) *AuditRepo {
	return &AuditRepo{db: db}
}

// Insert agrega un evento.
func (r *AuditRepo) Insert(ctx context.Context, log *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, category, action, severity, table_name, record_id,
			changed_by, old_data, new_data, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10, $11)`
	_, err := r.db.Exec(ctx, query,
		log.ID, log.Category, log.Action, log.Severity, log.TableName, log.RecordID,
		log.ChangedBy, log.OldData, log.NewData, log.Metadata, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// List devuelve eventos más recientes primero, con el total sin paginar.
func (r *AuditRepo) List(ctx context.Context, f repository.AuditFilter) ([]entity.AuditLog, int, error) {
	where := `
		WHERE ($1 = '' OR category = $1)
		  AND ($2 = '' OR severity = $2)
		  AND ($3 = '' OR table_name = $3)`
	args := []any{f.Category, f.Severity, f.TableName}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM audit_logs`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	query := `
		SELECT id, category, action, severity, table_name, record_id,
			changed_by, old_data, new_data, metadata, created_at
		FROM audit_logs` + where + `
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.db.Query(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var list []entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		var recordID, changedBy *string
		if err := rows.Scan(
			&l.ID, &l.Category, &l.Action, &l.Severity, &l.TableName, &recordID,
			&changedBy, &l.OldData, &l.NewData, &l.Metadata, &l.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan audit log: %w", err)
		}
		if recordID != nil {
			l.RecordID = *recordID
		}
		if changedBy != nil {
			l.ChangedBy = *changedBy
		}
		list = append(list, l)
	}
	return list, total, rows.Err()
}
