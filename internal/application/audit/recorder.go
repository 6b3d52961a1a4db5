// Package audit implementa el registro de auditoría append-only en el que
// el evaluador de permisos, el motor de asignación y las operaciones de
// mantenimiento dejan constancia de sus decisiones.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/ventas-ops/internal/application/dto"
	"github.com/tu-usuario/ventas-ops/internal/domain/entity"
	"github.com/tu-usuario/ventas-ops/internal/domain/repository"
	"github.com/tu-usuario/ventas-ops/pkg/logger"
)

// Entry evento a registrar. OldData/NewData/Metadata admiten cualquier valor
// serializable a JSON.
type Entry struct {
	Category  string
	Action    string
	Severity  string
	TableName string
	RecordID  string
	ChangedBy string
	OldData   any
	NewData   any
	Metadata  any
}

// Recorder escribe y consulta el registro de auditoría.
type Recorder struct {
	repo repository.AuditRepository
	log  *logger.Logger
}

// NewRecorder construye el recorder.
func NewRecorder(repo repository.AuditRepository, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

// Record persiste el evento. Nunca propaga el error al caller: un fallo del
// log de auditoría no debe tumbar la operación principal; se registra en el
// logger de aplicación y se sigue.
func (r *Recorder) Record(ctx context.Context, e Entry) {
	log := &entity.AuditLog{
		ID:        uuid.New().String(),
		Category:  e.Category,
		Action:    e.Action,
		Severity:  e.Severity,
		TableName: e.TableName,
		RecordID:  e.RecordID,
		ChangedBy: e.ChangedBy,
		OldData:   marshalRaw(e.OldData),
		NewData:   marshalRaw(e.NewData),
		Metadata:  marshalRaw(e.Metadata),
		CreatedAt: time.Now(),
	}
	if err := r.repo.Insert(ctx, log); err != nil {
		r.log.Warn().Err(err).
			Str("action", e.Action).
			Str("category", e.Category).
			Msg("no se pudo escribir el evento de auditoría")
	}
}

// List devuelve eventos filtrados, más recientes primero.
func (r *Recorder) List(ctx context.Context, in dto.AuditListRequest) (*dto.AuditListResponse, error) {
	in.DefaultPage()
	logs, total, err := r.repo.List(ctx, repository.AuditFilter{
		Category:  in.Category,
		Severity:  in.Severity,
		TableName: in.TableName,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, dto.AuditLogResponse{
			ID:        l.ID,
			Category:  l.Category,
			Action:    l.Action,
			Severity:  l.Severity,
			TableName: l.TableName,
			RecordID:  l.RecordID,
			ChangedBy: l.ChangedBy,
			OldData:   l.OldData,
			NewData:   l.NewData,
			Metadata:  l.Metadata,
			CreatedAt: l.CreatedAt,
		})
	}
	return &dto.AuditListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

func marshalRaw(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}
