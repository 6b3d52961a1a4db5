package dto

import (
	"encoding/json"
	"time"
)

// AuditLogResponse un evento del registro de auditoría.
type AuditLogResponse struct {
	ID        string          `json:"id"`
	Category  string          `json:"category"`
	Action    string          `json:"action"`
	Severity  string          `json:"severity"`
	TableName string          `json:"table_name,omitempty"`
	RecordID  string          `json:"record_id,omitempty"`
	ChangedBy string          `json:"changed_by,omitempty"`
	OldData   json.RawMessage `json:"old_data,omitempty"`
	NewData   json.RawMessage `json:"new_data,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// AuditListRequest filtros del listado de auditoría.
type AuditListRequest struct {
	Category  string `query:"category"`
	Severity  string `query:"severity"`
	TableName string `query:"table_name"`
	PageRequest
}

// AuditListResponse listado paginado, más recientes primero.
type AuditListResponse struct {
	Items []AuditLogResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
