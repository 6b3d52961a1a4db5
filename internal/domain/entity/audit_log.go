package entity

import (
	"encoding/json"
	"time"
)

// Categorías y severidades de eventos de auditoría.
const (
	AuditCategoryAccess = "ACCESS"
	AuditCategorySystem = "SYSTEM"
	AuditCategoryConfig = "CONFIG"

	AuditSeverityInfo    = "INFO"
	AuditSeverityWarning = "WARNING"
	AuditSeverityError   = "ERROR"
)

// AuditLog es un evento del registro de auditoría (append-only).
// OldData/NewData guardan snapshots JSON del registro afectado cuando aplica.
type AuditLog struct {
	ID        string
	Category  string
	Action    string
	Severity  string
	TableName string
	RecordID  string
	ChangedBy string
	OldData   json.RawMessage
	NewData   json.RawMessage
	Metadata  json.RawMessage
	CreatedAt time.Time
}
