package entity

import "time"

// PermissionRule es una regla de la matriz de permisos:
// (role, resource_key) -> is_allowed. Única por par (role, resource_key).
// La ausencia de regla significa denegar, salvo para el rol creator que
// siempre evalúa permitido (bypass estructural, no configuración).
type PermissionRule struct {
	Role        string
	ResourceKey string
	IsAllowed   bool
	UpdatedAt   time.Time
}
