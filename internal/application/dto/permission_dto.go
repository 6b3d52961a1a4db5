package dto

import "time"

// PermissionRuleResponse una regla de la matriz.
type PermissionRuleResponse struct {
	Role        string    `json:"role"`
	ResourceKey string    `json:"resource_key"`
	Label       string    `json:"label"`
	IsAllowed   bool      `json:"is_allowed"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PermissionListResponse matriz completa o filtrada, en orden estable
// (resource_key, role).
type PermissionListResponse struct {
	Items []PermissionRuleResponse `json:"items"`
}

// UpsertPermissionRequest alta o modificación de una regla. El rol objetivo
// debe estar por debajo del rango del actor (jerarquía).
type UpsertPermissionRequest struct {
	Role        string `json:"role"`
	ResourceKey string `json:"resource_key"`
	IsAllowed   bool   `json:"is_allowed"`
}

// CheckPermissionResponse resultado de una evaluación puntual.
type CheckPermissionResponse struct {
	Role        string `json:"role"`
	ResourceKey string `json:"resource_key"`
	IsAllowed   bool   `json:"is_allowed"`
}
