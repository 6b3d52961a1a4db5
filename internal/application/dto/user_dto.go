package dto

// UpdateRoleRequest cambio de rol de un usuario; sujeto a la jerarquía
// (el actor debe superar en rango tanto el rol actual como el nuevo).
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// ToggleActiveRequest activa/desactiva un usuario (feature:user_status_toggle).
type ToggleActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// SetSkillsRequest asigna productos que el usuario sabe digitar
// (config:manage_skills).
type SetSkillsRequest struct {
	Skills []string `json:"skills"`
}
