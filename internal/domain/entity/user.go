package entity

import "time"

// Roles válidos para User, de mayor a menor privilegio.
// El orden jerárquico vive en authz.RankOf; aquí solo los nombres.
const (
	RoleCreator        = "creator"
	RoleAdmin          = "admin"
	RoleGerente        = "gerente"
	RoleSenior         = "senior"
	RoleSupervisor     = "supervisor"
	RoleAuditor        = "auditor"
	RoleSeguimiento    = "seguimiento"
	RoleDigitacion     = "digitacion"
	RoleRepresentative = "representative"
)

// User representa un usuario de la operación de ventas.
// Skills guarda IDs de productos que el usuario sabe digitar (columna JSONB).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FullName     string
	Role         string
	IsActive     bool
	Skills       []string
	SupervisorID string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasSkill informa si el usuario está calificado para el producto dado.
func (u *User) HasSkill(productID string) bool {
	for _, s := range u.Skills {
		if s == productID {
			return true
		}
	}
	return false
}
