// Package authz contiene las reglas puras de autorización: la jerarquía de
// roles que gobierna quién puede mutar permisos de quién, y el registro
// cerrado de claves de recurso protegibles.
package authz

import (
	"fmt"
	"strings"

	"github.com/tu-usuario/ventas-ops/internal/domain/entity"
)

// rankUnknown es el rango asignado a roles no reconocidos: mínimo privilegio.
// Cualquier rol reconocido puede mutar sus permisos; ellos no pueden mutar nada.
const rankUnknown = 99

// roleRanks orden total de roles: menor número = mayor privilegio.
// Se usa EXCLUSIVAMENTE para la puerta de mutación de permisos; el
// permitir/denegar de recursos es dato puro de la matriz, no jerárquico.
var roleRanks = map[string]int{
	entity.RoleCreator:        0,
	entity.RoleAdmin:          1,
	entity.RoleGerente:        2,
	entity.RoleSenior:         3,
	entity.RoleSupervisor:     4,
	entity.RoleAuditor:        5,
	entity.RoleSeguimiento:    6,
	entity.RoleDigitacion:     7,
	entity.RoleRepresentative: 8,
}

// RankOf devuelve el rango del rol (case-insensitive). Roles desconocidos
// reciben rankUnknown.
func RankOf(role string) int {
	if r, ok := roleRanks[strings.ToLower(role)]; ok {
		return r
	}
	return rankUnknown
}

// IsKnownRole informa si el rol pertenece al conjunto enumerado.
func IsKnownRole(role string) bool {
	_, ok := roleRanks[strings.ToLower(role)]
	return ok
}

// InsufficientRankError indica un intento de mutar permisos de un rol de
// rango igual o superior al del actor. Lleva ambos rangos para mostrarlos
// en el mensaje de error al usuario.
type InsufficientRankError struct {
	ActorRole  string
	TargetRole string
	ActorRank  int
	TargetRank int
}

func (e *InsufficientRankError) Error() string {
	return fmt.Sprintf(
		"permisos insuficientes: no puede editar roles de rango igual o superior al suyo (su rango: %d, objetivo: %d)",
		e.ActorRank, e.TargetRank,
	)
}

// CanMutate informa si actorRole puede modificar las reglas de permiso de
// targetRole: estrictamente rank(actor) < rank(target). Un rol nunca se
// modifica a sí mismo ni a rangos superiores. El rol creator queda bloqueado
// como objetivo sin importar el rango del actor.
func CanMutate(actorRole, targetRole string) bool {
	if strings.EqualFold(targetRole, entity.RoleCreator) {
		return false
	}
	return RankOf(actorRole) < RankOf(targetRole)
}

// CheckMutation es CanMutate con error tipado: nil si la mutación procede,
// *InsufficientRankError en caso contrario.
func CheckMutation(actorRole, targetRole string) error {
	if CanMutate(actorRole, targetRole) {
		return nil
	}
	return &InsufficientRankError{
		ActorRole:  actorRole,
		TargetRole: targetRole,
		ActorRank:  RankOf(actorRole),
		TargetRank: RankOf(targetRole),
	}
}

// MutableRoles devuelve los roles enumerados que actorRole puede mutar,
// en orden de rango. Útil para pintar la matriz en el panel de administración.
func MutableRoles(actorRole string) []string {
	out := make([]string, 0, len(AllRoles))
	for _, r := range AllRoles {
		if CanMutate(actorRole, r) {
			out = append(out, r)
		}
	}
	return out
}

// AllRoles lista los roles en orden de rango (creator primero).
var AllRoles = []string{
	entity.RoleCreator,
	entity.RoleAdmin,
	entity.RoleGerente,
	entity.RoleSenior,
	entity.RoleSupervisor,
	entity.RoleAuditor,
	entity.RoleSeguimiento,
	entity.RoleDigitacion,
	entity.RoleRepresentative,
}

// SeedableRoles roles que reciben reglas en el seeding de defaults.
// creator nunca se siembra: su bypass es estructural, no dato.
var SeedableRoles = AllRoles[1:]
