package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tu-usuario/ventas-ops/internal/application/audit"
	"github.com/tu-usuario/ventas-ops/internal/application/auth"
	"github.com/tu-usuario/ventas-ops/internal/application/authz"
	"github.com/tu-usuario/ventas-ops/internal/application/dto"
	"github.com/tu-usuario/ventas-ops/internal/domain"
	domauthz "github.com/tu-usuario/ventas-ops/internal/domain/authz"
	"github.com/tu-usuario/ventas-ops/internal/domain/entity"
	"github.com/tu-usuario/ventas-ops/internal/domain/repository"
)

// UserUseCase administración de usuarios: listado, cambio de rol (gateado por
// jerarquía), activación y skills (gateados por la matriz).
type UserUseCase struct {
	repo  repository.UserRepository
	perms *authz.Service
	audit *audit.Recorder
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, perms *authz.Service, rec *audit.Recorder) *UserUseCase {
	return &UserUseCase{repo: repo, perms: perms, audit: rec}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(ctx context.Context, limit, offset int) (*dto.UserListResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	users, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// UpdateRole cambia el rol de un usuario. El actor (rol resuelto en DB, no
// del token) debe superar en rango tanto el rol actual del objetivo como el
// rol nuevo; nadie asciende usuarios a su propio rango ni toca a un creator.
func (uc *UserUseCase) UpdateRole(ctx context.Context, actorUserID, targetUserID string, in dto.UpdateRoleRequest) (*dto.UserResponse, error) {
	newRole := strings.ToLower(strings.TrimSpace(in.Role))
	if !domauthz.IsKnownRole(newRole) || newRole == entity.RoleCreator {
		return nil, domain.ErrInvalidInput
	}

	actor, err := uc.repo.GetByID(ctx, actorUserID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	target, err := uc.repo.GetByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrUserNotFound
	}

	if err := domauthz.CheckMutation(actor.Role, target.Role); err != nil {
		return nil, err
	}
	if err := domauthz.CheckMutation(actor.Role, newRole); err != nil {
		return nil, err
	}

	oldRole := target.Role
	target.Role = newRole
	target.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, target); err != nil {
		return nil, fmt.Errorf("actualizar rol: %w", err)
	}

	uc.audit.Record(ctx, audit.Entry{
		Category:  entity.AuditCategoryConfig,
		Action:    "user.role_changed",
		Severity:  entity.AuditSeverityInfo,
		TableName: "users",
		RecordID:  targetUserID,
		ChangedBy: actorUserID,
		OldData:   map[string]any{"role": oldRole},
		NewData:   map[string]any{"role": newRole},
	})
	return auth.ToUserResponse(target), nil
}

// ToggleActive activa o desactiva un usuario. Requiere la regla
// feature:user_status_toggle para el rol del actor.
func (uc *UserUseCase) ToggleActive(ctx context.Context, actorUserID, actorRole, targetUserID string, in dto.ToggleActiveRequest) (*dto.UserResponse, error) {
	allowed, err := uc.perms.IsAllowed(ctx, actorRole, domauthz.ResFeatureStatusTgl)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.ErrForbidden
	}

	target, err := uc.repo.GetByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrUserNotFound
	}
	target.IsActive = in.IsActive
	target.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, target); err != nil {
		return nil, fmt.Errorf("actualizar estado: %w", err)
	}

	uc.audit.Record(ctx, audit.Entry{
		Category:  entity.AuditCategoryConfig,
		Action:    "user.active_toggled",
		Severity:  entity.AuditSeverityInfo,
		TableName: "users",
		RecordID:  targetUserID,
		ChangedBy: actorUserID,
		NewData:   map[string]any{"is_active": in.IsActive},
	})
	return auth.ToUserResponse(target), nil
}

// SetSkills asigna los productos que el usuario sabe digitar. Requiere la
// regla config:manage_skills para el rol del actor. Afecta directamente al
// pool del motor de auto-asignación.
func (uc *UserUseCase) SetSkills(ctx context.Context, actorUserID, actorRole, targetUserID string, in dto.SetSkillsRequest) (*dto.UserResponse, error) {
	allowed, err := uc.perms.IsAllowed(ctx, actorRole, domauthz.ResConfigManageSkills)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.ErrForbidden
	}

	target, err := uc.repo.GetByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrUserNotFound
	}
	oldSkills := target.Skills
	target.Skills = in.Skills
	target.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, target); err != nil {
		return nil, fmt.Errorf("actualizar skills: %w", err)
	}

	uc.audit.Record(ctx, audit.Entry{
		Category:  entity.AuditCategoryConfig,
		Action:    "user.skills_changed",
		Severity:  entity.AuditSeverityInfo,
		TableName: "users",
		RecordID:  targetUserID,
		ChangedBy: actorUserID,
		OldData:   map[string]any{"skills": oldSkills},
		NewData:   map[string]any{"skills": in.Skills},
	})
	return auth.ToUserResponse(target), nil
}
