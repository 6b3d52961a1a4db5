// Package authz implementa el evaluador de permisos por campo/acción sobre la
// matriz app_permissions, y las mutaciones de la matriz gateadas por la
// jerarquía de roles.
package authz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tu-usuario/ventas-ops/internal/application/audit"
	"github.com/tu-usuario/ventas-ops/internal/application/dto"
	domauthz "github.com/tu-usuario/ventas-ops/internal/domain/authz"
	"github.com/tu-usuario/ventas-ops/internal/domain/entity"
	"github.com/tu-usuario/ventas-ops/internal/domain/repository"
	"github.com/tu-usuario/ventas-ops/pkg/logger"
)

// RuleCache caché opcional de evaluaciones (role, resource_key) -> allowed.
// La invalidación está atada al upsert: no hay otra estrategia de expiración
// además del TTL de la implementación.
type RuleCache interface {
	Get(ctx context.Context, role, resourceKey string) (allowed bool, ok bool)
	Set(ctx context.Context, role, resourceKey string, allowed bool)
	Invalidate(ctx context.Context, role, resourceKey string)
}

// Service evalúa permisos y administra la matriz. Una sola función de
// decisión para chequeos gruesos (tabs) y finos (columnas de sales): la
// superficie de autorización queda auditable como una tabla plana.
type Service struct {
	repo  repository.PermissionRepository
	users repository.UserRepository
	cache RuleCache // nil = sin caché
	audit *audit.Recorder
	log   *logger.Logger
}

// NewService construye el servicio. cache puede ser nil.
func NewService(
	repo repository.PermissionRepository,
	users repository.UserRepository,
	cache RuleCache,
	rec *audit.Recorder,
	log *logger.Logger,
) *Service {
	return &Service{repo: repo, users: users, cache: cache, audit: rec, log: log}
}

// IsAllowed decide si el rol puede usar el recurso.
//
//  1. creator permite todo incondicionalmente (bypass estructural, no dato).
//  2. Regla encontrada: vale su is_allowed.
//  3. Regla ausente: denegar (mundo cerrado).
//
// Denegar es un valor de retorno normal, nunca un error; solo fallos del
// almacén propagan error.
func (s *Service) IsAllowed(ctx context.Context, role, resourceKey string) (bool, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return false, nil
	}
	if role == entity.RoleCreator {
		return true, nil
	}

	if s.cache != nil {
		if allowed, ok := s.cache.Get(ctx, role, resourceKey); ok {
			return allowed, nil
		}
	}

	rule, err := s.repo.Get(ctx, role, resourceKey)
	if err != nil {
		return false, fmt.Errorf("consultar regla de permiso: %w", err)
	}
	allowed := rule != nil && rule.IsAllowed
	if s.cache != nil {
		s.cache.Set(ctx, role, resourceKey, allowed)
	}
	return allowed, nil
}

// List devuelve la matriz (o un filtro de ella) en orden estable.
func (s *Service) List(ctx context.Context, role, resourceKey string) (*dto.PermissionListResponse, error) {
	rules, err := s.repo.List(ctx, repository.PermissionFilter{
		Role:        strings.ToLower(role),
		ResourceKey: resourceKey,
	})
	if err != nil {
		return nil, fmt.Errorf("listar reglas: %w", err)
	}
	items := make([]dto.PermissionRuleResponse, 0, len(rules))
	for _, r := range rules {
		items = append(items, dto.PermissionRuleResponse{
			Role:        r.Role,
			ResourceKey: r.ResourceKey,
			Label:       domauthz.LabelFor(r.ResourceKey),
			IsAllowed:   r.IsAllowed,
			UpdatedAt:   r.UpdatedAt,
		})
	}
	return &dto.PermissionListResponse{Items: items}, nil
}

// Upsert crea o sobrescribe la regla (targetRole, resourceKey). El rol del
// actor se re-resuelve contra la tabla users (no se confía en el claim del
// token para mutaciones) y debe superar estrictamente en rango al rol
// objetivo; creator nunca es objetivo válido.
func (s *Service) Upsert(ctx context.Context, actorUserID string, in dto.UpsertPermissionRequest) (*dto.PermissionRuleResponse, error) {
	actor, err := s.users.GetByID(ctx, actorUserID)
	if err != nil {
		return nil, fmt.Errorf("resolver rol del actor: %w", err)
	}
	if actor == nil {
		return nil, fmt.Errorf("actor %s: usuario no existe", actorUserID)
	}

	targetRole := strings.ToLower(strings.TrimSpace(in.Role))
	if err := domauthz.CheckMutation(actor.Role, targetRole); err != nil {
		s.audit.Record(ctx, audit.Entry{
			Category:  entity.AuditCategoryAccess,
			Action:    "permission.upsert_denied",
			Severity:  entity.AuditSeverityWarning,
			TableName: "app_permissions",
			ChangedBy: actorUserID,
			Metadata: map[string]any{
				"actor_role":   actor.Role,
				"target_role":  targetRole,
				"resource_key": in.ResourceKey,
			},
		})
		return nil, err
	}

	if !domauthz.IsKnownResourceKey(in.ResourceKey) {
		// El almacén acepta claves abiertas; avisar ayuda a atrapar typos de
		// panels viejos sin romper la flexibilidad.
		s.log.Warn().Str("resource_key", in.ResourceKey).Msg("upsert de clave de recurso no registrada")
	}

	rule := entity.PermissionRule{
		Role:        targetRole,
		ResourceKey: in.ResourceKey,
		IsAllowed:   in.IsAllowed,
		UpdatedAt:   time.Now(),
	}
	if err := s.repo.Upsert(ctx, rule); err != nil {
		return nil, fmt.Errorf("upsert regla: %w", err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, targetRole, in.ResourceKey)
	}

	s.audit.Record(ctx, audit.Entry{
		Category:  entity.AuditCategoryConfig,
		Action:    "permission.upsert",
		Severity:  entity.AuditSeverityInfo,
		TableName: "app_permissions",
		ChangedBy: actorUserID,
		NewData:   rule,
	})

	return &dto.PermissionRuleResponse{
		Role:        rule.Role,
		ResourceKey: rule.ResourceKey,
		Label:       domauthz.LabelFor(rule.ResourceKey),
		IsAllowed:   rule.IsAllowed,
		UpdatedAt:   rule.UpdatedAt,
	}, nil
}

// SeedDefaults siembra una regla por rol para la clave dada, con el valor por
// defecto. Idempotente: si ya existe cualquier regla para esa clave, no hace
// nada (las decisiones de los administradores no se pisan). creator nunca se
// siembra.
func (s *Service) SeedDefaults(ctx context.Context, resourceKey string, roles []string, defaultAllowed bool) error {
	count, err := s.repo.CountByResourceKey(ctx, resourceKey)
	if err != nil {
		return fmt.Errorf("verificar reglas existentes: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	rules := make([]entity.PermissionRule, 0, len(roles))
	for _, role := range roles {
		role = strings.ToLower(role)
		if role == entity.RoleCreator {
			continue
		}
		rules = append(rules, entity.PermissionRule{
			Role:        role,
			ResourceKey: resourceKey,
			IsAllowed:   defaultAllowed,
			UpdatedAt:   now,
		})
	}
	if len(rules) == 0 {
		return nil
	}
	if err := s.repo.InsertBatch(ctx, rules); err != nil {
		return fmt.Errorf("sembrar defaults para %s: %w", resourceKey, err)
	}
	// Una denegación por regla-ausente pudo quedar cacheada antes del seeding.
	if s.cache != nil {
		for _, r := range rules {
			s.cache.Invalidate(ctx, r.Role, r.ResourceKey)
		}
	}
	s.log.Info().Str("resource_key", resourceKey).Int("rules", len(rules)).
		Bool("allowed", defaultAllowed).Msg("defaults de permisos sembrados")
	return nil
}
