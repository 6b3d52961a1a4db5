package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ventas-ops/internal/application/authz"
	"github.com/tu-usuario/ventas-ops/internal/application/dto"
	domauthz "github.com/tu-usuario/ventas-ops/internal/domain/authz"
)

// PermissionHandler maneja la matriz de permisos (protegido).
type PermissionHandler struct {
	svc *authz.Service
}

// NewPermissionHandler construye el handler.
func NewPermissionHandler(svc *authz.Service) *PermissionHandler {
	return &PermissionHandler{svc: svc}
}

// List devuelve la matriz completa o filtrada por role/resource_key.
// GET /api/permissions
func (h *PermissionHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.Context(), c.Query("role"), c.Query("resource_key"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Check evalúa una regla puntual para el rol del token.
// GET /api/permissions/check?resource_key=...
func (h *PermissionHandler) Check(c *fiber.Ctx) error {
	resourceKey := c.Query("resource_key")
	if resourceKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "resource_key requerido"})
	}
	role := GetRole(c)
	allowed, err := h.svc.IsAllowed(c.Context(), role, resourceKey)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "PERMISSION_CHECK_FAILED", Message: "no se pudo verificar el permiso, intente más tarde"})
	}
	return c.JSON(dto.CheckPermissionResponse{Role: role, ResourceKey: resourceKey, IsAllowed: allowed})
}

// Upsert crea o modifica una regla. El rol objetivo debe estar por debajo del
// rango del actor; intentos sobre rangos iguales o superiores devuelven 403
// con ambos rangos en el mensaje.
// PUT /api/permissions
func (h *PermissionHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertPermissionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Role == "" || in.ResourceKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "role y resource_key son requeridos"})
	}
	out, err := h.svc.Upsert(c.Context(), GetUserID(c), in)
	if err != nil {
		var rankErr *domauthz.InsufficientRankError
		if errors.As(err, &rankErr) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_RANK", Message: rankErr.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
