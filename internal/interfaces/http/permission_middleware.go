package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ventas-ops/internal/application/dto"
)

// permissionChecker es el contrato mínimo que necesita el middleware para
// evaluar la matriz. Lo implementa *authz.Service; el uso de interfaz evita
// el import circular.
type permissionChecker interface {
	IsAllowed(ctx context.Context, role, resourceKey string) (bool, error)
}

// RequirePermission devuelve un middleware Fiber que verifica si el rol del
// token tiene permitida la clave de recurso. Debe usarse DESPUÉS de
// AuthMiddleware (necesita LocalRole).
//
// Comportamiento:
//   - 403 Forbidden  → regla ausente o denegada (mundo cerrado).
//   - 503 Service Unavailable → fallo de infraestructura al consultar la matriz.
//   - Si no hay rol en el contexto, responde 401 (el AuthMiddleware debería haberlo puesto).
func RequirePermission(resourceKey string, checker permissionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "rol no encontrado en el token",
			})
		}

		allowed, err := checker.IsAllowed(c.Context(), role, resourceKey)
		if err != nil {
			// Fallo de infraestructura: distinguirlo de una denegación real para
			// que el cliente pueda reintentar.
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_CHECK_FAILED",
				Message: "no se pudo verificar el permiso, intente más tarde",
			})
		}

		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el rol '" + role + "' no tiene permitido '" + resourceKey + "'",
			})
		}

		return c.Next()
	}
}
