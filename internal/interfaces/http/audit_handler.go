package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ventas-ops/internal/application/audit"
	"github.com/tu-usuario/ventas-ops/internal/application/dto"
)

// AuditHandler consulta del registro de auditoría (tab:audit_logs en el router).
type AuditHandler struct {
	rec *audit.Recorder
}

// NewAuditHandler construye el handler.
func NewAuditHandler(rec *audit.Recorder) *AuditHandler {
	return &AuditHandler{rec: rec}
}

// List lista eventos de auditoría, más recientes primero.
// GET /api/audit-logs
func (h *AuditHandler) List(c *fiber.Ctx) error {
	var in dto.AuditListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	out, err := h.rec.List(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
