package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ventas-ops/internal/application/dto"
	"github.com/tu-usuario/ventas-ops/internal/application/reports"
)

// ReportHandler descarga del reporte de ventas en PDF
// (button:team.download_report en el router).
type ReportHandler struct {
	uc *reports.PDFUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.PDFUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// SalesReport genera el PDF del listado filtrado y lo devuelve como descarga.
// GET /api/reports/sales
func (h *ReportHandler) SalesReport(c *fiber.Ctx) error {
	var in dto.SaleListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	pdfBytes, err := h.uc.GenerateSalesReport(c.Context(), GetUserID(c), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte_ventas.pdf"`)
	return c.Send(pdfBytes)
}
