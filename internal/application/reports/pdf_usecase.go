// Package reports genera el reporte de equipo en PDF
// (button:team.download_report en la matriz de permisos).
package reports

import (
	"context"
	"fmt"

	"github.com/tu-usuario/ventas-ops/internal/application/dto"
	"github.com/tu-usuario/ventas-ops/internal/domain/entity"
	"github.com/tu-usuario/ventas-ops/internal/domain/repository"
)

// SalesReportGenerator puerto del generador de PDF (lo implementa
// pdf.MarotoReportGenerator).
type SalesReportGenerator interface {
	GenerateSalesReport(ctx context.Context, sales []*entity.Sale, generatedBy string) ([]byte, error)
}

// PDFUseCase arma el reporte de ventas del período y lo entrega como PDF.
type PDFUseCase struct {
	sales     repository.SaleRepository
	generator SalesReportGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(sales repository.SaleRepository, generator SalesReportGenerator) *PDFUseCase {
	return &PDFUseCase{sales: sales, generator: generator}
}

// GenerateSalesReport consulta las ventas con los filtros dados y genera el
// PDF. El tope de filas es fijo: el reporte es un listado operativo, no un
// export masivo.
func (uc *PDFUseCase) GenerateSalesReport(ctx context.Context, generatedBy string, in dto.SaleListRequest) ([]byte, error) {
	filter := repository.SaleFilter{
		OSMadre:       in.OSMadre,
		OSHija:        in.OSHija,
		ContactNumber: in.ContactNumber,
		ConceptID:     in.ConceptID,
		StatusID:      in.StatusID,
		Limit:         500,
	}
	filter.StartDate, filter.EndDate = in.DateRange()
	list, _, err := uc.sales.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("consultar ventas para reporte: %w", err)
	}
	return uc.generator.GenerateSalesReport(ctx, list, generatedBy)
}
