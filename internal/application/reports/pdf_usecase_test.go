package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/ventas-ops/internal/application/dto"
	"github.com/tu-usuario/ventas-ops/internal/domain/entity"
	"github.com/tu-usuario/ventas-ops/internal/domain/repository"
)

type fakeSaleRepo struct {
	lastFilter repository.SaleFilter
	sales      []*entity.Sale
}

func (f *fakeSaleRepo) Create(context.Context, *entity.Sale) error            { return nil }
func (f *fakeSaleRepo) GetByID(context.Context, string) (*entity.Sale, error) { return nil, nil }
func (f *fakeSaleRepo) List(_ context.Context, filter repository.SaleFilter) ([]*entity.Sale, int, error) {
	f.lastFilter = filter
	return f.sales, len(f.sales), nil
}
func (f *fakeSaleRepo) UpdateField(context.Context, repository.SaleFieldUpdate) error { return nil }
func (f *fakeSaleRepo) CountPendingAssigned(context.Context, string, string) (int, error) {
	return 0, nil
}
func (f *fakeSaleRepo) DeleteAll(context.Context) (int64, error) { return 0, nil }
func (f *fakeSaleRepo) DeleteByDateRange(context.Context, time.Time, time.Time) (int64, error) {
	return 0, nil
}
func (f *fakeSaleRepo) InsertBatch(context.Context, []*entity.Sale) error { return nil }

type fakeGenerator struct {
	gotSales []*entity.Sale
	gotBy    string
}

func (f *fakeGenerator) GenerateSalesReport(_ context.Context, sales []*entity.Sale, generatedBy string) ([]byte, error) {
	f.gotSales = sales
	f.gotBy = generatedBy
	return []byte("%PDF"), nil
}

func TestGenerateSalesReport_MapeaFiltrosYRangoDeFechas(t *testing.T) {
	repo := &fakeSaleRepo{sales: []*entity.Sale{{ID: "v1"}}}
	gen := &fakeGenerator{}
	uc := NewPDFUseCase(repo, gen)

	out, err := uc.GenerateSalesReport(context.Background(), "sup-1", dto.SaleListRequest{
		StartDate: "2026-08-01", EndDate: "2026-08-29", StatusID: "st-1",
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), out)

	require.NotNil(t, repo.lastFilter.StartDate)
	require.NotNil(t, repo.lastFilter.EndDate)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), *repo.lastFilter.StartDate)
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), *repo.lastFilter.EndDate,
		"el reporte cubre el día final completo, igual que el listado")
	assert.Equal(t, "st-1", repo.lastFilter.StatusID)
	assert.Equal(t, 500, repo.lastFilter.Limit)

	require.Len(t, gen.gotSales, 1)
	assert.Equal(t, "v1", gen.gotSales[0].ID)
	assert.Equal(t, "sup-1", gen.gotBy)
}

func TestGenerateSalesReport_SinFechas_NoAcotaElRango(t *testing.T) {
	repo := &fakeSaleRepo{}
	uc := NewPDFUseCase(repo, &fakeGenerator{})

	_, err := uc.GenerateSalesReport(context.Background(), "sup-1", dto.SaleListRequest{})
	require.NoError(t, err)
	assert.Nil(t, repo.lastFilter.StartDate)
	assert.Nil(t, repo.lastFilter.EndDate)
}
