package sales

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/ventas-ops/internal/application/assignment"
	"github.com/tu-usuario/ventas-ops/internal/application/audit"
	"github.com/tu-usuario/ventas-ops/internal/application/authz"
	"github.com/tu-usuario/ventas-ops/internal/application/dto"
	"github.com/tu-usuario/ventas-ops/internal/domain"
	domauthz "github.com/tu-usuario/ventas-ops/internal/domain/authz"
	"github.com/tu-usuario/ventas-ops/internal/domain/entity"
	"github.com/tu-usuario/ventas-ops/internal/domain/repository"
	"github.com/tu-usuario/ventas-ops/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeSaleRepo struct {
	created    []*entity.Sale
	updates    []repository.SaleFieldUpdate
	lastFilter repository.SaleFilter
	byID       map[string]*entity.Sale
	loads      map[string]int
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{byID: make(map[string]*entity.Sale), loads: make(map[string]int)}
}

func (f *fakeSaleRepo) Create(_ context.Context, s *entity.Sale) error {
	f.created = append(f.created, s)
	f.byID[s.ID] = s
	return nil
}

func (f *fakeSaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	return f.byID[id], nil
}

func (f *fakeSaleRepo) List(_ context.Context, filter repository.SaleFilter) ([]*entity.Sale, int, error) {
	f.lastFilter = filter
	var out []*entity.Sale
	for _, s := range f.byID {
		if filter.UserID != "" && s.UserID != filter.UserID {
			continue
		}
		out = append(out, s)
	}
	return out, len(out), nil
}

func (f *fakeSaleRepo) UpdateField(_ context.Context, upd repository.SaleFieldUpdate) error {
	if _, ok := f.byID[upd.SaleID]; !ok {
		return domain.ErrNotFound
	}
	f.updates = append(f.updates, upd)
	return nil
}

func (f *fakeSaleRepo) CountPendingAssigned(_ context.Context, userID, _ string) (int, error) {
	return f.loads[userID], nil
}

func (f *fakeSaleRepo) DeleteAll(context.Context) (int64, error) { return 0, nil }
func (f *fakeSaleRepo) DeleteByDateRange(context.Context, time.Time, time.Time) (int64, error) {
	return 0, nil
}
func (f *fakeSaleRepo) InsertBatch(context.Context, []*entity.Sale) error { return nil }

type fakePermRepo struct {
	rules map[string]bool // role|resourceKey -> allowed
}

func (f *fakePermRepo) Get(_ context.Context, role, rk string) (*entity.PermissionRule, error) {
	if allowed, ok := f.rules[role+"|"+rk]; ok {
		return &entity.PermissionRule{Role: role, ResourceKey: rk, IsAllowed: allowed}, nil
	}
	return nil, nil
}
func (f *fakePermRepo) List(context.Context, repository.PermissionFilter) ([]entity.PermissionRule, error) {
	return nil, nil
}
func (f *fakePermRepo) Upsert(context.Context, entity.PermissionRule) error     { return nil }
func (f *fakePermRepo) InsertBatch(context.Context, []entity.PermissionRule) error { return nil }
func (f *fakePermRepo) CountByResourceKey(context.Context, string) (int, error) { return 0, nil }

type fakeUserRepo struct {
	active []*entity.User
}

func (f *fakeUserRepo) Create(context.Context, *entity.User) error               { return nil }
func (f *fakeUserRepo) GetByID(context.Context, string) (*entity.User, error)    { return nil, nil }
func (f *fakeUserRepo) GetByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (f *fakeUserRepo) Update(context.Context, *entity.User) error               { return nil }
func (f *fakeUserRepo) List(context.Context, int, int) ([]*entity.User, error)   { return nil, nil }
func (f *fakeUserRepo) Delete(context.Context, string) error                     { return nil }
func (f *fakeUserRepo) ListActiveByRole(_ context.Context, role string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.active {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeAuditRepo struct {
	logs []*entity.AuditLog
}

func (f *fakeAuditRepo) Insert(_ context.Context, l *entity.AuditLog) error {
	f.logs = append(f.logs, l)
	return nil
}
func (f *fakeAuditRepo) List(context.Context, repository.AuditFilter) ([]entity.AuditLog, int, error) {
	return nil, 0, nil
}

func newTestUseCase(saleRepo *fakeSaleRepo, permRules map[string]bool, digitadores ...*entity.User) (*UseCase, *fakeAuditRepo) {
	if permRules == nil {
		permRules = map[string]bool{}
	}
	auditRepo := &fakeAuditRepo{}
	rec := audit.NewRecorder(auditRepo, logger.Nop())
	users := &fakeUserRepo{active: digitadores}
	perms := authz.NewService(&fakePermRepo{rules: permRules}, users, nil, rec, logger.Nop())
	engine := assignment.NewEngine(users, saleRepo, "st-pending", time.Second, logger.Nop())
	return NewUseCase(saleRepo, perms, engine, rec), auditRepo
}

func digitador(id string, skills ...string) *entity.User {
	return &entity.User{ID: id, Role: entity.RoleDigitacion, IsActive: true, Skills: skills}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create + auto-asignación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_AutoAsignaCuandoLlegaSinAsignar(t *testing.T) {
	saleRepo := newFakeSaleRepo()
	saleRepo.loads["d1"] = 3
	saleRepo.loads["d2"] = 1
	uc, auditRepo := newTestUseCase(saleRepo, nil, digitador("d1", "prod-1"), digitador("d2", "prod-1"))

	out, err := uc.Create(context.Background(), "agente-1", dto.CreateSaleRequest{
		ProductID: "prod-1", CustomerName: "Cliente X",
	})
	require.NoError(t, err)
	assert.Equal(t, "d2", out.AssignedTo, "debe ganar el digitador con menor carga")
	assert.Equal(t, "agente-1", out.UserID, "user_id se fuerza al actor autenticado")

	// La fila se insertó ya asignada
	require.Len(t, saleRepo.created, 1)
	assert.Equal(t, "d2", saleRepo.created[0].AssignedTo)

	// Queda evento de auditoría de la decisión
	require.Len(t, auditRepo.logs, 1)
	assert.Equal(t, "sale.auto_assigned", auditRepo.logs[0].Action)
}

func TestCreate_RespetaAsignacionExplicita(t *testing.T) {
	saleRepo := newFakeSaleRepo()
	uc, auditRepo := newTestUseCase(saleRepo, nil, digitador("d1", "prod-1"))

	out, err := uc.Create(context.Background(), "agente-1", dto.CreateSaleRequest{
		ProductID: "prod-1", CustomerName: "Cliente X", AssignedTo: "d-manual",
	})
	require.NoError(t, err)
	assert.Equal(t, "d-manual", out.AssignedTo, "la asignación explícita no se pisa")
	assert.Empty(t, auditRepo.logs, "sin auto-asignación no hay evento")
}

func TestCreate_SinDigitadores_QuedaSinAsignar(t *testing.T) {
	saleRepo := newFakeSaleRepo()
	uc, _ := newTestUseCase(saleRepo, nil)

	out, err := uc.Create(context.Background(), "agente-1", dto.CreateSaleRequest{
		ProductID: "prod-1", CustomerName: "Cliente X",
	})
	require.NoError(t, err)
	assert.Empty(t, out.AssignedTo, "sin candidatos la venta se crea igual, sin asignar")
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateField: matriz por campo
// ──────────────────────────────────────────────────────────────────────────────

func seedSale(repo *fakeSaleRepo, id, userID string) {
	repo.byID[id] = &entity.Sale{ID: id, UserID: userID}
}

func TestUpdateField_CampoNoEditable(t *testing.T) {
	saleRepo := newFakeSaleRepo()
	seedSale(saleRepo, "v1", "agente-1")
	uc, _ := newTestUseCase(saleRepo, nil)

	err := uc.UpdateField(context.Background(), "u1", "admin", "v1", dto.UpdateSaleFieldRequest{
		Field: "pp", Value: "9999",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownResource, "columnas fuera del registro no son editables ni para admin")
}

func TestUpdateField_RolSinRegla_Denegado(t *testing.T) {
	saleRepo := newFakeSaleRepo()
	seedSale(saleRepo, "v1", "agente-1")
	uc, _ := newTestUseCase(saleRepo, nil)

	err := uc.UpdateField(context.Background(), "u1", "supervisor", "v1", dto.UpdateSaleFieldRequest{
		Field: "status_id", Value: "st-2",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, saleRepo.updates, "la denegación no debe tocar la fila")
}

func TestUpdateField_ReglaPermite_Actualiza(t *testing.T) {
	saleRepo := newFakeSaleRepo()
	seedSale(saleRepo, "v1", "agente-1")
	rules := map[string]bool{"digitacion|" + domauthz.ResFieldStatus: true}
	uc, auditRepo := newTestUseCase(saleRepo, rules)

	err := uc.UpdateField(context.Background(), "dig-1", "digitacion", "v1", dto.UpdateSaleFieldRequest{
		Field: "status_id", Value: "st-2",
	})
	require.NoError(t, err)

	require.Len(t, saleRepo.updates, 1)
	upd := saleRepo.updates[0]
	assert.Equal(t, "status_id", upd.Field)
	assert.Equal(t, "dig-1", upd.StatusUpdatedBy, "cambiar estado estampa quién lo hizo")
	require.NotNil(t, upd.StatusUpdatedAt)

	require.Len(t, auditRepo.logs, 1)
	assert.Equal(t, "sale.field_updated", auditRepo.logs[0].Action)
}

func TestUpdateField_CampoNoEstado_NoEstampa(t *testing.T) {
	saleRepo := newFakeSaleRepo()
	seedSale(saleRepo, "v1", "agente-1")
	rules := map[string]bool{"digitacion|" + domauthz.ResFieldCommentClaro: true}
	uc, _ := newTestUseCase(saleRepo, rules)

	err := uc.UpdateField(context.Background(), "dig-1", "digitacion", "v1", dto.UpdateSaleFieldRequest{
		Field: "comment_claro", Value: "instalación agendada",
	})
	require.NoError(t, err)

	require.Len(t, saleRepo.updates, 1)
	assert.Empty(t, saleRepo.updates[0].StatusUpdatedBy)
	assert.Nil(t, saleRepo.updates[0].StatusUpdatedAt)
}

func TestUpdateField_CreatorSinReglas_Pasa(t *testing.T) {
	saleRepo := newFakeSaleRepo()
	seedSale(saleRepo, "v1", "agente-1")
	uc, _ := newTestUseCase(saleRepo, nil)

	err := uc.UpdateField(context.Background(), "boss", "creator", "v1", dto.UpdateSaleFieldRequest{
		Field: "os_madre", Value: "OS-999",
	})
	assert.NoError(t, err, "creator edita cualquier campo editable sin reglas en la matriz")
}

// ──────────────────────────────────────────────────────────────────────────────
// List / GetByID: restricción por rol
// ──────────────────────────────────────────────────────────────────────────────

func TestList_RepresentativeSoloVeLoSuyo(t *testing.T) {
	saleRepo := newFakeSaleRepo()
	seedSale(saleRepo, "v1", "agente-1")
	seedSale(saleRepo, "v2", "agente-2")
	uc, _ := newTestUseCase(saleRepo, nil)

	out, err := uc.List(context.Background(), "agente-1", "representative", dto.SaleListRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "agente-1", out.Items[0].UserID)
	assert.Equal(t, "agente-1", saleRepo.lastFilter.UserID, "el filtro por dueño se aplica en la consulta")
}

func TestList_RolAgentLegacy_TambienRestringido(t *testing.T) {
	saleRepo := newFakeSaleRepo()
	uc, _ := newTestUseCase(saleRepo, nil)

	_, err := uc.List(context.Background(), "agente-1", "agent", dto.SaleListRequest{})
	require.NoError(t, err)
	assert.Equal(t, "agente-1", saleRepo.lastFilter.UserID)
}

func TestList_SupervisorVeTodo(t *testing.T) {
	saleRepo := newFakeSaleRepo()
	seedSale(saleRepo, "v1", "agente-1")
	seedSale(saleRepo, "v2", "agente-2")
	uc, _ := newTestUseCase(saleRepo, nil)

	out, err := uc.List(context.Background(), "sup-1", "supervisor", dto.SaleListRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Empty(t, saleRepo.lastFilter.UserID)
}

func TestList_RangoDeFechas_CubreElDiaFinal(t *testing.T) {
	saleRepo := newFakeSaleRepo()
	uc, _ := newTestUseCase(saleRepo, nil)

	_, err := uc.List(context.Background(), "sup-1", "supervisor", dto.SaleListRequest{
		StartDate: "2026-08-01", EndDate: "2026-08-29",
	})
	require.NoError(t, err)

	require.NotNil(t, saleRepo.lastFilter.StartDate)
	require.NotNil(t, saleRepo.lastFilter.EndDate)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), *saleRepo.lastFilter.StartDate)
	// El límite superior es el inicio del día siguiente: una venta hecha a
	// cualquier hora del 29 entra en el rango.
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), *saleRepo.lastFilter.EndDate)
}

func TestList_FechaMalFormada_SeIgnora(t *testing.T) {
	saleRepo := newFakeSaleRepo()
	uc, _ := newTestUseCase(saleRepo, nil)

	_, err := uc.List(context.Background(), "sup-1", "supervisor", dto.SaleListRequest{
		StartDate: "29/08/2026",
	})
	require.NoError(t, err)
	assert.Nil(t, saleRepo.lastFilter.StartDate)
	assert.Nil(t, saleRepo.lastFilter.EndDate)
}

func TestGetByID_RestringidoSoloVeLoSuyo(t *testing.T) {
	saleRepo := newFakeSaleRepo()
	seedSale(saleRepo, "v1", "agente-1")
	uc, _ := newTestUseCase(saleRepo, nil)
	ctx := context.Background()

	got, err := uc.GetByID(ctx, "agente-1", "representative", "v1")
	require.NoError(t, err)
	require.NotNil(t, got)

	_, err = uc.GetByID(ctx, "agente-2", "representative", "v1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
