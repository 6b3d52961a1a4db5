package assignment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/ventas-ops/internal/domain/entity"
	"github.com/tu-usuario/ventas-ops/internal/domain/repository"
	"github.com/tu-usuario/ventas-ops/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	active []*entity.User
	err    error
}

func (f *fakeUserRepo) Create(context.Context, *entity.User) error          { return nil }
func (f *fakeUserRepo) GetByID(context.Context, string) (*entity.User, error)   { return nil, nil }
func (f *fakeUserRepo) GetByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (f *fakeUserRepo) Update(context.Context, *entity.User) error          { return nil }
func (f *fakeUserRepo) List(context.Context, int, int) ([]*entity.User, error)  { return nil, nil }
func (f *fakeUserRepo) Delete(context.Context, string) error                { return nil }

func (f *fakeUserRepo) ListActiveByRole(_ context.Context, role string) ([]*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.User
	for _, u := range f.active {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeSaleRepo struct {
	loads   map[string]int      // userID -> carga pendiente
	failFor map[string]bool     // userID -> la consulta falla
}

func (f *fakeSaleRepo) Create(context.Context, *entity.Sale) error            { return nil }
func (f *fakeSaleRepo) GetByID(context.Context, string) (*entity.Sale, error) { return nil, nil }
func (f *fakeSaleRepo) List(context.Context, repository.SaleFilter) ([]*entity.Sale, int, error) {
	return nil, 0, nil
}
func (f *fakeSaleRepo) UpdateField(context.Context, repository.SaleFieldUpdate) error { return nil }
func (f *fakeSaleRepo) DeleteAll(context.Context) (int64, error)                      { return 0, nil }
func (f *fakeSaleRepo) DeleteByDateRange(context.Context, time.Time, time.Time) (int64, error) {
	return 0, nil
}
func (f *fakeSaleRepo) InsertBatch(context.Context, []*entity.Sale) error { return nil }

func (f *fakeSaleRepo) CountPendingAssigned(_ context.Context, userID, _ string) (int, error) {
	if f.failFor[userID] {
		return 0, errors.New("timeout simulado")
	}
	return f.loads[userID], nil
}

func digitador(id string, skills ...string) *entity.User {
	return &entity.User{ID: id, Role: entity.RoleDigitacion, IsActive: true, Skills: skills}
}

func newTestEngine(users *fakeUserRepo, sales *fakeSaleRepo) *Engine {
	return NewEngine(users, sales, "status-pending", time.Second, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// PickAssignee
// ──────────────────────────────────────────────────────────────────────────────

func TestPickAssignee_EligeMenorCarga(t *testing.T) {
	users := &fakeUserRepo{active: []*entity.User{
		digitador("a", "prod-1"),
		digitador("b", "prod-1"),
		digitador("c", "prod-1"),
	}}
	sales := &fakeSaleRepo{loads: map[string]int{"a": 5, "b": 2, "c": 7}}

	got := newTestEngine(users, sales).PickAssignee(context.Background(), "prod-1")
	assert.Equal(t, "b", got)
}

func TestPickAssignee_PrefierePoolConSkill(t *testing.T) {
	// "b" tiene menos carga pero no sabe el producto: gana el skilled con menor carga
	users := &fakeUserRepo{active: []*entity.User{
		digitador("a", "prod-1"),
		digitador("b"),
		digitador("c", "prod-1"),
	}}
	sales := &fakeSaleRepo{loads: map[string]int{"a": 4, "b": 0, "c": 3}}

	got := newTestEngine(users, sales).PickAssignee(context.Background(), "prod-1")
	assert.Equal(t, "c", got)
}

func TestPickAssignee_FallbackSinSkills(t *testing.T) {
	// Nadie sabe el producto: se usa el pool completo igualmente
	users := &fakeUserRepo{active: []*entity.User{
		digitador("a", "otro"),
		digitador("b", "otro"),
	}}
	sales := &fakeSaleRepo{loads: map[string]int{"a": 1, "b": 0}}

	got := newTestEngine(users, sales).PickAssignee(context.Background(), "prod-1")
	assert.Equal(t, "b", got)
}

func TestPickAssignee_SinCandidatos_SinAsignar(t *testing.T) {
	got := newTestEngine(&fakeUserRepo{}, &fakeSaleRepo{}).PickAssignee(context.Background(), "prod-1")
	assert.Equal(t, "", got, "sin digitadores activos la venta queda sin asignar")
}

func TestPickAssignee_ListadoFalla_SinAsignar(t *testing.T) {
	users := &fakeUserRepo{err: errors.New("DB caída")}
	got := newTestEngine(users, &fakeSaleRepo{}).PickAssignee(context.Background(), "prod-1")
	assert.Equal(t, "", got, "fallo al listar candidatos degrada a sin asignar, nunca error")
}

func TestPickAssignee_CandidatoConConsultaFallida_QuedaFuera(t *testing.T) {
	users := &fakeUserRepo{active: []*entity.User{
		digitador("a", "prod-1"),
		digitador("b", "prod-1"),
	}}
	// "a" tiene menor carga pero su consulta falla: gana "b"
	sales := &fakeSaleRepo{
		loads:   map[string]int{"a": 0, "b": 9},
		failFor: map[string]bool{"a": true},
	}

	got := newTestEngine(users, sales).PickAssignee(context.Background(), "prod-1")
	assert.Equal(t, "b", got)
}

func TestPickAssignee_TodasLasConsultasFallan_SinAsignar(t *testing.T) {
	users := &fakeUserRepo{active: []*entity.User{digitador("a"), digitador("b")}}
	sales := &fakeSaleRepo{failFor: map[string]bool{"a": true, "b": true}}

	got := newTestEngine(users, sales).PickAssignee(context.Background(), "prod-1")
	assert.Equal(t, "", got)
}

func TestPickAssignee_EmpateResueltoPorID(t *testing.T) {
	users := &fakeUserRepo{active: []*entity.User{
		digitador("zeta", "prod-1"),
		digitador("alfa", "prod-1"),
		digitador("mike", "prod-1"),
	}}
	sales := &fakeSaleRepo{loads: map[string]int{"zeta": 3, "alfa": 3, "mike": 3}}

	// El orden de llegada de las goroutines no importa: decide el ID
	for i := 0; i < 10; i++ {
		got := newTestEngine(users, sales).PickAssignee(context.Background(), "prod-1")
		assert.Equal(t, "alfa", got, "empates se resuelven por ID lexicográfico")
	}
}

func TestPickAssignee_CargaCero_EsCandidatoValido(t *testing.T) {
	users := &fakeUserRepo{active: []*entity.User{digitador("a", "prod-1")}}
	sales := &fakeSaleRepo{loads: map[string]int{}}

	got := newTestEngine(users, sales).PickAssignee(context.Background(), "prod-1")
	assert.Equal(t, "a", got)
}
