package authz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/ventas-ops/internal/application/audit"
	"github.com/tu-usuario/ventas-ops/internal/application/dto"
	domauthz "github.com/tu-usuario/ventas-ops/internal/domain/authz"
	"github.com/tu-usuario/ventas-ops/internal/domain/entity"
	"github.com/tu-usuario/ventas-ops/internal/domain/repository"
	"github.com/tu-usuario/ventas-ops/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakePermRepo struct {
	rules map[string]entity.PermissionRule // key: role|resourceKey
	err   error
}

func newFakePermRepo() *fakePermRepo {
	return &fakePermRepo{rules: make(map[string]entity.PermissionRule)}
}

func (f *fakePermRepo) key(role, rk string) string { return role + "|" + rk }

func (f *fakePermRepo) Get(_ context.Context, role, resourceKey string) (*entity.PermissionRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.rules[f.key(role, resourceKey)]; ok {
		return &r, nil
	}
	return nil, nil
}

func (f *fakePermRepo) List(_ context.Context, filter repository.PermissionFilter) ([]entity.PermissionRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []entity.PermissionRule
	for _, r := range f.rules {
		if filter.Role != "" && r.Role != filter.Role {
			continue
		}
		if filter.ResourceKey != "" && r.ResourceKey != filter.ResourceKey {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakePermRepo) Upsert(_ context.Context, rule entity.PermissionRule) error {
	if f.err != nil {
		return f.err
	}
	f.rules[f.key(rule.Role, rule.ResourceKey)] = rule
	return nil
}

func (f *fakePermRepo) InsertBatch(_ context.Context, rules []entity.PermissionRule) error {
	for _, r := range rules {
		f.rules[f.key(r.Role, r.ResourceKey)] = r
	}
	return nil
}

func (f *fakePermRepo) CountByResourceKey(_ context.Context, resourceKey string) (int, error) {
	n := 0
	for _, r := range f.rules {
		if r.ResourceKey == resourceKey {
			n++
		}
	}
	return n, nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return f.users[id], nil
}
func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) List(_ context.Context, _, _ int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}
func (f *fakeUserRepo) ListActiveByRole(_ context.Context, role string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if u.Role == role && u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}
func (f *fakeUserRepo) Delete(_ context.Context, id string) error { delete(f.users, id); return nil }

type fakeAuditRepo struct {
	logs []*entity.AuditLog
}

func (f *fakeAuditRepo) Insert(_ context.Context, l *entity.AuditLog) error {
	f.logs = append(f.logs, l)
	return nil
}

func (f *fakeAuditRepo) List(_ context.Context, _ repository.AuditFilter) ([]entity.AuditLog, int, error) {
	out := make([]entity.AuditLog, 0, len(f.logs))
	for _, l := range f.logs {
		out = append(out, *l)
	}
	return out, len(out), nil
}

type fakeRuleCache struct {
	entries map[string]bool // role|resourceKey -> allowed
}

func newFakeRuleCache() *fakeRuleCache {
	return &fakeRuleCache{entries: make(map[string]bool)}
}

func (f *fakeRuleCache) Get(_ context.Context, role, rk string) (bool, bool) {
	v, ok := f.entries[role+"|"+rk]
	return v, ok
}
func (f *fakeRuleCache) Set(_ context.Context, role, rk string, allowed bool) {
	f.entries[role+"|"+rk] = allowed
}
func (f *fakeRuleCache) Invalidate(_ context.Context, role, rk string) {
	delete(f.entries, role+"|"+rk)
}

func newTestService(perms *fakePermRepo, users *fakeUserRepo) (*Service, *fakeAuditRepo) {
	auditRepo := &fakeAuditRepo{}
	rec := audit.NewRecorder(auditRepo, logger.Nop())
	return NewService(perms, users, nil, rec, logger.Nop()), auditRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// IsAllowed: bypass de creator, mundo cerrado, normalización
// ──────────────────────────────────────────────────────────────────────────────

func TestIsAllowed_CreatorBypassTotal(t *testing.T) {
	svc, _ := newTestService(newFakePermRepo(), newFakeUserRepo())
	ctx := context.Background()

	// creator pasa incluso con claves que no existen en ningún lado
	for _, key := range []string{domauthz.ResTabSales, "tab:inexistente", "basura"} {
		allowed, err := svc.IsAllowed(ctx, "creator", key)
		require.NoError(t, err)
		assert.True(t, allowed, "creator debe pasar con %q", key)
	}

	// y con cualquier capitalización
	allowed, err := svc.IsAllowed(ctx, "  CREATOR ", domauthz.ResTabSales)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestIsAllowed_ReglaAusente_Deniega(t *testing.T) {
	svc, _ := newTestService(newFakePermRepo(), newFakeUserRepo())

	allowed, err := svc.IsAllowed(context.Background(), "admin", domauthz.ResTabSales)
	require.NoError(t, err)
	assert.False(t, allowed, "sin regla debe denegar (mundo cerrado), incluso para admin")
}

func TestIsAllowed_RolVacio_Deniega(t *testing.T) {
	svc, _ := newTestService(newFakePermRepo(), newFakeUserRepo())

	allowed, err := svc.IsAllowed(context.Background(), "", domauthz.ResTabSales)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestIsAllowed_ReglaExplicita(t *testing.T) {
	perms := newFakePermRepo()
	perms.rules["supervisor|"+domauthz.ResTabSales] = entity.PermissionRule{
		Role: "supervisor", ResourceKey: domauthz.ResTabSales, IsAllowed: true,
	}
	perms.rules["supervisor|"+domauthz.ResTabReports] = entity.PermissionRule{
		Role: "supervisor", ResourceKey: domauthz.ResTabReports, IsAllowed: false,
	}
	svc, _ := newTestService(perms, newFakeUserRepo())
	ctx := context.Background()

	allowed, err := svc.IsAllowed(ctx, "supervisor", domauthz.ResTabSales)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.IsAllowed(ctx, "supervisor", domauthz.ResTabReports)
	require.NoError(t, err)
	assert.False(t, allowed, "regla con is_allowed=false debe denegar")
}

func TestIsAllowed_FalloDelAlmacen_PropagaError(t *testing.T) {
	perms := newFakePermRepo()
	perms.err = errors.New("conexión perdida")
	svc, _ := newTestService(perms, newFakeUserRepo())

	_, err := svc.IsAllowed(context.Background(), "admin", domauthz.ResTabSales)
	assert.Error(t, err, "fallo de infraestructura debe distinguirse de denegación")
}

// ──────────────────────────────────────────────────────────────────────────────
// Upsert: puerta jerárquica
// ──────────────────────────────────────────────────────────────────────────────

func TestUpsert_ActorSuperaRango_Procede(t *testing.T) {
	users := newFakeUserRepo(&entity.User{ID: "u1", Role: "admin", IsActive: true})
	perms := newFakePermRepo()
	svc, _ := newTestService(perms, users)
	ctx := context.Background()

	out, err := svc.Upsert(ctx, "u1", dto.UpsertPermissionRequest{
		Role: "supervisor", ResourceKey: domauthz.ResTabSales, IsAllowed: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "supervisor", out.Role)
	assert.True(t, out.IsAllowed)

	// Round-trip: la decisión queda viva en la matriz
	allowed, err := svc.IsAllowed(ctx, "supervisor", domauthz.ResTabSales)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestUpsert_RangoInsuficiente_Rechaza(t *testing.T) {
	users := newFakeUserRepo(&entity.User{ID: "u1", Role: "supervisor", IsActive: true})
	svc, auditRepo := newTestService(newFakePermRepo(), users)

	_, err := svc.Upsert(context.Background(), "u1", dto.UpsertPermissionRequest{
		Role: "admin", ResourceKey: domauthz.ResTabSales, IsAllowed: true,
	})
	var rankErr *domauthz.InsufficientRankError
	require.ErrorAs(t, err, &rankErr)
	assert.Equal(t, 4, rankErr.ActorRank)
	assert.Equal(t, 1, rankErr.TargetRank)

	// El intento denegado queda auditado con WARNING
	require.Len(t, auditRepo.logs, 1)
	assert.Equal(t, "permission.upsert_denied", auditRepo.logs[0].Action)
	assert.Equal(t, entity.AuditSeverityWarning, auditRepo.logs[0].Severity)
}

func TestUpsert_MismoRango_Rechaza(t *testing.T) {
	users := newFakeUserRepo(&entity.User{ID: "u1", Role: "supervisor", IsActive: true})
	svc, _ := newTestService(newFakePermRepo(), users)

	_, err := svc.Upsert(context.Background(), "u1", dto.UpsertPermissionRequest{
		Role: "supervisor", ResourceKey: domauthz.ResTabSales, IsAllowed: true,
	})
	var rankErr *domauthz.InsufficientRankError
	assert.ErrorAs(t, err, &rankErr, "un rol nunca edita sus propias reglas")
}

func TestUpsert_CreatorComoObjetivo_Rechaza(t *testing.T) {
	users := newFakeUserRepo(&entity.User{ID: "u1", Role: "creator", IsActive: true})
	svc, _ := newTestService(newFakePermRepo(), users)

	_, err := svc.Upsert(context.Background(), "u1", dto.UpsertPermissionRequest{
		Role: "creator", ResourceKey: domauthz.ResTabSales, IsAllowed: false,
	})
	assert.Error(t, err, "creator queda bloqueado como objetivo incluso para otro creator")
}

func TestUpsert_EsIdempotentePorClave(t *testing.T) {
	users := newFakeUserRepo(&entity.User{ID: "u1", Role: "admin", IsActive: true})
	perms := newFakePermRepo()
	svc, _ := newTestService(perms, users)
	ctx := context.Background()

	for _, allowed := range []bool{true, false, true} {
		_, err := svc.Upsert(ctx, "u1", dto.UpsertPermissionRequest{
			Role: "digitacion", ResourceKey: domauthz.ResFieldStatus, IsAllowed: allowed,
		})
		require.NoError(t, err)
	}

	// Una sola regla, con el último valor
	require.Len(t, perms.rules, 1)
	got, err := svc.IsAllowed(ctx, "digitacion", domauthz.ResFieldStatus)
	require.NoError(t, err)
	assert.True(t, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// SeedDefaults
// ──────────────────────────────────────────────────────────────────────────────

func TestSeedDefaults_SiembraTodosMenosCreator(t *testing.T) {
	perms := newFakePermRepo()
	svc, _ := newTestService(perms, newFakeUserRepo())
	ctx := context.Background()

	err := svc.SeedDefaults(ctx, domauthz.ResTabSales, domauthz.AllRoles, true)
	require.NoError(t, err)

	assert.Len(t, perms.rules, len(domauthz.AllRoles)-1, "creator no recibe regla")
	_, hasCreator := perms.rules["creator|"+domauthz.ResTabSales]
	assert.False(t, hasCreator)
}

func TestSeedDefaults_InvalidaDenegacionesCacheadas(t *testing.T) {
	perms := newFakePermRepo()
	cache := newFakeRuleCache()
	rec := audit.NewRecorder(&fakeAuditRepo{}, logger.Nop())
	svc := NewService(perms, newFakeUserRepo(), cache, rec, logger.Nop())
	ctx := context.Background()

	// Chequeo pre-seeding: la regla aún no existe y la denegación queda cacheada
	allowed, err := svc.IsAllowed(ctx, "supervisor", domauthz.ResTabSales)
	require.NoError(t, err)
	require.False(t, allowed)

	require.NoError(t, svc.SeedDefaults(ctx, domauthz.ResTabSales, domauthz.SeedableRoles, true))

	// La denegación cacheada no debe sobrevivir al seeding hasta su TTL
	allowed, err = svc.IsAllowed(ctx, "supervisor", domauthz.ResTabSales)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestSeedDefaults_NoOpSiYaHayReglas(t *testing.T) {
	perms := newFakePermRepo()
	perms.rules["supervisor|"+domauthz.ResTabSales] = entity.PermissionRule{
		Role: "supervisor", ResourceKey: domauthz.ResTabSales, IsAllowed: false, UpdatedAt: time.Now(),
	}
	svc, _ := newTestService(perms, newFakeUserRepo())

	err := svc.SeedDefaults(context.Background(), domauthz.ResTabSales, domauthz.SeedableRoles, true)
	require.NoError(t, err)

	// La regla preexistente (denegada por un admin) no se pisa
	require.Len(t, perms.rules, 1)
	assert.False(t, perms.rules["supervisor|"+domauthz.ResTabSales].IsAllowed)
}
