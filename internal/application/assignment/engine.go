// Package assignment implementa la distribución automática de ventas nuevas
// entre digitadores de back-office: filtro por skill del producto y ranking
// por carga pendiente (greedy menor-carga-primero).
package assignment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tu-usuario/ventas-ops/internal/domain/entity"
	"github.com/tu-usuario/ventas-ops/internal/domain/repository"
	"github.com/tu-usuario/ventas-ops/pkg/logger"
)

// Engine selecciona el mejor candidato para una venta sin asignar.
type Engine struct {
	users repository.UserRepository
	sales repository.SaleRepository

	pendingStatusID  string
	candidateTimeout time.Duration

	log *logger.Logger
}

// NewEngine construye el motor. pendingStatusID es el único estado que cuenta
// como carga; candidateTimeout acota cada consulta de carga individual.
func NewEngine(
	users repository.UserRepository,
	sales repository.SaleRepository,
	pendingStatusID string,
	candidateTimeout time.Duration,
	log *logger.Logger,
) *Engine {
	if candidateTimeout <= 0 {
		candidateTimeout = 3 * time.Second
	}
	return &Engine{
		users:            users,
		sales:            sales,
		pendingStatusID:  pendingStatusID,
		candidateTimeout: candidateTimeout,
		log:              log,
	}
}

type candidateLoad struct {
	id   string
	load int
}

// PickAssignee elige el digitador para una venta del producto dado.
//
//  1. Candidatos: usuarios activos con rol digitacion. Sin candidatos ->
//     "" (sin asignar es estado terminal válido, no error).
//  2. Subconjunto con skill del producto; si queda vacío, fallback al pool
//     completo de activos (cobertura por encima de correctitud estricta).
//  3. Carga por candidato = ventas asignadas con estado pendiente, consultada
//     en paralelo con timeout por candidato; los que fallan quedan fuera del
//     ranking en vez de tumbar la asignación.
//  4. Menor carga gana; empates por ID lexicográfico para que la decisión
//     sea determinista.
//
// Nota de concurrencia: dos creaciones simultáneas pueden leer el mismo
// snapshot de cargas y elegir al mismo candidato. Es una carrera conocida y
// aceptada; no se serializa la asignación.
func (e *Engine) PickAssignee(ctx context.Context, productID string) string {
	candidates, err := e.users.ListActiveByRole(ctx, entity.RoleDigitacion)
	if err != nil {
		// La creación de la venta no debe fallar por esto: degradar a sin asignar.
		e.log.Warn().Err(err).Msg("auto-asignación: no se pudieron listar candidatos")
		return ""
	}
	if len(candidates) == 0 {
		return ""
	}

	skilled := make([]*entity.User, 0, len(candidates))
	for _, c := range candidates {
		if c.HasSkill(productID) {
			skilled = append(skilled, c)
		}
	}
	pool := skilled
	if len(pool) == 0 {
		pool = candidates
	}

	loads := e.fetchLoads(ctx, pool)
	if len(loads) == 0 {
		e.log.Warn().Str("product_id", productID).
			Msg("auto-asignación: ninguna consulta de carga respondió, venta sin asignar")
		return ""
	}

	sort.Slice(loads, func(i, j int) bool {
		if loads[i].load != loads[j].load {
			return loads[i].load < loads[j].load
		}
		return loads[i].id < loads[j].id
	})

	best := loads[0]
	e.log.Info().
		Str("product_id", productID).
		Str("assigned_to", best.id).
		Int("load", best.load).
		Int("pool", len(pool)).
		Bool("skilled_pool", len(skilled) > 0).
		Msg("auto-asignación resuelta")
	return best.id
}

// fetchLoads consulta la carga pendiente de cada candidato en paralelo.
// Cada consulta es independiente: un timeout o error excluye solo a ese
// candidato.
func (e *Engine) fetchLoads(ctx context.Context, pool []*entity.User) []candidateLoad {
	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		loads = make([]candidateLoad, 0, len(pool))
	)
	for _, c := range pool {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			cctx, cancel := context.WithTimeout(ctx, e.candidateTimeout)
			defer cancel()
			n, err := e.sales.CountPendingAssigned(cctx, id, e.pendingStatusID)
			if err != nil {
				e.log.Warn().Err(err).Str("candidate", id).
					Msg("auto-asignación: consulta de carga falló, candidato excluido")
				return
			}
			mu.Lock()
			loads = append(loads, candidateLoad{id: id, load: n})
			mu.Unlock()
		}(c.ID)
	}
	wg.Wait()
	return loads
}
