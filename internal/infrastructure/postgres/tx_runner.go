package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/ventas-ops/internal/application/sales"
	"github.com/tu-usuario/ventas-ops/internal/domain/repository"
)

var _ sales.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción. El callback recibe un
// SaleRepository montado sobre la pgx.Tx; commit si devuelve nil, rollback si
// devuelve error o entra en pánico.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner transaccional.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSales abre una transacción y pasa un SaleRepository transaccional al callback.
func (t *TxRunner) RunSales(ctx context.Context, fn func(sales repository.SaleRepository) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("abrir transacción: %w", err)
	}
	defer tx.Rollback(ctx) // no-op tras un Commit exitoso

	if err := fn(NewSaleRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transacción: %w", err)
	}
	return nil
}
