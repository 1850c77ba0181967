package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Bodega-api/internal/application/bom"
	"github.com/jhoicas/Bodega-api/internal/application/catalog"
	"github.com/jhoicas/Bodega-api/internal/application/ledger"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// Ensure TxRunner implements los puertos transaccionales de la capa de aplicación.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ catalog.ImportTxRunner = (*TxRunner)(nil)
var _ bom.RegistryTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	locationRepo repository.LocationRepository,
	invRepo repository.InventoryRepository,
	txRepo repository.TransactionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	itemRepo := NewItemRepository(tx)
	locationRepo := NewLocationRepository(tx)
	invRepo := NewInventoryRepository(tx)
	txRepo := NewTransactionRepository(tx)

	if err := fn(itemRepo, locationRepo, invRepo, txRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunImport inicia una transacción con el juego completo de repos (para los
// imports masivos y la purga de artículos, que tocan también el registro BOM).
func (r *TxRunner) RunImport(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	locationRepo repository.LocationRepository,
	invRepo repository.InventoryRepository,
	txRepo repository.TransactionRepository,
	bomRepo repository.BomRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	itemRepo := NewItemRepository(tx)
	locationRepo := NewLocationRepository(tx)
	invRepo := NewInventoryRepository(tx)
	txRepo := NewTransactionRepository(tx)
	bomRepo := NewBomRepository(tx)

	if err := fn(itemRepo, locationRepo, invRepo, txRepo, bomRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBom inicia una transacción solo con el repo de BOM (reemplazo en bloque
// delete-then-insert de un main_barcode).
func (r *TxRunner) RunBom(ctx context.Context, fn func(bomRepo repository.BomRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewBomRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
