package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// VoidUseCase anula una transacción del historial revirtiendo su efecto en el
// ledger. La anulación es de un solo sentido: una transacción anulada no se
// puede reactivar. La capacidad de administrador la verifica el caller (capa
// HTTP), no este componente.
type VoidUseCase struct {
	txRunner TxRunner
}

// NewVoidUseCase construye el caso de uso de anulación.
func NewVoidUseCase(txRunner TxRunner) *VoidUseCase {
	return &VoidUseCase{txRunner: txRunner}
}

// Void revierte la transacción id y la marca como anulada, atómicamente:
//   - ErrNotFound si no existe; ErrAlreadyVoided si ya fue anulada.
//   - Revertir una entrada resta la cantidad original; revertir una salida la
//     devuelve. Si revertir una entrada dejaría el par en negativo falla con
//     ErrIrreversibleVoid sin mutar nada: se reporta, nunca se recorta a cero.
func (uc *VoidUseCase) Void(ctx context.Context, op entity.Operator, id int64) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.ItemRepository,
		_ repository.LocationRepository,
		invRepo repository.InventoryRepository,
		txRepo repository.TransactionRepository,
	) error {
		tx, err := txRepo.GetByID(id)
		if err != nil {
			return err
		}
		if tx == nil {
			return domain.ErrNotFound
		}
		if tx.IsDeleted {
			return domain.ErrAlreadyVoided
		}

		delta := tx.Quantity
		if tx.Type == entity.MovementTypeIN {
			delta = tx.Quantity.Neg()
		}
		if _, err := ApplyDelta(invRepo, tx.ItemID, tx.LocationID, delta, time.Now()); err != nil {
			if errors.Is(err, domain.ErrNegativeInventory) {
				return domain.ErrIrreversibleVoid
			}
			return err
		}
		return txRepo.MarkVoided(id, op.ID)
	})
}
