package ledger

import (
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ApplyDelta es el único punto por el que pasa toda mutación de cantidades del
// sistema: movimientos simples, reversiones de anulación y el commit de salida
// por BOM. Debe invocarse con un InventoryRepository atado a la transacción en
// curso; bloquea la fila, suma el delta con signo y falla con
// ErrNegativeInventory si el resultado quedaría bajo cero, sin mutar nada.
// Crea la fila si no existe y actualiza updated_at. Devuelve la nueva cantidad.
func ApplyDelta(invRepo repository.InventoryRepository, itemID, locationID string, delta decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	record, err := invRepo.GetForUpdate(itemID, locationID)
	if err != nil {
		return decimal.Zero, err
	}
	newQty := record.Quantity.Add(delta)
	if newQty.IsNegative() {
		return decimal.Zero, domain.ErrNegativeInventory
	}
	record.Quantity = newQty
	record.UpdatedAt = now
	if err := invRepo.Upsert(record); err != nil {
		return decimal.Zero, err
	}
	return newQty, nil
}
