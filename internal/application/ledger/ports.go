package ledger

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la mutación del ledger y su
// registro en el historial sean una sola unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		locationRepo repository.LocationRepository,
		invRepo repository.InventoryRepository,
		txRepo repository.TransactionRepository,
	) error) error
}
