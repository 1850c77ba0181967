package catalog

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// ImportTxRunner ejecuta las sobreescrituras masivas del catálogo (items,
// ubicaciones, BOM en cascada) dentro de una sola transacción.
type ImportTxRunner interface {
	RunImport(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		locationRepo repository.LocationRepository,
		invRepo repository.InventoryRepository,
		txRepo repository.TransactionRepository,
		bomRepo repository.BomRepository,
	) error) error
}
