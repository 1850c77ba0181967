package repository

import (
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ItemStockSummary es un artículo con su stock total y el desglose por ubicación.
type ItemStockSummary struct {
	Item          entity.Item
	TotalQuantity decimal.Decimal
	Locations     []LocationQuantity
}

// LocationQuantity cantidad de un artículo en una ubicación concreta.
type LocationQuantity struct {
	LocationID   string
	LocationCode string
	Floor        string
	Quantity     decimal.Decimal
	UpdatedAt    time.Time
}

// ItemRepository define el puerto de persistencia para artículos del catálogo.
type ItemRepository interface {
	Upsert(item *entity.Item) error
	GetByBarcode(barcode string) (*entity.Item, error)
	GetByID(id string) (*entity.Item, error)
	UpdateSafeStock(barcode string, safeStock decimal.Decimal) error
	// Search filtra por subcadena en barcode, name o description; q vacío lista todo.
	Search(q string, limit, offset int) ([]*ItemStockSummary, error)
	// ListExcluding devuelve los artículos cuyo barcode NO está en la lista dada
	// (para la sobreescritura total del import).
	ListExcluding(barcodes []string) ([]*entity.Item, error)
	// ListBelowSafeStock devuelve artículos cuyo stock total está bajo el umbral.
	ListBelowSafeStock() ([]*ItemStockSummary, error)
	Delete(id string) error
}
