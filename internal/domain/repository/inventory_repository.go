package repository

import (
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InventoryRepository define el puerto para leer/escribir cantidades por
// (artículo, ubicación). Usado dentro de transacciones; la fila ausente se
// devuelve como registro con cantidad 0, nunca como error.
type InventoryRepository interface {
	Get(itemID, locationID string) (*entity.InventoryRecord, error)
	// GetForUpdate materializa la fila a cantidad 0 si no existe y la bloquea
	// (SELECT FOR UPDATE) para serializar movimientos concurrentes sobre el
	// mismo par, incluida la primera creación.
	GetForUpdate(itemID, locationID string) (*entity.InventoryRecord, error)
	Upsert(record *entity.InventoryRecord) error
	TotalByItem(itemID string) (decimal.Decimal, error)
	// ListByItem desglose por ubicación (solo filas con cantidad > 0),
	// ordenado por stock más antiguo primero.
	ListByItem(itemID string) ([]LocationQuantity, error)
	// ListPositive todas las filas con cantidad > 0 (base del conteo físico).
	ListPositive() ([]*entity.InventoryRecord, error)
	// Report volcado completo artículo × ubicación para la página de reportes;
	// artículos sin stock aparecen con cantidad 0 y ubicación vacía.
	Report() ([]InventoryReportRow, error)
	TotalByLocation(locationID string) (decimal.Decimal, error)
	DeleteByItem(itemID string) error
	DeleteByLocation(locationID string) error
}

// InventoryReportRow fila del volcado completo de inventario.
type InventoryReportRow struct {
	Barcode      string          `json:"barcode"`
	ItemName     string          `json:"item_name"`
	Description  string          `json:"description"`
	Unit         string          `json:"unit"`
	Category     string          `json:"category"`
	SafeStock    decimal.Decimal `json:"safe_stock"`
	LocationCode string          `json:"location_code"`
	Floor        string          `json:"floor"`
	Quantity     decimal.Decimal `json:"quantity"`
}
