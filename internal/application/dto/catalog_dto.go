package dto

import (
	"github.com/shopspring/decimal"
)

// ItemRequest alta/actualización de un artículo del catálogo.
type ItemRequest struct {
	Barcode     string          `json:"barcode"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Unit        string          `json:"unit,omitempty"`
	Category    string          `json:"category,omitempty"`
	SafeStock   decimal.Decimal `json:"safe_stock"`
}

// SafeStockRequest actualización del umbral de alerta.
type SafeStockRequest struct {
	SafeStock decimal.Decimal `json:"safe_stock"`
}

// DeleteItemRequest eliminación administrativa; exige contraseña del administrador.
type DeleteItemRequest struct {
	Password string `json:"password"`
}

// LocationQuantityDTO cantidad de un artículo en una ubicación.
type LocationQuantityDTO struct {
	LocationCode string          `json:"location_code"`
	Floor        string          `json:"floor"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// ItemSummaryDTO artículo con stock total y desglose por ubicación.
type ItemSummaryDTO struct {
	Barcode       string                `json:"barcode"`
	Name          string                `json:"name"`
	Description   string                `json:"description,omitempty"`
	Unit          string                `json:"unit,omitempty"`
	Category      string                `json:"category,omitempty"`
	SafeStock     decimal.Decimal       `json:"safe_stock"`
	TotalQuantity decimal.Decimal       `json:"total_quantity"`
	Locations     []LocationQuantityDTO `json:"locations,omitempty"`
}

// LocationDTO una ubicación del mapa; los marcadores llevan label y span.
type LocationDTO struct {
	Code     string `json:"code"`
	Floor    string `json:"floor"`
	Kind     string `json:"kind"`
	Label    string `json:"label,omitempty"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	SpanX    int    `json:"span_x"`
	SpanY    int    `json:"span_y"`
	Capacity int    `json:"capacity"`
}

// ImportItemsRequest sobreescritura total del catálogo de artículos.
type ImportItemsRequest struct {
	Items []ItemRequest `json:"items"`
}

// ImportLocationsRequest reemplazo del mapa de un piso.
type ImportLocationsRequest struct {
	Floor     string              `json:"floor"`
	Locations []LocationCellInput `json:"locations"`
}

// LocationCellInput una celda del mapa.
type LocationCellInput struct {
	Code string `json:"code"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// RenameFloorRequest renombrado de piso completo.
type RenameFloorRequest struct {
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
}

// InventoryRowInput una fila del conteo físico: la cantidad observada del par.
type InventoryRowInput struct {
	Barcode      string          `json:"barcode"`
	ItemName     string          `json:"item_name,omitempty"`
	LocationCode string          `json:"location_code"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// ImportInventoryRequest sobreescritura del ledger con un conteo físico completo.
type ImportInventoryRequest struct {
	Inventory []InventoryRowInput `json:"inventory"`
}
