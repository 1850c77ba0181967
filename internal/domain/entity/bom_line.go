package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BomLine declara cuánto de un componente requiere un set del artículo principal.
// Identidad (main_barcode, component_barcode); la reimportación reemplaza en
// bloque todas las líneas del main_barcode, nunca las mezcla.
type BomLine struct {
	MainBarcode      string
	ComponentBarcode string
	RequiredQty      decimal.Decimal
	CreatedAt        time.Time
}
