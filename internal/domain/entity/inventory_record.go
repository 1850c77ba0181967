package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRecord representa la cantidad actual de un artículo en una ubicación.
// La fila se crea en el primer movimiento hacia el par (artículo, ubicación);
// una fila ausente equivale a cantidad 0 para lecturas y reversiones.
// Invariante central: Quantity nunca es negativa.
type InventoryRecord struct {
	ItemID     string
	LocationID string
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}
