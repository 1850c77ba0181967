package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// Transaction es una entrada del historial de movimientos, siempre ligada a una
// mutación del ledger. Inmutable una vez escrita salvo los campos de anulación:
// la anulación (IsDeleted + DeletedBy) es un soft-delete de un solo sentido.
type Transaction struct {
	ID         int64
	Type       string // IN | OUT
	ItemID     string
	LocationID string
	Quantity   decimal.Decimal // siempre > 0; el signo lo da Type
	RefOrder   string
	CreatedAt  time.Time
	CreatedBy  string // UserID del operador; vacío si no se identificó
	IsDeleted  bool
	DeletedBy  string // UserID del administrador que anuló; vacío si vigente
}

// TransactionView agrega los campos de presentación del historial de auditoría
// (artículo, ubicación y operadores resueltos por join).
type TransactionView struct {
	Transaction
	Barcode      string
	ItemName     string
	LocationCode string
	Floor        string
	OperatorName string
	DeleterName  string
}
