package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo identificado por su código de barras (único,
// sensible a mayúsculas). SafeStock es el umbral de alerta; el ledger no lo aplica.
type Item struct {
	ID          string
	Barcode     string
	Name        string
	Description string
	Unit        string
	Category    string
	SafeStock   decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
