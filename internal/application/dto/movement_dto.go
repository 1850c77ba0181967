package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubmitMovementRequest entrada/salida simple escaneada por el operador.
// floor vacío resuelve el código de ubicación en cualquier piso.
type SubmitMovementRequest struct {
	Type         string          `json:"type"` // IN | OUT
	Barcode      string          `json:"barcode"`
	LocationCode string          `json:"location_code"`
	Floor        string          `json:"floor,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	RefOrder     string          `json:"ref_order,omitempty"`
}

// SubmitMovementResponse nueva cantidad del par (artículo, ubicación).
type SubmitMovementResponse struct {
	NewQuantity decimal.Decimal `json:"new_quantity"`
}

// VoidRequest anulación de una transacción; exige la contraseña del administrador.
type VoidRequest struct {
	Password string `json:"password"`
}

// TransactionDTO una fila del historial de auditoría.
type TransactionDTO struct {
	ID           int64           `json:"id"`
	Type         string          `json:"type"`
	Barcode      string          `json:"barcode"`
	ItemName     string          `json:"item_name"`
	LocationCode string          `json:"location_code"`
	Floor        string          `json:"floor"`
	Quantity     decimal.Decimal `json:"quantity"`
	RefOrder     string          `json:"ref_order,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
	OperatorName string          `json:"operator_name,omitempty"`
	IsDeleted    bool            `json:"is_deleted"`
	DeleterName  string          `json:"deleter_name,omitempty"`
}
