package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrItemNotFound      = errors.New("artículo no encontrado")
	ErrLocationNotFound  = errors.New("ubicación no encontrada")
	ErrMarkerLocation    = errors.New("la ubicación es un marcador visual, no un destino de movimiento")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidQuantity   = errors.New("cantidad inválida: debe ser un número positivo")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrNegativeInventory = errors.New("la operación dejaría el inventario en negativo")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrAlreadyVoided     = errors.New("la transacción ya fue anulada")
	ErrIrreversibleVoid  = errors.New("no se puede anular: revertir la entrada dejaría el inventario en negativo")
	ErrUnknownAssembly   = errors.New("el código principal no tiene BOM configurado")
	ErrNotAComponent     = errors.New("el código no es componente de este BOM")
	ErrItemHasStock      = errors.New("no se puede eliminar un artículo con inventario restante")
	ErrSessionState      = errors.New("estado de sesión inválido para esta operación")
)

// InsufficientStockError identifica el componente y la ubicación que fallaron la
// verificación de stock en un commit, con las cantidades para que el operador corrija.
type InsufficientStockError struct {
	Barcode      string
	LocationCode string
	Available    decimal.Decimal
	Requested    decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: componente %s en ubicación %s tiene %s, se intentó descontar %s",
		e.Barcode, e.LocationCode, e.Available.String(), e.Requested.String())
}

// Is permite errors.Is(err, ErrInsufficientStock) sobre el error tipado.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
