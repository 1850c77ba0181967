package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// MovementUseCase registra movimientos simples IN/OUT de forma transaccional:
// resolución de artículo y ubicación, mutación del ledger vía ApplyDelta y
// registro en el historial, todo con Commit/Rollback y bloqueo de fila.
type MovementUseCase struct {
	txRunner TxRunner
	invRepo  repository.InventoryRepository
	itemRepo repository.ItemRepository
}

// NewMovementUseCase construye el caso de uso. invRepo e itemRepo van atados al
// pool y solo sirven para lecturas fuera de transacción (GetQuantity).
func NewMovementUseCase(txRunner TxRunner, invRepo repository.InventoryRepository, itemRepo repository.ItemRepository) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, invRepo: invRepo, itemRepo: itemRepo}
}

// MovementInput entrada para registrar un movimiento simple.
// Floor vacío resuelve el código de ubicación en cualquier piso (debe ser único).
type MovementInput struct {
	Type         string // IN | OUT
	Barcode      string
	LocationCode string
	Floor        string
	Quantity     decimal.Decimal
	RefOrder     string
}

// Submit valida la entrada y ejecuta el movimiento como una unidad atómica.
// Devuelve la nueva cantidad del par (artículo, ubicación).
//
// Un IN con código de barras desconocido crea el artículo al vuelo con el
// nombre igual al código; el escaneo no se bloquea por catálogo incompleto.
// Un OUT con código desconocido falla con ErrItemNotFound.
func (uc *MovementUseCase) Submit(ctx context.Context, op entity.Operator, in MovementInput) (decimal.Decimal, error) {
	if in.Type != entity.MovementTypeIN && in.Type != entity.MovementTypeOUT {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if in.Barcode == "" || in.LocationCode == "" {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if !in.Quantity.IsPositive() {
		return decimal.Zero, domain.ErrInvalidQuantity
	}

	now := time.Now()
	var newQty decimal.Decimal

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		locationRepo repository.LocationRepository,
		invRepo repository.InventoryRepository,
		txRepo repository.TransactionRepository,
	) error {
		item, err := resolveOrCreateItem(itemRepo, in.Barcode, in.Type, now)
		if err != nil {
			return err
		}
		location, err := resolveStorageLocation(locationRepo, in.LocationCode, in.Floor)
		if err != nil {
			return err
		}

		delta := in.Quantity
		if in.Type == entity.MovementTypeOUT {
			delta = in.Quantity.Neg()
		}
		newQty, err = ApplyDelta(invRepo, item.ID, location.ID, delta, now)
		if err != nil {
			return err
		}

		// El registro del historial va siempre después de la mutación exitosa
		// del ledger, dentro de la misma tx: un fallo no deja entrada huérfana.
		return txRepo.Create(&entity.Transaction{
			Type:       in.Type,
			ItemID:     item.ID,
			LocationID: location.ID,
			Quantity:   in.Quantity,
			RefOrder:   in.RefOrder,
			CreatedAt:  now,
			CreatedBy:  op.ID,
		})
	})
	if err != nil {
		return decimal.Zero, err
	}
	return newQty, nil
}

// GetQuantity devuelve la cantidad actual del par, 0 si no existe registro.
func (uc *MovementUseCase) GetQuantity(itemID, locationID string) (decimal.Decimal, error) {
	record, err := uc.invRepo.Get(itemID, locationID)
	if err != nil {
		return decimal.Zero, err
	}
	return record.Quantity, nil
}

// resolveOrCreateItem busca el artículo por código de barras. En entradas (IN)
// lo crea mínimo si no existe; en salidas (OUT) falla con ErrItemNotFound.
func resolveOrCreateItem(itemRepo repository.ItemRepository, barcode, movementType string, now time.Time) (*entity.Item, error) {
	item, err := itemRepo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if item != nil {
		return item, nil
	}
	if movementType == entity.MovementTypeOUT {
		return nil, domain.ErrItemNotFound
	}
	item = &entity.Item{
		ID:        uuid.New().String(),
		Barcode:   barcode,
		Name:      barcode,
		SafeStock: decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := itemRepo.Upsert(item); err != nil {
		return nil, err
	}
	return item, nil
}

// resolveStorageLocation resuelve un código escaneado a una ubicación real de
// almacenamiento. Los marcadores visuales (pilares, puertas, rótulos) nunca son
// destino válido de un movimiento.
func resolveStorageLocation(locationRepo repository.LocationRepository, code, floor string) (*entity.Location, error) {
	var location *entity.Location
	var err error
	if floor != "" {
		location, err = locationRepo.GetByCodeAndFloor(code, floor)
	} else {
		location, err = locationRepo.GetByCode(code)
	}
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrLocationNotFound
	}
	if location.IsMarker() {
		return nil, domain.ErrMarkerLocation
	}
	return location, nil
}
