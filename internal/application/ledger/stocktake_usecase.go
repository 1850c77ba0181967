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

// Referencia con la que quedan marcados en el historial los ajustes de conteo.
const stocktakeRef = "STOCKTAKE"

// StocktakeUseCase sobreescribe el ledger completo con un conteo físico.
// La sobreescritura no pisa cantidades en bruto: cada par se ajusta con el
// delta entre lo contado y lo vigente vía ApplyDelta, y cada delta queda en el
// historial como IN/OUT con referencia STOCKTAKE. Así el historial sigue
// reproduciendo el estado del ledger también a través de un conteo.
type StocktakeUseCase struct {
	txRunner TxRunner
}

// NewStocktakeUseCase construye el caso de uso de conteo físico.
func NewStocktakeUseCase(txRunner TxRunner) *StocktakeUseCase {
	return &StocktakeUseCase{txRunner: txRunner}
}

// StocktakeRow una fila del conteo: la cantidad observada de un par.
type StocktakeRow struct {
	Barcode      string
	ItemName     string
	LocationCode string
	Quantity     decimal.Decimal
}

// StocktakeResult resumen de la sobreescritura.
type StocktakeResult struct {
	Applied   int // pares ajustados con delta distinto de cero
	Unchanged int // pares cuyo conteo coincide con el ledger
	Zeroed    int // pares vigentes ausentes del conteo, llevados a cero
	Skipped   int // filas con ubicación desconocida, marcador o cantidad inválida
}

// ImportInventory aplica el conteo como una sola transacción. Artículos
// desconocidos se crean al vuelo (como en las entradas); ubicaciones
// desconocidas o de marcador se saltan sin abortar el conteo completo. Los
// pares con stock vigente que no aparecen en el conteo se llevan a cero.
// Solo administradores (lo verifica la capa HTTP).
func (uc *StocktakeUseCase) ImportInventory(ctx context.Context, op entity.Operator, rows []StocktakeRow) (*StocktakeResult, error) {
	if len(rows) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	result := &StocktakeResult{}

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		locationRepo repository.LocationRepository,
		invRepo repository.InventoryRepository,
		txRepo repository.TransactionRepository,
	) error {
		counted := make(map[string]bool, len(rows))
		for _, row := range rows {
			if row.Barcode == "" || row.LocationCode == "" || row.Quantity.IsNegative() {
				result.Skipped++
				continue
			}
			item, err := itemRepo.GetByBarcode(row.Barcode)
			if err != nil {
				return err
			}
			if item == nil {
				name := row.ItemName
				if name == "" {
					name = row.Barcode
				}
				item = &entity.Item{
					ID:        uuid.New().String(),
					Barcode:   row.Barcode,
					Name:      name,
					SafeStock: decimal.Zero,
					CreatedAt: now,
					UpdatedAt: now,
				}
				if err := itemRepo.Upsert(item); err != nil {
					return err
				}
			}
			location, err := locationRepo.GetByCode(row.LocationCode)
			if err != nil {
				return err
			}
			if location == nil || location.IsMarker() {
				result.Skipped++
				continue
			}

			rec, err := invRepo.GetForUpdate(item.ID, location.ID)
			if err != nil {
				return err
			}
			counted[pairKey(item.ID, location.ID)] = true

			delta := row.Quantity.Sub(rec.Quantity)
			if delta.IsZero() {
				result.Unchanged++
				continue
			}
			if err := recordAdjustment(invRepo, txRepo, item.ID, location.ID, delta, op, now); err != nil {
				return err
			}
			result.Applied++
		}

		// Lo que no se contó ya no está en la bodega: a cero, con su salida
		// registrada, para que el historial explique también la merma.
		positives, err := invRepo.ListPositive()
		if err != nil {
			return err
		}
		for _, rec := range positives {
			if counted[pairKey(rec.ItemID, rec.LocationID)] {
				continue
			}
			if err := recordAdjustment(invRepo, txRepo, rec.ItemID, rec.LocationID, rec.Quantity.Neg(), op, now); err != nil {
				return err
			}
			result.Zeroed++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// recordAdjustment aplica un delta de conteo por el punto único de mutación y
// deja la entrada IN/OUT correspondiente en el historial.
func recordAdjustment(
	invRepo repository.InventoryRepository,
	txRepo repository.TransactionRepository,
	itemID, locationID string,
	delta decimal.Decimal,
	op entity.Operator,
	now time.Time,
) error {
	if _, err := ApplyDelta(invRepo, itemID, locationID, delta, now); err != nil {
		return err
	}
	typ := entity.MovementTypeIN
	if delta.IsNegative() {
		typ = entity.MovementTypeOUT
	}
	return txRepo.Create(&entity.Transaction{
		Type:       typ,
		ItemID:     itemID,
		LocationID: locationID,
		Quantity:   delta.Abs(),
		RefOrder:   stocktakeRef,
		CreatedAt:  now,
		CreatedBy:  op.ID,
	})
}

func pairKey(itemID, locationID string) string { return itemID + "|" + locationID }
