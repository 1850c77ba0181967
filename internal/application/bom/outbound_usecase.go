package bom

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Bodega-api/internal/application/ledger"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// OutboundUseCase orquesta la salida por BOM: arranca sesiones con la foto de
// stock y aplica el commit del lote de tomas como una sola transacción.
type OutboundUseCase struct {
	txRunner ledger.TxRunner
	bomRepo  repository.BomRepository
	itemRepo repository.ItemRepository
	invRepo  repository.InventoryRepository
}

// NewOutboundUseCase construye el orquestador de salida por BOM.
func NewOutboundUseCase(
	txRunner ledger.TxRunner,
	bomRepo repository.BomRepository,
	itemRepo repository.ItemRepository,
	invRepo repository.InventoryRepository,
) *OutboundUseCase {
	return &OutboundUseCase{txRunner: txRunner, bomRepo: bomRepo, itemRepo: itemRepo, invRepo: invRepo}
}

// StartSession crea una sesión nueva para el ensamble y fija el número de sets.
// ErrUnknownAssembly si el código principal no tiene líneas BOM.
func (uc *OutboundUseCase) StartSession(mainBarcode string, sets int) (*OutboundSession, error) {
	lines, err := uc.bomRepo.GetLines(mainBarcode)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrUnknownAssembly
	}

	// Foto del stock por componente: realimentación para el operador, no se
	// vuelve a confiar en ella al hacer commit.
	onHand := make(map[string]decimal.Decimal, len(lines))
	names := make(map[string]string, len(lines))
	for _, line := range lines {
		item, err := uc.itemRepo.GetByBarcode(line.ComponentBarcode)
		if err != nil {
			return nil, err
		}
		if item == nil {
			continue
		}
		names[line.ComponentBarcode] = item.Name
		total, err := uc.invRepo.TotalByItem(item.ID)
		if err != nil {
			return nil, err
		}
		onHand[line.ComponentBarcode] = total
	}

	session := NewOutboundSession()
	if err := session.Start(mainBarcode, lines, onHand, names); err != nil {
		return nil, err
	}
	if err := session.SetSets(sets); err != nil {
		return nil, err
	}
	return session, nil
}

// Commit aplica todas las tomas de la sesión, en el orden en que se apilaron,
// como una sola unidad atómica: por cada toma resuelve artículo y ubicación
// (fallo corta todo el lote), verifica stock disponible con bloqueo de fila y
// solo entonces descuenta vía ApplyDelta y registra la salida en el historial.
// Cualquier fallo revierte todas las mutaciones del lote: jamás hay descuentos
// parciales. No exige que cada componente alcance required_total (el faltante
// se advierte fuera del núcleo) y la sobre-toma se descuenta completa.
// Devuelve el número de tomas procesadas.
func (uc *OutboundUseCase) Commit(ctx context.Context, op entity.Operator, session *OutboundSession) (int, error) {
	if err := session.beginCommit(); err != nil {
		return 0, err
	}

	now := time.Now()
	ref := fmt.Sprintf("BOM:%s - salida (%d sets)", session.MainBarcode, session.Sets)

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		locationRepo repository.LocationRepository,
		invRepo repository.InventoryRepository,
		txRepo repository.TransactionRepository,
	) error {
		for _, pick := range session.StagedPicks {
			item, err := itemRepo.GetByBarcode(pick.Barcode)
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("componente %s: %w", pick.Barcode, domain.ErrItemNotFound)
			}
			location, err := locationRepo.GetByCode(pick.LocationCode)
			if err != nil {
				return err
			}
			if location == nil {
				return fmt.Errorf("ubicación %s: %w", pick.LocationCode, domain.ErrLocationNotFound)
			}
			if location.IsMarker() {
				return fmt.Errorf("ubicación %s: %w", pick.LocationCode, domain.ErrMarkerLocation)
			}

			// Re-verificación bajo bloqueo: el stock pudo consumirse por
			// movimientos ajenos entre la toma y el commit.
			record, err := invRepo.GetForUpdate(item.ID, location.ID)
			if err != nil {
				return err
			}
			if record.Quantity.LessThan(pick.Quantity) {
				return &domain.InsufficientStockError{
					Barcode:      pick.Barcode,
					LocationCode: pick.LocationCode,
					Available:    record.Quantity,
					Requested:    pick.Quantity,
				}
			}

			if _, err := ledger.ApplyDelta(invRepo, item.ID, location.ID, pick.Quantity.Neg(), now); err != nil {
				return err
			}
			err = txRepo.Create(&entity.Transaction{
				Type:       entity.MovementTypeOUT,
				ItemID:     item.ID,
				LocationID: location.ID,
				Quantity:   pick.Quantity,
				RefOrder:   ref,
				CreatedAt:  now,
				CreatedBy:  op.ID,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		session.failCommit()
		return 0, err
	}
	session.finishCommit()
	return len(session.StagedPicks), nil
}
