package bom

import (
	"context"
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// RegistryUseCase administra las listas de materiales: reemplazo por ensamble,
// import masivo y consulta con stock disponible por componente.
type RegistryUseCase struct {
	txRunner RegistryTxRunner
	bomRepo  repository.BomRepository
	itemRepo repository.ItemRepository
	invRepo  repository.InventoryRepository
}

// NewRegistryUseCase construye el caso de uso del registro BOM.
func NewRegistryUseCase(
	txRunner RegistryTxRunner,
	bomRepo repository.BomRepository,
	itemRepo repository.ItemRepository,
	invRepo repository.InventoryRepository,
) *RegistryUseCase {
	return &RegistryUseCase{txRunner: txRunner, bomRepo: bomRepo, itemRepo: itemRepo, invRepo: invRepo}
}

// LineInput una línea entrante de BOM.
type LineInput struct {
	MainBarcode      string
	ComponentBarcode string
	RequiredQty      decimal.Decimal
}

// ReplaceLines reemplaza transaccionalmente todas las líneas de mainBarcode por
// el conjunto dado. Cantidad no positiva se normaliza a 1 (convención del import).
func (uc *RegistryUseCase) ReplaceLines(ctx context.Context, mainBarcode string, lines []LineInput) error {
	if mainBarcode == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunBom(ctx, func(bomRepo repository.BomRepository) error {
		return replaceOne(bomRepo, mainBarcode, lines)
	})
}

// ImportBOM agrupa las filas por main_barcode y reemplaza cada grupo en bloque,
// todo dentro de una sola transacción.
func (uc *RegistryUseCase) ImportBOM(ctx context.Context, rows []LineInput) (int, error) {
	if len(rows) == 0 {
		return 0, domain.ErrInvalidInput
	}
	byMain := make(map[string][]LineInput)
	order := make([]string, 0)
	for _, row := range rows {
		if row.MainBarcode == "" || row.ComponentBarcode == "" {
			return 0, domain.ErrInvalidInput
		}
		if _, seen := byMain[row.MainBarcode]; !seen {
			order = append(order, row.MainBarcode)
		}
		byMain[row.MainBarcode] = append(byMain[row.MainBarcode], row)
	}
	err := uc.txRunner.RunBom(ctx, func(bomRepo repository.BomRepository) error {
		for _, main := range order {
			if err := replaceOne(bomRepo, main, byMain[main]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func replaceOne(bomRepo repository.BomRepository, mainBarcode string, lines []LineInput) error {
	if err := bomRepo.DeleteByMainBarcode(mainBarcode); err != nil {
		return err
	}
	now := time.Now()
	for _, line := range lines {
		qty := line.RequiredQty
		if !qty.IsPositive() {
			qty = decimal.NewFromInt(1)
		}
		err := bomRepo.CreateLine(&entity.BomLine{
			MainBarcode:      mainBarcode,
			ComponentBarcode: line.ComponentBarcode,
			RequiredQty:      qty,
			CreatedAt:        now,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// GetLines devuelve las líneas del ensamble; ErrUnknownAssembly si no hay ninguna.
func (uc *RegistryUseCase) GetLines(mainBarcode string) ([]*entity.BomLine, error) {
	lines, err := uc.bomRepo.GetLines(mainBarcode)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrUnknownAssembly
	}
	return lines, nil
}

// AssemblyView un ensamble con sus componentes y stock disponible.
type AssemblyView struct {
	MainBarcode string
	Components  []ComponentView
}

// ComponentView componente de un ensamble con su stock actual y desglose por ubicación.
type ComponentView struct {
	Barcode      string
	Name         string
	Description  string
	SafeStock    decimal.Decimal
	RequiredQty  decimal.Decimal
	CurrentStock decimal.Decimal
	Locations    []repository.LocationQuantity
}

// ListAssemblies busca ensambles por subcadena del código principal (búsqueda de
// la UI; el ledger siempre resuelve por código exacto una vez elegido uno) y
// enriquece cada componente con stock total y por ubicación.
func (uc *RegistryUseCase) ListAssemblies(q string) ([]AssemblyView, error) {
	mains, err := uc.bomRepo.SearchMainBarcodes(q)
	if err != nil {
		return nil, err
	}
	views := make([]AssemblyView, 0, len(mains))
	for _, main := range mains {
		lines, err := uc.bomRepo.GetLines(main)
		if err != nil {
			return nil, err
		}
		view := AssemblyView{MainBarcode: main}
		for _, line := range lines {
			comp := ComponentView{
				Barcode:     line.ComponentBarcode,
				RequiredQty: line.RequiredQty,
			}
			if item, err := uc.itemRepo.GetByBarcode(line.ComponentBarcode); err != nil {
				return nil, err
			} else if item != nil {
				comp.Name = item.Name
				comp.Description = item.Description
				comp.SafeStock = item.SafeStock
				total, err := uc.invRepo.TotalByItem(item.ID)
				if err != nil {
					return nil, err
				}
				comp.CurrentStock = total
				comp.Locations, err = uc.invRepo.ListByItem(item.ID)
				if err != nil {
					return nil, err
				}
			}
			view.Components = append(view.Components, comp)
		}
		views = append(views, view)
	}
	return views, nil
}
