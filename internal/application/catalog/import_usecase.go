package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// ImportUseCase sobreescrituras masivas del catálogo (artículos y mapa de
// ubicaciones) y la eliminación administrativa de artículos.
type ImportUseCase struct {
	txRunner ImportTxRunner
}

// NewImportUseCase construye el caso de uso de importación.
func NewImportUseCase(txRunner ImportTxRunner) *ImportUseCase {
	return &ImportUseCase{txRunner: txRunner}
}

// ImportItemsResult resumen de una importación de artículos.
type ImportItemsResult struct {
	Upserted int
	Deleted  int
	Kept     int // obsoletos conservados por tener stock positivo
}

// ImportItems sobreescribe el catálogo completo: upsert de cada fila entrante y
// eliminación de los artículos ausentes de la lista, en una sola transacción.
// Un artículo obsoleto con stock positivo se conserva (el ledger prohíbe
// eliminar artículos con inventario); los demás se eliminan en cascada junto a
// sus filas de inventario a cero, su historial y sus líneas BOM.
func (uc *ImportUseCase) ImportItems(ctx context.Context, rows []ItemInput) (*ImportItemsResult, error) {
	if len(rows) == 0 {
		return nil, domain.ErrInvalidInput
	}
	result := &ImportItemsResult{}
	barcodes := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Barcode == "" {
			return nil, domain.ErrInvalidInput
		}
		barcodes = append(barcodes, row.Barcode)
	}

	err := uc.txRunner.RunImport(ctx, func(
		itemRepo repository.ItemRepository,
		locationRepo repository.LocationRepository,
		invRepo repository.InventoryRepository,
		txRepo repository.TransactionRepository,
		bomRepo repository.BomRepository,
	) error {
		obsolete, err := itemRepo.ListExcluding(barcodes)
		if err != nil {
			return err
		}
		for _, item := range obsolete {
			total, err := invRepo.TotalByItem(item.ID)
			if err != nil {
				return err
			}
			if total.IsPositive() {
				result.Kept++
				continue
			}
			if err := purgeItem(itemRepo, invRepo, txRepo, bomRepo, item); err != nil {
				return err
			}
			result.Deleted++
		}

		now := time.Now()
		for _, row := range rows {
			name := row.Name
			if name == "" {
				name = row.Barcode
			}
			err := itemRepo.Upsert(&entity.Item{
				ID:          uuid.New().String(),
				Barcode:     row.Barcode,
				Name:        name,
				Description: row.Description,
				Unit:        row.Unit,
				Category:    row.Category,
				SafeStock:   row.SafeStock,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
			if err != nil {
				return err
			}
			result.Upserted++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteItem elimina un artículo del catálogo en cascada. Rechazado mientras
// cualquier fila del ledger conserve cantidad positiva. Solo administradores
// (lo verifica la capa HTTP).
func (uc *ImportUseCase) DeleteItem(ctx context.Context, barcode string) error {
	return uc.txRunner.RunImport(ctx, func(
		itemRepo repository.ItemRepository,
		locationRepo repository.LocationRepository,
		invRepo repository.InventoryRepository,
		txRepo repository.TransactionRepository,
		bomRepo repository.BomRepository,
	) error {
		item, err := itemRepo.GetByBarcode(barcode)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotFound
		}
		total, err := invRepo.TotalByItem(item.ID)
		if err != nil {
			return err
		}
		if total.IsPositive() {
			return domain.ErrItemHasStock
		}
		return purgeItem(itemRepo, invRepo, txRepo, bomRepo, item)
	})
}

// purgeItem elimina el artículo con sus filas dependientes (inventario a cero,
// historial y líneas BOM donde participe como principal o componente).
func purgeItem(
	itemRepo repository.ItemRepository,
	invRepo repository.InventoryRepository,
	txRepo repository.TransactionRepository,
	bomRepo repository.BomRepository,
	item *entity.Item,
) error {
	if err := txRepo.DeleteByItem(item.ID); err != nil {
		return err
	}
	if err := invRepo.DeleteByItem(item.ID); err != nil {
		return err
	}
	if err := bomRepo.DeleteByBarcode(item.Barcode); err != nil {
		return err
	}
	return itemRepo.Delete(item.ID)
}

// LocationInput una celda del mapa a importar.
type LocationInput struct {
	Code string
	X    int
	Y    int
}

// ImportLocationsResult resumen de una importación de mapa.
type ImportLocationsResult struct {
	Inserted int
	Updated  int
	Deleted  int
	Kept     int // obsoletas conservadas por tener inventario
}

// ImportLocations reemplaza el mapa de un piso: inserta o reposiciona las
// ubicaciones entrantes y elimina las ausentes, salvo las que aún tienen
// inventario. Los códigos de marcador se decodifican al ingresar.
func (uc *ImportUseCase) ImportLocations(ctx context.Context, floor string, rows []LocationInput) (*ImportLocationsResult, error) {
	if floor == "" || len(rows) == 0 {
		return nil, domain.ErrInvalidInput
	}
	result := &ImportLocationsResult{}

	err := uc.txRunner.RunImport(ctx, func(
		itemRepo repository.ItemRepository,
		locationRepo repository.LocationRepository,
		invRepo repository.InventoryRepository,
		txRepo repository.TransactionRepository,
		bomRepo repository.BomRepository,
	) error {
		incoming := make(map[string]bool, len(rows))
		for _, row := range rows {
			if row.Code == "" {
				continue
			}
			incoming[row.Code] = true
			existing, err := locationRepo.GetByCodeAndFloor(row.Code, floor)
			if err != nil {
				return err
			}
			if existing != nil {
				if err := locationRepo.UpdatePosition(existing.ID, row.X, row.Y); err != nil {
					return err
				}
				result.Updated++
				continue
			}
			location, err := buildLocation(row.Code, floor, row.X, row.Y)
			if err != nil {
				return err
			}
			if err := locationRepo.Create(location); err != nil {
				return err
			}
			result.Inserted++
		}

		current, err := locationRepo.ListByFloor(floor)
		if err != nil {
			return err
		}
		for _, location := range current {
			if incoming[location.Code] {
				continue
			}
			total, err := invRepo.TotalByLocation(location.ID)
			if err != nil {
				return err
			}
			if total.IsPositive() {
				result.Kept++
				continue
			}
			if err := invRepo.DeleteByLocation(location.ID); err != nil {
				return err
			}
			if err := locationRepo.Delete(location.ID); err != nil {
				return err
			}
			result.Deleted++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RenameFloor renombra un piso completo; devuelve cuántas ubicaciones cambió.
func (uc *ImportUseCase) RenameFloor(ctx context.Context, oldName, newName string) (int64, error) {
	if oldName == "" || newName == "" {
		return 0, domain.ErrInvalidInput
	}
	var count int64
	err := uc.txRunner.RunImport(ctx, func(
		itemRepo repository.ItemRepository,
		locationRepo repository.LocationRepository,
		invRepo repository.InventoryRepository,
		txRepo repository.TransactionRepository,
		bomRepo repository.BomRepository,
	) error {
		var err error
		count, err = locationRepo.RenameFloor(oldName, newName)
		return err
	})
	return count, err
}
