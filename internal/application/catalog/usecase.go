package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// UseCase operaciones de catálogo: artículos y ubicaciones como tablas de
// consulta. La identidad es el código de barras / el código de ubicación por piso.
type UseCase struct {
	itemRepo     repository.ItemRepository
	locationRepo repository.LocationRepository
	invRepo      repository.InventoryRepository
}

// NewUseCase construye el caso de uso de catálogo.
func NewUseCase(
	itemRepo repository.ItemRepository,
	locationRepo repository.LocationRepository,
	invRepo repository.InventoryRepository,
) *UseCase {
	return &UseCase{itemRepo: itemRepo, locationRepo: locationRepo, invRepo: invRepo}
}

// ItemInput atributos de un artículo para upsert/import.
type ItemInput struct {
	Barcode     string
	Name        string
	Description string
	Unit        string
	Category    string
	SafeStock   decimal.Decimal
}

// UpsertItem inserta o sobreescribe por código de barras; idempotente.
func (uc *UseCase) UpsertItem(in ItemInput) error {
	if in.Barcode == "" || in.Name == "" {
		return domain.ErrInvalidInput
	}
	if in.SafeStock.IsNegative() {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	return uc.itemRepo.Upsert(&entity.Item{
		ID:          uuid.New().String(),
		Barcode:     in.Barcode,
		Name:        in.Name,
		Description: in.Description,
		Unit:        in.Unit,
		Category:    in.Category,
		SafeStock:   in.SafeStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// ResolveItem resuelve por código exacto; ErrItemNotFound si no existe.
func (uc *UseCase) ResolveItem(barcode string) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}

// SetSafeStock actualiza el umbral de alerta de un artículo.
func (uc *UseCase) SetSafeStock(barcode string, safeStock decimal.Decimal) error {
	if safeStock.IsNegative() {
		return domain.ErrInvalidInput
	}
	if _, err := uc.ResolveItem(barcode); err != nil {
		return err
	}
	return uc.itemRepo.UpdateSafeStock(barcode, safeStock)
}

// SearchItems búsqueda por subcadena con stock agregado; q vacío lista todo.
func (uc *UseCase) SearchItems(q string, limit, offset int) ([]*repository.ItemStockSummary, error) {
	if limit <= 0 {
		limit = 500
	}
	return uc.itemRepo.Search(q, limit, offset)
}

// ItemDetail artículo más su inventario por ubicación (stock más antiguo primero).
func (uc *UseCase) ItemDetail(barcode string) (*entity.Item, []repository.LocationQuantity, error) {
	item, err := uc.ResolveItem(barcode)
	if err != nil {
		return nil, nil, err
	}
	breakdown, err := uc.invRepo.ListByItem(item.ID)
	if err != nil {
		return nil, nil, err
	}
	return item, breakdown, nil
}

// LowStockReport artículos cuyo stock total está bajo su umbral de seguridad.
// Es solo material de alerta para el consumidor externo; el ledger nunca lo aplica.
func (uc *UseCase) LowStockReport() ([]*repository.ItemStockSummary, error) {
	return uc.itemRepo.ListBelowSafeStock()
}

// InventoryReport volcado completo artículo × ubicación para la página de
// reportes; los artículos sin stock aparecen con cantidad 0.
func (uc *UseCase) InventoryReport() ([]repository.InventoryReportRow, error) {
	return uc.invRepo.Report()
}

// UpsertLocation registra una ubicación de almacenamiento o un marcador visual.
// El código se decodifica una sola vez aquí: si trae la sintaxis de marcador se
// persiste como variante MARKER con etiqueta y span, nunca se re-parsea en lecturas.
func (uc *UseCase) UpsertLocation(code, floor string, x, y int) error {
	if code == "" || floor == "" {
		return domain.ErrInvalidInput
	}
	existing, err := uc.locationRepo.GetByCodeAndFloor(code, floor)
	if err != nil {
		return err
	}
	if existing != nil {
		return uc.locationRepo.UpdatePosition(existing.ID, x, y)
	}
	location, err := buildLocation(code, floor, x, y)
	if err != nil {
		return err
	}
	return uc.locationRepo.Create(location)
}

// ResolveLocation resuelve por código y piso, solo coincidencia exacta.
func (uc *UseCase) ResolveLocation(code, floor string) (*entity.Location, error) {
	location, err := uc.locationRepo.GetByCodeAndFloor(code, floor)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrLocationNotFound
	}
	return location, nil
}

// ListLocations todas las ubicaciones (mapa externo), con marcadores incluidos.
func (uc *UseCase) ListLocations() ([]*entity.Location, error) {
	return uc.locationRepo.ListAll()
}

// buildLocation decodifica el código una vez y materializa la variante correcta.
func buildLocation(code, floor string, x, y int) (*entity.Location, error) {
	location := &entity.Location{
		ID:        uuid.New().String(),
		Code:      code,
		Floor:     floor,
		Kind:      entity.LocationKindStorage,
		X:         x,
		Y:         y,
		SpanX:     1,
		SpanY:     1,
		Capacity:  100,
		CreatedAt: time.Now(),
	}
	marker, isMarker, err := entity.DecodeMarkerCode(code)
	if err != nil {
		return nil, err
	}
	if isMarker {
		location.Kind = entity.LocationKindMarker
		location.Label = marker.Label
		location.SpanX = marker.SpanX
		location.SpanY = marker.SpanY
	}
	return location, nil
}
