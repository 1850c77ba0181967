package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/catalog"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el catálogo y los imports.
// ──────────────────────────────────────────────────────────────────────────────

type catStore struct {
	items      map[string]*entity.Item     // por barcode
	locations  map[string]*entity.Location // por code|floor
	totalItem  map[string]decimal.Decimal  // por itemID
	totalLoc   map[string]decimal.Decimal  // por locationID
	deletedTx  []string                    // itemIDs purgados del historial
	deletedBom []string                    // barcodes purgados del registro BOM
}

func newCatStore() *catStore {
	return &catStore{
		items:     make(map[string]*entity.Item),
		locations: make(map[string]*entity.Location),
		totalItem: make(map[string]decimal.Decimal),
		totalLoc:  make(map[string]decimal.Decimal),
	}
}

func lkey(code, floor string) string { return code + "|" + floor }

type catItemRepo struct {
	repository.ItemRepository
	s *catStore
}

func (r *catItemRepo) Upsert(item *entity.Item) error {
	if existing, ok := r.s.items[item.Barcode]; ok {
		item.ID = existing.ID
	}
	r.s.items[item.Barcode] = item
	return nil
}

func (r *catItemRepo) GetByBarcode(barcode string) (*entity.Item, error) {
	return r.s.items[barcode], nil
}

func (r *catItemRepo) ListExcluding(barcodes []string) ([]*entity.Item, error) {
	keep := make(map[string]bool, len(barcodes))
	for _, b := range barcodes {
		keep[b] = true
	}
	var out []*entity.Item
	for b, item := range r.s.items {
		if !keep[b] {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *catItemRepo) Delete(id string) error {
	for b, item := range r.s.items {
		if item.ID == id {
			delete(r.s.items, b)
		}
	}
	return nil
}

type catLocationRepo struct {
	repository.LocationRepository
	s *catStore
}

func (r *catLocationRepo) Create(location *entity.Location) error {
	r.s.locations[lkey(location.Code, location.Floor)] = location
	return nil
}

func (r *catLocationRepo) GetByCodeAndFloor(code, floor string) (*entity.Location, error) {
	return r.s.locations[lkey(code, floor)], nil
}

func (r *catLocationRepo) UpdatePosition(id string, x, y int) error {
	for _, l := range r.s.locations {
		if l.ID == id {
			l.X, l.Y = x, y
		}
	}
	return nil
}

func (r *catLocationRepo) ListByFloor(floor string) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range r.s.locations {
		if l.Floor == floor {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *catLocationRepo) Delete(id string) error {
	for k, l := range r.s.locations {
		if l.ID == id {
			delete(r.s.locations, k)
		}
	}
	return nil
}

type catInventoryRepo struct {
	repository.InventoryRepository
	s *catStore
}

func (r *catInventoryRepo) TotalByItem(itemID string) (decimal.Decimal, error) {
	return r.s.totalItem[itemID], nil
}

func (r *catInventoryRepo) TotalByLocation(locationID string) (decimal.Decimal, error) {
	return r.s.totalLoc[locationID], nil
}

func (r *catInventoryRepo) DeleteByItem(itemID string) error {
	delete(r.s.totalItem, itemID)
	return nil
}

func (r *catInventoryRepo) DeleteByLocation(locationID string) error {
	delete(r.s.totalLoc, locationID)
	return nil
}

type catTxRepo struct {
	repository.TransactionRepository
	s *catStore
}

func (r *catTxRepo) DeleteByItem(itemID string) error {
	r.s.deletedTx = append(r.s.deletedTx, itemID)
	return nil
}

type catBomRepo struct {
	repository.BomRepository
	s *catStore
}

func (r *catBomRepo) DeleteByBarcode(barcode string) error {
	r.s.deletedBom = append(r.s.deletedBom, barcode)
	return nil
}

type catTxRunner struct {
	s *catStore
}

func (r *catTxRunner) RunImport(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	locationRepo repository.LocationRepository,
	invRepo repository.InventoryRepository,
	txRepo repository.TransactionRepository,
	bomRepo repository.BomRepository,
) error) error {
	return fn(&catItemRepo{s: r.s}, &catLocationRepo{s: r.s}, &catInventoryRepo{s: r.s}, &catTxRepo{s: r.s}, &catBomRepo{s: r.s})
}

func newImportFixture() (*catStore, *catalog.ImportUseCase) {
	s := newCatStore()
	return s, catalog.NewImportUseCase(&catTxRunner{s: s})
}

// ──────────────────────────────────────────────────────────────────────────────
// ImportItems — sobreescritura total con obsoletos protegidos por stock
// ──────────────────────────────────────────────────────────────────────────────

func TestImportItems_ObsoletoConStock_SeConserva(t *testing.T) {
	s, uc := newImportFixture()
	s.items["VIEJO-CON-STOCK"] = &entity.Item{ID: "i1", Barcode: "VIEJO-CON-STOCK"}
	s.items["VIEJO-SIN-STOCK"] = &entity.Item{ID: "i2", Barcode: "VIEJO-SIN-STOCK"}
	s.totalItem["i1"] = decimal.NewFromInt(7)

	result, err := uc.ImportItems(context.Background(), []catalog.ItemInput{
		{Barcode: "NUEVO-1", Name: "Nuevo"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Upserted)
	assert.Equal(t, 1, result.Deleted)
	assert.Equal(t, 1, result.Kept)

	assert.NotNil(t, s.items["VIEJO-CON-STOCK"], "con stock positivo jamás se elimina físicamente")
	assert.Nil(t, s.items["VIEJO-SIN-STOCK"])
	assert.NotNil(t, s.items["NUEVO-1"])

	// La purga del obsoleto sin stock arrastra historial y líneas BOM.
	assert.Contains(t, s.deletedTx, "i2")
	assert.Contains(t, s.deletedBom, "VIEJO-SIN-STOCK")
}

func TestImportItems_NombreVacio_UsaBarcode(t *testing.T) {
	s, uc := newImportFixture()
	_, err := uc.ImportItems(context.Background(), []catalog.ItemInput{{Barcode: "SOLO-CODIGO"}})
	require.NoError(t, err)
	assert.Equal(t, "SOLO-CODIGO", s.items["SOLO-CODIGO"].Name)
}

func TestImportItems_Vacio_Rechazado(t *testing.T) {
	_, uc := newImportFixture()
	_, err := uc.ImportItems(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteItem — guardia de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteItem_ConStock_Rechazado(t *testing.T) {
	s, uc := newImportFixture()
	s.items["COMP-A"] = &entity.Item{ID: "i1", Barcode: "COMP-A"}
	s.totalItem["i1"] = decimal.NewFromInt(3)

	err := uc.DeleteItem(context.Background(), "COMP-A")
	assert.ErrorIs(t, err, domain.ErrItemHasStock)
	assert.NotNil(t, s.items["COMP-A"])
}

func TestDeleteItem_SinStock_PurgaEnCascada(t *testing.T) {
	s, uc := newImportFixture()
	s.items["COMP-A"] = &entity.Item{ID: "i1", Barcode: "COMP-A"}

	require.NoError(t, uc.DeleteItem(context.Background(), "COMP-A"))
	assert.Nil(t, s.items["COMP-A"])
	assert.Contains(t, s.deletedTx, "i1")
	assert.Contains(t, s.deletedBom, "COMP-A")
}

func TestDeleteItem_NoExiste(t *testing.T) {
	_, uc := newImportFixture()
	err := uc.DeleteItem(context.Background(), "NADA")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ImportLocations — reemplazo de mapa con decode de marcadores al ingresar
// ──────────────────────────────────────────────────────────────────────────────

func TestImportLocations_DecodificaMarcadoresAlIngresar(t *testing.T) {
	s, uc := newImportFixture()

	result, err := uc.ImportLocations(context.Background(), "P1", []catalog.LocationInput{
		{Code: "A-01", X: 1, Y: 2},
		{Code: "MARKER§Pilar§3§7§2§4", X: 3, Y: 7},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)

	storage := s.locations[lkey("A-01", "P1")]
	require.NotNil(t, storage)
	assert.Equal(t, entity.LocationKindStorage, storage.Kind)

	marker := s.locations[lkey("MARKER§Pilar§3§7§2§4", "P1")]
	require.NotNil(t, marker)
	assert.Equal(t, entity.LocationKindMarker, marker.Kind, "la variante se materializa una sola vez al ingresar")
	assert.Equal(t, "Pilar", marker.Label)
	assert.Equal(t, 2, marker.SpanX)
	assert.Equal(t, 4, marker.SpanY)
}

func TestImportLocations_MarcadorMalformado_CortaElImport(t *testing.T) {
	_, uc := newImportFixture()
	_, err := uc.ImportLocations(context.Background(), "P1", []catalog.LocationInput{
		{Code: "MARKER§Pilar§x§7"},
	})
	assert.Error(t, err, "sintaxis de marcador rota nunca se degrada a código plano")
}

func TestImportLocations_ObsoletaConInventario_SeConserva(t *testing.T) {
	s, uc := newImportFixture()
	s.locations[lkey("VIEJA-OCUPADA", "P1")] = &entity.Location{ID: "l1", Code: "VIEJA-OCUPADA", Floor: "P1", Kind: entity.LocationKindStorage}
	s.locations[lkey("VIEJA-VACIA", "P1")] = &entity.Location{ID: "l2", Code: "VIEJA-VACIA", Floor: "P1", Kind: entity.LocationKindStorage}
	s.totalLoc["l1"] = decimal.NewFromInt(4)

	result, err := uc.ImportLocations(context.Background(), "P1", []catalog.LocationInput{
		{Code: "A-01", X: 0, Y: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 1, result.Deleted)
	assert.Equal(t, 1, result.Kept)
	assert.NotNil(t, s.locations[lkey("VIEJA-OCUPADA", "P1")])
	assert.Nil(t, s.locations[lkey("VIEJA-VACIA", "P1")])
}

func TestImportLocations_Reposiciona(t *testing.T) {
	s, uc := newImportFixture()
	s.locations[lkey("A-01", "P1")] = &entity.Location{ID: "l1", Code: "A-01", Floor: "P1", X: 0, Y: 0}

	result, err := uc.ImportLocations(context.Background(), "P1", []catalog.LocationInput{
		{Code: "A-01", X: 5, Y: 9},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 5, s.locations[lkey("A-01", "P1")].X)
	assert.Equal(t, 9, s.locations[lkey("A-01", "P1")].Y)
}
