package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/ledger"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

func newStocktakeFixture() (*memStore, *ledger.StocktakeUseCase) {
	s := newMemStore()
	return s, ledger.NewStocktakeUseCase(&memTxRunner{s: s})
}

func stocktakeRefs(s *memStore) int {
	count := 0
	for _, tx := range s.txs {
		if tx.RefOrder == "STOCKTAKE" {
			count++
		}
	}
	return count
}

// ──────────────────────────────────────────────────────────────────────────────
// ImportInventory — conteo físico completo
// ──────────────────────────────────────────────────────────────────────────────

func TestImportInventory_AjustaPorDeltas(t *testing.T) {
	s, uc := newStocktakeFixture()
	loc := s.addLocation("A-01", "P1", entity.LocationKindStorage)
	itemA := s.addItem("COMP-A", "Tornillo")
	itemB := s.addItem("COMP-B", "Tuerca")
	s.setQty(itemA.ID, loc.ID, 10)
	s.setQty(itemB.ID, loc.ID, 2)

	result, err := uc.ImportInventory(context.Background(), adminOperator, []ledger.StocktakeRow{
		{Barcode: "COMP-A", LocationCode: "A-01", Quantity: dec(4)}, // merma de 6
		{Barcode: "COMP-B", LocationCode: "A-01", Quantity: dec(7)}, // sobrante de 5
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Applied)

	assert.True(t, s.qty(itemA.ID, loc.ID).Equal(dec(4)))
	assert.True(t, s.qty(itemB.ID, loc.ID).Equal(dec(7)))

	// El historial explica cada ajuste: nunca se pisa la cantidad en bruto.
	require.Equal(t, 2, stocktakeRefs(s))
	for _, tx := range s.txs {
		switch tx.ItemID {
		case itemA.ID:
			assert.Equal(t, entity.MovementTypeOUT, tx.Type)
			assert.True(t, tx.Quantity.Equal(dec(6)))
		case itemB.ID:
			assert.Equal(t, entity.MovementTypeIN, tx.Type)
			assert.True(t, tx.Quantity.Equal(dec(5)))
		}
		assert.Equal(t, adminOperator.ID, tx.CreatedBy)
	}
}

func TestImportInventory_NoContado_ACero(t *testing.T) {
	s, uc := newStocktakeFixture()
	loc := s.addLocation("A-01", "P1", entity.LocationKindStorage)
	itemA := s.addItem("COMP-A", "Tornillo")
	itemB := s.addItem("COMP-B", "Tuerca")
	s.setQty(itemA.ID, loc.ID, 10)
	s.setQty(itemB.ID, loc.ID, 3)

	result, err := uc.ImportInventory(context.Background(), adminOperator, []ledger.StocktakeRow{
		{Barcode: "COMP-A", LocationCode: "A-01", Quantity: dec(10)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Unchanged, "el par contado exacto no genera ajuste")
	assert.Equal(t, 1, result.Zeroed)

	assert.True(t, s.qty(itemB.ID, loc.ID).IsZero(), "lo no contado ya no está en la bodega")
	require.Equal(t, 1, stocktakeRefs(s))
	for _, tx := range s.txs {
		assert.Equal(t, entity.MovementTypeOUT, tx.Type)
		assert.True(t, tx.Quantity.Equal(dec(3)))
	}
}

func TestImportInventory_ArticuloDesconocido_SeCrea(t *testing.T) {
	s, uc := newStocktakeFixture()
	s.addLocation("A-01", "P1", entity.LocationKindStorage)

	result, err := uc.ImportInventory(context.Background(), adminOperator, []ledger.StocktakeRow{
		{Barcode: "NUEVO-9", ItemName: "Arandela", LocationCode: "A-01", Quantity: dec(12)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Applied)

	item := s.items["NUEVO-9"]
	require.NotNil(t, item, "el conteo crea el artículo al vuelo, como las entradas")
	assert.Equal(t, "Arandela", item.Name)
}

func TestImportInventory_UbicacionDesconocidaOMarcador_SeSalta(t *testing.T) {
	s, uc := newStocktakeFixture()
	s.addLocation("MARKER§Pilar§1§1", "P1", entity.LocationKindMarker)
	s.addItem("COMP-A", "Tornillo")

	result, err := uc.ImportInventory(context.Background(), adminOperator, []ledger.StocktakeRow{
		{Barcode: "COMP-A", LocationCode: "NO-EXISTE", Quantity: dec(5)},
		{Barcode: "COMP-A", LocationCode: "MARKER§Pilar§1§1", Quantity: dec(5)},
		{Barcode: "COMP-A", LocationCode: "A-01", Quantity: dec(-1)},
	})
	require.NoError(t, err, "las filas inválidas no abortan el conteo completo")
	assert.Equal(t, 3, result.Skipped)
	assert.Empty(t, s.txs)
}

func TestImportInventory_Vacio_Rechazado(t *testing.T) {
	_, uc := newStocktakeFixture()
	_, err := uc.ImportInventory(context.Background(), adminOperator, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
