package bom_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/bom"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria acotados a lo que toca el orquestador de salida. El runner
// clona y restaura el estado en caso de error, como el Rollback real.
// ──────────────────────────────────────────────────────────────────────────────

type bomStore struct {
	lines     map[string][]*entity.BomLine
	items     map[string]*entity.Item
	locations map[string]*entity.Location // por code
	inv       map[string]*entity.InventoryRecord
	txs       []*entity.Transaction
}

func newBomStore() *bomStore {
	return &bomStore{
		lines:     make(map[string][]*entity.BomLine),
		items:     make(map[string]*entity.Item),
		locations: make(map[string]*entity.Location),
		inv:       make(map[string]*entity.InventoryRecord),
	}
}

func key(itemID, locationID string) string { return itemID + "|" + locationID }

func (s *bomStore) clone() *bomStore {
	c := newBomStore()
	for k, v := range s.lines {
		c.lines[k] = append([]*entity.BomLine(nil), v...)
	}
	for k, v := range s.items {
		item := *v
		c.items[k] = &item
	}
	for k, v := range s.locations {
		loc := *v
		c.locations[k] = &loc
	}
	for k, v := range s.inv {
		rec := *v
		c.inv[k] = &rec
	}
	c.txs = append(c.txs, s.txs...)
	return c
}

func (s *bomStore) restore(from *bomStore) {
	s.lines = from.lines
	s.items = from.items
	s.locations = from.locations
	s.inv = from.inv
	s.txs = from.txs
}

func (s *bomStore) qty(itemID, locationID string) decimal.Decimal {
	if rec, ok := s.inv[key(itemID, locationID)]; ok {
		return rec.Quantity
	}
	return decimal.Zero
}

type bomLinesRepo struct {
	repository.BomRepository
	s *bomStore
}

func (r *bomLinesRepo) GetLines(mainBarcode string) ([]*entity.BomLine, error) {
	return r.s.lines[mainBarcode], nil
}

type bomItemRepo struct {
	repository.ItemRepository
	s *bomStore
}

func (r *bomItemRepo) GetByBarcode(barcode string) (*entity.Item, error) {
	return r.s.items[barcode], nil
}

type bomLocationRepo struct {
	repository.LocationRepository
	s *bomStore
}

func (r *bomLocationRepo) GetByCode(code string) (*entity.Location, error) {
	return r.s.locations[code], nil
}

type bomInventoryRepo struct {
	repository.InventoryRepository
	s *bomStore
}

func (r *bomInventoryRepo) GetForUpdate(itemID, locationID string) (*entity.InventoryRecord, error) {
	if rec, ok := r.s.inv[key(itemID, locationID)]; ok {
		return rec, nil
	}
	return &entity.InventoryRecord{ItemID: itemID, LocationID: locationID, Quantity: decimal.Zero}, nil
}

func (r *bomInventoryRepo) Upsert(record *entity.InventoryRecord) error {
	r.s.inv[key(record.ItemID, record.LocationID)] = record
	return nil
}

func (r *bomInventoryRepo) TotalByItem(itemID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, rec := range r.s.inv {
		if rec.ItemID == itemID {
			total = total.Add(rec.Quantity)
		}
	}
	return total, nil
}

type bomTxRepo struct {
	repository.TransactionRepository
	s *bomStore
}

func (r *bomTxRepo) Create(tx *entity.Transaction) error {
	tx.ID = int64(len(r.s.txs) + 1)
	copied := *tx
	r.s.txs = append(r.s.txs, &copied)
	return nil
}

type bomTxRunner struct {
	s *bomStore
}

func (r *bomTxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	locationRepo repository.LocationRepository,
	invRepo repository.InventoryRepository,
	txRepo repository.TransactionRepository,
) error) error {
	snapshot := r.s.clone()
	err := fn(&bomItemRepo{s: r.s}, &bomLocationRepo{s: r.s}, &bomInventoryRepo{s: r.s}, &bomTxRepo{s: r.s})
	if err != nil {
		r.s.restore(snapshot)
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: KIT-1 = 2×COMP-A + 1×COMP-B, stock en A-01 y B-02
// ──────────────────────────────────────────────────────────────────────────────

var operador = entity.Operator{ID: "user-1", EmployeeID: "1001", Name: "Operador"}

func qty(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newOutboundFixture(t *testing.T) (*bomStore, *bom.OutboundUseCase) {
	t.Helper()
	s := newBomStore()
	s.lines["KIT-1"] = []*entity.BomLine{
		{MainBarcode: "KIT-1", ComponentBarcode: "COMP-A", RequiredQty: qty(2)},
		{MainBarcode: "KIT-1", ComponentBarcode: "COMP-B", RequiredQty: qty(1)},
	}
	s.items["COMP-A"] = &entity.Item{ID: "item-a", Barcode: "COMP-A", Name: "Tornillo"}
	s.items["COMP-B"] = &entity.Item{ID: "item-b", Barcode: "COMP-B", Name: "Tuerca"}
	s.locations["A-01"] = &entity.Location{ID: "loc-a", Code: "A-01", Floor: "P1", Kind: entity.LocationKindStorage}
	s.locations["B-02"] = &entity.Location{ID: "loc-b", Code: "B-02", Floor: "P1", Kind: entity.LocationKindStorage}
	s.inv[key("item-a", "loc-a")] = &entity.InventoryRecord{ItemID: "item-a", LocationID: "loc-a", Quantity: qty(20)}
	s.inv[key("item-b", "loc-b")] = &entity.InventoryRecord{ItemID: "item-b", LocationID: "loc-b", Quantity: qty(5)}

	runner := &bomTxRunner{s: s}
	uc := bom.NewOutboundUseCase(runner, &bomLinesRepo{s: s}, &bomItemRepo{s: s}, &bomInventoryRepo{s: s})
	return s, uc
}

// ──────────────────────────────────────────────────────────────────────────────
// StartSession
// ──────────────────────────────────────────────────────────────────────────────

func TestStartSession_CargaFotoDeStock(t *testing.T) {
	_, uc := newOutboundFixture(t)

	session, err := uc.StartSession("KIT-1", 3)
	require.NoError(t, err)
	assert.Equal(t, bom.StatePicking, session.State)
	require.Len(t, session.Components, 2)
	assert.True(t, session.Components[0].OnHand.Equal(qty(20)), "foto informativa del stock total")
	assert.True(t, session.Components[0].RequiredTotal.Equal(qty(6)))
	assert.Equal(t, "Tornillo", session.Components[0].Name)
}

func TestStartSession_EnsambleDesconocido(t *testing.T) {
	_, uc := newOutboundFixture(t)
	_, err := uc.StartSession("KIT-FANTASMA", 1)
	assert.ErrorIs(t, err, domain.ErrUnknownAssembly)
}

// ──────────────────────────────────────────────────────────────────────────────
// Commit — todo o nada
// ──────────────────────────────────────────────────────────────────────────────

func TestCommit_DescuentaTodasLasTomas(t *testing.T) {
	s, uc := newOutboundFixture(t)
	session, err := uc.StartSession("KIT-1", 2)
	require.NoError(t, err)

	require.NoError(t, session.StagePick("COMP-A", "A-01", qty(4)))
	require.NoError(t, session.StagePick("COMP-B", "B-02", qty(2)))

	processed, err := uc.Commit(context.Background(), operador, session)
	require.NoError(t, err)
	assert.Equal(t, 2, processed)
	assert.Equal(t, bom.StateCommitted, session.State)

	assert.True(t, s.qty("item-a", "loc-a").Equal(qty(16)))
	assert.True(t, s.qty("item-b", "loc-b").Equal(qty(3)))

	require.Len(t, s.txs, 2, "una transacción OUT por toma")
	assert.Equal(t, entity.MovementTypeOUT, s.txs[0].Type)
	assert.Equal(t, "BOM:KIT-1 - salida (2 sets)", s.txs[0].RefOrder)
	assert.Equal(t, operador.ID, s.txs[0].CreatedBy)
}

func TestCommit_StockInsuficiente_NadaSeAplica(t *testing.T) {
	s, uc := newOutboundFixture(t)
	session, err := uc.StartSession("KIT-1", 4)
	require.NoError(t, err)

	// La primera toma alcanza, la segunda pide más de lo que hay en B-02.
	require.NoError(t, session.StagePick("COMP-A", "A-01", qty(8)))
	require.NoError(t, session.StagePick("COMP-B", "B-02", qty(9)))

	_, err = uc.Commit(context.Background(), operador, session)
	require.Error(t, err)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "COMP-B", insufficient.Barcode)
	assert.Equal(t, "B-02", insufficient.LocationCode)
	assert.True(t, insufficient.Available.Equal(qty(5)))
	assert.True(t, insufficient.Requested.Equal(qty(9)))

	assert.True(t, s.qty("item-a", "loc-a").Equal(qty(20)),
		"la primera toma también se revierte: jamás hay descuentos parciales")
	assert.Empty(t, s.txs)
	assert.Equal(t, bom.StatePicking, session.State, "la sesión regresa a picking para corregir")
}

func TestCommit_SinTomas_Rechazado(t *testing.T) {
	_, uc := newOutboundFixture(t)
	session, err := uc.StartSession("KIT-1", 1)
	require.NoError(t, err)

	_, err = uc.Commit(context.Background(), operador, session)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCommit_ComponenteSaltado_NoDescuenta(t *testing.T) {
	s, uc := newOutboundFixture(t)
	session, err := uc.StartSession("KIT-1", 2)
	require.NoError(t, err)

	require.NoError(t, session.StagePick("COMP-A", "A-01", qty(4)))
	require.NoError(t, session.SkipComponent("COMP-B"))

	processed, err := uc.Commit(context.Background(), operador, session)
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.True(t, s.qty("item-b", "loc-b").Equal(qty(5)), "el componente saltado no se toca")
}

func TestCommit_UbicacionMarcador_Rechazada(t *testing.T) {
	s, uc := newOutboundFixture(t)
	s.locations["MARKER§Pilar§1§1"] = &entity.Location{ID: "loc-m", Code: "MARKER§Pilar§1§1", Floor: "P1", Kind: entity.LocationKindMarker}

	session, err := uc.StartSession("KIT-1", 1)
	require.NoError(t, err)
	require.NoError(t, session.StagePick("COMP-A", "MARKER§Pilar§1§1", qty(1)))

	_, err = uc.Commit(context.Background(), operador, session)
	assert.ErrorIs(t, err, domain.ErrMarkerLocation)
	assert.Equal(t, bom.StatePicking, session.State)
}
