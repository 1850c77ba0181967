package bom

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func testLines() []*entity.BomLine {
	return []*entity.BomLine{
		{MainBarcode: "KIT-1", ComponentBarcode: "COMP-A", RequiredQty: dec(2)},
		{MainBarcode: "KIT-1", ComponentBarcode: "COMP-B", RequiredQty: dec(1)},
	}
}

// sessionEnPicking arranca una sesión con 3 sets lista para tomar.
func sessionEnPicking(t *testing.T) *OutboundSession {
	t.Helper()
	s := NewOutboundSession()
	require.NoError(t, s.Start("KIT-1", testLines(), map[string]decimal.Decimal{"COMP-A": dec(50)}, map[string]string{"COMP-A": "Tornillo"}))
	require.NoError(t, s.SetSets(3))
	return s
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_FlujoNominal(t *testing.T) {
	s := NewOutboundSession()
	assert.Equal(t, StateIdle, s.State)

	require.NoError(t, s.Start("KIT-1", testLines(), nil, nil))
	assert.Equal(t, StateSetup, s.State)
	require.Len(t, s.Components, 2)

	require.NoError(t, s.SetSets(3))
	assert.Equal(t, StatePicking, s.State)
	assert.True(t, s.Components[0].RequiredTotal.Equal(dec(6)), "required_total = required_qty × sets")
	assert.True(t, s.Components[1].RequiredTotal.Equal(dec(3)))

	require.NoError(t, s.StagePick("COMP-A", "A-01", dec(6)))
	require.NoError(t, s.StagePick("COMP-B", "B-02", dec(3)))
	require.NoError(t, s.beginCommit())
	assert.Equal(t, StateCommitting, s.State)

	s.finishCommit()
	assert.Equal(t, StateCommitted, s.State)
}

func TestSession_StartSinLineas_EsErrUnknownAssembly(t *testing.T) {
	s := NewOutboundSession()
	err := s.Start("KIT-X", nil, nil, nil)
	assert.ErrorIs(t, err, domain.ErrUnknownAssembly)
}

func TestSession_SetSetsNoPositivo_Rechazado(t *testing.T) {
	s := NewOutboundSession()
	require.NoError(t, s.Start("KIT-1", testLines(), nil, nil))
	assert.ErrorIs(t, s.SetSets(0), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, s.SetSets(-2), domain.ErrInvalidQuantity)
	assert.Equal(t, StateSetup, s.State, "un set inválido no avanza el estado")
}

func TestSession_OperacionesFueraDeEstado_Rechazadas(t *testing.T) {
	s := NewOutboundSession()
	// En Idle nada más que Start es válido.
	assert.ErrorIs(t, s.SetSets(1), domain.ErrSessionState)
	assert.ErrorIs(t, s.StagePick("COMP-A", "A-01", dec(1)), domain.ErrSessionState)
	assert.ErrorIs(t, s.SkipComponent("COMP-A"), domain.ErrSessionState)
	assert.ErrorIs(t, s.beginCommit(), domain.ErrSessionState)
	assert.ErrorIs(t, s.Cancel(), domain.ErrSessionState)

	// Start dos veces tampoco.
	require.NoError(t, s.Start("KIT-1", testLines(), nil, nil))
	assert.ErrorIs(t, s.Start("KIT-1", testLines(), nil, nil), domain.ErrSessionState)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tomas tentativas
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_StagePick_AcumulaPorComponente(t *testing.T) {
	s := sessionEnPicking(t)

	require.NoError(t, s.StagePick("COMP-A", "A-01", dec(4)))
	require.NoError(t, s.StagePick("COMP-A", "A-02", dec(2)))
	assert.True(t, s.Components[0].PickedTotal.Equal(dec(6)),
		"tomas parciales desde varias ubicaciones deben acumular")
	assert.Len(t, s.StagedPicks, 2)
}

func TestSession_StagePick_SobreTomaPermitida(t *testing.T) {
	s := sessionEnPicking(t)

	require.NoError(t, s.StagePick("COMP-A", "A-01", dec(10)))
	assert.True(t, s.Components[0].PickedTotal.GreaterThan(s.Components[0].RequiredTotal),
		"picked_total puede superar required_total sin rechazo")
}

func TestSession_StagePick_ComponenteAjeno_Rechazado(t *testing.T) {
	s := sessionEnPicking(t)
	err := s.StagePick("OTRO-BARCODE", "A-01", dec(1))
	assert.ErrorIs(t, err, domain.ErrNotAComponent)
	assert.Empty(t, s.StagedPicks, "la toma rechazada no se apila")
}

func TestSession_StagePick_CantidadInvalida_Rechazada(t *testing.T) {
	s := sessionEnPicking(t)
	assert.ErrorIs(t, s.StagePick("COMP-A", "A-01", dec(0)), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, s.StagePick("COMP-A", "A-01", dec(-3)), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, s.StagePick("COMP-A", "", dec(1)), domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Faltantes aceptados (skip) — escenario E
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_SkipComponent_CubreSinTomas(t *testing.T) {
	s := sessionEnPicking(t)

	require.NoError(t, s.StagePick("COMP-A", "A-01", dec(6)))
	require.NoError(t, s.SkipComponent("COMP-B"))

	compB := s.Components[1]
	assert.True(t, compB.Skipped)
	assert.True(t, compB.PickedTotal.Equal(compB.RequiredTotal),
		"skip fija picked_total = required_total")
	assert.Len(t, s.StagedPicks, 1, "skip no agrega tomas: el commit no descuenta nada del componente")

	require.NoError(t, s.beginCommit())
}

func TestSession_CommitSoloConSkips_Rechazado(t *testing.T) {
	s := sessionEnPicking(t)
	require.NoError(t, s.SkipComponent("COMP-A"))
	require.NoError(t, s.SkipComponent("COMP-B"))

	err := s.beginCommit()
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin tomas apiladas no hay nada que aplicar")
	assert.Equal(t, StatePicking, s.State)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelación y fallo de commit
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_Cancel_DescartaTomas(t *testing.T) {
	s := sessionEnPicking(t)
	require.NoError(t, s.StagePick("COMP-A", "A-01", dec(5)))

	require.NoError(t, s.Cancel())
	assert.Equal(t, StateCancelled, s.State)
	assert.Empty(t, s.StagedPicks)

	// Estado terminal: nada más es válido.
	assert.ErrorIs(t, s.StagePick("COMP-A", "A-01", dec(1)), domain.ErrSessionState)
	assert.ErrorIs(t, s.Cancel(), domain.ErrSessionState)
}

func TestSession_FailCommit_RegresaAPicking(t *testing.T) {
	s := sessionEnPicking(t)
	require.NoError(t, s.StagePick("COMP-A", "A-01", dec(2)))
	require.NoError(t, s.beginCommit())

	s.failCommit()
	assert.Equal(t, StatePicking, s.State, "tras un fallo atómico el operador corrige y reintenta")
	assert.Len(t, s.StagedPicks, 1, "las tomas se conservan para el reintento")
}
