package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// DecodeMarkerCode — códigos de almacenamiento planos
// ──────────────────────────────────────────────────────────────────────────────

func TestDecodeMarkerCode_CodigoPlano_NoEsMarcador(t *testing.T) {
	for _, code := range []string{"A-01-02", "B15", "MARKER", "MARKERX§algo"} {
		m, isMarker, err := entity.DecodeMarkerCode(code)
		require.NoError(t, err, "código plano no debe producir error: %q", code)
		assert.False(t, isMarker, "código plano no debe decodificar como marcador: %q", code)
		assert.Nil(t, m)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// DecodeMarkerCode — variantes de marcador
// ──────────────────────────────────────────────────────────────────────────────

func TestDecodeMarkerCode_SeisCampos(t *testing.T) {
	m, isMarker, err := entity.DecodeMarkerCode("MARKER§Pilar§3§7§2§4")
	require.NoError(t, err)
	require.True(t, isMarker)
	assert.Equal(t, "Pilar", m.Label)
	assert.Equal(t, 3, m.Col)
	assert.Equal(t, 7, m.Row)
	assert.Equal(t, 2, m.SpanX)
	assert.Equal(t, 4, m.SpanY)
}

func TestDecodeMarkerCode_CuatroCampos_SpanPorDefecto(t *testing.T) {
	m, isMarker, err := entity.DecodeMarkerCode("MARKER§Puerta§0§1")
	require.NoError(t, err)
	require.True(t, isMarker)
	assert.Equal(t, "Puerta", m.Label)
	assert.Equal(t, 1, m.SpanX, "span omitido debe ser 1×1")
	assert.Equal(t, 1, m.SpanY)
}

func TestDecodeMarkerCode_Malformado_EsError(t *testing.T) {
	malos := []string{
		"MARKER§Pilar",           // faltan campos
		"MARKER§Pilar§x§7",       // columna no numérica
		"MARKER§Pilar§3§y",       // fila no numérica
		"MARKER§Pilar§3§7§a§4",   // spanX no numérico
		"MARKER§Pilar§3§7§2§b",   // spanY no numérico
		"MARKER§Pilar§3§7§2",     // cinco campos
		"MARKER§Pilar§3§7§2§4§9", // siete campos
	}
	for _, code := range malos {
		_, _, err := entity.DecodeMarkerCode(code)
		assert.Error(t, err, "sintaxis rota nunca se degrada a código plano: %q", code)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// EncodeMarkerCode — ida y vuelta
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkerCode_RoundTrip(t *testing.T) {
	original := entity.Marker{Label: "Rótulo pasillo", Col: 12, Row: 0, SpanX: 3, SpanY: 1}
	code := entity.EncodeMarkerCode(original)

	decoded, isMarker, err := entity.DecodeMarkerCode(code)
	require.NoError(t, err)
	require.True(t, isMarker)
	assert.Equal(t, original, *decoded, "decode(encode(m)) debe reproducir m exactamente")
}

func TestLocation_IsMarker(t *testing.T) {
	storage := entity.Location{Kind: entity.LocationKindStorage}
	marker := entity.Location{Kind: entity.LocationKindMarker, Label: "Pilar"}
	assert.False(t, storage.IsMarker())
	assert.True(t, marker.IsMarker())
}
