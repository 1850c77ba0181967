package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Tipos de ubicación. Un marcador (pilar, puerta, rótulo de pasillo) existe solo
// para el plano del almacén y nunca es destino válido de un movimiento.
const (
	LocationKindStorage = "STORAGE"
	LocationKindMarker  = "MARKER"
)

// Location representa una ubicación de almacenamiento o un marcador visual.
// El código es único por piso (el mismo código puede repetirse en otro piso).
// Las coordenadas x,y y el span solo los consume el renderizador de mapa externo.
type Location struct {
	ID        string
	Code      string
	Floor     string
	Kind      string // STORAGE | MARKER
	Label     string // etiqueta original del marcador; vacío para STORAGE
	X         int
	Y         int
	SpanX     int
	SpanY     int
	Capacity  int
	CreatedAt time.Time
}

// IsMarker indica si la ubicación es un marcador visual.
func (l *Location) IsMarker() bool {
	return l.Kind == LocationKindMarker
}

// Marker es la variante decodificada de un código de marcador visual:
// etiqueta más la celda (col,row) y el rectángulo (spanX × spanY) que cubre.
type Marker struct {
	Label string
	Col   int
	Row   int
	SpanX int
	SpanY int
}

// markerPrefix y markerSep definen la sintaxis del código de marcador:
// MARKER§<label>§<col>§<row>§<spanX>§<spanY>. El span es opcional (default 1×1).
const (
	markerPrefix = "MARKER"
	markerSep    = "§"
)

// EncodeMarkerCode serializa un marcador a su forma canónica de 6 campos.
// DecodeMarkerCode(EncodeMarkerCode(m)) reproduce m exactamente.
func EncodeMarkerCode(m Marker) string {
	return strings.Join([]string{
		markerPrefix,
		m.Label,
		strconv.Itoa(m.Col),
		strconv.Itoa(m.Row),
		strconv.Itoa(m.SpanX),
		strconv.Itoa(m.SpanY),
	}, markerSep)
}

// DecodeMarkerCode interpreta un código de ubicación como marcador visual.
// Devuelve (nil, false, nil) cuando el código es un código de almacenamiento plano.
// Un código con prefijo MARKER pero sintaxis rota es un error, nunca se degrada
// silenciosamente a código de almacenamiento.
func DecodeMarkerCode(code string) (*Marker, bool, error) {
	if !strings.HasPrefix(code, markerPrefix+markerSep) {
		return nil, false, nil
	}
	parts := strings.Split(code, markerSep)
	// MARKER§label§col§row o MARKER§label§col§row§spanX§spanY
	if len(parts) != 4 && len(parts) != 6 {
		return nil, false, fmt.Errorf("código de marcador malformado: %q", code)
	}
	col, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, false, fmt.Errorf("columna de marcador inválida en %q: %w", code, err)
	}
	row, err := strconv.Atoi(parts[3])
	if err != nil {
		return nil, false, fmt.Errorf("fila de marcador inválida en %q: %w", code, err)
	}
	m := &Marker{Label: parts[1], Col: col, Row: row, SpanX: 1, SpanY: 1}
	if len(parts) == 6 {
		if m.SpanX, err = strconv.Atoi(parts[4]); err != nil {
			return nil, false, fmt.Errorf("spanX de marcador inválido en %q: %w", code, err)
		}
		if m.SpanY, err = strconv.Atoi(parts[5]); err != nil {
			return nil, false, fmt.Errorf("spanY de marcador inválido en %q: %w", code, err)
		}
	}
	return m, true, nil
}
