package bom

import (
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Estados de la sesión de salida por BOM. Los terminales no se reutilizan:
// una nueva sesión arranca siempre desde Idle.
type SessionState string

const (
	StateIdle       SessionState = "IDLE"
	StateSetup      SessionState = "SETUP"
	StatePicking    SessionState = "PICKING"
	StateCommitting SessionState = "COMMITTING"
	StateCommitted  SessionState = "COMMITTED"
	StateCancelled  SessionState = "CANCELLED"
)

// ComponentProgress progreso de picking de un componente dentro de la sesión.
// OnHand es la foto del stock al iniciar, solo informativa para el operador:
// el commit re-verifica contra el ledger porque otros movimientos pueden haber
// consumido stock durante la sesión.
type ComponentProgress struct {
	Barcode       string          `json:"barcode"`
	Name          string          `json:"name"`
	RequiredQty   decimal.Decimal `json:"required_qty"`
	RequiredTotal decimal.Decimal `json:"required_total"`
	PickedTotal   decimal.Decimal `json:"picked_total"`
	OnHand        decimal.Decimal `json:"on_hand"`
	Skipped       bool            `json:"skipped"`
}

// StagedPick una toma tentativa: componente, ubicación y cantidad, aún sin
// efecto en el ledger.
type StagedPick struct {
	Barcode      string          `json:"barcode"`
	LocationCode string          `json:"location_code"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// OutboundSession es la máquina de estados de una salida por BOM. Es un valor
// propiedad de un solo operador, serializable a JSON para que el cliente la
// persista entre recargas; no toca el almacén compartido hasta el commit.
// No se sincroniza a sí misma: todo acceso compartido pasa por SessionStore.Do,
// que serializa las peticiones concurrentes del mismo operador.
type OutboundSession struct {
	MainBarcode string              `json:"main_barcode"`
	Sets        int                 `json:"sets"`
	State       SessionState        `json:"state"`
	Components  []ComponentProgress `json:"components"`
	StagedPicks []StagedPick        `json:"staged_picks"`
}

// NewOutboundSession crea una sesión vacía en Idle.
func NewOutboundSession() *OutboundSession {
	return &OutboundSession{State: StateIdle}
}

// Start carga las líneas BOM del ensamble (Idle → Setup). onHand lleva el stock
// total actual por componente, solo para mostrar al operador.
func (s *OutboundSession) Start(mainBarcode string, lines []*entity.BomLine, onHand map[string]decimal.Decimal, names map[string]string) error {
	if s.State != StateIdle {
		return domain.ErrSessionState
	}
	if len(lines) == 0 {
		return domain.ErrUnknownAssembly
	}
	s.MainBarcode = mainBarcode
	s.Components = make([]ComponentProgress, 0, len(lines))
	for _, line := range lines {
		s.Components = append(s.Components, ComponentProgress{
			Barcode:     line.ComponentBarcode,
			Name:        names[line.ComponentBarcode],
			RequiredQty: line.RequiredQty,
			OnHand:      onHand[line.ComponentBarcode],
		})
	}
	s.State = StateSetup
	return nil
}

// SetSets fija el número de sets (Setup → Picking) y calcula
// required_total = required_qty × sets por componente.
func (s *OutboundSession) SetSets(sets int) error {
	if s.State != StateSetup {
		return domain.ErrSessionState
	}
	if sets <= 0 {
		return domain.ErrInvalidQuantity
	}
	s.Sets = sets
	factor := decimal.NewFromInt(int64(sets))
	for i := range s.Components {
		s.Components[i].RequiredTotal = s.Components[i].RequiredQty.Mul(factor)
		s.Components[i].PickedTotal = decimal.Zero
	}
	s.StagedPicks = nil
	s.State = StatePicking
	return nil
}

// StagePick agrega una toma tentativa. Repetible en cualquier orden y desde
// varias ubicaciones; se admite toma parcial y también sobre-toma (picked_total
// puede superar required_total sin rechazo). Sin efecto en el ledger.
func (s *OutboundSession) StagePick(barcode, locationCode string, quantity decimal.Decimal) error {
	if s.State != StatePicking {
		return domain.ErrSessionState
	}
	if locationCode == "" {
		return domain.ErrInvalidInput
	}
	if !quantity.IsPositive() {
		return domain.ErrInvalidQuantity
	}
	comp := s.component(barcode)
	if comp == nil {
		return domain.ErrNotAComponent
	}
	s.StagedPicks = append(s.StagedPicks, StagedPick{
		Barcode:      barcode,
		LocationCode: locationCode,
		Quantity:     quantity,
	})
	comp.PickedTotal = comp.PickedTotal.Add(quantity)
	return nil
}

// SkipComponent marca un componente sin stock como cubierto: fija
// picked_total = required_total SIN agregar tomas, de modo que el commit no
// descuenta nada de él ni escribe transacción. Es la válvula de escape para
// aceptar un faltante.
func (s *OutboundSession) SkipComponent(barcode string) error {
	if s.State != StatePicking {
		return domain.ErrSessionState
	}
	comp := s.component(barcode)
	if comp == nil {
		return domain.ErrNotAComponent
	}
	comp.PickedTotal = comp.RequiredTotal
	comp.Skipped = true
	return nil
}

// Cancel descarta todo el estado de la sesión sin efecto alguno en el ledger.
func (s *OutboundSession) Cancel() error {
	if s.State != StatePicking && s.State != StateSetup {
		return domain.ErrSessionState
	}
	s.StagedPicks = nil
	s.State = StateCancelled
	return nil
}

// beginCommit transiciona Picking → Committing. Exige al menos una toma: una
// sesión donde todo se saltó no tiene nada que aplicar.
func (s *OutboundSession) beginCommit() error {
	if s.State != StatePicking {
		return domain.ErrSessionState
	}
	if len(s.StagedPicks) == 0 {
		return domain.ErrInvalidInput
	}
	s.State = StateCommitting
	return nil
}

// finishCommit cierra la sesión tras aplicar el lote (Committing → Committed).
func (s *OutboundSession) finishCommit() {
	s.State = StateCommitted
}

// failCommit regresa a Picking tras un fallo atómico: nada se aplicó y el
// operador puede corregir y reintentar.
func (s *OutboundSession) failCommit() {
	s.State = StatePicking
}

func (s *OutboundSession) component(barcode string) *ComponentProgress {
	for i := range s.Components {
		if s.Components[i].Barcode == barcode {
			return &s.Components[i]
		}
	}
	return nil
}
