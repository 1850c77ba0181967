package dto

import "github.com/shopspring/decimal"

// BomLineRequest una línea entrante de BOM (import).
type BomLineRequest struct {
	MainBarcode      string          `json:"main_barcode"`
	ComponentBarcode string          `json:"component_barcode"`
	RequiredQty      decimal.Decimal `json:"required_qty"`
}

// ImportBomRequest import masivo de BOM; reemplaza por main_barcode.
type ImportBomRequest struct {
	BomData []BomLineRequest `json:"bom_data"`
}

// StartOutboundRequest arranque de una sesión de salida por BOM.
type StartOutboundRequest struct {
	MainBarcode string `json:"main_barcode"`
	Sets        int    `json:"sets"`
}

// StagePickRequest una toma tentativa de la sesión activa.
type StagePickRequest struct {
	Barcode      string          `json:"barcode"`
	LocationCode string          `json:"location_code"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// SkipComponentRequest aceptar faltante de un componente.
type SkipComponentRequest struct {
	Barcode string `json:"barcode"`
}

// ComponentProgressDTO progreso de un componente en la sesión.
type ComponentProgressDTO struct {
	Barcode       string          `json:"barcode"`
	Name          string          `json:"name,omitempty"`
	RequiredQty   decimal.Decimal `json:"required_qty"`
	RequiredTotal decimal.Decimal `json:"required_total"`
	PickedTotal   decimal.Decimal `json:"picked_total"`
	OnHand        decimal.Decimal `json:"on_hand"`
	Skipped       bool            `json:"skipped"`
}

// OutboundSessionDTO foto de la sesión para el cliente (también sirve para que
// el cliente la persista entre recargas).
type OutboundSessionDTO struct {
	MainBarcode string                 `json:"main_barcode"`
	Sets        int                    `json:"sets"`
	State       string                 `json:"state"`
	Components  []ComponentProgressDTO `json:"components"`
	StagedPicks int                    `json:"staged_picks"`
}

// CommitOutboundResponse resultado del commit del lote.
type CommitOutboundResponse struct {
	ProcessedComponents int `json:"processed_components"`
}
