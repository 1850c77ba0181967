package repository

import "github.com/jhoicas/Bodega-api/internal/domain/entity"

// BomRepository define el puerto del registro de BOM (lista de materiales).
type BomRepository interface {
	// DeleteByMainBarcode + CreateLine componen el reemplazo en bloque de un
	// main_barcode; deben ejecutarse dentro de la misma transacción.
	DeleteByMainBarcode(mainBarcode string) error
	CreateLine(line *entity.BomLine) error
	// GetLines devuelve las líneas del ensamble en orden estable; vacío si no existe.
	GetLines(mainBarcode string) ([]*entity.BomLine, error)
	// SearchMainBarcodes busca por subcadena; q vacío lista todos los ensambles.
	SearchMainBarcodes(q string) ([]string, error)
	DeleteByBarcode(barcode string) error
}
