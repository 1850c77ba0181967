package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.BomRepository = (*BomRepo)(nil)

// BomRepo implementación del registro de BOM sobre PostgreSQL (usable con pool o tx).
type BomRepo struct {
	q Querier
}

// NewBomRepository construye el adaptador de BOM. Pasar pool o tx (Querier).
func NewBomRepository(q Querier) *BomRepo {
	return &BomRepo{q: q}
}

// DeleteByMainBarcode borra todas las líneas de un ensamble (primera mitad del
// reemplazo en bloque; debe correr en la misma tx que los CreateLine).
func (r *BomRepo) DeleteByMainBarcode(mainBarcode string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM bom_items WHERE main_barcode = $1`, mainBarcode)
	if err != nil {
		return fmt.Errorf("delete bom lines: %w", err)
	}
	return nil
}

// CreateLine inserta una línea de BOM.
func (r *BomRepo) CreateLine(line *entity.BomLine) error {
	query := `
		INSERT INTO bom_items (main_barcode, component_barcode, required_qty, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		line.MainBarcode, line.ComponentBarcode, line.RequiredQty, line.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert bom line: %w", err)
	}
	return nil
}

// GetLines devuelve las líneas del ensamble en orden de inserción; vacío si no existe.
func (r *BomRepo) GetLines(mainBarcode string) ([]*entity.BomLine, error) {
	query := `
		SELECT main_barcode, component_barcode, required_qty, created_at
		FROM bom_items WHERE main_barcode = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, mainBarcode)
	if err != nil {
		return nil, fmt.Errorf("get bom lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.BomLine
	for rows.Next() {
		var l entity.BomLine
		if err := rows.Scan(&l.MainBarcode, &l.ComponentBarcode, &l.RequiredQty, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bom line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// SearchMainBarcodes busca ensambles por subcadena; q vacío lista todos.
func (r *BomRepo) SearchMainBarcodes(q string) ([]string, error) {
	query := `
		SELECT DISTINCT main_barcode FROM bom_items
		WHERE $1 = '' OR main_barcode ILIKE '%' || $1 || '%'
		ORDER BY main_barcode`
	rows, err := r.q.Query(context.Background(), query, q)
	if err != nil {
		return nil, fmt.Errorf("search bom main barcodes: %w", err)
	}
	defer rows.Close()
	var list []string
	for rows.Next() {
		var mb string
		if err := rows.Scan(&mb); err != nil {
			return nil, fmt.Errorf("scan main barcode: %w", err)
		}
		list = append(list, mb)
	}
	return list, rows.Err()
}

// DeleteByBarcode borra toda línea donde el barcode aparezca como ensamble o
// como componente (purga administrativa de un artículo).
func (r *BomRepo) DeleteByBarcode(barcode string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM bom_items WHERE main_barcode = $1 OR component_barcode = $1`, barcode)
	if err != nil {
		return fmt.Errorf("delete bom lines by barcode: %w", err)
	}
	return nil
}
