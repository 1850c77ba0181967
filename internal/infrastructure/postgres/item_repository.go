package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de artículos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Upsert inserta o actualiza un artículo por barcode. El ID de una fila
// existente se conserva; solo cambian los campos descriptivos.
func (r *ItemRepo) Upsert(item *entity.Item) error {
	query := `
		INSERT INTO items (id, barcode, name, description, unit, category, safe_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (barcode)
		DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description,
			unit = EXCLUDED.unit, category = EXCLUDED.category,
			safe_stock = EXCLUDED.safe_stock, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Barcode, item.Name, item.Description, item.Unit, item.Category,
		item.SafeStock, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("upsert item: %w", err)
	}
	return nil
}

// GetByBarcode obtiene un artículo por código de barras.
func (r *ItemRepo) GetByBarcode(barcode string) (*entity.Item, error) {
	return r.getOne(`WHERE barcode = $1`, barcode)
}

// GetByID obtiene un artículo por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	return r.getOne(`WHERE id = $1`, id)
}

func (r *ItemRepo) getOne(where string, arg any) (*entity.Item, error) {
	query := `
		SELECT id, barcode, name, description, unit, category, safe_stock, created_at, updated_at
		FROM items ` + where
	var i entity.Item
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&i.ID, &i.Barcode, &i.Name, &i.Description, &i.Unit, &i.Category,
		&i.SafeStock, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &i, nil
}

// UpdateSafeStock actualiza solo el umbral de alerta del artículo.
func (r *ItemRepo) UpdateSafeStock(barcode string, safeStock decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE items SET safe_stock = $2, updated_at = now() WHERE barcode = $1`,
		barcode, safeStock,
	)
	if err != nil {
		return fmt.Errorf("update safe stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// Search filtra por subcadena en barcode, name o description (q vacío lista todo)
// y agrega el stock total por artículo. El desglose por ubicación no se incluye
// en el listado; se resuelve aparte con InventoryRepository.ListByItem.
func (r *ItemRepo) Search(q string, limit, offset int) ([]*repository.ItemStockSummary, error) {
	query := `
		SELECT i.id, i.barcode, i.name, i.description, i.unit, i.category, i.safe_stock,
			i.created_at, i.updated_at, COALESCE(SUM(inv.quantity), 0) AS total
		FROM items i
		LEFT JOIN inventory inv ON inv.item_id = i.id
		WHERE $1 = '' OR i.barcode ILIKE '%' || $1 || '%'
			OR i.name ILIKE '%' || $1 || '%' OR i.description ILIKE '%' || $1 || '%'
		GROUP BY i.id
		ORDER BY i.barcode
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// ListExcluding devuelve los artículos cuyo barcode NO está en la lista dada.
// Con lista vacía devuelve todos (import de catálogo vacío = purga total).
func (r *ItemRepo) ListExcluding(barcodes []string) ([]*entity.Item, error) {
	if barcodes == nil {
		barcodes = []string{}
	}
	query := `
		SELECT id, barcode, name, description, unit, category, safe_stock, created_at, updated_at
		FROM items WHERE NOT (barcode = ANY($1)) ORDER BY barcode`
	rows, err := r.q.Query(context.Background(), query, barcodes)
	if err != nil {
		return nil, fmt.Errorf("list items excluding: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var i entity.Item
		if err := rows.Scan(&i.ID, &i.Barcode, &i.Name, &i.Description, &i.Unit, &i.Category,
			&i.SafeStock, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// ListBelowSafeStock devuelve los artículos con umbral definido cuyo stock total
// está por debajo de él.
func (r *ItemRepo) ListBelowSafeStock() ([]*repository.ItemStockSummary, error) {
	query := `
		SELECT i.id, i.barcode, i.name, i.description, i.unit, i.category, i.safe_stock,
			i.created_at, i.updated_at, COALESCE(SUM(inv.quantity), 0) AS total
		FROM items i
		LEFT JOIN inventory inv ON inv.item_id = i.id
		WHERE i.safe_stock > 0
		GROUP BY i.id
		HAVING COALESCE(SUM(inv.quantity), 0) < i.safe_stock
		ORDER BY i.barcode`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list below safe stock: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

func scanSummaries(rows pgx.Rows) ([]*repository.ItemStockSummary, error) {
	var list []*repository.ItemStockSummary
	for rows.Next() {
		var s repository.ItemStockSummary
		var total decimal.Decimal
		if err := rows.Scan(&s.Item.ID, &s.Item.Barcode, &s.Item.Name, &s.Item.Description,
			&s.Item.Unit, &s.Item.Category, &s.Item.SafeStock, &s.Item.CreatedAt,
			&s.Item.UpdatedAt, &total); err != nil {
			return nil, fmt.Errorf("scan item summary: %w", err)
		}
		s.TotalQuantity = total
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete elimina un artículo por ID.
func (r *ItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
