package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación del ledger de cantidades sobre PostgreSQL
// (usable con pool o tx). La fila ausente equivale a cantidad 0.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get obtiene la cantidad actual del par (artículo, ubicación).
func (r *InventoryRepo) Get(itemID, locationID string) (*entity.InventoryRecord, error) {
	query := `
		SELECT item_id, location_id, quantity, updated_at
		FROM inventory WHERE item_id = $1 AND location_id = $2`
	var rec entity.InventoryRecord
	err := r.q.QueryRow(context.Background(), query, itemID, locationID).Scan(
		&rec.ItemID, &rec.LocationID, &rec.Quantity, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.InventoryRecord{ItemID: itemID, LocationID: locationID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &rec, nil
}

// GetForUpdate obtiene la cantidad y bloquea la fila (SELECT FOR UPDATE) para
// serializar movimientos concurrentes sobre el mismo par. La fila se
// materializa a cero antes de bloquear: FOR UPDATE sobre cero filas no retiene
// ningún candado y dos primeras entradas concurrentes se sobreescribirían
// entre sí. El INSERT especulativo espera a la tx rival del mismo par, así que
// al llegar al SELECT la fila existe y queda bloqueada. Si la tx termina en
// Rollback la fila materializada desaparece con ella.
func (r *InventoryRepo) GetForUpdate(itemID, locationID string) (*entity.InventoryRecord, error) {
	insert := `
		INSERT INTO inventory (item_id, location_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (item_id, location_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, itemID, locationID); err != nil {
		return nil, fmt.Errorf("materialize inventory row: %w", err)
	}
	query := `
		SELECT item_id, location_id, quantity, updated_at
		FROM inventory WHERE item_id = $1 AND location_id = $2
		FOR UPDATE`
	var rec entity.InventoryRecord
	err := r.q.QueryRow(context.Background(), query, itemID, locationID).Scan(
		&rec.ItemID, &rec.LocationID, &rec.Quantity, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get inventory for update: %w", err)
	}
	return &rec, nil
}

// Upsert inserta o actualiza la cantidad del par (artículo, ubicación).
// El CHECK (quantity >= 0) de la tabla respalda la validación de la aplicación.
func (r *InventoryRepo) Upsert(record *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory (item_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (item_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		record.ItemID, record.LocationID, record.Quantity, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert inventory: %w", err)
	}
	return nil
}

// TotalByItem suma el stock del artículo en todas las ubicaciones.
func (r *InventoryRepo) TotalByItem(itemID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM inventory WHERE item_id = $1`, itemID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total by item: %w", err)
	}
	return total, nil
}

// ListByItem desglose por ubicación (solo filas con cantidad > 0), con el stock
// más antiguo primero para sugerir rotación FIFO al operador.
func (r *InventoryRepo) ListByItem(itemID string) ([]repository.LocationQuantity, error) {
	query := `
		SELECT inv.location_id, l.code, l.floor, inv.quantity, inv.updated_at
		FROM inventory inv
		JOIN locations l ON l.id = inv.location_id
		WHERE inv.item_id = $1 AND inv.quantity > 0
		ORDER BY inv.updated_at ASC`
	rows, err := r.q.Query(context.Background(), query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list inventory by item: %w", err)
	}
	defer rows.Close()
	var list []repository.LocationQuantity
	for rows.Next() {
		var lq repository.LocationQuantity
		if err := rows.Scan(&lq.LocationID, &lq.LocationCode, &lq.Floor, &lq.Quantity, &lq.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		list = append(list, lq)
	}
	return list, rows.Err()
}

// ListPositive todas las filas del ledger con cantidad > 0. Es la base del
// conteo físico: los pares vigentes ausentes del conteo se llevan a cero.
func (r *InventoryRepo) ListPositive() ([]*entity.InventoryRecord, error) {
	query := `
		SELECT item_id, location_id, quantity, updated_at
		FROM inventory WHERE quantity > 0`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list positive inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := rows.Scan(&rec.ItemID, &rec.LocationID, &rec.Quantity, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// Report volcado completo artículo × ubicación para la página de reportes.
// LEFT JOIN para que los artículos sin stock aparezcan con cantidad 0.
func (r *InventoryRepo) Report() ([]repository.InventoryReportRow, error) {
	query := `
		SELECT i.barcode, i.name, i.description, i.unit, i.category, i.safe_stock,
		       COALESCE(l.code, ''), COALESCE(l.floor, ''), COALESCE(inv.quantity, 0)
		FROM items i
		LEFT JOIN inventory inv ON inv.item_id = i.id AND inv.quantity > 0
		LEFT JOIN locations l ON l.id = inv.location_id
		ORDER BY i.barcode, l.code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("inventory report: %w", err)
	}
	defer rows.Close()
	var list []repository.InventoryReportRow
	for rows.Next() {
		var row repository.InventoryReportRow
		if err := rows.Scan(&row.Barcode, &row.ItemName, &row.Description, &row.Unit,
			&row.Category, &row.SafeStock, &row.LocationCode, &row.Floor, &row.Quantity); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// TotalByLocation suma el stock de todos los artículos en una ubicación.
func (r *InventoryRepo) TotalByLocation(locationID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM inventory WHERE location_id = $1`, locationID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total by location: %w", err)
	}
	return total, nil
}

// DeleteByItem borra las filas del ledger de un artículo (purga administrativa).
func (r *InventoryRepo) DeleteByItem(itemID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inventory WHERE item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete inventory by item: %w", err)
	}
	return nil
}

// DeleteByLocation borra las filas del ledger de una ubicación (import de mapa).
func (r *InventoryRepo) DeleteByLocation(locationID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inventory WHERE location_id = $1`, locationID)
	if err != nil {
		return fmt.Errorf("delete inventory by location: %w", err)
	}
	return nil
}
