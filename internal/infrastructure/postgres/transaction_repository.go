package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del historial de movimientos sobre PostgreSQL
// (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador del historial. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste la transacción y asigna el ID autoincremental en tx.ID.
func (r *TransactionRepo) Create(tx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (type, item_id, location_id, quantity, ref_order, created_at, created_by, is_deleted, deleted_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false, NULL)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		tx.Type, tx.ItemID, tx.LocationID, tx.Quantity, tx.RefOrder,
		tx.CreatedAt, nullIfEmpty(tx.CreatedBy),
	).Scan(&tx.ID)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID.
func (r *TransactionRepo) GetByID(id int64) (*entity.Transaction, error) {
	query := `
		SELECT id, type, item_id, location_id, quantity, ref_order, created_at, created_by, is_deleted, deleted_by
		FROM transactions WHERE id = $1`
	var t entity.Transaction
	var createdBy, deletedBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Type, &t.ItemID, &t.LocationID, &t.Quantity, &t.RefOrder,
		&t.CreatedAt, &createdBy, &t.IsDeleted, &deletedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if createdBy != nil {
		t.CreatedBy = *createdBy
	}
	if deletedBy != nil {
		t.DeletedBy = *deletedBy
	}
	return &t, nil
}

// MarkVoided fija is_deleted y deleted_by. La anulación es de un solo sentido:
// una fila ya anulada no se toca.
func (r *TransactionRepo) MarkVoided(id int64, deletedBy string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE transactions SET is_deleted = true, deleted_by = $2 WHERE id = $1 AND NOT is_deleted`,
		id, nullIfEmpty(deletedBy),
	)
	if err != nil {
		return fmt.Errorf("mark transaction voided: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrAlreadyVoided
	}
	return nil
}

// List devuelve el historial (más reciente primero) con artículo, ubicación y
// operadores resueltos por join. Las ubicaciones purgadas por un import de mapa
// pueden ya no existir; LEFT JOIN conserva la fila del historial igualmente.
func (r *TransactionRepo) List(includeDeleted bool, limit, offset int) ([]*entity.TransactionView, error) {
	query := `
		SELECT t.id, t.type, t.item_id, t.location_id, t.quantity, t.ref_order,
			t.created_at, t.created_by, t.is_deleted, t.deleted_by,
			COALESCE(i.barcode, ''), COALESCE(i.name, ''),
			COALESCE(l.code, ''), COALESCE(l.floor, ''),
			COALESCE(uc.name, ''), COALESCE(ud.name, '')
		FROM transactions t
		LEFT JOIN items i ON i.id = t.item_id
		LEFT JOIN locations l ON l.id = t.location_id
		LEFT JOIN users uc ON uc.id = t.created_by
		LEFT JOIN users ud ON ud.id = t.deleted_by
		WHERE $1 OR NOT t.is_deleted
		ORDER BY t.id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, includeDeleted, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransactionView
	for rows.Next() {
		var v entity.TransactionView
		var createdBy, deletedBy *string
		if err := rows.Scan(
			&v.ID, &v.Type, &v.ItemID, &v.LocationID, &v.Quantity, &v.RefOrder,
			&v.CreatedAt, &createdBy, &v.IsDeleted, &deletedBy,
			&v.Barcode, &v.ItemName, &v.LocationCode, &v.Floor,
			&v.OperatorName, &v.DeleterName,
		); err != nil {
			return nil, fmt.Errorf("scan transaction view: %w", err)
		}
		if createdBy != nil {
			v.CreatedBy = *createdBy
		}
		if deletedBy != nil {
			v.DeletedBy = *deletedBy
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// DeleteByItem borra el historial de un artículo (solo para la purga administrativa).
func (r *TransactionRepo) DeleteByItem(itemID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM transactions WHERE item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete transactions by item: %w", err)
	}
	return nil
}
