package repository

import "github.com/jhoicas/Bodega-api/internal/domain/entity"

// TransactionRepository define el puerto del historial de movimientos
// (append-only; la única "eliminación" es el soft-delete de la anulación).
type TransactionRepository interface {
	// Create persiste la transacción y asigna el ID autoincremental.
	Create(tx *entity.Transaction) error
	GetByID(id int64) (*entity.Transaction, error)
	// MarkVoided fija is_deleted y deleted_by. Nunca se revierte.
	MarkVoided(id int64, deletedBy string) error
	// List devuelve el historial cronológico (más reciente primero) con campos
	// de presentación resueltos; includeDeleted controla si se ven las anuladas.
	List(includeDeleted bool, limit, offset int) ([]*entity.TransactionView, error)
	DeleteByItem(itemID string) error
}
