package ledger

import (
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// HistoryUseCase lecturas del historial de movimientos para auditoría.
type HistoryUseCase struct {
	txRepo repository.TransactionRepository
}

// NewHistoryUseCase construye el caso de uso de historial.
func NewHistoryUseCase(txRepo repository.TransactionRepository) *HistoryUseCase {
	return &HistoryUseCase{txRepo: txRepo}
}

// ListMovements devuelve el historial cronológico (más reciente primero).
// Las transacciones anuladas se incluyen por defecto para la vista de auditoría.
func (uc *HistoryUseCase) ListMovements(includeDeleted bool, limit, offset int) ([]*entity.TransactionView, error) {
	if limit <= 0 {
		limit = 200
	}
	return uc.txRepo.List(includeDeleted, limit, offset)
}
