package bom

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// RegistryTxRunner ejecuta el reemplazo en bloque de líneas BOM dentro de una
// transacción (delete-then-insert por main_barcode, nunca merge).
type RegistryTxRunner interface {
	RunBom(ctx context.Context, fn func(bomRepo repository.BomRepository) error) error
}
