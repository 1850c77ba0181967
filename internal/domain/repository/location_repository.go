package repository

import "github.com/jhoicas/Bodega-api/internal/domain/entity"

// LocationRepository define el puerto de persistencia para ubicaciones.
type LocationRepository interface {
	Create(location *entity.Location) error
	// GetByCode resuelve por código exacto en cualquier piso. Si el mismo código
	// existe en más de un piso devuelve ErrDuplicate envuelto; el caller debe
	// pedir con piso explícito.
	GetByCode(code string) (*entity.Location, error)
	GetByCodeAndFloor(code, floor string) (*entity.Location, error)
	UpdatePosition(id string, x, y int) error
	ListAll() ([]*entity.Location, error)
	ListByFloor(floor string) ([]*entity.Location, error)
	RenameFloor(oldName, newName string) (int64, error)
	Delete(id string) error
}
