package repository

import "github.com/jhoicas/Bodega-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	// GetByLogin acepta número de empleado o email (el escáner móvil usa ambos).
	GetByLogin(login string) (*entity.User, error)
}
