package repository

import "github.com/jhoicas/cmi-stock/internal/domain/entity"

// UserRepository búsqueda de usuarios habilitados.
type UserRepository interface {
	// FindByUsername devuelve nil, nil si el usuario no existe.
	FindByUsername(username string) (*entity.User, error)
}
