package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// RoleRepository puerto de persistencia para roles y sus permisos.
type RoleRepository interface {
	Create(role *entity.Role) error
	GetByID(id int64) (*entity.Role, error)
	GetByName(name string) (*entity.Role, error)
	Update(role *entity.Role) error
	Delete(id int64) error
	List() ([]*entity.Role, error)
}
