package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id int64) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	TouchLastLogin(id int64) error
	Delete(id int64) error
	List() ([]*entity.User, error)
	CountByRole(role string) (int64, error)
}
