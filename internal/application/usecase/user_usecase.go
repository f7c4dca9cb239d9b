package usecase

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// UserUseCase gestión de usuarios (solo admin).
type UserUseCase struct {
	users repository.UserRepository
	roles repository.RoleRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(users repository.UserRepository, roles repository.RoleRepository) *UserUseCase {
	return &UserUseCase{users: users, roles: roles}
}

func validUserStatus(s string) bool {
	switch s {
	case entity.UserStatusActive, entity.UserStatusInactive, entity.UserStatusSuspended:
		return true
	}
	return false
}

// roleExists valida que el rol referenciado exista (base o creado vía roles).
func (uc *UserUseCase) roleExists(name string) (bool, error) {
	if name == entity.RoleAdmin || name == entity.RoleVendedor {
		return true, nil
	}
	role, err := uc.roles.GetByName(name)
	if err != nil {
		return false, err
	}
	return role != nil, nil
}

// Create da de alta un usuario con rol y estado explícitos.
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Username == "" || in.Email == "" {
		return nil, fmt.Errorf("%w: username y email son obligatorios", domain.ErrInvalidInput)
	}
	if len(in.Password) < 6 {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos 6 caracteres", domain.ErrInvalidInput)
	}
	if in.Role == "" {
		in.Role = entity.RoleVendedor
	}
	ok, err := uc.roleExists(in.Role)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: el rol %q no existe", domain.ErrInvalidInput, in.Role)
	}
	if in.Status == "" {
		in.Status = entity.UserStatusActive
	}
	if !validUserStatus(in.Status) {
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, in.Status)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash de contraseña: %w", err)
	}
	now := time.Now()
	user := &entity.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Nickname:     in.Nickname,
		Email:        in.Email,
		Role:         in.Role,
		Status:       in.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}
	resp := dto.UserFromEntity(user)
	return &resp, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(id int64) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("usuario %d: %w", id, domain.ErrNotFound)
	}
	resp := dto.UserFromEntity(user)
	return &resp, nil
}

// Update edita un usuario. Password vacío significa sin cambio.
func (uc *UserUseCase) Update(id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("usuario %d: %w", id, domain.ErrNotFound)
	}
	if in.Password != "" {
		if len(in.Password) < 6 {
			return nil, fmt.Errorf("%w: la contraseña debe tener al menos 6 caracteres", domain.ErrInvalidInput)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash de contraseña: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if in.Nickname != "" {
		user.Nickname = in.Nickname
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.AvatarURL != "" {
		user.AvatarURL = in.AvatarURL
	}
	if in.Role != "" {
		ok, err := uc.roleExists(in.Role)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: el rol %q no existe", domain.ErrInvalidInput, in.Role)
		}
		user.Role = in.Role
	}
	if in.Status != "" {
		if !validUserStatus(in.Status) {
			return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, in.Status)
		}
		user.Status = in.Status
	}
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(user); err != nil {
		return nil, err
	}
	resp := dto.UserFromEntity(user)
	return &resp, nil
}

// Delete elimina un usuario. El usuario autenticado no puede eliminarse a sí
// mismo y el admin primario (id 1, username "admin") es intocable.
func (uc *UserUseCase) Delete(id, actorID int64) error {
	if id == actorID {
		return fmt.Errorf("%w: no puedes eliminar tu propio usuario", domain.ErrInvalidInput)
	}
	user, err := uc.users.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("usuario %d: %w", id, domain.ErrNotFound)
	}
	if user.ID == 1 || user.Username == "admin" {
		return fmt.Errorf("%w: el administrador principal no puede eliminarse", domain.ErrForbidden)
	}
	return uc.users.Delete(id)
}

// List devuelve todos los usuarios.
func (uc *UserUseCase) List() (*dto.UserListResponse, error) {
	list, err := uc.users.List()
	if err != nil {
		return nil, err
	}
	items := dto.UsersFromEntities(list)
	return &dto.UserListResponse{Items: items, Total: int64(len(items))}, nil
}
