package usecase

import (
	"fmt"
	"time"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// RoleUseCase gestión de roles y permisos (solo admin).
type RoleUseCase struct {
	roles repository.RoleRepository
	users repository.UserRepository
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(roles repository.RoleRepository, users repository.UserRepository) *RoleUseCase {
	return &RoleUseCase{roles: roles, users: users}
}

// validPermissions verifica que cada permiso exista en el catálogo.
func validPermissions(perms []string) error {
	catalog := make(map[string]struct{})
	for _, p := range entity.PermissionCatalog() {
		catalog[p] = struct{}{}
	}
	for _, p := range perms {
		if _, ok := catalog[p]; !ok {
			return fmt.Errorf("%w: permiso desconocido %q", domain.ErrInvalidInput, p)
		}
	}
	return nil
}

// Permissions devuelve el catálogo de permisos asignables.
func (uc *RoleUseCase) Permissions() *dto.PermissionListResponse {
	return &dto.PermissionListResponse{Permissions: entity.PermissionCatalog()}
}

// Create crea un rol nuevo.
func (uc *RoleUseCase) Create(in dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: el nombre del rol es obligatorio", domain.ErrInvalidInput)
	}
	if err := validPermissions(in.Permissions); err != nil {
		return nil, err
	}
	now := time.Now()
	role := &entity.Role{
		Name:        in.Name,
		Description: in.Description,
		Permissions: in.Permissions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if role.Permissions == nil {
		role.Permissions = []string{}
	}
	if err := uc.roles.Create(role); err != nil {
		return nil, err
	}
	resp := dto.RoleFromEntity(role)
	return &resp, nil
}

// GetByID obtiene un rol por ID.
func (uc *RoleUseCase) GetByID(id int64) (*dto.RoleResponse, error) {
	role, err := uc.roles.GetByID(id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("rol %d: %w", id, domain.ErrNotFound)
	}
	resp := dto.RoleFromEntity(role)
	return &resp, nil
}

// Update actualiza un rol. Los roles protegidos no pueden renombrarse.
func (uc *RoleUseCase) Update(id int64, in dto.UpdateRoleRequest) (*dto.RoleResponse, error) {
	role, err := uc.roles.GetByID(id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("rol %d: %w", id, domain.ErrNotFound)
	}
	if in.Name != "" && in.Name != role.Name {
		if entity.ProtectedRole(role.Name) {
			return nil, fmt.Errorf("%w: el rol %s no puede renombrarse", domain.ErrForbidden, role.Name)
		}
		role.Name = in.Name
	}
	role.Description = in.Description
	if in.Permissions != nil {
		if err := validPermissions(in.Permissions); err != nil {
			return nil, err
		}
		role.Permissions = in.Permissions
	}
	role.UpdatedAt = time.Now()
	if err := uc.roles.Update(role); err != nil {
		return nil, err
	}
	resp := dto.RoleFromEntity(role)
	return &resp, nil
}

// Delete elimina un rol. Los roles protegidos y los roles con usuarios
// asignados no pueden eliminarse.
func (uc *RoleUseCase) Delete(id int64) error {
	role, err := uc.roles.GetByID(id)
	if err != nil {
		return err
	}
	if role == nil {
		return fmt.Errorf("rol %d: %w", id, domain.ErrNotFound)
	}
	if entity.ProtectedRole(role.Name) {
		return fmt.Errorf("%w: el rol %s es del sistema y no puede eliminarse", domain.ErrForbidden, role.Name)
	}
	n, err := uc.users.CountByRole(role.Name)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: hay %d usuarios con el rol %s", domain.ErrInvalidInput, n, role.Name)
	}
	return uc.roles.Delete(id)
}

// List devuelve todos los roles.
func (uc *RoleUseCase) List() (*dto.RoleListResponse, error) {
	list, err := uc.roles.List()
	if err != nil {
		return nil, err
	}
	items := dto.RolesFromEntities(list)
	return &dto.RoleListResponse{Items: items, Total: int64(len(items))}, nil
}
