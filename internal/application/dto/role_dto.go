package dto

import (
	"time"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// CreateRoleRequest payload para crear un rol.
type CreateRoleRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

// UpdateRoleRequest payload para actualizar un rol.
type UpdateRoleRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

// RoleResponse representación pública del rol.
type RoleResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Permissions []string  `json:"permissions"`
	Protected   bool      `json:"protected"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PermissionListResponse catálogo de permisos asignables a roles.
type PermissionListResponse struct {
	Permissions []string `json:"permissions"`
}

// RoleListResponse lista completa de roles.
type RoleListResponse struct {
	Items []RoleResponse `json:"items"`
	Total int64          `json:"total"`
}

// RoleFromEntity mapea la entidad al DTO de respuesta.
func RoleFromEntity(r *entity.Role) RoleResponse {
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Permissions: r.Permissions,
		Protected:   entity.ProtectedRole(r.Name),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// RolesFromEntities mapea una lista de entidades.
func RolesFromEntities(list []*entity.Role) []RoleResponse {
	out := make([]RoleResponse, 0, len(list))
	for _, r := range list {
		out = append(out, RoleFromEntity(r))
	}
	return out
}
