package entity

import "time"

// Role agrupa permisos con un nombre asignable a usuarios.
// Los roles base (admin, vendedor) están protegidos contra borrado.
type Role struct {
	ID          int64
	Name        string // único
	Description string
	Permissions []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProtectedRole indica si el rol es base y no puede eliminarse.
func ProtectedRole(name string) bool {
	switch name {
	case RoleAdmin, RoleVendedor:
		return true
	}
	return false
}

// Permisos asignables a roles. El catálogo es fijo: los roles combinan estos
// nombres, no crean permisos nuevos.
const (
	PermProductsRead   = "products:read"
	PermProductsWrite  = "products:write"
	PermCustomersWrite = "customers:write"
	PermOrdersWrite    = "orders:write"
	PermOrdersCancel   = "orders:cancel"
	PermUsersManage    = "users:manage"
	PermRolesManage    = "roles:manage"
	PermReportsRead    = "reports:read"
	PermDashboardRead  = "dashboard:read"
)

// PermissionCatalog devuelve el catálogo completo de permisos asignables.
func PermissionCatalog() []string {
	return []string{
		PermProductsRead,
		PermProductsWrite,
		PermCustomersWrite,
		PermOrdersWrite,
		PermOrdersCancel,
		PermUsersManage,
		PermRolesManage,
		PermReportsRead,
		PermDashboardRead,
	}
}
