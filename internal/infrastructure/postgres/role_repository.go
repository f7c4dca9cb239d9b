package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación de RoleRepository sobre PostgreSQL.
// Los permisos se guardan como TEXT[] en la misma fila (volumen mínimo).
type RoleRepo struct {
	pool *pgxpool.Pool
}

// NewRoleRepository construye el adaptador.
func NewRoleRepository(pool *pgxpool.Pool) *RoleRepo {
	return &RoleRepo{pool: pool}
}

func scanRole(row pgx.Row) (*entity.Role, error) {
	var role entity.Role
	err := row.Scan(&role.ID, &role.Name, &role.Description, &role.Permissions,
		&role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// Create persiste un nuevo rol. Devuelve ErrDuplicate si el nombre ya existe.
func (r *RoleRepo) Create(role *entity.Role) error {
	query := `
		INSERT INTO roles (name, description, permissions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.pool.QueryRow(context.Background(), query,
		role.Name, role.Description, role.Permissions, role.CreatedAt, role.UpdatedAt,
	).Scan(&role.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

// GetByID obtiene un rol por ID.
func (r *RoleRepo) GetByID(id int64) (*entity.Role, error) {
	role, err := scanRole(r.pool.QueryRow(context.Background(),
		`SELECT id, name, description, permissions, created_at, updated_at FROM roles WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return role, nil
}

// GetByName obtiene un rol por nombre.
func (r *RoleRepo) GetByName(name string) (*entity.Role, error) {
	role, err := scanRole(r.pool.QueryRow(context.Background(),
		`SELECT id, name, description, permissions, created_at, updated_at FROM roles WHERE name = $1`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role by name: %w", err)
	}
	return role, nil
}

// Update actualiza nombre, descripción y permisos.
func (r *RoleRepo) Update(role *entity.Role) error {
	query := `
		UPDATE roles SET name = $2, description = $3, permissions = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		role.ID, role.Name, role.Description, role.Permissions, role.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

// Delete elimina un rol por ID.
func (r *RoleRepo) Delete(id int64) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	return nil
}

// List devuelve todos los roles.
func (r *RoleRepo) List() ([]*entity.Role, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT id, name, description, permissions, created_at, updated_at FROM roles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, role)
	}
	return list, rows.Err()
}
