package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, license_no, name, contact, total_spent, created_at, updated_at`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(&c.ID, &c.LicenseNo, &c.Name, &c.Contact, &c.TotalSpent, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente y asigna el ID generado.
// Devuelve ErrDuplicate si el número de licencia ya existe.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (license_no, name, contact, total_spent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		customer.LicenseNo, customer.Name, customer.Contact, customer.TotalSpent,
		customer.CreatedAt, customer.UpdatedAt,
	).Scan(&customer.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(id int64) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// GetForUpdate obtiene el cliente bloqueando la fila (SELECT FOR UPDATE).
func (r *CustomerRepo) GetForUpdate(id int64) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 FOR UPDATE`
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer for update: %w", err)
	}
	return c, nil
}

// Update actualiza los datos de contacto del cliente. TotalSpent no se toca
// aquí: solo lo muta AdjustTotalSpent desde el workflow de órdenes.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers SET license_no = $2, name = $3, contact = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.LicenseNo, customer.Name, customer.Contact, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// AdjustTotalSpent aplica delta a total_spent con guarda de no-negatividad.
// Cero filas afectadas significa que el acumulador habría quedado negativo:
// eso es una violación de integridad (la cancelación revierte exactamente lo
// que la creación sumó), no un error de usuario.
func (r *CustomerRepo) AdjustTotalSpent(id int64, delta decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE customers SET total_spent = total_spent + $2, updated_at = now()
		 WHERE id = $1 AND total_spent + $2 >= 0`,
		id, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust total_spent: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("adjust total_spent: el acumulador del cliente %d quedaría negativo (delta %s)", id, delta)
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *CustomerRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el cliente %d tiene órdenes asociadas", domain.ErrInvalidInput, id)
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

// List lista clientes con filtros y paginación; devuelve también el total sin paginar.
func (r *CustomerRepo) List(f repository.CustomerFilter) ([]*entity.Customer, int64, error) {
	where := []string{"TRUE"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Name != "" {
		where = append(where, "name ILIKE "+arg("%"+f.Name+"%"))
	}
	if f.LicenseNo != "" {
		where = append(where, "license_no ILIKE "+arg("%"+f.LicenseNo+"%"))
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM customers WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	query := `SELECT ` + customerColumns + ` FROM customers WHERE ` + cond +
		` ORDER BY id DESC LIMIT ` + arg(f.Limit) + ` OFFSET ` + arg(f.Offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}
