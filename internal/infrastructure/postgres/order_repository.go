package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.CustomerID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserta la cabecera de la orden y asigna el ID generado.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (customer_id, user_id, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		order.CustomerID, order.UserID, order.Total, order.Status, order.CreatedAt,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de la orden (unit_price ya congelado).
func (r *OrderRepo) CreateItem(item *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		item.OrderID, item.ProductID, item.Quantity, item.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *OrderRepo) GetByID(id int64) (*entity.Order, error) {
	query := `SELECT id, customer_id, user_id, total, status, created_at FROM orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// GetForUpdate obtiene la orden bloqueando la fila (SELECT FOR UPDATE).
func (r *OrderRepo) GetForUpdate(id int64) (*entity.Order, error) {
	query := `SELECT id, customer_id, user_id, total, status, created_at FROM orders WHERE id = $1 FOR UPDATE`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order for update: %w", err)
	}
	return o, nil
}

// ItemsByOrder devuelve las líneas de la orden en orden de producto.
func (r *OrderRepo) ItemsByOrder(orderID int64) ([]*entity.OrderItem, error) {
	query := `
		SELECT order_id, product_id, quantity, unit_price
		FROM order_items WHERE order_id = $1 ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var items []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// UpdateStatus cambia el estado de la orden.
func (r *OrderRepo) UpdateStatus(id int64, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// List lista órdenes con filtros y paginación (más recientes primero),
// incluyendo nombre del cliente y del vendedor. Devuelve el total sin paginar.
func (r *OrderRepo) List(f repository.OrderFilter) ([]repository.OrderSummary, int64, error) {
	where := []string{"TRUE"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.ID != 0 {
		where = append(where, "o.id = "+arg(f.ID))
	}
	if f.CustomerName != "" {
		where = append(where, "c.name ILIKE "+arg("%"+f.CustomerName+"%"))
	}
	if f.Status != "" {
		where = append(where, "o.status = "+arg(f.Status))
	}
	if f.StartDate != nil && f.EndDate != nil {
		// Fin de rango inclusivo: se extiende hasta el inicio del día siguiente.
		end := f.EndDate.AddDate(0, 0, 1)
		where = append(where, "o.created_at >= "+arg(*f.StartDate))
		where = append(where, "o.created_at < "+arg(end))
	}
	cond := strings.Join(where, " AND ")

	var total int64
	countQuery := `
		SELECT COUNT(*)
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE ` + cond
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := `
		SELECT o.id, o.customer_id, o.user_id, o.total, o.status, o.created_at,
		       c.name, COALESCE(u.username, '')
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		LEFT JOIN users u ON u.id = o.user_id
		WHERE ` + cond + `
		ORDER BY o.created_at DESC
		LIMIT ` + arg(f.Limit) + ` OFFSET ` + arg(f.Offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []repository.OrderSummary
	for rows.Next() {
		var s repository.OrderSummary
		if err := rows.Scan(&s.Order.ID, &s.Order.CustomerID, &s.Order.UserID,
			&s.Order.Total, &s.Order.Status, &s.Order.CreatedAt,
			&s.CustomerName, &s.Username); err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// ListByCustomer devuelve las órdenes completadas del cliente en el rango dado.
func (r *OrderRepo) ListByCustomer(customerID int64, start, end *time.Time) ([]*entity.Order, error) {
	where := []string{"customer_id = $1", "status = $2"}
	args := []any{customerID, entity.OrderStatusCompleted}
	if start != nil && end != nil {
		endNext := end.AddDate(0, 0, 1)
		args = append(args, *start)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
		args = append(args, endNext)
		where = append(where, fmt.Sprintf("created_at < $%d", len(args)))
	}
	query := `
		SELECT id, customer_id, user_id, total, status, created_at
		FROM orders WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders by customer: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}
