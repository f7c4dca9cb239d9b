package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas de solo lectura (dashboard y reportes).
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// SalesTotals devuelve monto total y número de órdenes completadas del rango
// [start, end). COALESCE evita NULL cuando no hay ventas.
func (r *AnalyticsRepo) SalesTotals(ctx context.Context, start, end time.Time) (decimal.Decimal, int64, error) {
	var total decimal.Decimal
	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM orders
		WHERE status = $1 AND created_at >= $2 AND created_at < $3`,
		entity.OrderStatusCompleted, start, end,
	).Scan(&total, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("sales totals: %w", err)
	}
	return total, count, nil
}

// CustomerCounts devuelve total de clientes y los creados desde `since`.
func (r *AnalyticsRepo) CustomerCounts(ctx context.Context, since time.Time) (total, recent int64, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE created_at >= $1)
		FROM customers`, since,
	).Scan(&total, &recent)
	if err != nil {
		return 0, 0, fmt.Errorf("customer counts: %w", err)
	}
	return total, recent, nil
}

// LowStockCount cuenta productos bajo el umbral de alerta.
func (r *AnalyticsRepo) LowStockCount(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE stock < alert_stock`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("low stock count: %w", err)
	}
	return n, nil
}

// TopProducts devuelve los productos más vendidos por unidades
// (solo órdenes completadas).
func (r *AnalyticsRepo) TopProducts(ctx context.Context, limit int) ([]repository.TopProductRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.name, p.category, p.supplier, p.alert_stock,
		       COALESCE(SUM(oi.quantity), 0) AS units,
		       COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id AND o.status = $1
		JOIN products p ON p.id = oi.product_id
		GROUP BY p.id, p.name, p.category, p.supplier, p.alert_stock
		ORDER BY units DESC, p.id
		LIMIT $2`,
		entity.OrderStatusCompleted, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()
	var list []repository.TopProductRow
	for rows.Next() {
		var t repository.TopProductRow
		if err := rows.Scan(&t.ProductID, &t.Name, &t.Category, &t.Supplier,
			&t.AlertStock, &t.UnitsSold, &t.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// RecentOrders devuelve las últimas órdenes con nombre del cliente.
func (r *AnalyticsRepo) RecentOrders(ctx context.Context, limit int) ([]repository.RecentOrderRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT o.id, c.name, o.total, o.status, o.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		ORDER BY o.created_at DESC
		LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}
	defer rows.Close()
	var list []repository.RecentOrderRow
	for rows.Next() {
		var ro repository.RecentOrderRow
		if err := rows.Scan(&ro.OrderID, &ro.CustomerName, &ro.Total, &ro.Status, &ro.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recent order: %w", err)
		}
		list = append(list, ro)
	}
	return list, rows.Err()
}

// SalesByDay agrupa el monto vendido por día dentro de [start, end).
func (r *AnalyticsRepo) SalesByDay(ctx context.Context, start, end time.Time) ([]repository.SeriesPoint, error) {
	return r.series(ctx, `
		SELECT date_trunc('day', created_at) AS bucket, SUM(total)
		FROM orders
		WHERE status = $1 AND created_at >= $2 AND created_at < $3
		GROUP BY bucket
		ORDER BY bucket`,
		entity.OrderStatusCompleted, start, end)
}

// SalesByMonth agrupa el monto vendido por mes del año indicado.
func (r *AnalyticsRepo) SalesByMonth(ctx context.Context, year int) ([]repository.SeriesPoint, error) {
	return r.series(ctx, `
		SELECT date_trunc('month', created_at) AS bucket, SUM(total)
		FROM orders
		WHERE status = $1 AND EXTRACT(YEAR FROM created_at) = $2
		GROUP BY bucket
		ORDER BY bucket`,
		entity.OrderStatusCompleted, year)
}

func (r *AnalyticsRepo) series(ctx context.Context, query string, args ...any) ([]repository.SeriesPoint, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales series: %w", err)
	}
	defer rows.Close()
	var pts []repository.SeriesPoint
	for rows.Next() {
		var p repository.SeriesPoint
		if err := rows.Scan(&p.Bucket, &p.Total); err != nil {
			return nil, fmt.Errorf("scan series point: %w", err)
		}
		pts = append(pts, p)
	}
	return pts, rows.Err()
}

// ProductSales ventas del rango agrupadas por producto (reporte de ventas).
func (r *AnalyticsRepo) ProductSales(ctx context.Context, start, end time.Time) ([]repository.ProductSalesRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.name, p.category,
		       SUM(oi.quantity), SUM(oi.quantity * oi.unit_price)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id AND o.status = $1
		  AND o.created_at >= $2 AND o.created_at < $3
		JOIN products p ON p.id = oi.product_id
		GROUP BY p.id, p.name, p.category
		ORDER BY SUM(oi.quantity * oi.unit_price) DESC`,
		entity.OrderStatusCompleted, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("product sales: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductSalesRow
	for rows.Next() {
		var ps repository.ProductSalesRow
		if err := rows.Scan(&ps.ProductID, &ps.Name, &ps.Category, &ps.Quantity, &ps.Amount); err != nil {
			return nil, fmt.Errorf("scan product sales: %w", err)
		}
		list = append(list, ps)
	}
	return list, rows.Err()
}

// CustomerSales ventas del rango agrupadas por cliente (reporte de ventas).
func (r *AnalyticsRepo) CustomerSales(ctx context.Context, start, end time.Time) ([]repository.CustomerSalesRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.name, COUNT(o.id), SUM(o.total)
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.status = $1 AND o.created_at >= $2 AND o.created_at < $3
		GROUP BY c.id, c.name
		ORDER BY SUM(o.total) DESC`,
		entity.OrderStatusCompleted, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("customer sales: %w", err)
	}
	defer rows.Close()
	var list []repository.CustomerSalesRow
	for rows.Next() {
		var cs repository.CustomerSalesRow
		if err := rows.Scan(&cs.CustomerID, &cs.Name, &cs.OrderCount, &cs.Amount); err != nil {
			return nil, fmt.Errorf("scan customer sales: %w", err)
		}
		list = append(list, cs)
	}
	return list, rows.Err()
}
