package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopProductRow producto con sus unidades vendidas e ingreso acumulado
// (solo órdenes completadas).
type TopProductRow struct {
	ProductID  int64
	Name       string
	Category   string
	Supplier   string
	AlertStock int64
	UnitsSold  int64
	Revenue    decimal.Decimal
}

// RecentOrderRow fila para el widget de órdenes recientes del dashboard.
type RecentOrderRow struct {
	OrderID      int64
	CustomerName string
	Total        decimal.Decimal
	Status       string
	CreatedAt    time.Time
}

// SeriesPoint un punto de la serie temporal de ventas.
type SeriesPoint struct {
	Bucket time.Time
	Total  decimal.Decimal
}

// ProductSalesRow ventas agrupadas por producto para el reporte de ventas.
type ProductSalesRow struct {
	ProductID int64
	Name      string
	Category  string
	Quantity  int64
	Amount    decimal.Decimal
}

// CustomerSalesRow ventas agrupadas por cliente para el reporte de ventas.
type CustomerSalesRow struct {
	CustomerID int64
	Name       string
	OrderCount int64
	Amount     decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para dashboard y reportes.
// Ninguna de estas consultas muta estado; todas cuentan únicamente órdenes
// en estado completed salvo que se indique lo contrario.
type AnalyticsRepository interface {
	// SalesTotals devuelve monto total y número de órdenes completadas del rango.
	SalesTotals(ctx context.Context, start, end time.Time) (decimal.Decimal, int64, error)
	// CustomerCounts devuelve total de clientes y clientes creados desde `since`.
	CustomerCounts(ctx context.Context, since time.Time) (total, recent int64, err error)
	// LowStockCount cuenta productos con stock < alert_stock.
	LowStockCount(ctx context.Context) (int64, error)
	TopProducts(ctx context.Context, limit int) ([]TopProductRow, error)
	RecentOrders(ctx context.Context, limit int) ([]RecentOrderRow, error)
	// SalesByDay agrupa el monto vendido por día dentro del rango.
	SalesByDay(ctx context.Context, start, end time.Time) ([]SeriesPoint, error)
	// SalesByMonth agrupa el monto vendido por mes del año indicado.
	SalesByMonth(ctx context.Context, year int) ([]SeriesPoint, error)
	ProductSales(ctx context.Context, start, end time.Time) ([]ProductSalesRow, error)
	CustomerSales(ctx context.Context, start, end time.Time) ([]CustomerSalesRow, error)
}
