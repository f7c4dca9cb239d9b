package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatCard valor de hoy con tendencia respecto a ayer (porcentaje).
type StatCard struct {
	Value decimal.Decimal `json:"value"`
	Trend decimal.Decimal `json:"trend"` // % de variación vs ayer; 0 si ayer fue 0
}

// DashboardStatsResponse tarjetas principales del dashboard.
type DashboardStatsResponse struct {
	SalesToday     StatCard `json:"sales_today"`
	OrdersToday    StatCard `json:"orders_today"`
	TotalCustomers int64    `json:"total_customers"`
	NewCustomers   int64    `json:"new_customers_30d"`
	LowStockCount  int64    `json:"low_stock_count"`
}

// TopProductResponse fila del ranking de productos más vendidos.
type TopProductResponse struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Supplier  string          `json:"supplier"`
	UnitsSold int64           `json:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// RecentOrderResponse fila del widget de órdenes recientes.
type RecentOrderResponse struct {
	OrderID      int64           `json:"order_id"`
	CustomerName string          `json:"customer_name"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SeriesPointResponse punto de la serie temporal de ventas.
type SeriesPointResponse struct {
	Bucket time.Time       `json:"bucket"`
	Total  decimal.Decimal `json:"total"`
}

// SalesSeriesResponse serie de ventas para el rango pedido (week, month, year).
type SalesSeriesResponse struct {
	Range  string                `json:"range"`
	Points []SeriesPointResponse `json:"points"`
}

// DashboardResponse payload completo del dashboard.
type DashboardResponse struct {
	Stats        DashboardStatsResponse `json:"stats"`
	TopProducts  []TopProductResponse   `json:"top_products"`
	RecentOrders []RecentOrderResponse  `json:"recent_orders"`
}
