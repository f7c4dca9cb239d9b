package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesReportResponse reporte de ventas del rango: agregados por producto y cliente.
type SalesReportResponse struct {
	StartDate  time.Time            `json:"start_date"`
	EndDate    time.Time            `json:"end_date"`
	Total      decimal.Decimal      `json:"total"`
	OrderCount int64                `json:"order_count"`
	ByProduct  []ProductSalesReport `json:"by_product"`
	ByCustomer []CustomerSalesReport `json:"by_customer"`
}

// ProductSalesReport ventas agrupadas por producto.
type ProductSalesReport struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Quantity  int64           `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
}

// CustomerSalesReport ventas agrupadas por cliente.
type CustomerSalesReport struct {
	CustomerID int64           `json:"customer_id"`
	Name       string          `json:"name"`
	OrderCount int64           `json:"order_count"`
	Amount     decimal.Decimal `json:"amount"`
}

// InventoryReportResponse estado del inventario. Type indica si el reporte
// cubre todo el catálogo o solo los productos en alerta.
type InventoryReportResponse struct {
	Type          string                `json:"type"` // current_stock | low_stock_alert
	Products      []ProductResponse     `json:"products"`
	ByCategory    []CategoryStockReport `json:"by_category"`
	TotalValue    decimal.Decimal       `json:"total_value"` // Σ(price × stock)
	LowStockCount int64                 `json:"low_stock_count"`
}

// CategoryStockReport resumen de inventario por categoría.
type CategoryStockReport struct {
	Category string          `json:"category"`
	Products int64           `json:"products"`
	Units    int64           `json:"units"`
	Value    decimal.Decimal `json:"value"`
}

// CustomerConsumptionResponse consumo histórico de un cliente.
type CustomerConsumptionResponse struct {
	Customer CustomerResponse `json:"customer"`
	Orders   []OrderResponse  `json:"orders"`
	Total    decimal.Decimal  `json:"total"`
}
