package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// OrderItemRequest línea solicitada al crear una orden.
type OrderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// CreateOrderRequest payload para crear una orden.
type CreateOrderRequest struct {
	CustomerID int64              `json:"customer_id"`
	Items      []OrderItemRequest `json:"items"`
}

// OrderItemResponse línea de la orden con subtotal y nombre del producto.
type OrderItemResponse struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse representación completa de una orden.
type OrderResponse struct {
	ID           int64               `json:"id"`
	CustomerID   int64               `json:"customer_id"`
	CustomerName string              `json:"customer_name,omitempty"`
	UserID       *int64              `json:"user_id,omitempty"`
	Username     string              `json:"username,omitempty"`
	Total        decimal.Decimal     `json:"total"`
	Status       string              `json:"status"`
	Items        []OrderItemResponse `json:"items,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// CancelOrderResponse resultado de una cancelación: mensaje y orden ya
// revertida (estado cancelled, líneas con precios congelados).
type CancelOrderResponse struct {
	Message string        `json:"message"`
	Order   OrderResponse `json:"order"`
}

// OrderListResponse página de órdenes con el total sin paginar.
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
}

// OrderFromEntity mapea la cabecera de la orden (sin hidratar nombres ni ítems).
func OrderFromEntity(o *entity.Order) OrderResponse {
	return OrderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		UserID:     o.UserID,
		Total:      o.Total,
		Status:     o.Status,
		CreatedAt:  o.CreatedAt,
	}
}

// OrderFromSummary mapea una fila de listado (cabecera + nombres ya unidos).
func OrderFromSummary(s repository.OrderSummary) OrderResponse {
	r := OrderFromEntity(&s.Order)
	r.CustomerName = s.CustomerName
	r.Username = s.Username
	return r
}

// OrderItemFromEntity mapea una línea; productName puede venir vacío.
func OrderItemFromEntity(it *entity.OrderItem, productName string) OrderItemResponse {
	return OrderItemResponse{
		ProductID:   it.ProductID,
		ProductName: productName,
		Quantity:    it.Quantity,
		UnitPrice:   it.UnitPrice,
		Subtotal:    it.Subtotal(),
	}
}
