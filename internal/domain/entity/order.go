package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Order. La única transición soportada es
// completed → cancelled; una orden nunca se elimina.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order es la cabecera de una orden de venta.
// Total es una foto congelada: Σ(quantity × unit_price) de sus ítems al
// momento de la creación; no se recalcula nunca, ni siquiera al cancelar.
type Order struct {
	ID         int64
	CustomerID int64
	UserID     *int64 // vendedor que registró la orden; opcional
	Total      decimal.Decimal
	Status     string
	CreatedAt  time.Time
}

// OrderItem es una línea de la orden. Identidad compuesta (OrderID, ProductID);
// UnitPrice es el precio del producto congelado al crear la orden, independiente
// de cambios posteriores en el catálogo. Inmutable después de creada.
type OrderItem struct {
	OrderID   int64
	ProductID int64
	Quantity  int64           // >= 1
	UnitPrice decimal.Decimal // >= 0
}

// Subtotal devuelve quantity × unit_price del ítem.
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}
