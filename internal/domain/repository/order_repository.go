package repository

import (
	"time"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// OrderFilter filtros para el listado de órdenes.
type OrderFilter struct {
	ID           int64  // 0 = sin filtro
	CustomerName string // ILIKE parcial sobre el nombre del cliente
	Status       string
	StartDate    *time.Time
	EndDate      *time.Time // inclusivo (se extiende hasta fin de día)
	Limit        int
	Offset       int
}

// OrderSummary fila del listado: orden más nombres de cliente y vendedor.
type OrderSummary struct {
	Order        entity.Order
	CustomerName string
	Username     string // vacío si la orden no tiene vendedor asociado
}

// OrderRepository puerto de persistencia para órdenes y sus ítems.
// Las órdenes nunca se eliminan; la cancelación es un cambio de estado.
type OrderRepository interface {
	// Create inserta la cabecera y asigna el ID generado en order.ID.
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	GetByID(id int64) (*entity.Order, error)
	// GetForUpdate obtiene la orden bloqueando la fila; se usa al cancelar para
	// que dos cancelaciones concurrentes no reviertan el libro mayor dos veces.
	GetForUpdate(id int64) (*entity.Order, error)
	ItemsByOrder(orderID int64) ([]*entity.OrderItem, error)
	UpdateStatus(id int64, status string) error
	List(f OrderFilter) ([]OrderSummary, int64, error)
	// ListByCustomer devuelve las órdenes completadas del cliente en el rango
	// (fechas opcionales), más recientes primero.
	ListByCustomer(customerID int64, start, end *time.Time) ([]*entity.Order, error)
}
