package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// ProductFilter filtros para el listado de productos.
type ProductFilter struct {
	Name        string // ILIKE parcial
	Category    string
	StockStatus string // "low_stock" | "normal" | vacío
	Limit       int
	Offset      int
}

// ProductRepository puerto de persistencia para productos.
// AdjustStock es la primitiva de libro mayor de inventario: aplica un delta
// y falla si el resultado quedaría negativo.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE);
	// solo tiene sentido dentro de una transacción.
	GetForUpdate(id int64) (*entity.Product, error)
	Update(product *entity.Product) error
	// AdjustStock aplica delta (positivo o negativo) a stock de forma atómica.
	// Devuelve domain.ErrInsufficientStock si el resultado sería negativo.
	AdjustStock(id int64, delta int64) error
	Delete(id int64) error
	List(f ProductFilter) ([]*entity.Product, int64, error)
	ListAll() ([]*entity.Product, error)
	// ListAlert devuelve los productos con stock < alert_stock.
	ListAlert() ([]*entity.Product, error)
}
