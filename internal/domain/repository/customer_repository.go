package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// CustomerFilter filtros para el listado de clientes.
type CustomerFilter struct {
	Name      string // ILIKE parcial
	LicenseNo string // ILIKE parcial
	Limit     int
	Offset    int
}

// CustomerRepository puerto de persistencia para clientes.
// AdjustTotalSpent es la primitiva de libro mayor de consumo: el workflow de
// órdenes la usa para acumular al crear y revertir al cancelar.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id int64) (*entity.Customer, error)
	// GetForUpdate obtiene el cliente bloqueando la fila (SELECT FOR UPDATE).
	GetForUpdate(id int64) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	// AdjustTotalSpent aplica delta a total_spent de forma atómica. Un resultado
	// negativo es una violación de integridad y devuelve error (no se recorta).
	AdjustTotalSpent(id int64, delta decimal.Decimal) error
	Delete(id int64) error
	List(f CustomerFilter) ([]*entity.Customer, int64, error)
}
