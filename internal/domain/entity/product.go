package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías válidas para Product.
const (
	CategoryInsumo      = "insumo"      // consumibles médicos
	CategoryInstrumento = "instrumento" // equipos y dispositivos
	CategoryMedicamento = "medicamento"
)

// ValidCategory indica si la categoría pertenece a la enumeración fija.
func ValidCategory(c string) bool {
	switch c {
	case CategoryInsumo, CategoryInstrumento, CategoryMedicamento:
		return true
	}
	return false
}

// Product representa un producto del catálogo de ventas.
// Stock y AlertStock son unidades enteras; Stock nunca puede quedar negativo
// (el workflow de órdenes lo descuenta y restaura de forma transaccional).
type Product struct {
	ID          int64
	Name        string
	Description string
	Supplier    string
	Category    string          // insumo, instrumento, medicamento
	Price       decimal.Decimal // precio de venta, >= 0
	Stock       int64
	AlertStock  int64 // umbral de alerta: hay alerta cuando Stock < AlertStock
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LowStock indica si el producto está bajo el umbral de alerta.
func (p *Product) LowStock() bool {
	return p.Stock < p.AlertStock
}
