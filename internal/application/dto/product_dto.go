package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// CreateProductRequest payload para crear un producto.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Supplier    string          `json:"supplier"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	AlertStock  int64           `json:"alert_stock"`
}

// UpdateProductRequest payload para actualizar un producto.
type UpdateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Supplier    string          `json:"supplier"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	AlertStock  int64           `json:"alert_stock"`
}

// ProductResponse representación pública del producto.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Supplier    string          `json:"supplier"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	AlertStock  int64           `json:"alert_stock"`
	LowStock    bool            `json:"low_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse página de productos con el total sin paginar.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int64             `json:"total"`
}

// ProductFromEntity mapea la entidad al DTO de respuesta.
func ProductFromEntity(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Supplier:    p.Supplier,
		Category:    p.Category,
		Price:       p.Price,
		Stock:       p.Stock,
		AlertStock:  p.AlertStock,
		LowStock:    p.LowStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ProductsFromEntities mapea una lista de entidades.
func ProductsFromEntities(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ProductFromEntity(p))
	}
	return out
}
