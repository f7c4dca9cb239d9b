package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// CreateCustomerRequest payload para registrar un cliente.
type CreateCustomerRequest struct {
	LicenseNo string `json:"license_no"`
	Name      string `json:"name"`
	Contact   string `json:"contact"`
}

// UpdateCustomerRequest payload para actualizar datos de contacto.
// TotalSpent no es editable: solo lo mueve el workflow de órdenes.
type UpdateCustomerRequest struct {
	LicenseNo string `json:"license_no"`
	Name      string `json:"name"`
	Contact   string `json:"contact"`
}

// CustomerResponse representación pública del cliente, con nivel derivado.
type CustomerResponse struct {
	ID         int64           `json:"id"`
	LicenseNo  string          `json:"license_no"`
	Name       string          `json:"name"`
	Contact    string          `json:"contact"`
	TotalSpent decimal.Decimal `json:"total_spent"`
	Level      string          `json:"level"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CustomerListResponse página de clientes con el total sin paginar.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Total int64              `json:"total"`
}

// CustomerFromEntity mapea la entidad al DTO de respuesta.
func CustomerFromEntity(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:         c.ID,
		LicenseNo:  c.LicenseNo,
		Name:       c.Name,
		Contact:    c.Contact,
		TotalSpent: c.TotalSpent,
		Level:      c.Level(),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// CustomersFromEntities mapea una lista de entidades.
func CustomersFromEntities(list []*entity.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, CustomerFromEntity(c))
	}
	return out
}
