package order

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repos atados a ella.
// Si fn devuelve error la transacción se revierte completa; si devuelve nil
// se confirma. Ningún efecto parcial debe sobrevivir a un error.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// ReceiptGenerator produce el comprobante PDF de una orden.
type ReceiptGenerator interface {
	Receipt(order *dto.OrderResponse) ([]byte, error)
}
