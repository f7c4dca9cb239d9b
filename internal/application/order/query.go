package order

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// Get devuelve la orden hidratada con nombre del cliente, vendedor y líneas
// con nombre de producto.
func (uc *UseCase) Get(ctx context.Context, orderID int64) (*dto.OrderResponse, error) {
	o, err := uc.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("orden %d: %w", orderID, domain.ErrNotFound)
	}

	resp := dto.OrderFromEntity(o)

	customer, err := uc.customers.GetByID(o.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer != nil {
		resp.CustomerName = customer.Name
	}

	items, err := uc.orders.ItemsByOrder(orderID)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		name := ""
		// El producto puede haberse eliminado del catálogo; la línea conserva
		// cantidad y precio congelado de todos modos.
		if p, err := uc.products.GetByID(it.ProductID); err == nil && p != nil {
			name = p.Name
		}
		resp.Items = append(resp.Items, dto.OrderItemFromEntity(it, name))
	}
	return &resp, nil
}

// List devuelve la página de órdenes que cumple el filtro, más recientes
// primero, junto con el total sin paginar.
func (uc *UseCase) List(ctx context.Context, f repository.OrderFilter) (*dto.OrderListResponse, error) {
	summaries, total, err := uc.orders.List(f)
	if err != nil {
		return nil, err
	}
	out := &dto.OrderListResponse{Orders: make([]dto.OrderResponse, 0, len(summaries)), Total: total}
	for _, s := range summaries {
		out.Orders = append(out.Orders, dto.OrderFromSummary(s))
	}
	return out, nil
}

// Receipt genera el comprobante PDF de la orden.
func (uc *UseCase) Receipt(ctx context.Context, orderID int64) ([]byte, error) {
	if uc.receipts == nil {
		return nil, fmt.Errorf("generador de comprobantes no configurado")
	}
	o, err := uc.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return uc.receipts.Receipt(o)
}
