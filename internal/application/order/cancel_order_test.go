package order_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// createOrder helper: crea una orden válida y devuelve su ID.
func createOrder(t *testing.T, s *store, customerID int64, items ...dto.OrderItemRequest) int64 {
	t.Helper()
	uc := buildUseCase(s)
	resp, err := uc.Create(context.Background(), nil, dto.CreateOrderRequest{
		CustomerID: customerID,
		Items:      items,
	})
	require.NoError(t, err)
	return resp.ID
}

// Cancelar restaura el stock, revierte el gasto y marca la orden cancelada.
func TestCancel_RestauraStockYGasto(t *testing.T) {
	s := newStore()
	s.addProduct(1, "Guantes", "100.00", 10)
	s.addProduct(2, "Jeringas", "15.00", 50)
	s.addCustomer(7, "Hospital Central", "1000.00")

	orderID := createOrder(t, s, 7,
		dto.OrderItemRequest{ProductID: 1, Quantity: 2},
		dto.OrderItemRequest{ProductID: 2, Quantity: 3},
	)
	require.Equal(t, int64(8), s.products[1].Stock)
	require.True(t, dec("1245.00").Equal(s.customers[7].TotalSpent))

	uc := buildUseCase(s)
	resp, err := uc.Cancel(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, resp.Status)

	// Estado restaurado exactamente al previo a la orden.
	assert.Equal(t, int64(10), s.products[1].Stock)
	assert.Equal(t, int64(50), s.products[2].Stock)
	assert.True(t, dec("1000.00").Equal(s.customers[7].TotalSpent))

	// La orden sigue existiendo, con su total congelado intacto.
	o := s.orders[orderID]
	require.NotNil(t, o)
	assert.Equal(t, entity.OrderStatusCancelled, o.Status)
	assert.True(t, dec("245.00").Equal(o.Total))
}

// El total revertido es el congelado en la orden, no el precio actual del
// catálogo: un cambio de precio posterior no afecta la reversión.
func TestCancel_UsaPrecioCongelado(t *testing.T) {
	s := newStore()
	s.addProduct(1, "Guantes", "100.00", 10)
	s.addCustomer(1, "Hospital Sur", "0")

	orderID := createOrder(t, s, 1, dto.OrderItemRequest{ProductID: 1, Quantity: 2})
	require.True(t, dec("200.00").Equal(s.customers[1].TotalSpent))

	// El precio sube después de la venta.
	s.products[1].Price = dec("999.00")

	uc := buildUseCase(s)
	_, err := uc.Cancel(context.Background(), orderID)
	require.NoError(t, err)
	assert.True(t, s.customers[1].TotalSpent.IsZero(),
		"debe revertirse 200.00 (congelado), no 1998.00")
	assert.Equal(t, int64(10), s.products[1].Stock)
}

// Cancelar dos veces es un error; la segunda no toca stock ni gasto.
func TestCancel_DobleCancelacionFalla(t *testing.T) {
	s := newStore()
	s.addProduct(1, "Guantes", "10.00", 10)
	s.addCustomer(1, "Hospital Sur", "0")

	orderID := createOrder(t, s, 1, dto.OrderItemRequest{ProductID: 1, Quantity: 4})

	uc := buildUseCase(s)
	_, err := uc.Cancel(context.Background(), orderID)
	require.NoError(t, err)
	require.Equal(t, int64(10), s.products[1].Stock)

	_, err = uc.Cancel(context.Background(), orderID)
	require.ErrorIs(t, err, domain.ErrOrderCancelled)

	// Sin doble restauración.
	assert.Equal(t, int64(10), s.products[1].Stock)
	assert.True(t, s.customers[1].TotalSpent.IsZero())
}

// Orden inexistente.
func TestCancel_OrdenInexistente(t *testing.T) {
	s := newStore()
	uc := buildUseCase(s)
	_, err := uc.Cancel(context.Background(), 12345)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// Solo las órdenes completadas pueden cancelarse.
func TestCancel_EstadoPendingNoCancelable(t *testing.T) {
	s := newStore()
	s.addCustomer(1, "Hospital Sur", "0")
	s.orders[1] = &entity.Order{
		ID:         1,
		CustomerID: 1,
		Total:      dec("50.00"),
		Status:     entity.OrderStatusPending,
	}

	uc := buildUseCase(s)
	_, err := uc.Cancel(context.Background(), 1)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Fallo al revertir el gasto: el stock ya restaurado vuelve a descontarse
// (rollback completo), la orden sigue completada.
func TestCancel_FalloEnGastoRevierteTodo(t *testing.T) {
	s := newStore()
	s.addProduct(1, "Guantes", "10.00", 10)
	s.addCustomer(1, "Hospital Sur", "0")

	orderID := createOrder(t, s, 1, dto.OrderItemRequest{ProductID: 1, Quantity: 3})
	require.Equal(t, int64(7), s.products[1].Stock)

	s.failAdjustSpent = true
	uc := buildUseCase(s)
	_, err := uc.Cancel(context.Background(), orderID)
	require.Error(t, err)

	assert.Equal(t, int64(7), s.products[1].Stock, "el stock no debe quedar restaurado")
	assert.Equal(t, entity.OrderStatusCompleted, s.orders[orderID].Status)
	assert.True(t, dec("30.00").Equal(s.customers[1].TotalSpent))
}
