package order_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/order"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// buildUseCase arma el caso de uso sobre el store dado.
func buildUseCase(s *store) *order.UseCase {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return order.NewUseCase(
		&fakeTxRunner{s: s},
		&fakeProductRepo{s: s},
		&fakeCustomerRepo{s: s},
		&fakeOrderRepo{s: s},
		nil,
		log,
	)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Caso base: dos líneas, precios congelados, stock y acumulador actualizados.
func TestCreate_OrdenValidaActualizaStockYGasto(t *testing.T) {
	s := newStore()
	s.addProduct(1, "Guantes de nitrilo", "100.00", 10)
	s.addProduct(2, "Jeringas 5ml", "15.00", 50)
	s.addCustomer(7, "Hospital Central", "0")

	uc := buildUseCase(s)
	resp, err := uc.Create(context.Background(), nil, dto.CreateOrderRequest{
		CustomerID: 7,
		Items: []dto.OrderItemRequest{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 3},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	// total = 2×100.00 + 3×15.00 = 245.00
	assert.True(t, dec("245.00").Equal(resp.Total), "total esperado 245.00, fue %s", resp.Total)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, "Hospital Central", resp.CustomerName)
	require.Len(t, resp.Items, 2)
	assert.True(t, dec("100.00").Equal(resp.Items[0].UnitPrice))
	assert.True(t, dec("200.00").Equal(resp.Items[0].Subtotal))

	assert.Equal(t, int64(8), s.products[1].Stock)
	assert.Equal(t, int64(47), s.products[2].Stock)
	assert.True(t, dec("245.00").Equal(s.customers[7].TotalSpent))
}

// Las líneas duplicadas del mismo producto se fusionan en una sola.
func TestCreate_LineasDuplicadasSeFusionan(t *testing.T) {
	s := newStore()
	s.addProduct(1, "Guantes", "10.00", 10)
	s.addCustomer(1, "Clínica Norte", "0")

	uc := buildUseCase(s)
	resp, err := uc.Create(context.Background(), nil, dto.CreateOrderRequest{
		CustomerID: 1,
		Items: []dto.OrderItemRequest{
			{ProductID: 1, Quantity: 2},
			{ProductID: 1, Quantity: 3},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(5), resp.Items[0].Quantity)
	assert.Equal(t, int64(5), s.products[1].Stock)
	assert.True(t, dec("50.00").Equal(resp.Total))
}

// La cantidad fusionada también se valida contra el stock.
func TestCreate_DuplicadosExcedenStock(t *testing.T) {
	s := newStore()
	s.addProduct(1, "Guantes", "10.00", 4)
	s.addCustomer(1, "Clínica Norte", "0")

	uc := buildUseCase(s)
	_, err := uc.Create(context.Background(), nil, dto.CreateOrderRequest{
		CustomerID: 1,
		Items: []dto.OrderItemRequest{
			{ProductID: 1, Quantity: 3},
			{ProductID: 1, Quantity: 2},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(4), s.products[1].Stock, "el stock no debe cambiar")
}

// Stock insuficiente: el error identifica al producto y nada se persiste.
func TestCreate_StockInsuficienteIdentificaProducto(t *testing.T) {
	s := newStore()
	s.addProduct(1, "Guantes", "10.00", 100)
	s.addProduct(2, "Bisturí", "80.00", 1)
	s.addCustomer(1, "Hospital Sur", "500.00")

	uc := buildUseCase(s)
	_, err := uc.Create(context.Background(), nil, dto.CreateOrderRequest{
		CustomerID: 1,
		Items: []dto.OrderItemRequest{
			{ProductID: 1, Quantity: 5},
			{ProductID: 2, Quantity: 3},
		},
	})
	require.Error(t, err)
	var ise *domain.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, int64(2), ise.ProductID)
	assert.Equal(t, "Bisturí", ise.ProductName)
	assert.Equal(t, int64(1), ise.Available)
	assert.Equal(t, int64(3), ise.Requested)

	// Nada cambió: ni el stock del primer producto ni el gasto del cliente.
	assert.Equal(t, int64(100), s.products[1].Stock)
	assert.Equal(t, int64(1), s.products[2].Stock)
	assert.True(t, dec("500.00").Equal(s.customers[1].TotalSpent))
	assert.Empty(t, s.orders)
}

// Producto inexistente en la solicitud.
func TestCreate_ProductoInexistente(t *testing.T) {
	s := newStore()
	s.addProduct(1, "Guantes", "10.00", 10)
	s.addCustomer(1, "Hospital Sur", "0")

	uc := buildUseCase(s)
	_, err := uc.Create(context.Background(), nil, dto.CreateOrderRequest{
		CustomerID: 1,
		Items: []dto.OrderItemRequest{
			{ProductID: 1, Quantity: 1},
			{ProductID: 99, Quantity: 1},
		},
	})
	require.Error(t, err)
	var pnf *domain.ProductNotFoundError
	require.ErrorAs(t, err, &pnf)
	assert.Equal(t, int64(99), pnf.ProductID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(10), s.products[1].Stock)
}

// Cliente inexistente.
func TestCreate_ClienteInexistente(t *testing.T) {
	s := newStore()
	s.addProduct(1, "Guantes", "10.00", 10)

	uc := buildUseCase(s)
	_, err := uc.Create(context.Background(), nil, dto.CreateOrderRequest{
		CustomerID: 42,
		Items:      []dto.OrderItemRequest{{ProductID: 1, Quantity: 1}},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// Validaciones de entrada.
func TestCreate_EntradaInvalida(t *testing.T) {
	s := newStore()
	s.addProduct(1, "Guantes", "10.00", 10)
	s.addCustomer(1, "Hospital Sur", "0")
	uc := buildUseCase(s)

	cases := []struct {
		name string
		req  dto.CreateOrderRequest
	}{
		{"sin líneas", dto.CreateOrderRequest{CustomerID: 1}},
		{"cantidad cero", dto.CreateOrderRequest{CustomerID: 1, Items: []dto.OrderItemRequest{{ProductID: 1, Quantity: 0}}}},
		{"cantidad negativa", dto.CreateOrderRequest{CustomerID: 1, Items: []dto.OrderItemRequest{{ProductID: 1, Quantity: -2}}}},
		{"producto cero", dto.CreateOrderRequest{CustomerID: 1, Items: []dto.OrderItemRequest{{ProductID: 0, Quantity: 1}}}},
		{"cliente cero", dto.CreateOrderRequest{CustomerID: 0, Items: []dto.OrderItemRequest{{ProductID: 1, Quantity: 1}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), nil, tc.req)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, s.orders, "ninguna orden debe persistirse")
}

// Fallo a mitad de la transacción: todo se revierte, incluido el stock ya
// descontado de las líneas anteriores.
func TestCreate_FalloAMitadRevierteTodo(t *testing.T) {
	s := newStore()
	s.addProduct(1, "Guantes", "10.00", 10)
	s.addProduct(2, "Jeringas", "5.00", 20)
	s.addCustomer(1, "Hospital Sur", "100.00")
	s.failCreateItem = true

	uc := buildUseCase(s)
	_, err := uc.Create(context.Background(), nil, dto.CreateOrderRequest{
		CustomerID: 1,
		Items: []dto.OrderItemRequest{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 4},
		},
	})
	require.Error(t, err)

	assert.Equal(t, int64(10), s.products[1].Stock)
	assert.Equal(t, int64(20), s.products[2].Stock)
	assert.True(t, dec("100.00").Equal(s.customers[1].TotalSpent))
	assert.Empty(t, s.orders)
	assert.Empty(t, s.items)
}

// Fallo al acumular el gasto del cliente: se revierte también la orden.
func TestCreate_FalloEnGastoRevierteOrden(t *testing.T) {
	s := newStore()
	s.addProduct(1, "Guantes", "10.00", 10)
	s.addCustomer(1, "Hospital Sur", "0")
	s.failAdjustSpent = true

	uc := buildUseCase(s)
	_, err := uc.Create(context.Background(), nil, dto.CreateOrderRequest{
		CustomerID: 1,
		Items:      []dto.OrderItemRequest{{ProductID: 1, Quantity: 2}},
	})
	require.Error(t, err)
	assert.Equal(t, int64(10), s.products[1].Stock)
	assert.Empty(t, s.orders)
}

// El vendedor autenticado queda asociado a la orden.
func TestCreate_RegistraVendedor(t *testing.T) {
	s := newStore()
	s.addProduct(1, "Guantes", "10.00", 10)
	s.addCustomer(1, "Hospital Sur", "0")

	uc := buildUseCase(s)
	sellerID := int64(3)
	resp, err := uc.Create(context.Background(), &sellerID, dto.CreateOrderRequest{
		CustomerID: 1,
		Items:      []dto.OrderItemRequest{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.UserID)
	assert.Equal(t, int64(3), *resp.UserID)
}
