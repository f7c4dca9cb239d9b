package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/order"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	apphttp "github.com/jhoicas/ventas-api/internal/interfaces/http"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs en memoria para el handler de órdenes
// ──────────────────────────────────────────────────────────────────────────────

type handlerStore struct {
	products  map[int64]*entity.Product
	customers map[int64]*entity.Customer
	orders    map[int64]*entity.Order
	items     map[int64][]*entity.OrderItem
	nextOrder int64
}

func newHandlerStore() *handlerStore {
	return &handlerStore{
		products:  make(map[int64]*entity.Product),
		customers: make(map[int64]*entity.Customer),
		orders:    make(map[int64]*entity.Order),
		items:     make(map[int64][]*entity.OrderItem),
		nextOrder: 1,
	}
}

type stubProductRepo struct{ s *handlerStore }

func (r *stubProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *stubProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *stubProductRepo) GetForUpdate(id int64) (*entity.Product, error) { return r.GetByID(id) }
func (r *stubProductRepo) Update(p *entity.Product) error                 { r.s.products[p.ID] = p; return nil }
func (r *stubProductRepo) AdjustStock(id int64, delta int64) error {
	p := r.s.products[id]
	p.Stock += delta
	return nil
}
func (r *stubProductRepo) Delete(id int64) error { delete(r.s.products, id); return nil }
func (r *stubProductRepo) List(repository.ProductFilter) ([]*entity.Product, int64, error) {
	return nil, 0, nil
}
func (r *stubProductRepo) ListAll() ([]*entity.Product, error)   { return nil, nil }
func (r *stubProductRepo) ListAlert() ([]*entity.Product, error) { return nil, nil }

type stubCustomerRepo struct{ s *handlerStore }

func (r *stubCustomerRepo) Create(c *entity.Customer) error { r.s.customers[c.ID] = c; return nil }
func (r *stubCustomerRepo) GetByID(id int64) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}
func (r *stubCustomerRepo) GetForUpdate(id int64) (*entity.Customer, error) { return r.GetByID(id) }
func (r *stubCustomerRepo) Update(c *entity.Customer) error                 { r.s.customers[c.ID] = c; return nil }
func (r *stubCustomerRepo) AdjustTotalSpent(id int64, delta decimal.Decimal) error {
	c := r.s.customers[id]
	c.TotalSpent = c.TotalSpent.Add(delta)
	return nil
}
func (r *stubCustomerRepo) Delete(id int64) error { delete(r.s.customers, id); return nil }
func (r *stubCustomerRepo) List(repository.CustomerFilter) ([]*entity.Customer, int64, error) {
	return nil, 0, nil
}

type stubOrderRepo struct{ s *handlerStore }

func (r *stubOrderRepo) Create(o *entity.Order) error {
	o.ID = r.s.nextOrder
	r.s.nextOrder++
	cp := *o
	r.s.orders[o.ID] = &cp
	return nil
}
func (r *stubOrderRepo) CreateItem(it *entity.OrderItem) error {
	cp := *it
	r.s.items[it.OrderID] = append(r.s.items[it.OrderID], &cp)
	return nil
}
func (r *stubOrderRepo) GetByID(id int64) (*entity.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}
func (r *stubOrderRepo) GetForUpdate(id int64) (*entity.Order, error) { return r.GetByID(id) }
func (r *stubOrderRepo) ItemsByOrder(orderID int64) ([]*entity.OrderItem, error) {
	return r.s.items[orderID], nil
}
func (r *stubOrderRepo) UpdateStatus(id int64, status string) error {
	r.s.orders[id].Status = status
	return nil
}
func (r *stubOrderRepo) List(repository.OrderFilter) ([]repository.OrderSummary, int64, error) {
	return nil, 0, nil
}
func (r *stubOrderRepo) ListByCustomer(int64, *time.Time, *time.Time) ([]*entity.Order, error) {
	return nil, nil
}

type stubRunner struct{ s *handlerStore }

func (r *stubRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return fn(&stubProductRepo{r.s}, &stubCustomerRepo{r.s}, &stubOrderRepo{r.s})
}

// buildOrderApp monta una app Fiber con las rutas reales de órdenes sobre el
// store en memoria.
func buildOrderApp(s *handlerStore) *fiber.App {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := order.NewUseCase(&stubRunner{s}, &stubProductRepo{s}, &stubCustomerRepo{s}, &stubOrderRepo{s}, nil, log)
	h := apphttp.NewOrderHandler(uc)

	app := fiber.New()
	app.Post("/api/orders", h.Create)
	app.Get("/api/orders/:id", h.GetByID)
	app.Put("/api/orders/:id/cancel", h.Cancel)
	return app
}

func seedStoreProduct(s *handlerStore, id int64, name, price string, stock int64) {
	s.products[id] = &entity.Product{
		ID:    id,
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}
}

func seedStoreCustomer(s *handlerStore, id int64, name string) {
	s.customers[id] = &entity.Customer{ID: id, Name: name, TotalSpent: decimal.Zero}
}

func postOrder(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func putCancel(t *testing.T, app *fiber.App, orderID int64) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/orders/%d/cancel", orderID), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Códigos de estado al crear órdenes
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearOrden_Exitosa(t *testing.T) {
	s := newHandlerStore()
	seedStoreCustomer(s, 1, "Hospital Central")
	seedStoreProduct(s, 1, "Guantes", "45.00", 10)
	app := buildOrderApp(s)

	resp := postOrder(t, app, `{"customer_id":1,"items":[{"product_id":1,"quantity":2}]}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

// Cliente inexistente al colocar la orden es error de la petición: 400.
func TestCrearOrden_ClienteInexistenteDevuelve400(t *testing.T) {
	s := newHandlerStore()
	seedStoreProduct(s, 1, "Guantes", "45.00", 10)
	app := buildOrderApp(s)

	resp := postOrder(t, app, `{"customer_id":99,"items":[{"product_id":1,"quantity":1}]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// Producto inexistente al colocar la orden: 400, nombrando el producto.
func TestCrearOrden_ProductoInexistenteDevuelve400(t *testing.T) {
	s := newHandlerStore()
	seedStoreCustomer(s, 1, "Hospital Central")
	app := buildOrderApp(s)

	resp := postOrder(t, app, `{"customer_id":1,"items":[{"product_id":77,"quantity":1}]}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Contains(t, out["message"], "77")
}

// Stock insuficiente: 400 con código propio.
func TestCrearOrden_StockInsuficienteDevuelve400(t *testing.T) {
	s := newHandlerStore()
	seedStoreCustomer(s, 1, "Hospital Central")
	seedStoreProduct(s, 1, "Guantes", "45.00", 2)
	app := buildOrderApp(s)

	resp := postOrder(t, app, `{"customer_id":1,"items":[{"product_id":1,"quantity":5}]}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "INSUFFICIENT_STOCK", out["code"])
	// El stock no se tocó
	assert.Equal(t, int64(2), s.products[1].Stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Códigos de estado y forma de la respuesta al cancelar
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelarOrden_DevuelveMensajeYOrden(t *testing.T) {
	s := newHandlerStore()
	seedStoreCustomer(s, 1, "Hospital Central")
	seedStoreProduct(s, 1, "Guantes", "45.00", 10)
	app := buildOrderApp(s)

	resp := postOrder(t, app, `{"customer_id":1,"items":[{"product_id":1,"quantity":2}]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = putCancel(t, app, 1)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Message string `json:"message"`
		Order   struct {
			ID     int64  `json:"id"`
			Status string `json:"status"`
		} `json:"order"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out.Message)
	assert.Equal(t, int64(1), out.Order.ID)
	assert.Equal(t, entity.OrderStatusCancelled, out.Order.Status)
}

// La orden inexistente sí es 404: la ruta apunta a un recurso que no existe.
func TestCancelarOrden_InexistenteDevuelve404(t *testing.T) {
	app := buildOrderApp(newHandlerStore())
	resp := putCancel(t, app, 42)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// Cancelar dos veces: la segunda es 400 (ya cancelada).
func TestCancelarOrden_YaCanceladaDevuelve400(t *testing.T) {
	s := newHandlerStore()
	seedStoreCustomer(s, 1, "Hospital Central")
	seedStoreProduct(s, 1, "Guantes", "45.00", 10)
	app := buildOrderApp(s)

	resp := postOrder(t, app, `{"customer_id":1,"items":[{"product_id":1,"quantity":2}]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = putCancel(t, app, 1)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = putCancel(t, app, 1)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ORDER_CANCELLED", out["code"])
}
