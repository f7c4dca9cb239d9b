package order_test

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// store modela la base de datos; los repos fake operan sobre él. El runner
// fake clona el store antes de ejecutar fn y solo publica el clon si fn
// devuelve nil: un error descarta todos los cambios, igual que un Rollback.
// ──────────────────────────────────────────────────────────────────────────────

type store struct {
	products  map[int64]*entity.Product
	customers map[int64]*entity.Customer
	orders    map[int64]*entity.Order
	items     map[int64][]*entity.OrderItem
	nextOrder int64

	// inyección de fallos para probar la reversión
	failCreateItem  bool
	failAdjustSpent bool
}

func newStore() *store {
	return &store{
		products:  make(map[int64]*entity.Product),
		customers: make(map[int64]*entity.Customer),
		orders:    make(map[int64]*entity.Order),
		items:     make(map[int64][]*entity.OrderItem),
		nextOrder: 1,
	}
}

func (s *store) addProduct(id int64, name string, price string, stock int64) {
	s.products[id] = &entity.Product{
		ID:       id,
		Name:     name,
		Category: entity.CategoryInsumo,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
	}
}

func (s *store) addCustomer(id int64, name string, spent string) {
	s.customers[id] = &entity.Customer{
		ID:         id,
		LicenseNo:  "LIC-" + name,
		Name:       name,
		TotalSpent: decimal.RequireFromString(spent),
	}
}

// clone copia profunda del estado mutable.
func (s *store) clone() *store {
	c := newStore()
	c.nextOrder = s.nextOrder
	c.failCreateItem = s.failCreateItem
	c.failAdjustSpent = s.failAdjustSpent
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, cu := range s.customers {
		cc := *cu
		c.customers[id] = &cc
	}
	for id, o := range s.orders {
		co := *o
		c.orders[id] = &co
	}
	for id, its := range s.items {
		for _, it := range its {
			ci := *it
			c.items[id] = append(c.items[id], &ci)
		}
	}
	return c
}

// replace publica el estado de src en s (commit).
func (s *store) replace(src *store) {
	s.products = src.products
	s.customers = src.customers
	s.orders = src.orders
	s.items = src.items
	s.nextOrder = src.nextOrder
}

// ── ProductRepository fake ───────────────────────────────────────────────────

type fakeProductRepo struct{ s *store }

func (r *fakeProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }

func (r *fakeProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(id int64) (*entity.Product, error) { return r.GetByID(id) }

func (r *fakeProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = p; return nil }

func (r *fakeProductRepo) AdjustStock(id int64, delta int64) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Stock+delta < 0 {
		return domain.ErrInsufficientStock
	}
	p.Stock += delta
	return nil
}

func (r *fakeProductRepo) Delete(id int64) error { delete(r.s.products, id); return nil }

func (r *fakeProductRepo) List(repository.ProductFilter) ([]*entity.Product, int64, error) {
	return nil, 0, nil
}
func (r *fakeProductRepo) ListAll() ([]*entity.Product, error)   { return nil, nil }
func (r *fakeProductRepo) ListAlert() ([]*entity.Product, error) { return nil, nil }

// ── CustomerRepository fake ──────────────────────────────────────────────────

type fakeCustomerRepo struct{ s *store }

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.s.customers[c.ID] = c; return nil }

func (r *fakeCustomerRepo) GetByID(id int64) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (r *fakeCustomerRepo) GetForUpdate(id int64) (*entity.Customer, error) { return r.GetByID(id) }

func (r *fakeCustomerRepo) Update(c *entity.Customer) error { r.s.customers[c.ID] = c; return nil }

func (r *fakeCustomerRepo) AdjustTotalSpent(id int64, delta decimal.Decimal) error {
	if r.s.failAdjustSpent {
		return errors.New("fallo inyectado en adjust total_spent")
	}
	c, ok := r.s.customers[id]
	if !ok {
		return domain.ErrNotFound
	}
	next := c.TotalSpent.Add(delta)
	if next.IsNegative() {
		return errors.New("total_spent negativo")
	}
	c.TotalSpent = next
	return nil
}

func (r *fakeCustomerRepo) Delete(id int64) error { delete(r.s.customers, id); return nil }

func (r *fakeCustomerRepo) List(repository.CustomerFilter) ([]*entity.Customer, int64, error) {
	return nil, 0, nil
}

// ── OrderRepository fake ─────────────────────────────────────────────────────

type fakeOrderRepo struct{ s *store }

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	o.ID = r.s.nextOrder
	r.s.nextOrder++
	co := *o
	r.s.orders[o.ID] = &co
	return nil
}

func (r *fakeOrderRepo) CreateItem(it *entity.OrderItem) error {
	if r.s.failCreateItem {
		return errors.New("fallo inyectado en insert de ítem")
	}
	ci := *it
	r.s.items[it.OrderID] = append(r.s.items[it.OrderID], &ci)
	return nil
}

func (r *fakeOrderRepo) GetByID(id int64) (*entity.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	co := *o
	return &co, nil
}

func (r *fakeOrderRepo) GetForUpdate(id int64) (*entity.Order, error) { return r.GetByID(id) }

func (r *fakeOrderRepo) ItemsByOrder(orderID int64) ([]*entity.OrderItem, error) {
	var out []*entity.OrderItem
	for _, it := range r.s.items[orderID] {
		ci := *it
		out = append(out, &ci)
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(id int64, status string) error {
	o, ok := r.s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

func (r *fakeOrderRepo) List(repository.OrderFilter) ([]repository.OrderSummary, int64, error) {
	var out []repository.OrderSummary
	for _, o := range r.s.orders {
		out = append(out, repository.OrderSummary{Order: *o})
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) ListByCustomer(customerID int64, start, end *time.Time) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.s.orders {
		if o.CustomerID == customerID && o.Status == entity.OrderStatusCompleted {
			co := *o
			out = append(out, &co)
		}
	}
	return out, nil
}

// ── TxRunner fake ────────────────────────────────────────────────────────────

type fakeTxRunner struct{ s *store }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	work := r.s.clone()
	err := fn(&fakeProductRepo{s: work}, &fakeCustomerRepo{s: work}, &fakeOrderRepo{s: work})
	if err != nil {
		return err // rollback: el clon se descarta
	}
	r.s.replace(work)
	return nil
}
