package order

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/pkg/logger"
	"github.com/jhoicas/ventas-api/pkg/metrics"
)

// workflowTimeout límite para el workflow transaccional de órdenes.
// Si se agota, el Rollback diferido del runner revierte todo.
const workflowTimeout = 10 * time.Second

// UseCase orquesta el ciclo de vida de las órdenes: creación atómica,
// cancelación compensatoria y consultas.
type UseCase struct {
	runner    TxRunner
	products  repository.ProductRepository
	customers repository.CustomerRepository
	orders    repository.OrderRepository
	receipts  ReceiptGenerator
	log       *logger.Logger
}

// NewUseCase construye el caso de uso. Los repos recibidos van atados al pool
// (lecturas fuera de transacción); el runner produce los atados a cada tx.
func NewUseCase(
	runner TxRunner,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	orders repository.OrderRepository,
	receipts ReceiptGenerator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		runner:    runner,
		products:  products,
		customers: customers,
		orders:    orders,
		receipts:  receipts,
		log:       log,
	}
}

// line cantidad agregada por producto (las líneas duplicadas del request se
// fusionan porque la orden persiste a lo sumo una línea por producto).
type line struct {
	productID int64
	quantity  int64
}

// aggregateItems valida las líneas y fusiona duplicados. El resultado queda
// ordenado por ID de producto ascendente: ese es también el orden en que se
// toman los bloqueos de fila, para que dos órdenes concurrentes con productos
// en común nunca se bloqueen en orden cruzado.
func aggregateItems(items []dto.OrderItemRequest) ([]line, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: la orden necesita al menos un producto", domain.ErrInvalidInput)
	}
	byProduct := make(map[int64]int64, len(items))
	for _, it := range items {
		if it.ProductID <= 0 {
			return nil, fmt.Errorf("%w: product_id inválido", domain.ErrInvalidInput)
		}
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: la cantidad del producto %d debe ser al menos 1", domain.ErrInvalidInput, it.ProductID)
		}
		byProduct[it.ProductID] += it.Quantity
	}
	lines := make([]line, 0, len(byProduct))
	for id, qty := range byProduct {
		lines = append(lines, line{productID: id, quantity: qty})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].productID < lines[j].productID })
	return lines, nil
}

// Create ejecuta el workflow completo de creación de una orden: valida,
// congela precios, descuenta stock, acumula el gasto del cliente y persiste
// cabecera y líneas, todo dentro de una única transacción.
// userID es el vendedor autenticado que registra la venta (opcional).
func (uc *UseCase) Create(ctx context.Context, userID *int64, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if req.CustomerID <= 0 {
		metrics.OrdersRejected.Inc()
		return nil, fmt.Errorf("%w: customer_id inválido", domain.ErrInvalidInput)
	}
	lines, err := aggregateItems(req.Items)
	if err != nil {
		metrics.OrdersRejected.Inc()
		return nil, err
	}

	// Verificación previa fuera de la transacción para rechazar rápido;
	// dentro de la tx se vuelve a verificar bajo bloqueo.
	customer, err := uc.customers.GetByID(req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		metrics.OrdersRejected.Inc()
		return nil, fmt.Errorf("cliente %d: %w", req.CustomerID, domain.ErrNotFound)
	}
	for _, l := range lines {
		p, err := uc.products.GetByID(l.productID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			metrics.OrdersRejected.Inc()
			return nil, &domain.ProductNotFoundError{ProductID: l.productID}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, workflowTimeout)
	defer cancel()

	var created *entity.Order
	var items []*entity.OrderItem
	productNames := make(map[int64]string, len(lines))

	err = uc.runner.Run(ctx, func(
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		orderRepo repository.OrderRepository,
	) error {
		// Bloquear productos en orden ascendente y verificar stock con los
		// valores ya bloqueados; los precios quedan congelados aquí.
		total := decimal.Zero
		locked := make([]*entity.Product, 0, len(lines))
		for _, l := range lines {
			p, err := productRepo.GetForUpdate(l.productID)
			if err != nil {
				return err
			}
			if p == nil {
				return &domain.ProductNotFoundError{ProductID: l.productID}
			}
			if p.Stock < l.quantity {
				return &domain.InsufficientStockError{
					ProductID:   p.ID,
					ProductName: p.Name,
					Available:   p.Stock,
					Requested:   l.quantity,
				}
			}
			locked = append(locked, p)
			productNames[p.ID] = p.Name
			total = total.Add(p.Price.Mul(decimal.NewFromInt(l.quantity)))
		}

		cust, err := customerRepo.GetForUpdate(req.CustomerID)
		if err != nil {
			return err
		}
		if cust == nil {
			return fmt.Errorf("cliente %d: %w", req.CustomerID, domain.ErrNotFound)
		}

		o := &entity.Order{
			CustomerID: req.CustomerID,
			UserID:     userID,
			Total:      total,
			Status:     entity.OrderStatusCompleted,
			CreatedAt:  time.Now(),
		}
		if err := orderRepo.Create(o); err != nil {
			return err
		}

		items = items[:0]
		for i, l := range lines {
			it := &entity.OrderItem{
				OrderID:   o.ID,
				ProductID: l.productID,
				Quantity:  l.quantity,
				UnitPrice: locked[i].Price,
			}
			if err := orderRepo.CreateItem(it); err != nil {
				return err
			}
			if err := productRepo.AdjustStock(l.productID, -l.quantity); err != nil {
				return err
			}
			items = append(items, it)
		}

		if err := customerRepo.AdjustTotalSpent(req.CustomerID, total); err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		if isRejection(err) {
			metrics.OrdersRejected.Inc()
		}
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	uc.log.Info().
		Int64("order_id", created.ID).
		Int64("customer_id", created.CustomerID).
		Str("total", created.Total.String()).
		Int("items", len(items)).
		Msg("orden creada")

	resp := dto.OrderFromEntity(created)
	resp.CustomerName = customer.Name
	for _, it := range items {
		resp.Items = append(resp.Items, dto.OrderItemFromEntity(it, productNames[it.ProductID]))
	}
	return &resp, nil
}
