package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/pkg/metrics"
)

// isRejection distingue los rechazos de negocio (entrada inválida, recurso
// inexistente, stock insuficiente) de los fallos de infraestructura.
func isRejection(err error) bool {
	return errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrInsufficientStock) ||
		errors.Is(err, domain.ErrOrderCancelled)
}

// Cancel revierte una orden completada: restaura el stock de cada línea,
// descuenta el total del acumulador del cliente y marca la orden cancelada.
// Todo dentro de una transacción; la orden nunca se elimina.
// La cancelación no es idempotente: cancelar dos veces es un error.
func (uc *UseCase) Cancel(ctx context.Context, orderID int64) (*dto.OrderResponse, error) {
	if orderID <= 0 {
		return nil, fmt.Errorf("%w: id de orden inválido", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, workflowTimeout)
	defer cancel()

	var cancelled *entity.Order
	var items []*entity.OrderItem

	err := uc.runner.Run(ctx, func(
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		orderRepo repository.OrderRepository,
	) error {
		// El estado se decide bajo bloqueo de la fila de la orden: dos
		// cancelaciones concurrentes se serializan aquí y la segunda ve
		// el estado ya cancelado.
		o, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return fmt.Errorf("orden %d: %w", orderID, domain.ErrNotFound)
		}
		switch o.Status {
		case entity.OrderStatusCancelled:
			return domain.ErrOrderCancelled
		case entity.OrderStatusCompleted:
			// única transición válida
		default:
			return fmt.Errorf("%w: la orden %d está en estado %s y no puede cancelarse", domain.ErrInvalidInput, orderID, o.Status)
		}

		// Las líneas vienen ordenadas por producto ascendente: mismo orden
		// de bloqueo que la creación.
		items, err = orderRepo.ItemsByOrder(orderID)
		if err != nil {
			return err
		}
		for _, it := range items {
			p, err := productRepo.GetForUpdate(it.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("restaurar stock: producto %d ya no existe", it.ProductID)
			}
			if err := productRepo.AdjustStock(it.ProductID, it.Quantity); err != nil {
				return err
			}
		}

		cust, err := customerRepo.GetForUpdate(o.CustomerID)
		if err != nil {
			return err
		}
		if cust == nil {
			return fmt.Errorf("revertir gasto: cliente %d ya no existe", o.CustomerID)
		}
		if err := customerRepo.AdjustTotalSpent(o.CustomerID, o.Total.Neg()); err != nil {
			return err
		}

		if err := orderRepo.UpdateStatus(orderID, entity.OrderStatusCancelled); err != nil {
			return err
		}
		o.Status = entity.OrderStatusCancelled
		cancelled = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCancelled.Inc()
	uc.log.Info().
		Int64("order_id", cancelled.ID).
		Int64("customer_id", cancelled.CustomerID).
		Str("total", cancelled.Total.String()).
		Msg("orden cancelada")

	resp := dto.OrderFromEntity(cancelled)
	for _, it := range items {
		resp.Items = append(resp.Items, dto.OrderItemFromEntity(it, ""))
	}
	return &resp, nil
}
