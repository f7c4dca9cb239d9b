package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrOrderCancelled    = errors.New("la orden ya está cancelada")
)

// ProductNotFoundError identifica qué producto de la solicitud no existe.
// Unwrap devuelve ErrNotFound para que los handlers clasifiquen con errors.Is.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("el producto %d no existe", e.ProductID)
}

func (e *ProductNotFoundError) Unwrap() error { return ErrNotFound }

// InsufficientStockError identifica el producto sin stock suficiente y las
// cantidades involucradas. Unwrap devuelve ErrInsufficientStock.
type InsufficientStockError struct {
	ProductID   int64
	ProductName string
	Available   int64
	Requested   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el producto %s (id %d): disponible %d, solicitado %d",
		e.ProductName, e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
