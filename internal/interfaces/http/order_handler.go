package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/order"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// OrderHandler maneja las peticiones HTTP del ciclo de vida de órdenes.
type OrderHandler struct {
	uc *order.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *order.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// parseDateRange lee start_date y end_date (YYYY-MM-DD). Ambas o ninguna.
func parseDateRange(c *fiber.Ctx) (start, end *time.Time, err error) {
	s, e := c.Query("start_date"), c.Query("end_date")
	if s == "" && e == "" {
		return nil, nil, nil
	}
	if s == "" || e == "" {
		return nil, nil, fmt.Errorf("start_date y end_date deben venir juntas")
	}
	st, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, nil, fmt.Errorf("start_date inválida: %s", s)
	}
	en, err := time.Parse("2006-01-02", e)
	if err != nil {
		return nil, nil, fmt.Errorf("end_date inválida: %s", e)
	}
	if en.Before(st) {
		return nil, nil, fmt.Errorf("end_date anterior a start_date")
	}
	return &st, &en, nil
}

// respondPlacementError traduce errores al colocar una orden. Aquí un cliente
// o producto inexistente es un defecto de la petición, no de la ruta: se
// reporta 400, a diferencia del 404 del mapeo genérico.
func respondPlacementError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return respondError(c, err)
}

// Create godoc
// @Summary      Crear orden de venta
// @Description  Congela precios, descuenta stock y acumula el gasto del cliente de forma atómica.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Cliente y líneas"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse  "validación, cliente o producto inexistente, stock insuficiente"
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	var userID *int64
	if id := GetUserID(c); id != 0 {
		userID = &id
	}
	out, err := h.uc.Create(c.UserContext(), userID, in)
	if err != nil {
		return respondPlacementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden por ID (con líneas)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id numérico requerido"})
	}
	out, err := h.uc.Get(c.UserContext(), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id             query  int     false  "ID exacto"
// @Param        customer_name  query  string  false  "Nombre del cliente (parcial)"
// @Param        status         query  string  false  "pending | completed | cancelled"
// @Param        start_date     query  string  false  "YYYY-MM-DD"
// @Param        end_date       query  string  false  "YYYY-MM-DD (inclusivo)"
// @Param        page           query  int     false  "Página"           default(1)
// @Param        page_size      query  int     false  "Tamaño de página" default(20)
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	p := dto.NormalizePagination(c.QueryInt("page", 1), c.QueryInt("page_size", 20))
	f := repository.OrderFilter{
		ID:           int64(c.QueryInt("id", 0)),
		CustomerName: c.Query("customer_name"),
		Status:       c.Query("status"),
		StartDate:    start,
		EndDate:      end,
		Limit:        p.Limit,
		Offset:       p.Offset,
	}
	out, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar orden (solo admin)
// @Description  Restaura stock, revierte el gasto del cliente y marca la orden cancelada. No es idempotente.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.CancelOrderResponse
// @Failure      400  {object}  dto.ErrorResponse  "ya cancelada"
// @Failure      404  {object}  dto.ErrorResponse  "orden inexistente"
// @Router       /api/orders/{id}/cancel [put]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id numérico requerido"})
	}
	out, err := h.uc.Cancel(c.UserContext(), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CancelOrderResponse{Message: "orden cancelada", Order: *out})
}

// Receipt godoc
// @Summary      Comprobante PDF de la orden
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/pdf [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id numérico requerido"})
	}
	pdfBytes, err := h.uc.Receipt(c.UserContext(), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="orden-%d.pdf"`, id))
	return c.Send(pdfBytes)
}
