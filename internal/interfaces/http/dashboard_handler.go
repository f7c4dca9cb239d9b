package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/analytics"
)

// DashboardHandler widgets del panel principal.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen del dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SalesSeries godoc
// @Summary      Serie temporal de ventas
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        range  query  string  false  "week | month | year"  default(week)
// @Success      200  {object}  dto.SalesSeriesResponse
// @Router       /api/dashboard/sales [get]
func (h *DashboardHandler) SalesSeries(c *fiber.Ctx) error {
	rng := c.Query("range", "week")
	out, err := h.uc.GetSalesSeries(c.UserContext(), rng)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
