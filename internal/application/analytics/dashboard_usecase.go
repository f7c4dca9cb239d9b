// Package analytics contiene los casos de uso de solo lectura del dashboard
// y de los reportes de negocio.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

const (
	dashboardTopProducts  = 5  // filas del ranking de productos
	dashboardRecentOrders = 10 // filas del widget de órdenes recientes
	newCustomerWindowDays = 30
)

// DashboardUseCase genera las tarjetas, rankings y series del dashboard.
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// trend variación porcentual de today respecto a yesterday; 0 si ayer fue 0.
func trend(today, yesterday decimal.Decimal) decimal.Decimal {
	if yesterday.IsZero() {
		return decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	return today.Sub(yesterday).Div(yesterday).Mul(hundred).Round(2)
}

// GetSummary construye el payload completo del dashboard.
//
// Cinco consultas en paralelo:
//  1. SalesTotals(hoy)
//  2. SalesTotals(ayer)     → tendencias
//  3. CustomerCounts(30d)
//  4. TopProducts(5)
//  5. RecentOrders(10) + LowStockCount
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24 * time.Hour)
	yesterdayStart := todayStart.AddDate(0, 0, -1)

	type totalsResult struct {
		amount decimal.Decimal
		count  int64
		err    error
	}
	type customersResult struct {
		total, recent int64
		err           error
	}
	type topResult struct {
		rows []repository.TopProductRow
		err  error
	}
	type recentResult struct {
		rows     []repository.RecentOrderRow
		lowStock int64
		err      error
	}

	todayCh := make(chan totalsResult, 1)
	yesterdayCh := make(chan totalsResult, 1)
	customersCh := make(chan customersResult, 1)
	topCh := make(chan topResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		amount, count, err := uc.analyticsRepo.SalesTotals(ctx, todayStart, todayEnd)
		todayCh <- totalsResult{amount, count, err}
	}()
	go func() {
		amount, count, err := uc.analyticsRepo.SalesTotals(ctx, yesterdayStart, todayStart)
		yesterdayCh <- totalsResult{amount, count, err}
	}()
	go func() {
		total, recent, err := uc.analyticsRepo.CustomerCounts(ctx, now.AddDate(0, 0, -newCustomerWindowDays))
		customersCh <- customersResult{total, recent, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.TopProducts(ctx, dashboardTopProducts)
		topCh <- topResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.RecentOrders(ctx, dashboardRecentOrders)
		if err != nil {
			recentCh <- recentResult{err: err}
			return
		}
		lowStock, err := uc.analyticsRepo.LowStockCount(ctx)
		recentCh <- recentResult{rows, lowStock, err}
	}()

	today := <-todayCh
	yesterday := <-yesterdayCh
	customers := <-customersCh
	top := <-topCh
	recent := <-recentCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", today.err)
	}
	if yesterday.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de ayer: %w", yesterday.err)
	}
	if customers.err != nil {
		return nil, fmt.Errorf("dashboard: clientes: %w", customers.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top productos: %w", top.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: órdenes recientes: %w", recent.err)
	}

	resp := &dto.DashboardResponse{
		Stats: dto.DashboardStatsResponse{
			SalesToday: dto.StatCard{
				Value: today.amount.Round(2),
				Trend: trend(today.amount, yesterday.amount),
			},
			OrdersToday: dto.StatCard{
				Value: decimal.NewFromInt(today.count),
				Trend: trend(decimal.NewFromInt(today.count), decimal.NewFromInt(yesterday.count)),
			},
			TotalCustomers: customers.total,
			NewCustomers:   customers.recent,
			LowStockCount:  recent.lowStock,
		},
	}
	for _, t := range top.rows {
		resp.TopProducts = append(resp.TopProducts, dto.TopProductResponse{
			ProductID: t.ProductID,
			Name:      t.Name,
			Category:  t.Category,
			Supplier:  t.Supplier,
			UnitsSold: t.UnitsSold,
			Revenue:   t.Revenue.Round(2),
		})
	}
	for _, r := range recent.rows {
		resp.RecentOrders = append(resp.RecentOrders, dto.RecentOrderResponse{
			OrderID:      r.OrderID,
			CustomerName: r.CustomerName,
			Total:        r.Total,
			Status:       r.Status,
			CreatedAt:    r.CreatedAt,
		})
	}
	return resp, nil
}

// GetSalesSeries devuelve la serie de ventas del rango pedido.
// Rangos soportados: week (últimos 7 días, por día), month (últimos 30 días,
// por día) y year (año en curso, por mes).
func (uc *DashboardUseCase) GetSalesSeries(ctx context.Context, rng string) (*dto.SalesSeriesResponse, error) {
	now := time.Now()
	todayEnd := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Add(24 * time.Hour)

	var points []repository.SeriesPoint
	var err error
	switch rng {
	case "week":
		points, err = uc.analyticsRepo.SalesByDay(ctx, todayEnd.AddDate(0, 0, -7), todayEnd)
	case "month":
		points, err = uc.analyticsRepo.SalesByDay(ctx, todayEnd.AddDate(0, 0, -30), todayEnd)
	case "year":
		points, err = uc.analyticsRepo.SalesByMonth(ctx, now.Year())
	default:
		return nil, fmt.Errorf("%w: rango desconocido %q (week, month, year)", domain.ErrInvalidInput, rng)
	}
	if err != nil {
		return nil, fmt.Errorf("serie de ventas: %w", err)
	}

	resp := &dto.SalesSeriesResponse{Range: rng, Points: make([]dto.SeriesPointResponse, 0, len(points))}
	for _, p := range points {
		resp.Points = append(resp.Points, dto.SeriesPointResponse{Bucket: p.Bucket, Total: p.Total.Round(2)})
	}
	return resp, nil
}
