package analytics

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
)

// ReportUseCase reportes de negocio: ventas por rango, inventario y consumo
// histórico por cliente.
type ReportUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
	customerRepo  repository.CustomerRepository
	orderRepo     repository.OrderRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	analyticsRepo repository.AnalyticsRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
) *ReportUseCase {
	return &ReportUseCase{
		analyticsRepo: analyticsRepo,
		productRepo:   productRepo,
		customerRepo:  customerRepo,
		orderRepo:     orderRepo,
	}
}

// SalesReport genera el reporte de ventas del rango [start, end] (end
// inclusivo a nivel de día).
func (uc *ReportUseCase) SalesReport(ctx context.Context, start, end time.Time) (*dto.SalesReportResponse, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: la fecha final es anterior a la inicial", domain.ErrInvalidInput)
	}
	endExcl := end.AddDate(0, 0, 1)

	total, count, err := uc.analyticsRepo.SalesTotals(ctx, start, endExcl)
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas: %w", err)
	}
	byProduct, err := uc.analyticsRepo.ProductSales(ctx, start, endExcl)
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas: %w", err)
	}
	byCustomer, err := uc.analyticsRepo.CustomerSales(ctx, start, endExcl)
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas: %w", err)
	}

	resp := &dto.SalesReportResponse{
		StartDate:  start,
		EndDate:    end,
		Total:      total.Round(2),
		OrderCount: count,
	}
	for _, row := range byProduct {
		resp.ByProduct = append(resp.ByProduct, dto.ProductSalesReport{
			ProductID: row.ProductID,
			Name:      row.Name,
			Category:  row.Category,
			Quantity:  row.Quantity,
			Amount:    row.Amount.Round(2),
		})
	}
	for _, row := range byCustomer {
		resp.ByCustomer = append(resp.ByCustomer, dto.CustomerSalesReport{
			CustomerID: row.CustomerID,
			Name:       row.Name,
			OrderCount: row.OrderCount,
			Amount:     row.Amount.Round(2),
		})
	}
	return resp, nil
}

// Tipos de reporte de inventario.
const (
	InventoryReportCurrentStock  = "current_stock"
	InventoryReportLowStockAlert = "low_stock_alert"
)

// InventoryReport devuelve el estado del inventario con su valoración
// (Σ precio × stock) y el resumen por categoría. El tipo low_stock_alert
// restringe el listado a los productos bajo el umbral de alerta.
func (uc *ReportUseCase) InventoryReport(ctx context.Context, reportType string) (*dto.InventoryReportResponse, error) {
	if reportType == "" {
		reportType = InventoryReportCurrentStock
	}
	if reportType != InventoryReportCurrentStock && reportType != InventoryReportLowStockAlert {
		return nil, fmt.Errorf("%w: tipo de reporte desconocido %q", domain.ErrInvalidInput, reportType)
	}

	all, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("reporte de inventario: %w", err)
	}

	var products []*entity.Product
	var lowStock int64
	for _, p := range all {
		if p.LowStock() {
			lowStock++
		}
		if reportType == InventoryReportLowStockAlert && !p.LowStock() {
			continue
		}
		products = append(products, p)
	}

	totalValue := decimal.Zero
	byCategory := make(map[string]*dto.CategoryStockReport)
	var categories []string
	for _, p := range products {
		value := p.Price.Mul(decimal.NewFromInt(p.Stock))
		totalValue = totalValue.Add(value)
		cat, ok := byCategory[p.Category]
		if !ok {
			cat = &dto.CategoryStockReport{Category: p.Category, Value: decimal.Zero}
			byCategory[p.Category] = cat
			categories = append(categories, p.Category)
		}
		cat.Products++
		cat.Units += p.Stock
		cat.Value = cat.Value.Add(value)
	}
	sort.Strings(categories)

	resp := &dto.InventoryReportResponse{
		Type:          reportType,
		Products:      dto.ProductsFromEntities(products),
		TotalValue:    totalValue.Round(2),
		LowStockCount: lowStock,
	}
	for _, name := range categories {
		cat := byCategory[name]
		cat.Value = cat.Value.Round(2)
		resp.ByCategory = append(resp.ByCategory, *cat)
	}
	return resp, nil
}

// CustomerConsumption devuelve el consumo histórico de un cliente: sus órdenes
// completadas (opcionalmente restringidas a un rango) y el total sumado.
func (uc *ReportUseCase) CustomerConsumption(ctx context.Context, customerID int64, start, end *time.Time) (*dto.CustomerConsumptionResponse, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("cliente %d: %w", customerID, domain.ErrNotFound)
	}

	orders, err := uc.orderRepo.ListByCustomer(customerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("consumo del cliente: %w", err)
	}

	resp := &dto.CustomerConsumptionResponse{
		Customer: dto.CustomerFromEntity(customer),
		Total:    decimal.Zero,
	}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, dto.OrderFromEntity(o))
		resp.Total = resp.Total.Add(o.Total)
	}
	resp.Total = resp.Total.Round(2)
	return resp, nil
}
