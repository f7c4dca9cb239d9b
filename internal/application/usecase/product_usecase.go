package usecase

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock solo lo mueve el
// workflow de órdenes o la edición explícita de admin.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

func validateProductInput(name, category string, price decimal.Decimal, stock, alertStock int64) error {
	if name == "" {
		return fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if !entity.ValidCategory(category) {
		return fmt.Errorf("%w: categoría desconocida %q", domain.ErrInvalidInput, category)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	if stock < 0 || alertStock < 0 {
		return fmt.Errorf("%w: stock y alert_stock no pueden ser negativos", domain.ErrInvalidInput)
	}
	return nil
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validateProductInput(in.Name, in.Category, in.Price, in.Stock, in.AlertStock); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		Name:        in.Name,
		Description: in.Description,
		Supplier:    in.Supplier,
		Category:    in.Category,
		Price:       in.Price,
		Stock:       in.Stock,
		AlertStock:  in.AlertStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	resp := dto.ProductFromEntity(product)
	return &resp, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	resp := dto.ProductFromEntity(product)
	return &resp, nil
}

// Update actualiza un producto completo, stock incluido (edición de admin).
func (uc *ProductUseCase) Update(id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := validateProductInput(in.Name, in.Category, in.Price, in.Stock, in.AlertStock); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	product.Name = in.Name
	product.Description = in.Description
	product.Supplier = in.Supplier
	product.Category = in.Category
	product.Price = in.Price
	product.Stock = in.Stock
	product.AlertStock = in.AlertStock
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	resp := dto.ProductFromEntity(product)
	return &resp, nil
}

// Delete elimina un producto. Las líneas de órdenes existentes conservan su
// precio congelado aunque el producto desaparezca del catálogo.
func (uc *ProductUseCase) Delete(id int64) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	return uc.repo.Delete(id)
}

// List lista productos con filtros y paginación.
func (uc *ProductUseCase) List(f repository.ProductFilter) (*dto.ProductListResponse, error) {
	list, total, err := uc.repo.List(f)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{Items: dto.ProductsFromEntities(list), Total: total}, nil
}

// ListAlert devuelve los productos bajo el umbral de alerta.
func (uc *ProductUseCase) ListAlert() (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListAlert()
	if err != nil {
		return nil, err
	}
	items := dto.ProductsFromEntities(list)
	return &dto.ProductListResponse{Items: items, Total: int64(len(items))}, nil
}
