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

// CustomerUseCase casos de uso CRUD para clientes. TotalSpent no es editable
// desde aquí: lo mueve exclusivamente el workflow de órdenes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create registra un cliente nuevo con acumulador en cero.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.LicenseNo == "" {
		return nil, fmt.Errorf("%w: el número de licencia es obligatorio", domain.ErrInvalidInput)
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	now := time.Now()
	customer := &entity.Customer{
		LicenseNo:  in.LicenseNo,
		Name:       in.Name,
		Contact:    in.Contact,
		TotalSpent: decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	resp := dto.CustomerFromEntity(customer)
	return &resp, nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(id int64) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("cliente %d: %w", id, domain.ErrNotFound)
	}
	resp := dto.CustomerFromEntity(customer)
	return &resp, nil
}

// Update actualiza los datos de contacto del cliente.
func (uc *CustomerUseCase) Update(id int64, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.LicenseNo == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: licencia y nombre son obligatorios", domain.ErrInvalidInput)
	}
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("cliente %d: %w", id, domain.ErrNotFound)
	}
	customer.LicenseNo = in.LicenseNo
	customer.Name = in.Name
	customer.Contact = in.Contact
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	resp := dto.CustomerFromEntity(customer)
	return &resp, nil
}

// Delete elimina un cliente.
func (uc *CustomerUseCase) Delete(id int64) error {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return fmt.Errorf("cliente %d: %w", id, domain.ErrNotFound)
	}
	return uc.repo.Delete(id)
}

// List lista clientes con filtros y paginación.
func (uc *CustomerUseCase) List(f repository.CustomerFilter) (*dto.CustomerListResponse, error) {
	list, total, err := uc.repo.List(f)
	if err != nil {
		return nil, err
	}
	return &dto.CustomerListResponse{Items: dto.CustomersFromEntities(list), Total: total}, nil
}
