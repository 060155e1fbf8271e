package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rentalpro-backend/internal/domain"
	"rentalpro-backend/internal/logger"
	"rentalpro-backend/internal/repository"
)

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) CreateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt == "" {
		c.CreatedAt = time.Now().Format(time.RFC3339)
	}
	if err := s.customerRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	logger.Info("Customer created", "customer_id", c.ID)
	return c, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.customerRepo.List(ctx)
}

func (s *customerService) UpdateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	if err := s.customerRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.customerRepo.GetByID(ctx, c.ID)
}

func (s *customerService) DeleteCustomer(ctx context.Context, id string) error {
	return s.customerRepo.Delete(ctx, id)
}
