package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rentalpro-backend/internal/domain"
	"rentalpro-backend/internal/logger"
	"rentalpro-backend/internal/repository"
)

type itemService struct {
	itemRepo repository.ItemRepository
}

func NewItemService(itemRepo repository.ItemRepository) ItemService {
	return &itemService{itemRepo: itemRepo}
}

func (s *itemService) CreateItem(ctx context.Context, it *domain.Item) (*domain.Item, error) {
	if it.Quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative: %w", domain.ErrValidation)
	}
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	// New stock is fully available until something rents it.
	it.Available = it.Quantity
	it.AddedAt = time.Now().Format(time.RFC3339)

	if err := s.itemRepo.Create(ctx, it); err != nil {
		return nil, err
	}
	logger.Info("Item created", "item_id", it.ID, "quantity", it.Quantity)
	return it, nil
}

func (s *itemService) ListItems(ctx context.Context) ([]domain.Item, error) {
	return s.itemRepo.List(ctx)
}

func (s *itemService) UpdateItem(ctx context.Context, it *domain.Item) (*domain.Item, error) {
	if it.Quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative: %w", domain.ErrValidation)
	}
	if it.Available < 0 || it.Available > it.Quantity {
		return nil, fmt.Errorf("available must be between 0 and quantity: %w", domain.ErrValidation)
	}
	if err := s.itemRepo.Update(ctx, it); err != nil {
		return nil, err
	}
	return s.itemRepo.GetByID(ctx, it.ID)
}

func (s *itemService) DeleteItem(ctx context.Context, id string) error {
	return s.itemRepo.Delete(ctx, id)
}
