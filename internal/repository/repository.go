package repository

import (
	"context"
	"rentalpro-backend/internal/domain"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id string) error
}

type ItemRepository interface {
	Create(ctx context.Context, it *domain.Item) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	List(ctx context.Context) ([]domain.Item, error)
	Update(ctx context.Context, it *domain.Item) error
	Delete(ctx context.Context, id string) error
}

// RentalRepository persists the rental aggregate. Create, Update and
// Delete run in one transaction that also maintains Item.Available:
// Create reserves each line's quantity, Update restores the prior
// lines' outstanding units before reserving the new set, Delete
// restores outstanding units before removing the rows. A line that
// cannot be reserved aborts with *domain.InsufficientStockError and
// nothing is committed.
type RentalRepository interface {
	Create(ctx context.Context, r *domain.Rental) error
	GetByID(ctx context.Context, id string) (*domain.Rental, error)
	List(ctx context.Context) ([]domain.Rental, error)
	Update(ctx context.Context, r *domain.Rental) error
	Delete(ctx context.Context, id string) error
	ListOutstanding(ctx context.Context) ([]domain.Rental, error)
	MarkOverdue(ctx context.Context, before string) ([]string, error)
}

type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Upsert(ctx context.Context, s *domain.Settings) error
}

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateLastLogin(ctx context.Context, id, lastLogin string) error
}
