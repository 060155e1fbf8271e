package service

import (
	"context"
	"rentalpro-backend/internal/domain"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
}

type ItemService interface {
	CreateItem(ctx context.Context, it *domain.Item) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	UpdateItem(ctx context.Context, it *domain.Item) (*domain.Item, error)
	DeleteItem(ctx context.Context, id string) error
}

// RentalService is the rental lifecycle engine. It owns the create and
// update paths for the rental aggregate, validates references and
// status transitions, and relies on the repository to keep
// Item.Available consistent inside the same transaction.
type RentalService interface {
	CreateRental(ctx context.Context, r *domain.Rental) (*domain.Rental, error)
	GetRental(ctx context.Context, id string) (*domain.Rental, error)
	ListRentals(ctx context.Context) ([]domain.Rental, error)
	UpdateRental(ctx context.Context, r *domain.Rental) (*domain.Rental, error)
	DeleteRental(ctx context.Context, id string) error
}

type SettingsService interface {
	GetSettings(ctx context.Context) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, s *domain.Settings) (*domain.Settings, error)
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	CreateUser(ctx context.Context, u *domain.User, password string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type EmailService interface {
	Send(ctx context.Context, to, toName, subject, body string) error
}
