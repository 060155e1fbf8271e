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

type rentalService struct {
	rentalRepo   repository.RentalRepository
	customerRepo repository.CustomerRepository
}

func NewRentalService(rentalRepo repository.RentalRepository, customerRepo repository.CustomerRepository) RentalService {
	return &rentalService{
		rentalRepo:   rentalRepo,
		customerRepo: customerRepo,
	}
}

func (s *rentalService) CreateRental(ctx context.Context, r *domain.Rental) (*domain.Rental, error) {
	if _, err := s.customerRepo.GetByID(ctx, r.CustomerID); err != nil {
		return nil, err
	}
	if err := validateLines(r.Items); err != nil {
		return nil, err
	}

	status, err := resolveStatus(nil, r)
	if err != nil {
		return nil, err
	}
	r.Status = status

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	assignChildIDs(r)

	if err := s.rentalRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	logger.Info("Rental created", "rental_id", r.ID, "customer_id", r.CustomerID, "lines", len(r.Items))
	return r, nil
}

func (s *rentalService) UpdateRental(ctx context.Context, r *domain.Rental) (*domain.Rental, error) {
	prior, err := s.rentalRepo.GetByID(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	if _, err := s.customerRepo.GetByID(ctx, r.CustomerID); err != nil {
		return nil, err
	}
	if err := validateLines(r.Items); err != nil {
		return nil, err
	}

	status, err := resolveStatus(&prior.Status, r)
	if err != nil {
		return nil, err
	}
	r.Status = status

	// Closing out the rental stamps the return date if the caller
	// didn't.
	if r.Status == domain.RentalStatusReturned && r.ActualReturnDate == nil {
		now := time.Now().Format(time.RFC3339)
		r.ActualReturnDate = &now
	}

	// Lines and payments are replaced wholesale, so they get fresh ids.
	assignChildIDs(r)

	if err := s.rentalRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	logger.Info("Rental updated", "rental_id", r.ID, "status", r.Status, "lines", len(r.Items))
	return r, nil
}

func (s *rentalService) DeleteRental(ctx context.Context, id string) error {
	if err := s.rentalRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("Rental deleted", "rental_id", id)
	return nil
}

func (s *rentalService) GetRental(ctx context.Context, id string) (*domain.Rental, error) {
	return s.rentalRepo.GetByID(ctx, id)
}

func (s *rentalService) ListRentals(ctx context.Context) ([]domain.Rental, error) {
	return s.rentalRepo.List(ctx)
}

func validateLines(items []domain.RentedItem) error {
	for _, ri := range items {
		if ri.ItemID == "" {
			return fmt.Errorf("line item missing itemId: %w", domain.ErrValidation)
		}
		if ri.Quantity <= 0 {
			return fmt.Errorf("line item %s: quantity must be positive: %w", ri.ItemID, domain.ErrValidation)
		}
		if ri.ReturnedQuantity < 0 || ri.ReturnedQuantity > ri.Quantity {
			return fmt.Errorf("line item %s: returnedQuantity out of range: %w", ri.ItemID, domain.ErrValidation)
		}
	}
	return nil
}

// pastDue reports whether the expected return date lies in the past.
// Dates come in as RFC 3339 or bare YYYY-MM-DD; an unparsable date is
// never past due.
func pastDue(expected string) bool {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, expected); err == nil {
			return time.Now().After(t)
		}
	}
	return false
}

// resolveStatus reconciles the caller-supplied status with the status
// the line items imply. The derived status is authoritative for return
// progress; the caller may hold a fully-returned rental at Partially
// Returned while payment is outstanding, or mark it Overdue once its
// expected return date has actually passed. For updates the prior
// status must permit the resulting transition.
func resolveStatus(prior *domain.RentalStatus, r *domain.Rental) (domain.RentalStatus, error) {
	derived := domain.DeriveStatus(r.Items)

	final := derived
	if r.Status != "" {
		if !r.Status.Valid() {
			return "", fmt.Errorf("unknown status %q: %w", r.Status, domain.ErrValidation)
		}
		switch {
		case r.Status == derived:
			final = derived
		case r.Status == domain.RentalStatusOverdue && derived != domain.RentalStatusReturned && r.ActualReturnDate == nil && pastDue(r.ExpectedReturnDate):
			final = domain.RentalStatusOverdue
		case r.Status == domain.RentalStatusPartiallyReturned && derived == domain.RentalStatusReturned:
			// Everything is back but the balance isn't settled.
			final = domain.RentalStatusPartiallyReturned
		default:
			return "", fmt.Errorf("status %q conflicts with line items (derived %q): %w", r.Status, derived, domain.ErrInvalidTransition)
		}
	}

	if prior != nil && !prior.CanTransition(final) {
		return "", fmt.Errorf("cannot move rental from %q to %q: %w", *prior, final, domain.ErrInvalidTransition)
	}
	return final, nil
}

func assignChildIDs(r *domain.Rental) {
	for i := range r.Items {
		r.Items[i].ID = uuid.NewString()
		r.Items[i].RentalID = r.ID
	}
	for i := range r.PaymentHistory {
		r.PaymentHistory[i].ID = uuid.NewString()
		r.PaymentHistory[i].RentalID = r.ID
	}
}
