package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentalpro-backend/internal/domain"
)

func aCustomer() *domain.Customer {
	return &domain.Customer{ID: "cust-1", Name: "Nimal Perera", Phone: "0771234567"}
}

func aRental() *domain.Rental {
	return &domain.Rental{
		CustomerID:         "cust-1",
		CheckoutDate:       "2026-08-01T09:00:00Z",
		ExpectedReturnDate: "2026-08-05T09:00:00Z",
		TotalAmount:        4000,
		AdvancePayment:     1000,
		Items: []domain.RentedItem{
			{ItemID: "item-1", Quantity: 2, PricePerDay: 500},
			{ItemID: "item-2", Quantity: 1, PricePerDay: 1000},
		},
		PaymentHistory: []domain.Payment{
			{Date: "2026-08-01T09:00:00Z", Amount: 1000},
		},
	}
}

func TestCreateRental(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewRentalService(rentalRepo, customerRepo)

		customerRepo.On("GetByID", ctx, "cust-1").Return(aCustomer(), nil)
		rentalRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.Rental) bool {
			return r.Status == domain.RentalStatusRented && r.ID != ""
		})).Return(nil)

		created, err := svc.CreateRental(ctx, aRental())
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusRented, created.Status)
		assert.NotEmpty(t, created.ID)
		for _, ri := range created.Items {
			assert.NotEmpty(t, ri.ID)
			assert.Equal(t, created.ID, ri.RentalID)
		}
		for _, p := range created.PaymentHistory {
			assert.Equal(t, created.ID, p.RentalID)
		}
		rentalRepo.AssertExpectations(t)
	})

	t.Run("UnknownCustomer", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewRentalService(rentalRepo, customerRepo)

		customerRepo.On("GetByID", ctx, "cust-1").Return(nil, domain.NotFoundError("customer", "cust-1"))

		_, err := svc.CreateRental(ctx, aRental())
		assert.ErrorIs(t, err, domain.ErrNotFound)
		rentalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ZeroQuantityLine", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewRentalService(rentalRepo, customerRepo)

		customerRepo.On("GetByID", ctx, "cust-1").Return(aCustomer(), nil)

		r := aRental()
		r.Items[0].Quantity = 0
		_, err := svc.CreateRental(ctx, r)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("ReturnedExceedsQuantity", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewRentalService(rentalRepo, customerRepo)

		customerRepo.On("GetByID", ctx, "cust-1").Return(aCustomer(), nil)

		r := aRental()
		r.Items[0].ReturnedQuantity = 5
		_, err := svc.CreateRental(ctx, r)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("StatusConflictsWithLines", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewRentalService(rentalRepo, customerRepo)

		customerRepo.On("GetByID", ctx, "cust-1").Return(aCustomer(), nil)

		r := aRental()
		r.Status = domain.RentalStatusReturned // nothing has come back yet
		_, err := svc.CreateRental(ctx, r)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("OverdueBeforeDueDateRejected", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewRentalService(rentalRepo, customerRepo)

		customerRepo.On("GetByID", ctx, "cust-1").Return(aCustomer(), nil)

		r := aRental()
		r.Status = domain.RentalStatusOverdue
		r.ExpectedReturnDate = time.Now().Add(48 * time.Hour).Format(time.RFC3339)
		_, err := svc.CreateRental(ctx, r)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		rentalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("InsufficientStockPassesThrough", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewRentalService(rentalRepo, customerRepo)

		customerRepo.On("GetByID", ctx, "cust-1").Return(aCustomer(), nil)
		stockErr := &domain.InsufficientStockError{ItemID: "item-1", Requested: 2, Available: 1}
		rentalRepo.On("Create", ctx, mock.Anything).Return(stockErr)

		_, err := svc.CreateRental(ctx, aRental())
		assert.True(t, domain.IsInsufficientStock(err))
	})
}

func TestUpdateRental(t *testing.T) {
	ctx := context.Background()

	prior := func(status domain.RentalStatus) *domain.Rental {
		p := aRental()
		p.ID = "rental-1"
		p.Status = status
		return p
	}

	t.Run("PartialReturn", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewRentalService(rentalRepo, customerRepo)

		rentalRepo.On("GetByID", ctx, "rental-1").Return(prior(domain.RentalStatusRented), nil)
		customerRepo.On("GetByID", ctx, "cust-1").Return(aCustomer(), nil)
		rentalRepo.On("Update", ctx, mock.MatchedBy(func(r *domain.Rental) bool {
			return r.Status == domain.RentalStatusPartiallyReturned
		})).Return(nil)

		r := aRental()
		r.ID = "rental-1"
		r.Items[0].ReturnedQuantity = 2
		r.Items[0].ReturnStatus = domain.ReturnStatusOK

		updated, err := svc.UpdateRental(ctx, r)
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusPartiallyReturned, updated.Status)
		assert.Nil(t, updated.ActualReturnDate)
		rentalRepo.AssertExpectations(t)
	})

	t.Run("FullReturnStampsDate", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewRentalService(rentalRepo, customerRepo)

		rentalRepo.On("GetByID", ctx, "rental-1").Return(prior(domain.RentalStatusPartiallyReturned), nil)
		customerRepo.On("GetByID", ctx, "cust-1").Return(aCustomer(), nil)
		rentalRepo.On("Update", ctx, mock.Anything).Return(nil)

		r := aRental()
		r.ID = "rental-1"
		for i := range r.Items {
			r.Items[i].ReturnedQuantity = r.Items[i].Quantity
			r.Items[i].ReturnStatus = domain.ReturnStatusOK
		}

		updated, err := svc.UpdateRental(ctx, r)
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusReturned, updated.Status)
		assert.NotNil(t, updated.ActualReturnDate)
	})

	t.Run("HoldAtPartiallyReturnedForBalance", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewRentalService(rentalRepo, customerRepo)

		rentalRepo.On("GetByID", ctx, "rental-1").Return(prior(domain.RentalStatusRented), nil)
		customerRepo.On("GetByID", ctx, "cust-1").Return(aCustomer(), nil)
		rentalRepo.On("Update", ctx, mock.Anything).Return(nil)

		r := aRental()
		r.ID = "rental-1"
		r.Status = domain.RentalStatusPartiallyReturned
		for i := range r.Items {
			r.Items[i].ReturnedQuantity = r.Items[i].Quantity
		}

		updated, err := svc.UpdateRental(ctx, r)
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusPartiallyReturned, updated.Status)
		assert.Nil(t, updated.ActualReturnDate)
	})

	t.Run("MarkOverdue", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewRentalService(rentalRepo, customerRepo)

		rentalRepo.On("GetByID", ctx, "rental-1").Return(prior(domain.RentalStatusRented), nil)
		customerRepo.On("GetByID", ctx, "cust-1").Return(aCustomer(), nil)
		rentalRepo.On("Update", ctx, mock.Anything).Return(nil)

		r := aRental()
		r.ID = "rental-1"
		r.Status = domain.RentalStatusOverdue
		r.ExpectedReturnDate = time.Now().Add(-48 * time.Hour).Format(time.RFC3339)

		updated, err := svc.UpdateRental(ctx, r)
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusOverdue, updated.Status)
	})

	t.Run("OverdueBeforeDueDateRejected", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewRentalService(rentalRepo, customerRepo)

		rentalRepo.On("GetByID", ctx, "rental-1").Return(prior(domain.RentalStatusRented), nil)
		customerRepo.On("GetByID", ctx, "cust-1").Return(aCustomer(), nil)

		r := aRental()
		r.ID = "rental-1"
		r.Status = domain.RentalStatusOverdue
		r.ExpectedReturnDate = time.Now().Add(48 * time.Hour).Format(time.RFC3339)

		_, err := svc.UpdateRental(ctx, r)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		rentalRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("ReturnedIsTerminal", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewRentalService(rentalRepo, customerRepo)

		rentalRepo.On("GetByID", ctx, "rental-1").Return(prior(domain.RentalStatusReturned), nil)
		customerRepo.On("GetByID", ctx, "cust-1").Return(aCustomer(), nil)

		r := aRental()
		r.ID = "rental-1"

		_, err := svc.UpdateRental(ctx, r)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		rentalRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("UnknownRental", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewRentalService(rentalRepo, customerRepo)

		rentalRepo.On("GetByID", ctx, "missing").Return(nil, domain.NotFoundError("rental", "missing"))

		r := aRental()
		r.ID = "missing"
		_, err := svc.UpdateRental(ctx, r)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("UnknownStatusValue", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewRentalService(rentalRepo, customerRepo)

		rentalRepo.On("GetByID", ctx, "rental-1").Return(prior(domain.RentalStatusRented), nil)
		customerRepo.On("GetByID", ctx, "cust-1").Return(aCustomer(), nil)

		r := aRental()
		r.ID = "rental-1"
		r.Status = "Checked Out"
		_, err := svc.UpdateRental(ctx, r)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestDeleteRental(t *testing.T) {
	ctx := context.Background()
	rentalRepo := new(MockRentalRepo)
	customerRepo := new(MockCustomerRepo)
	svc := NewRentalService(rentalRepo, customerRepo)

	rentalRepo.On("Delete", ctx, "rental-1").Return(nil)
	assert.NoError(t, svc.DeleteRental(ctx, "rental-1"))

	rentalRepo.On("Delete", ctx, "missing").Return(domain.NotFoundError("rental", "missing"))
	assert.ErrorIs(t, svc.DeleteRental(ctx, "missing"), domain.ErrNotFound)
}
