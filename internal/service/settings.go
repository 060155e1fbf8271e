package service

import (
	"context"
	"errors"

	"rentalpro-backend/internal/domain"
	"rentalpro-backend/internal/repository"
)

const defaultCheckoutTemplate = `Dear [CustomerName],

Thank you for renting from [ShopName]!
Here are your rental details:

Invoice ID: [InvoiceID]
Items:
[ItemsList]

Expected Return Date: [ReturnDate]

Total Amount: Rs. [TotalAmount]
Advance Paid: Rs. [AdvancePaid]
Balance Due: Rs. [BalanceDue]

Thank you!`

const defaultCheckinTemplate = `Dear [CustomerName],

We've processed your return for rental #[InvoiceID] for [ShopName].

Summary:
[ItemsList]

Additional Fines/Fees: Rs. [Fines]
Discount Applied: Rs. [Discount]
Amount Paid Today: Rs. [AmountPaid]
Remaining Balance: Rs. [RemainingBalance]

Thank you for your business!`

const defaultBalanceReminderTemplate = `Dear [CustomerName],

This is a friendly reminder from [ShopName] regarding your outstanding balance of Rs. [BalanceDue] for rental #[InvoiceID].

Please contact us to settle the payment.

Thank you.`

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

// GetSettings returns the stored settings, or the built-in defaults if
// the shop has never saved any.
func (s *settingsService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	stored, err := s.settingsRepo.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, in *domain.Settings) (*domain.Settings, error) {
	if err := s.settingsRepo.Upsert(ctx, in); err != nil {
		return nil, err
	}
	return s.settingsRepo.Get(ctx)
}

// DefaultSettings is what a fresh shop starts with.
func DefaultSettings() *domain.Settings {
	return &domain.Settings{
		ID:                      domain.SettingsID,
		ShopName:                "RentalPro",
		CheckoutTemplate:        defaultCheckoutTemplate,
		CheckinTemplate:         defaultCheckinTemplate,
		BalanceReminderTemplate: defaultBalanceReminderTemplate,
		WhatsAppCountryCode:     "94",
		InvoiceCustomText:       "Thank you for your business!",
	}
}
