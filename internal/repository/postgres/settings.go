package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rentalpro-backend/internal/domain"
	"rentalpro-backend/internal/repository"
)

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	s := &domain.Settings{}
	query := `SELECT id, shop_name, logo_url, checkout_template, checkin_template, balance_reminder_template, whatsapp_country_code, invoice_custom_text FROM settings WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, domain.SettingsID).Scan(
		&s.ID, &s.ShopName, &s.LogoURL, &s.CheckoutTemplate, &s.CheckinTemplate,
		&s.BalanceReminderTemplate, &s.WhatsAppCountryCode, &s.InvoiceCustomText)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("settings", domain.SettingsID)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, s *domain.Settings) error {
	s.ID = domain.SettingsID
	query := `INSERT INTO settings (id, shop_name, logo_url, checkout_template, checkin_template, balance_reminder_template, whatsapp_country_code, invoice_custom_text)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (id) DO UPDATE SET
	            shop_name = EXCLUDED.shop_name,
	            logo_url = EXCLUDED.logo_url,
	            checkout_template = EXCLUDED.checkout_template,
	            checkin_template = EXCLUDED.checkin_template,
	            balance_reminder_template = EXCLUDED.balance_reminder_template,
	            whatsapp_country_code = EXCLUDED.whatsapp_country_code,
	            invoice_custom_text = EXCLUDED.invoice_custom_text`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.ShopName, s.LogoURL, s.CheckoutTemplate, s.CheckinTemplate, s.BalanceReminderTemplate, s.WhatsAppCountryCode, s.InvoiceCustomText)
	return err
}
