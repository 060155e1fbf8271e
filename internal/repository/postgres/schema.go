package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Dates are stored as ISO-8601 text, matching what the frontend sends;
// lexicographic comparison on them is chronological.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		nic TEXT NOT NULL,
		phone TEXT NOT NULL,
		address TEXT NOT NULL,
		photo_url TEXT NOT NULL DEFAULT '',
		nic_front_url TEXT NOT NULL DEFAULT '',
		nic_back_url TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		model TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		available INTEGER NOT NULL,
		rental_price DOUBLE PRECISION NOT NULL,
		remarks TEXT NOT NULL DEFAULT '',
		added_at TEXT NOT NULL,
		CONSTRAINT items_available_range CHECK (available >= 0 AND available <= quantity)
	)`,
	`CREATE TABLE IF NOT EXISTS rentals (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES customers(id),
		checkout_date TEXT NOT NULL,
		expected_return_date TEXT NOT NULL,
		actual_return_date TEXT,
		total_amount DOUBLE PRECISION NOT NULL,
		advance_payment DOUBLE PRECISION NOT NULL,
		paid_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		fine_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		fine_notes TEXT NOT NULL DEFAULT '',
		discount_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		remarks TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS rented_items (
		id TEXT PRIMARY KEY,
		rental_id TEXT NOT NULL REFERENCES rentals(id) ON DELETE CASCADE,
		item_id TEXT NOT NULL REFERENCES items(id),
		quantity INTEGER NOT NULL,
		returned_quantity INTEGER NOT NULL DEFAULT 0,
		price_per_day DOUBLE PRECISION NOT NULL,
		return_status TEXT NOT NULL DEFAULT '',
		CONSTRAINT rented_items_returned_range CHECK (returned_quantity >= 0 AND returned_quantity <= quantity)
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY,
		rental_id TEXT NOT NULL REFERENCES rentals(id) ON DELETE CASCADE,
		date TEXT NOT NULL,
		amount DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		id TEXT PRIMARY KEY,
		shop_name TEXT NOT NULL,
		logo_url TEXT NOT NULL DEFAULT '',
		checkout_template TEXT NOT NULL,
		checkin_template TEXT NOT NULL,
		balance_reminder_template TEXT NOT NULL,
		whatsapp_country_code TEXT NOT NULL,
		invoice_custom_text TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		username TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		last_login TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_rented_items_rental ON rented_items(rental_id)`,
	`CREATE INDEX IF NOT EXISTS idx_rented_items_item ON rented_items(item_id)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_rental ON payments(rental_id)`,
	`CREATE INDEX IF NOT EXISTS idx_rentals_status ON rentals(status)`,
}

// EnsureSchema creates any missing tables and indexes.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
