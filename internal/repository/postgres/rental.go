package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"rentalpro-backend/internal/domain"
	"rentalpro-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, customer_id, checkout_date, expected_return_date, actual_return_date, total_amount, advance_payment, paid_amount, status, fine_amount, fine_notes, discount_amount, remarks`

// reserveStock takes a line's outstanding units out of Item.Available.
// The conditional update is the stock check: the row lock serializes
// concurrent rentals of the same item, so two requests for the last
// unit can never both pass.
func reserveStock(ctx context.Context, tx *sql.Tx, itemID string, units int32) error {
	if units <= 0 {
		return nil
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE items SET available = available - $1 WHERE id = $2 AND available >= $1`,
		units, itemID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var available int32
		err := tx.QueryRowContext(ctx, `SELECT available FROM items WHERE id = $1`, itemID).Scan(&available)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError("item", itemID)
		}
		if err != nil {
			return err
		}
		return &domain.InsufficientStockError{ItemID: itemID, Requested: units, Available: available}
	}
	return nil
}

// restoreStock gives a line's outstanding units back to Item.Available.
// Clamped to quantity so that items whose total stock shrank in the
// meantime (lost units) cannot end up with available > quantity.
func restoreStock(ctx context.Context, tx *sql.Tx, itemID string, units int32) error {
	if units <= 0 {
		return nil
	}
	_, err := tx.ExecContext(ctx,
		`UPDATE items SET available = LEAST(available + $1, quantity) WHERE id = $2`,
		units, itemID)
	return err
}

func insertLines(ctx context.Context, tx *sql.Tx, rentalID string, items []domain.RentedItem) error {
	for i := range items {
		ri := &items[i]
		ri.RentalID = rentalID
		if err := reserveStock(ctx, tx, ri.ItemID, ri.Outstanding()); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO rented_items (id, rental_id, item_id, quantity, returned_quantity, price_per_day, return_status) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			ri.ID, ri.RentalID, ri.ItemID, ri.Quantity, ri.ReturnedQuantity, ri.PricePerDay, string(ri.ReturnStatus))
		if err != nil {
			return err
		}
	}
	return nil
}

func insertPayments(ctx context.Context, tx *sql.Tx, rentalID string, payments []domain.Payment) error {
	for i := range payments {
		p := &payments[i]
		p.RentalID = rentalID
		_, err := tx.ExecContext(ctx,
			`INSERT INTO payments (id, rental_id, date, amount) VALUES ($1, $2, $3, $4)`,
			p.ID, p.RentalID, p.Date, p.Amount)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO rentals (`+rentalColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		rt.ID, rt.CustomerID, rt.CheckoutDate, rt.ExpectedReturnDate, rt.ActualReturnDate, rt.TotalAmount, rt.AdvancePayment, rt.PaidAmount, rt.Status, rt.FineAmount, rt.FineNotes, rt.DiscountAmount, rt.Remarks)
	if err != nil {
		return err
	}
	if err := insertLines(ctx, tx, rt.ID, rt.Items); err != nil {
		return err
	}
	if err := insertPayments(ctx, tx, rt.ID, rt.PaymentHistory); err != nil {
		return err
	}
	return tx.Commit()
}

// Update replaces the header and the full line-item and payment sets.
// Prior lines' outstanding units are restored before the new set is
// reserved, so availability never drifts across an update.
func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Lock the header so concurrent updates of the same rental
	// serialize around the restore/reserve sequence.
	var existingID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM rentals WHERE id = $1 FOR UPDATE`, rt.ID).Scan(&existingID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError("rental", rt.ID)
	}
	if err != nil {
		return err
	}

	prior, err := loadLinesTx(ctx, tx, rt.ID)
	if err != nil {
		return err
	}
	for _, ri := range prior {
		if err := restoreStock(ctx, tx, ri.ItemID, ri.Outstanding()); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM rented_items WHERE rental_id = $1`, rt.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM payments WHERE rental_id = $1`, rt.ID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE rentals SET customer_id=$1, checkout_date=$2, expected_return_date=$3, actual_return_date=$4, total_amount=$5, advance_payment=$6, paid_amount=$7, status=$8, fine_amount=$9, fine_notes=$10, discount_amount=$11, remarks=$12 WHERE id=$13`,
		rt.CustomerID, rt.CheckoutDate, rt.ExpectedReturnDate, rt.ActualReturnDate, rt.TotalAmount, rt.AdvancePayment, rt.PaidAmount, rt.Status, rt.FineAmount, rt.FineNotes, rt.DiscountAmount, rt.Remarks, rt.ID)
	if err != nil {
		return err
	}
	if err := insertLines(ctx, tx, rt.ID, rt.Items); err != nil {
		return err
	}
	if err := insertPayments(ctx, tx, rt.ID, rt.PaymentHistory); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *rentalRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var existingID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM rentals WHERE id = $1 FOR UPDATE`, id).Scan(&existingID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError("rental", id)
	}
	if err != nil {
		return err
	}

	lines, err := loadLinesTx(ctx, tx, id)
	if err != nil {
		return err
	}
	for _, ri := range lines {
		if err := restoreStock(ctx, tx, ri.ItemID, ri.Outstanding()); err != nil {
			return err
		}
	}
	// Lines and payments go with the header via ON DELETE CASCADE.
	if _, err := tx.ExecContext(ctx, `DELETE FROM rentals WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *rentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rt.ID, &rt.CustomerID, &rt.CheckoutDate, &rt.ExpectedReturnDate, &rt.ActualReturnDate,
		&rt.TotalAmount, &rt.AdvancePayment, &rt.PaidAmount, &rt.Status, &rt.FineAmount,
		&rt.FineNotes, &rt.DiscountAmount, &rt.Remarks)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("rental", id)
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, []*domain.Rental{rt}); err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) List(ctx context.Context) ([]domain.Rental, error) {
	return r.list(ctx, `SELECT `+rentalColumns+` FROM rentals ORDER BY checkout_date DESC`)
}

// ListOutstanding returns rentals that still carry an unpaid balance
// and are not fully closed out, for the balance-reminder job.
func (r *rentalRepository) ListOutstanding(ctx context.Context) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE status <> 'Returned'
	            AND total_amount + fine_amount - discount_amount - advance_payment - paid_amount > 0.009
	          ORDER BY expected_return_date`
	return r.list(ctx, query)
}

func (r *rentalRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := rows.Scan(
			&rt.ID, &rt.CustomerID, &rt.CheckoutDate, &rt.ExpectedReturnDate, &rt.ActualReturnDate,
			&rt.TotalAmount, &rt.AdvancePayment, &rt.PaidAmount, &rt.Status, &rt.FineAmount,
			&rt.FineNotes, &rt.DiscountAmount, &rt.Remarks); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ptrs := make([]*domain.Rental, len(rentals))
	for i := range rentals {
		ptrs[i] = &rentals[i]
	}
	if err := r.loadChildren(ctx, ptrs); err != nil {
		return nil, err
	}
	return rentals, nil
}

// MarkOverdue flips open rentals past their expected return date to
// Overdue and returns the affected ids.
func (r *rentalRepository) MarkOverdue(ctx context.Context, before string) ([]string, error) {
	query := `UPDATE rentals SET status = 'Overdue'
	          WHERE status IN ('Rented', 'Partially Returned')
	            AND actual_return_date IS NULL
	            AND expected_return_date < $1
	          RETURNING id`
	rows, err := r.db.QueryContext(ctx, query, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func loadLinesTx(ctx context.Context, tx *sql.Tx, rentalID string) ([]domain.RentedItem, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, rental_id, item_id, quantity, returned_quantity, price_per_day, return_status FROM rented_items WHERE rental_id = $1`,
		rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.RentedItem
	for rows.Next() {
		var ri domain.RentedItem
		var rs string
		if err := rows.Scan(&ri.ID, &ri.RentalID, &ri.ItemID, &ri.Quantity, &ri.ReturnedQuantity, &ri.PricePerDay, &rs); err != nil {
			return nil, err
		}
		ri.ReturnStatus = domain.ReturnStatus(rs)
		lines = append(lines, ri)
	}
	return lines, rows.Err()
}

// loadChildren populates Items and PaymentHistory for the given rentals
// with one query per collection.
func (r *rentalRepository) loadChildren(ctx context.Context, rentals []*domain.Rental) error {
	if len(rentals) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Rental, len(rentals))
	ids := make([]string, 0, len(rentals))
	for _, rt := range rentals {
		rt.Items = []domain.RentedItem{}
		rt.PaymentHistory = []domain.Payment{}
		byID[rt.ID] = rt
		ids = append(ids, rt.ID)
	}

	lineRows, err := r.db.QueryContext(ctx,
		`SELECT id, rental_id, item_id, quantity, returned_quantity, price_per_day, return_status FROM rented_items WHERE rental_id = ANY($1)`,
		pq.Array(ids))
	if err != nil {
		return err
	}
	defer lineRows.Close()
	for lineRows.Next() {
		var ri domain.RentedItem
		var rs string
		if err := lineRows.Scan(&ri.ID, &ri.RentalID, &ri.ItemID, &ri.Quantity, &ri.ReturnedQuantity, &ri.PricePerDay, &rs); err != nil {
			return err
		}
		ri.ReturnStatus = domain.ReturnStatus(rs)
		if rt, ok := byID[ri.RentalID]; ok {
			rt.Items = append(rt.Items, ri)
		}
	}
	if err := lineRows.Err(); err != nil {
		return err
	}

	payRows, err := r.db.QueryContext(ctx,
		`SELECT id, rental_id, date, amount FROM payments WHERE rental_id = ANY($1) ORDER BY date`,
		pq.Array(ids))
	if err != nil {
		return err
	}
	defer payRows.Close()
	for payRows.Next() {
		var p domain.Payment
		if err := payRows.Scan(&p.ID, &p.RentalID, &p.Date, &p.Amount); err != nil {
			return err
		}
		if rt, ok := byID[p.RentalID]; ok {
			rt.PaymentHistory = append(rt.PaymentHistory, p)
		}
	}
	return payRows.Err()
}

