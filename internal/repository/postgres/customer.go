package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rentalpro-backend/internal/domain"
	"rentalpro-backend/internal/repository"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, name, nic, phone, address, photo_url, nic_front_url, nic_back_url, notes, created_at`

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (` + customerColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.NIC, c.Phone, c.Address, c.PhotoURL, c.NICFrontURL, c.NICBackURL, c.Notes, c.CreatedAt)
	return err
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.NIC, &c.Phone, &c.Address, &c.PhotoURL, &c.NICFrontURL, &c.NICBackURL, &c.Notes, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("customer", id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.NIC, &c.Phone, &c.Address, &c.PhotoURL, &c.NICFrontURL, &c.NICBackURL, &c.Notes, &c.CreatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET name=$1, nic=$2, phone=$3, address=$4, photo_url=$5, nic_front_url=$6, nic_back_url=$7, notes=$8 WHERE id=$9`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.NIC, c.Phone, c.Address, c.PhotoURL, c.NICFrontURL, c.NICBackURL, c.Notes, c.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError("customer", c.ID)
	}
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("customer %s still has rentals: %w", id, domain.ErrConflict)
	}
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError("customer", id)
	}
	return nil
}
