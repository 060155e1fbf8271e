package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rentalpro-backend/internal/domain"
	"rentalpro-backend/internal/repository"
)

type itemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `id, name, model, quantity, available, rental_price, remarks, added_at`

func (r *itemRepository) Create(ctx context.Context, it *domain.Item) error {
	query := `INSERT INTO items (` + itemColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, it.ID, it.Name, it.Model, it.Quantity, it.Available, it.RentalPrice, it.Remarks, it.AddedAt)
	return err
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	it := &domain.Item{}
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&it.ID, &it.Name, &it.Model, &it.Quantity, &it.Available, &it.RentalPrice, &it.Remarks, &it.AddedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("item", id)
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *itemRepository) List(ctx context.Context) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY added_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Model, &it.Quantity, &it.Available, &it.RentalPrice, &it.Remarks, &it.AddedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *itemRepository) Update(ctx context.Context, it *domain.Item) error {
	query := `UPDATE items SET name=$1, model=$2, quantity=$3, available=$4, rental_price=$5, remarks=$6 WHERE id=$7`
	res, err := r.db.ExecContext(ctx, query, it.Name, it.Model, it.Quantity, it.Available, it.RentalPrice, it.Remarks, it.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError("item", it.ID)
	}
	return nil
}

func (r *itemRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("item %s is referenced by rentals: %w", id, domain.ErrConflict)
	}
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError("item", id)
	}
	return nil
}
