package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"rentalpro-backend/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.CustomerRepository
	repository.ItemRepository
	repository.RentalRepository
	repository.SettingsRepository
	repository.UserRepository
}

// isForeignKeyViolation reports whether err is a postgres foreign-key
// violation (SQLSTATE 23503), raised when a delete would orphan
// referencing rental rows.
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		CustomerRepository: NewCustomerRepository(db),
		ItemRepository:     NewItemRepository(db),
		RentalRepository:   NewRentalRepository(db),
		SettingsRepository: NewSettingsRepository(db),
		UserRepository:     NewUserRepository(db),
	}
}
