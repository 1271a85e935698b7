package postgres

import (
	"database/sql"
	"errors"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.CarRepository
	repository.CustomerRepository
	repository.RentalRepository
	repository.PaymentRepository
	repository.MaintenanceRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		CarRepository:         NewCarRepository(db),
		CustomerRepository:    NewCustomerRepository(db),
		RentalRepository:      NewRentalRepository(db),
		PaymentRepository:     NewPaymentRepository(db),
		MaintenanceRepository: NewMaintenanceRepository(db),
	}
}

// classify converts raw storage faults into business errors: row absence
// becomes ErrNotFound, unique violations become ErrDuplicateKey.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return domain.ErrDuplicateKey
	}
	return err
}
