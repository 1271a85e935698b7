package repository

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
)

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id int32) (*domain.Car, error)
	GetByLicensePlate(ctx context.Context, plate string) (*domain.Car, error)
	List(ctx context.Context) ([]domain.Car, error)
	ListAvailable(ctx context.Context, filter domain.CarFilter) ([]domain.Car, error)
	Update(ctx context.Context, car *domain.Car) error
	UpdateAvailability(ctx context.Context, id int32, available bool) error
	Delete(ctx context.Context, id int32) error
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	GetByCPF(ctx context.Context, cpf string) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	ListWithPendingPayments(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	UpdatePendingPayment(ctx context.Context, id int32, pending bool) error
	Delete(ctx context.Context, id int32) error
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	List(ctx context.Context, filter domain.RentalFilter) ([]domain.Rental, error)
	ListByCar(ctx context.Context, carID int32, status domain.RentalStatus) ([]domain.Rental, error)
	ListByCustomer(ctx context.Context, customerID int32) ([]domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
	UpdateStatus(ctx context.Context, id int32, status domain.RentalStatus) error
	Delete(ctx context.Context, id int32) error
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id int32) (*domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
	ListByRental(ctx context.Context, rentalID int32) ([]domain.Payment, error)
	ListPendingByRental(ctx context.Context, rentalID int32) ([]domain.Payment, error)
	UpdateStatus(ctx context.Context, id int32, status domain.PaymentStatus) error
	Delete(ctx context.Context, id int32) error
}

type MaintenanceRepository interface {
	Create(ctx context.Context, maintenance *domain.Maintenance) error
	GetByID(ctx context.Context, id int32) (*domain.Maintenance, error)
	List(ctx context.Context) ([]domain.Maintenance, error)
	ListByCar(ctx context.Context, carID int32, status domain.MaintenanceStatus) ([]domain.Maintenance, error)
	ListBlockingByCar(ctx context.Context, carID int32) ([]domain.Maintenance, error)
	Update(ctx context.Context, maintenance *domain.Maintenance) error
	Complete(ctx context.Context, id int32, completionDate time.Time) error
	Delete(ctx context.Context, id int32) error
}
