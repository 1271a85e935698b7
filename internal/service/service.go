package service

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
)

type CarService interface {
	CreateCar(ctx context.Context, car *domain.Car) (*domain.Car, error)
	GetCar(ctx context.Context, id int32) (*domain.Car, error)
	GetCarByLicensePlate(ctx context.Context, plate string) (*domain.Car, error)
	ListCars(ctx context.Context) ([]domain.Car, error)
	ListAvailableCars(ctx context.Context, filter domain.CarFilter) ([]domain.Car, error)
	UpdateCar(ctx context.Context, car *domain.Car) (*domain.Car, error)
	DeleteCar(ctx context.Context, id int32) error
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetCustomer(ctx context.Context, id int32) (*domain.Customer, error)
	GetCustomerByCPF(ctx context.Context, cpf string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id int32) error
}

type RentalService interface {
	CreateRental(ctx context.Context, carID, customerID int32, startDate, endDate time.Time) (*domain.Rental, error)
	GetRental(ctx context.Context, id int32) (*domain.Rental, error)
	ListRentals(ctx context.Context, filter domain.RentalFilter) ([]domain.Rental, error)
	UpdateRentalDates(ctx context.Context, id int32, startDate, endDate time.Time) (*domain.Rental, error)
	CompleteRental(ctx context.Context, id int32) (*domain.Rental, error)
	CancelRental(ctx context.Context, id int32) (*domain.Rental, error)
	DeleteRental(ctx context.Context, id int32) error
}

type PaymentService interface {
	CreatePayment(ctx context.Context, rentalID int32, amountCents int64, method domain.PaymentMethod, paymentDate time.Time) (*domain.Payment, error)
	GetPayment(ctx context.Context, id int32) (*domain.Payment, error)
	ListPayments(ctx context.Context) ([]domain.Payment, error)
	ListPaymentsByRental(ctx context.Context, rentalID int32) ([]domain.Payment, error)
	ProcessPayment(ctx context.Context, id int32) (*domain.Payment, error)
	CancelPayment(ctx context.Context, id int32) (*domain.Payment, error)
	DeletePayment(ctx context.Context, id int32) error
}

type MaintenanceService interface {
	ScheduleMaintenance(ctx context.Context, carID int32, description string, scheduledDate time.Time, costCents int64) (*domain.Maintenance, error)
	GetMaintenance(ctx context.Context, id int32) (*domain.Maintenance, error)
	ListMaintenances(ctx context.Context) ([]domain.Maintenance, error)
	ListMaintenancesByCar(ctx context.Context, carID int32, status domain.MaintenanceStatus) ([]domain.Maintenance, error)
	StartMaintenance(ctx context.Context, id int32) (*domain.Maintenance, error)
	CompleteMaintenance(ctx context.Context, id int32, completionDate time.Time) (*domain.Maintenance, error)
	DeleteMaintenance(ctx context.Context, id int32) error
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
}

type EmailService interface {
	SendRentalConfirmation(ctx context.Context, email, name string, rental *domain.Rental) error
	SendPaymentReminder(ctx context.Context, email, name string, amountCents int64) error
}
