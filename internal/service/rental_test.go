package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"carrental-backend/internal/domain"
)

// day returns midnight today plus offset days, so test windows always sit in
// the future where the date-range validator wants them.
func day(offset int) time.Time {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, offset)
}

func newRentalServiceForTest(
	rentalRepo *MockRentalRepo,
	carRepo *MockCarRepo,
	customerRepo *MockCustomerRepo,
	paymentRepo *MockPaymentRepo,
	maintenanceRepo *MockMaintenanceRepo,
	emailSvc *MockEmailService,
) RentalService {
	return NewRentalService(rentalRepo, carRepo, customerRepo, paymentRepo, maintenanceRepo, NewKeyedMutex(), emailSvc)
}

func TestRentalService_CreateRental(t *testing.T) {
	ctx := context.Background()

	car := &domain.Car{ID: 1, LicensePlate: "ABC1234", DailyRateCents: 10000, Available: true}
	customer := &domain.Customer{ID: 2, Name: "Maria", Email: "maria@test.com"}

	t.Run("Success", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		carRepo := new(MockCarRepo)
		customerRepo := new(MockCustomerRepo)
		maintenanceRepo := new(MockMaintenanceRepo)
		emailSvc := new(MockEmailService)
		svc := newRentalServiceForTest(rentalRepo, carRepo, customerRepo, new(MockPaymentRepo), maintenanceRepo, emailSvc)

		carRepo.On("GetByID", ctx, int32(1)).Return(car, nil)
		customerRepo.On("GetByID", ctx, int32(2)).Return(customer, nil)
		maintenanceRepo.On("ListBlockingByCar", ctx, int32(1)).Return([]domain.Maintenance{}, nil)
		rentalRepo.On("ListByCar", ctx, int32(1), domain.RentalStatusActive).Return([]domain.Rental{}, nil)
		rentalRepo.On("Create", ctx, mock.MatchedBy(func(rt *domain.Rental) bool {
			return rt.Status == domain.RentalStatusActive && rt.DailyRateCents == 10000
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Rental).ID = 7
		}).Return(nil)
		carRepo.On("UpdateAvailability", ctx, int32(1), false).Return(nil)
		emailSvc.On("SendRentalConfirmation", ctx, "maria@test.com", "Maria", mock.Anything).Return(nil)

		// 10 calendar days at 100.00/day crosses the 10% tier: 900.00.
		rental, err := svc.CreateRental(ctx, 1, 2, day(1), day(11))
		assert.NoError(t, err)
		assert.Equal(t, int32(7), rental.ID)
		assert.Equal(t, int32(10), rental.TotalDays)
		assert.Equal(t, int32(10), rental.DiscountPercent)
		assert.Equal(t, int64(90000), rental.TotalValueCents)

		rentalRepo.AssertExpectations(t)
		carRepo.AssertExpectations(t)
		emailSvc.AssertExpectations(t)
	})

	t.Run("CarNotFound", func(t *testing.T) {
		carRepo := new(MockCarRepo)
		svc := newRentalServiceForTest(new(MockRentalRepo), carRepo, new(MockCustomerRepo), new(MockPaymentRepo), new(MockMaintenanceRepo), nil)

		carRepo.On("GetByID", ctx, int32(9)).Return(nil, domain.ErrNotFound)

		_, err := svc.CreateRental(ctx, 9, 2, day(1), day(3))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("DelinquentCustomer", func(t *testing.T) {
		carRepo := new(MockCarRepo)
		customerRepo := new(MockCustomerRepo)
		svc := newRentalServiceForTest(new(MockRentalRepo), carRepo, customerRepo, new(MockPaymentRepo), new(MockMaintenanceRepo), nil)

		carRepo.On("GetByID", ctx, int32(1)).Return(car, nil)
		customerRepo.On("GetByID", ctx, int32(2)).Return(&domain.Customer{ID: 2, HasPendingPayment: true}, nil)

		_, err := svc.CreateRental(ctx, 1, 2, day(1), day(3))
		assert.ErrorIs(t, err, domain.ErrCustomerDelinquent)
	})

	t.Run("CarAlreadyRented", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		carRepo := new(MockCarRepo)
		customerRepo := new(MockCustomerRepo)
		maintenanceRepo := new(MockMaintenanceRepo)
		svc := newRentalServiceForTest(rentalRepo, carRepo, customerRepo, new(MockPaymentRepo), maintenanceRepo, nil)

		carRepo.On("GetByID", ctx, int32(1)).Return(car, nil)
		customerRepo.On("GetByID", ctx, int32(2)).Return(customer, nil)
		maintenanceRepo.On("ListBlockingByCar", ctx, int32(1)).Return([]domain.Maintenance{}, nil)
		rentalRepo.On("ListByCar", ctx, int32(1), domain.RentalStatusActive).
			Return([]domain.Rental{{ID: 3, Status: domain.RentalStatusActive}}, nil)

		_, err := svc.CreateRental(ctx, 1, 2, day(1), day(3))
		assert.ErrorIs(t, err, domain.ErrCarUnavailable)
		rentalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ScheduledMaintenanceInWindow", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		carRepo := new(MockCarRepo)
		customerRepo := new(MockCustomerRepo)
		maintenanceRepo := new(MockMaintenanceRepo)
		svc := newRentalServiceForTest(rentalRepo, carRepo, customerRepo, new(MockPaymentRepo), maintenanceRepo, nil)

		carRepo.On("GetByID", ctx, int32(1)).Return(car, nil)
		customerRepo.On("GetByID", ctx, int32(2)).Return(customer, nil)
		maintenanceRepo.On("ListBlockingByCar", ctx, int32(1)).Return([]domain.Maintenance{
			{ID: 4, CarID: 1, Status: domain.MaintenanceStatusScheduled, ScheduledDate: day(2)},
		}, nil)

		_, err := svc.CreateRental(ctx, 1, 2, day(1), day(5))
		assert.ErrorIs(t, err, domain.ErrCarUnavailable)
	})

	t.Run("InvalidRange", func(t *testing.T) {
		svc := newRentalServiceForTest(new(MockRentalRepo), new(MockCarRepo), new(MockCustomerRepo), new(MockPaymentRepo), new(MockMaintenanceRepo), nil)

		_, err := svc.CreateRental(ctx, 1, 2, day(5), day(5))
		assert.ErrorIs(t, err, domain.ErrInvalidRange)

		_, err = svc.CreateRental(ctx, 1, 2, day(-3), day(2))
		assert.ErrorIs(t, err, domain.ErrInvalidRange)
	})
}

func TestRentalService_CompleteRental(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		carRepo := new(MockCarRepo)
		maintenanceRepo := new(MockMaintenanceRepo)
		svc := newRentalServiceForTest(rentalRepo, carRepo, new(MockCustomerRepo), new(MockPaymentRepo), maintenanceRepo, nil)

		rentalRepo.On("GetByID", ctx, int32(7)).Return(&domain.Rental{ID: 7, CarID: 1, Status: domain.RentalStatusActive}, nil)
		rentalRepo.On("UpdateStatus", ctx, int32(7), domain.RentalStatusCompleted).Return(nil)
		rentalRepo.On("ListByCar", ctx, int32(1), domain.RentalStatusActive).Return([]domain.Rental{}, nil)
		maintenanceRepo.On("ListBlockingByCar", ctx, int32(1)).Return([]domain.Maintenance{}, nil)
		carRepo.On("UpdateAvailability", ctx, int32(1), true).Return(nil)

		rental, err := svc.CompleteRental(ctx, 7)
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusCompleted, rental.Status)
		carRepo.AssertExpectations(t)
	})

	t.Run("AlreadyCompleted", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		svc := newRentalServiceForTest(rentalRepo, new(MockCarRepo), new(MockCustomerRepo), new(MockPaymentRepo), new(MockMaintenanceRepo), nil)

		rentalRepo.On("GetByID", ctx, int32(7)).Return(&domain.Rental{ID: 7, CarID: 1, Status: domain.RentalStatusCompleted}, nil)

		_, err := svc.CompleteRental(ctx, 7)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("CarStaysBlockedByMaintenance", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		carRepo := new(MockCarRepo)
		maintenanceRepo := new(MockMaintenanceRepo)
		svc := newRentalServiceForTest(rentalRepo, carRepo, new(MockCustomerRepo), new(MockPaymentRepo), maintenanceRepo, nil)

		rentalRepo.On("GetByID", ctx, int32(7)).Return(&domain.Rental{ID: 7, CarID: 1, Status: domain.RentalStatusActive}, nil)
		rentalRepo.On("UpdateStatus", ctx, int32(7), domain.RentalStatusCompleted).Return(nil)
		rentalRepo.On("ListByCar", ctx, int32(1), domain.RentalStatusActive).Return([]domain.Rental{}, nil)
		maintenanceRepo.On("ListBlockingByCar", ctx, int32(1)).Return([]domain.Maintenance{
			{ID: 4, CarID: 1, Status: domain.MaintenanceStatusInProgress},
		}, nil)
		carRepo.On("UpdateAvailability", ctx, int32(1), false).Return(nil)

		_, err := svc.CompleteRental(ctx, 7)
		assert.NoError(t, err)
		carRepo.AssertExpectations(t)
	})
}

func TestRentalService_UpdateRentalDates(t *testing.T) {
	ctx := context.Background()

	t.Run("RepricesFromSnapshot", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		carRepo := new(MockCarRepo)
		maintenanceRepo := new(MockMaintenanceRepo)
		svc := newRentalServiceForTest(rentalRepo, carRepo, new(MockCustomerRepo), new(MockPaymentRepo), maintenanceRepo, nil)

		// The car's rate has since doubled; the rental keeps its snapshot.
		rentalRepo.On("GetByID", ctx, int32(7)).Return(&domain.Rental{
			ID: 7, CarID: 1, Status: domain.RentalStatusActive, DailyRateCents: 10000,
		}, nil)
		carRepo.On("GetByID", ctx, int32(1)).Return(&domain.Car{ID: 1, DailyRateCents: 20000, Available: false}, nil)
		maintenanceRepo.On("ListBlockingByCar", ctx, int32(1)).Return([]domain.Maintenance{}, nil)
		rentalRepo.On("ListByCar", ctx, int32(1), domain.RentalStatusActive).
			Return([]domain.Rental{{ID: 7, Status: domain.RentalStatusActive}}, nil)
		rentalRepo.On("Update", ctx, mock.MatchedBy(func(rt *domain.Rental) bool {
			return rt.TotalDays == 20 && rt.DiscountPercent == 15 && rt.TotalValueCents == 170000
		})).Return(nil)

		rental, err := svc.UpdateRentalDates(ctx, 7, day(1), day(21))
		assert.NoError(t, err)
		assert.Equal(t, int64(170000), rental.TotalValueCents)
		rentalRepo.AssertExpectations(t)
	})

	t.Run("NotActive", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		svc := newRentalServiceForTest(rentalRepo, new(MockCarRepo), new(MockCustomerRepo), new(MockPaymentRepo), new(MockMaintenanceRepo), nil)

		rentalRepo.On("GetByID", ctx, int32(7)).Return(&domain.Rental{ID: 7, Status: domain.RentalStatusCancelled}, nil)

		_, err := svc.UpdateRentalDates(ctx, 7, day(1), day(4))
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestRentalService_DeleteRental(t *testing.T) {
	ctx := context.Background()

	t.Run("RefusedWhilePaymentsExist", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		paymentRepo := new(MockPaymentRepo)
		svc := newRentalServiceForTest(rentalRepo, new(MockCarRepo), new(MockCustomerRepo), paymentRepo, new(MockMaintenanceRepo), nil)

		rentalRepo.On("GetByID", ctx, int32(7)).Return(&domain.Rental{ID: 7, CarID: 1, Status: domain.RentalStatusCompleted}, nil)
		paymentRepo.On("ListByRental", ctx, int32(7)).Return([]domain.Payment{{ID: 1, RentalID: 7}}, nil)

		err := svc.DeleteRental(ctx, 7)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
		rentalRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Success", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		carRepo := new(MockCarRepo)
		paymentRepo := new(MockPaymentRepo)
		maintenanceRepo := new(MockMaintenanceRepo)
		svc := newRentalServiceForTest(rentalRepo, carRepo, new(MockCustomerRepo), paymentRepo, maintenanceRepo, nil)

		rentalRepo.On("GetByID", ctx, int32(7)).Return(&domain.Rental{ID: 7, CarID: 1, Status: domain.RentalStatusCancelled}, nil)
		paymentRepo.On("ListByRental", ctx, int32(7)).Return([]domain.Payment{}, nil)
		rentalRepo.On("Delete", ctx, int32(7)).Return(nil)
		rentalRepo.On("ListByCar", ctx, int32(1), domain.RentalStatusActive).Return([]domain.Rental{}, nil)
		maintenanceRepo.On("ListBlockingByCar", ctx, int32(1)).Return([]domain.Maintenance{}, nil)
		carRepo.On("UpdateAvailability", ctx, int32(1), true).Return(nil)

		err := svc.DeleteRental(ctx, 7)
		assert.NoError(t, err)
		rentalRepo.AssertExpectations(t)
	})
}
