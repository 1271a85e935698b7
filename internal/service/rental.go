package service

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"
)

type rentalService struct {
	rentalRepo   repository.RentalRepository
	carRepo      repository.CarRepository
	customerRepo repository.CustomerRepository
	paymentRepo  repository.PaymentRepository
	availability *availabilityResolver
	locks        *KeyedMutex
	emailSvc     EmailService
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	carRepo repository.CarRepository,
	customerRepo repository.CustomerRepository,
	paymentRepo repository.PaymentRepository,
	maintenanceRepo repository.MaintenanceRepository,
	locks *KeyedMutex,
	emailSvc EmailService,
) RentalService {
	return &rentalService{
		rentalRepo:   rentalRepo,
		carRepo:      carRepo,
		customerRepo: customerRepo,
		paymentRepo:  paymentRepo,
		availability: newAvailabilityResolver(carRepo, rentalRepo, maintenanceRepo),
		locks:        locks,
		emailSvc:     emailSvc,
	}
}

// CreateRental runs the full admission pipeline: date validation, delinquency
// gate, availability check, pricing, persistence, car flag flip. The car's
// lock is held across check and write so two concurrent requests for the same
// car cannot both observe "available".
func (s *rentalService) CreateRental(ctx context.Context, carID, customerID int32, startDate, endDate time.Time) (*domain.Rental, error) {
	log := logger.WithService("rental")
	log.Info("creating rental", "car_id", carID, "customer_id", customerID)

	if err := utils.ValidateDateRange(startDate, endDate); err != nil {
		return nil, err
	}

	s.locks.Lock(carKey(carID))
	defer s.locks.Unlock(carKey(carID))

	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, domain.NewBusinessError(err, "car", carID, "")
	}
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, domain.NewBusinessError(err, "customer", customerID, "")
	}

	// Delinquency gate: any pending payment blocks new rentals.
	if customer.HasPendingPayment {
		return nil, domain.NewBusinessError(domain.ErrCustomerDelinquent, "customer", customerID, "")
	}

	available, reason, err := s.availability.IsCarAvailable(ctx, car, startDate, endDate, 0)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, domain.NewBusinessError(domain.ErrCarUnavailable, "car", carID, reason)
	}

	quote, err := utils.CalculateRentalQuote(car.DailyRateCents, startDate, endDate)
	if err != nil {
		return nil, err
	}

	rental := &domain.Rental{
		CarID:           carID,
		CustomerID:      customerID,
		StartDate:       startDate,
		EndDate:         endDate,
		DailyRateCents:  car.DailyRateCents,
		TotalDays:       quote.TotalDays,
		DiscountPercent: quote.DiscountPercent,
		TotalValueCents: quote.TotalValueCents,
		Status:          domain.RentalStatusActive,
	}

	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		return nil, err
	}
	if err := s.carRepo.UpdateAvailability(ctx, carID, false); err != nil {
		return nil, err
	}

	// Confirmation email is best effort, never aborts the rental.
	if s.emailSvc != nil {
		if err := s.emailSvc.SendRentalConfirmation(ctx, customer.Email, customer.Name, rental); err != nil {
			log.Warn("failed to send rental confirmation", "rental_id", rental.ID, "error", err)
		}
	}

	log.Info("rental created", "rental_id", rental.ID, "total_days", quote.TotalDays,
		"discount_percent", quote.DiscountPercent, "total_value_cents", quote.TotalValueCents)
	return rental, nil
}

func (s *rentalService) GetRental(ctx context.Context, id int32) (*domain.Rental, error) {
	return s.rentalRepo.GetByID(ctx, id)
}

func (s *rentalService) ListRentals(ctx context.Context, filter domain.RentalFilter) ([]domain.Rental, error) {
	return s.rentalRepo.List(ctx, filter)
}

// UpdateRentalDates re-dates an active rental. Availability is re-checked
// excluding the rental itself, and the price is recomputed from the rental's
// snapshotted daily rate, not the car's current one.
func (s *rentalService) UpdateRentalDates(ctx context.Context, id int32, startDate, endDate time.Time) (*domain.Rental, error) {
	if err := utils.ValidateDateRange(startDate, endDate); err != nil {
		return nil, err
	}

	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewBusinessError(err, "rental", id, "")
	}

	s.locks.Lock(carKey(rental.CarID))
	defer s.locks.Unlock(carKey(rental.CarID))

	// State can change while waiting on the lock; check it under the lock.
	rental, err = s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewBusinessError(err, "rental", id, "")
	}
	if rental.Status != domain.RentalStatusActive {
		return nil, domain.NewBusinessError(domain.ErrInvalidState, "rental", id, "only active rentals can be updated")
	}

	car, err := s.carRepo.GetByID(ctx, rental.CarID)
	if err != nil {
		return nil, domain.NewBusinessError(err, "car", rental.CarID, "")
	}

	// The car is unavailable while this rental is active; availability here
	// means no blocker other than the rental itself.
	available, reason, err := s.availability.IsCarAvailable(ctx, &domain.Car{
		ID:             car.ID,
		Available:      true,
		DailyRateCents: car.DailyRateCents,
	}, startDate, endDate, rental.ID)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, domain.NewBusinessError(domain.ErrCarUnavailable, "car", car.ID, reason)
	}

	quote, err := utils.CalculateRentalQuote(rental.DailyRateCents, startDate, endDate)
	if err != nil {
		return nil, err
	}

	rental.StartDate = startDate
	rental.EndDate = endDate
	rental.TotalDays = quote.TotalDays
	rental.DiscountPercent = quote.DiscountPercent
	rental.TotalValueCents = quote.TotalValueCents

	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, err
	}
	logger.Info("rental re-dated", "rental_id", id, "total_value_cents", quote.TotalValueCents)
	return rental, nil
}

func (s *rentalService) CompleteRental(ctx context.Context, id int32) (*domain.Rental, error) {
	return s.closeRental(ctx, id, domain.RentalStatusCompleted)
}

// CancelRental preserves the rental's stored total; cancellation is an
// informational record, not a refund.
func (s *rentalService) CancelRental(ctx context.Context, id int32) (*domain.Rental, error) {
	return s.closeRental(ctx, id, domain.RentalStatusCancelled)
}

func (s *rentalService) closeRental(ctx context.Context, id int32, status domain.RentalStatus) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewBusinessError(err, "rental", id, "")
	}

	s.locks.Lock(carKey(rental.CarID))
	defer s.locks.Unlock(carKey(rental.CarID))

	// Re-read under the lock: a concurrent transition may have closed the
	// rental between the first load and lock acquisition.
	rental, err = s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewBusinessError(err, "rental", id, "")
	}
	if rental.Status != domain.RentalStatusActive {
		return nil, domain.NewBusinessError(domain.ErrInvalidState, "rental", id, "only active rentals can be "+string(status))
	}

	if err := s.rentalRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	if err := s.availability.RecomputeCarAvailability(ctx, rental.CarID); err != nil {
		return nil, err
	}

	logger.Info("rental closed", "rental_id", id, "status", status)
	rental.Status = status
	return rental, nil
}

// DeleteRental refuses to remove a rental that payments still reference;
// there is no cascade on this API.
func (s *rentalService) DeleteRental(ctx context.Context, id int32) error {
	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return domain.NewBusinessError(err, "rental", id, "")
	}

	s.locks.Lock(carKey(rental.CarID))
	defer s.locks.Unlock(carKey(rental.CarID))

	if _, err := s.rentalRepo.GetByID(ctx, id); err != nil {
		return domain.NewBusinessError(err, "rental", id, "")
	}
	payments, err := s.paymentRepo.ListByRental(ctx, id)
	if err != nil {
		return err
	}
	if len(payments) > 0 {
		return domain.NewBusinessError(domain.ErrInvalidState, "rental", id, "payments reference this rental")
	}

	if err := s.rentalRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.availability.RecomputeCarAvailability(ctx, rental.CarID)
}
