package service

import (
	"context"
	"errors"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"
)

type carService struct {
	carRepo         repository.CarRepository
	rentalRepo      repository.RentalRepository
	maintenanceRepo repository.MaintenanceRepository
}

func NewCarService(carRepo repository.CarRepository, rentalRepo repository.RentalRepository, maintenanceRepo repository.MaintenanceRepository) CarService {
	return &carService{
		carRepo:         carRepo,
		rentalRepo:      rentalRepo,
		maintenanceRepo: maintenanceRepo,
	}
}

func (s *carService) CreateCar(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	log := logger.WithService("car")
	log.Info("creating car", "license_plate", car.LicensePlate)

	if err := s.validateCar(car); err != nil {
		return nil, err
	}
	car.LicensePlate = utils.NormalizeLicensePlate(car.LicensePlate)

	if existing, err := s.carRepo.GetByLicensePlate(ctx, car.LicensePlate); err == nil && existing != nil {
		return nil, domain.NewBusinessError(domain.ErrDuplicateKey, "car", existing.ID, "license plate already registered")
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	// New cars join the fleet available until a rental or maintenance says otherwise.
	car.Available = true
	if err := s.carRepo.Create(ctx, car); err != nil {
		return nil, err
	}

	log.Info("car created", "car_id", car.ID)
	return car, nil
}

func (s *carService) GetCar(ctx context.Context, id int32) (*domain.Car, error) {
	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewBusinessError(err, "car", id, "")
	}
	return car, nil
}

func (s *carService) GetCarByLicensePlate(ctx context.Context, plate string) (*domain.Car, error) {
	if err := utils.ValidateLicensePlate(plate); err != nil {
		return nil, err
	}
	return s.carRepo.GetByLicensePlate(ctx, utils.NormalizeLicensePlate(plate))
}

func (s *carService) ListCars(ctx context.Context) ([]domain.Car, error) {
	return s.carRepo.List(ctx)
}

func (s *carService) ListAvailableCars(ctx context.Context, filter domain.CarFilter) ([]domain.Car, error) {
	return s.carRepo.ListAvailable(ctx, filter)
}

func (s *carService) UpdateCar(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	current, err := s.carRepo.GetByID(ctx, car.ID)
	if err != nil {
		return nil, domain.NewBusinessError(err, "car", car.ID, "")
	}

	if err := s.validateCar(car); err != nil {
		return nil, err
	}
	car.LicensePlate = utils.NormalizeLicensePlate(car.LicensePlate)

	if car.LicensePlate != current.LicensePlate {
		if existing, err := s.carRepo.GetByLicensePlate(ctx, car.LicensePlate); err == nil && existing != nil {
			return nil, domain.NewBusinessError(domain.ErrDuplicateKey, "car", existing.ID, "license plate already registered")
		} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	// Availability is owned by the rental and maintenance flows, not by edits.
	car.Available = current.Available
	if err := s.carRepo.Update(ctx, car); err != nil {
		return nil, err
	}
	return car, nil
}

func (s *carService) DeleteCar(ctx context.Context, id int32) error {
	if _, err := s.carRepo.GetByID(ctx, id); err != nil {
		return domain.NewBusinessError(err, "car", id, "")
	}

	active, err := s.rentalRepo.ListByCar(ctx, id, domain.RentalStatusActive)
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return domain.NewBusinessError(domain.ErrInvalidState, "car", id, "car has an active rental")
	}

	blocking, err := s.maintenanceRepo.ListBlockingByCar(ctx, id)
	if err != nil {
		return err
	}
	if len(blocking) > 0 {
		return domain.NewBusinessError(domain.ErrInvalidState, "car", id, "car has open maintenance")
	}

	logger.Info("deleting car", "car_id", id)
	return s.carRepo.Delete(ctx, id)
}

func (s *carService) validateCar(car *domain.Car) error {
	if err := utils.ValidateLicensePlate(car.LicensePlate); err != nil {
		return err
	}
	if err := utils.ValidateYear(car.Year); err != nil {
		return err
	}
	return utils.ValidatePositiveCents(car.DailyRateCents, "daily rate")
}
