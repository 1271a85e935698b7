package service

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"
)

type maintenanceService struct {
	maintenanceRepo repository.MaintenanceRepository
	carRepo         repository.CarRepository
	availability    *availabilityResolver
	locks           *KeyedMutex
}

func NewMaintenanceService(
	maintenanceRepo repository.MaintenanceRepository,
	carRepo repository.CarRepository,
	rentalRepo repository.RentalRepository,
	locks *KeyedMutex,
) MaintenanceService {
	return &maintenanceService{
		maintenanceRepo: maintenanceRepo,
		carRepo:         carRepo,
		availability:    newAvailabilityResolver(carRepo, rentalRepo, maintenanceRepo),
		locks:           locks,
	}
}

// ScheduleMaintenance creates a maintenance in scheduled state. Scheduling
// alone takes the car off the fleet, not just the in_progress hop.
func (s *maintenanceService) ScheduleMaintenance(ctx context.Context, carID int32, description string, scheduledDate time.Time, costCents int64) (*domain.Maintenance, error) {
	log := logger.WithService("maintenance")
	log.Info("scheduling maintenance", "car_id", carID)

	if err := utils.ValidatePositiveCents(costCents, "maintenance cost"); err != nil {
		return nil, err
	}
	if _, err := s.carRepo.GetByID(ctx, carID); err != nil {
		return nil, domain.NewBusinessError(err, "car", carID, "")
	}

	maintenance := &domain.Maintenance{
		CarID:         carID,
		Description:   description,
		ScheduledDate: scheduledDate,
		CostCents:     costCents,
		Status:        domain.MaintenanceStatusScheduled,
	}

	s.locks.Lock(carKey(carID))
	defer s.locks.Unlock(carKey(carID))

	if err := s.maintenanceRepo.Create(ctx, maintenance); err != nil {
		return nil, err
	}
	if err := s.carRepo.UpdateAvailability(ctx, carID, false); err != nil {
		return nil, err
	}

	log.Info("maintenance scheduled", "maintenance_id", maintenance.ID)
	return maintenance, nil
}

func (s *maintenanceService) GetMaintenance(ctx context.Context, id int32) (*domain.Maintenance, error) {
	return s.maintenanceRepo.GetByID(ctx, id)
}

func (s *maintenanceService) ListMaintenances(ctx context.Context) ([]domain.Maintenance, error) {
	return s.maintenanceRepo.List(ctx)
}

func (s *maintenanceService) ListMaintenancesByCar(ctx context.Context, carID int32, status domain.MaintenanceStatus) ([]domain.Maintenance, error) {
	return s.maintenanceRepo.ListByCar(ctx, carID, status)
}

// StartMaintenance moves scheduled work to in_progress. The hop is optional:
// completing straight from scheduled is allowed, only completed is terminal.
func (s *maintenanceService) StartMaintenance(ctx context.Context, id int32) (*domain.Maintenance, error) {
	maintenance, err := s.maintenanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewBusinessError(err, "maintenance", id, "")
	}

	s.locks.Lock(carKey(maintenance.CarID))
	defer s.locks.Unlock(carKey(maintenance.CarID))

	// Re-read under the lock so a racing completion cannot be overwritten.
	maintenance, err = s.maintenanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewBusinessError(err, "maintenance", id, "")
	}
	if maintenance.Status == domain.MaintenanceStatusCompleted {
		return nil, domain.NewBusinessError(domain.ErrInvalidState, "maintenance", id, "maintenance already completed")
	}

	maintenance.Status = domain.MaintenanceStatusInProgress
	if err := s.maintenanceRepo.Update(ctx, maintenance); err != nil {
		return nil, err
	}
	logger.Info("maintenance started", "maintenance_id", id)
	return maintenance, nil
}

func (s *maintenanceService) CompleteMaintenance(ctx context.Context, id int32, completionDate time.Time) (*domain.Maintenance, error) {
	maintenance, err := s.maintenanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewBusinessError(err, "maintenance", id, "")
	}

	s.locks.Lock(carKey(maintenance.CarID))
	defer s.locks.Unlock(carKey(maintenance.CarID))

	// Completed is terminal; check it under the lock.
	maintenance, err = s.maintenanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewBusinessError(err, "maintenance", id, "")
	}
	if maintenance.Status == domain.MaintenanceStatusCompleted {
		return nil, domain.NewBusinessError(domain.ErrInvalidState, "maintenance", id, "maintenance already completed")
	}

	if completionDate.IsZero() {
		completionDate = time.Now()
	}

	if err := s.maintenanceRepo.Complete(ctx, id, completionDate); err != nil {
		return nil, err
	}
	// The car comes back only if nothing else blocks it: another open
	// maintenance or an active rental keeps it off the fleet.
	if err := s.availability.RecomputeCarAvailability(ctx, maintenance.CarID); err != nil {
		return nil, err
	}

	logger.Info("maintenance completed", "maintenance_id", id, "car_id", maintenance.CarID)
	maintenance.Status = domain.MaintenanceStatusCompleted
	maintenance.CompletionDate = &completionDate
	return maintenance, nil
}

func (s *maintenanceService) DeleteMaintenance(ctx context.Context, id int32) error {
	maintenance, err := s.maintenanceRepo.GetByID(ctx, id)
	if err != nil {
		return domain.NewBusinessError(err, "maintenance", id, "")
	}

	s.locks.Lock(carKey(maintenance.CarID))
	defer s.locks.Unlock(carKey(maintenance.CarID))

	if err := s.maintenanceRepo.Delete(ctx, id); err != nil {
		return err
	}
	// Removing a blocking maintenance may free the car.
	return s.availability.RecomputeCarAvailability(ctx, maintenance.CarID)
}
