package service

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

// availabilityResolver answers "can this car be rented for this window" and
// owns the recomputation of the car's cached available flag.
type availabilityResolver struct {
	carRepo         repository.CarRepository
	rentalRepo      repository.RentalRepository
	maintenanceRepo repository.MaintenanceRepository
}

func newAvailabilityResolver(
	carRepo repository.CarRepository,
	rentalRepo repository.RentalRepository,
	maintenanceRepo repository.MaintenanceRepository,
) *availabilityResolver {
	return &availabilityResolver{
		carRepo:         carRepo,
		rentalRepo:      rentalRepo,
		maintenanceRepo: maintenanceRepo,
	}
}

// IsCarAvailable reports whether car can be rented over [startDate, endDate].
// excludeRentalID skips one rental from the active-rental check, so a rental
// being re-dated does not collide with itself. The returned reason is empty
// when the car is available.
//
// Callers must hold the car's lock: the answer is only as good as the moment
// it is computed.
func (a *availabilityResolver) IsCarAvailable(ctx context.Context, car *domain.Car, startDate, endDate time.Time, excludeRentalID int32) (bool, string, error) {
	if !car.Available {
		return false, "car is marked unavailable", nil
	}

	blocking, err := a.maintenanceRepo.ListBlockingByCar(ctx, car.ID)
	if err != nil {
		return false, "", err
	}
	for _, m := range blocking {
		if m.Status == domain.MaintenanceStatusInProgress {
			return false, "car has maintenance in progress", nil
		}
		// Scheduled maintenance blocks the rental window when its date
		// falls inside it.
		if m.Status == domain.MaintenanceStatusScheduled && withinWindow(m.ScheduledDate, startDate, endDate) {
			return false, "car has maintenance scheduled in this period", nil
		}
	}

	// One active rental per car at a time, overlapping or not. The overlap
	// guard alone would admit a second non-overlapping active rental, which
	// the single-rental business model does not allow.
	active, err := a.rentalRepo.ListByCar(ctx, car.ID, domain.RentalStatusActive)
	if err != nil {
		return false, "", err
	}
	for _, rt := range active {
		if rt.ID == excludeRentalID {
			continue
		}
		return false, "car already has an active rental", nil
	}

	return true, "", nil
}

// RecomputeCarAvailability re-derives the car's cached flag from rental and
// maintenance state. Central recomputation point: every mutating lifecycle
// operation ends here, never with an ad-hoc flag toggle.
func (a *availabilityResolver) RecomputeCarAvailability(ctx context.Context, carID int32) error {
	active, err := a.rentalRepo.ListByCar(ctx, carID, domain.RentalStatusActive)
	if err != nil {
		return err
	}
	blocking, err := a.maintenanceRepo.ListBlockingByCar(ctx, carID)
	if err != nil {
		return err
	}
	available := len(active) == 0 && len(blocking) == 0
	return a.carRepo.UpdateAvailability(ctx, carID, available)
}

// withinWindow reports whether day falls inside [startDate, endDate],
// inclusive on both ends, comparing calendar days.
func withinWindow(day, startDate, endDate time.Time) bool {
	d := toDay(day)
	return !d.Before(toDay(startDate)) && !d.After(toDay(endDate))
}

func toDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
