package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, car_id, customer_id, start_date, end_date, daily_rate_cents, total_days, discount_percent, total_value_cents, status, created_on, updated_on`

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (car_id, customer_id, start_date, end_date, daily_rate_cents, total_days, discount_percent, total_value_cents, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, rt.CarID, rt.CustomerID, rt.StartDate, rt.EndDate, rt.DailyRateCents, rt.TotalDays, rt.DiscountPercent, rt.TotalValueCents, rt.Status, now, now).Scan(&rt.ID)
	return classify(err)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rt.ID, &rt.CarID, &rt.CustomerID, &rt.StartDate, &rt.EndDate, &rt.DailyRateCents, &rt.TotalDays, &rt.DiscountPercent, &rt.TotalValueCents, &rt.Status, &rt.CreatedOn, &rt.UpdatedOn)
	if err != nil {
		return nil, classify(err)
	}
	return rt, nil
}

func (r *rentalRepository) List(ctx context.Context, filter domain.RentalFilter) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.CustomerID > 0 {
		query += fmt.Sprintf(" AND customer_id = $%d", argIdx)
		args = append(args, filter.CustomerID)
		argIdx++
	}
	if filter.CarID > 0 {
		query += fmt.Sprintf(" AND car_id = $%d", argIdx)
		args = append(args, filter.CarID)
		argIdx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}

	query += " ORDER BY created_on DESC"
	logger.DatabaseCall("SELECT", "rentals", "filters", len(args))
	return r.queryRentals(ctx, query, args...)
}

func (r *rentalRepository) ListByCar(ctx context.Context, carID int32, status domain.RentalStatus) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE car_id = $1`
	args := []interface{}{carID}
	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
	}
	query += " ORDER BY start_date"
	return r.queryRentals(ctx, query, args...)
}

func (r *rentalRepository) ListByCustomer(ctx context.Context, customerID int32) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE customer_id = $1 ORDER BY created_on DESC`
	return r.queryRentals(ctx, query, customerID)
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET start_date=$1, end_date=$2, total_days=$3, discount_percent=$4, total_value_cents=$5, status=$6, updated_on=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query, rt.StartDate, rt.EndDate, rt.TotalDays, rt.DiscountPercent, rt.TotalValueCents, rt.Status, time.Now(), rt.ID)
	if err != nil {
		return classify(err)
	}
	return requireRow(res)
}

func (r *rentalRepository) UpdateStatus(ctx context.Context, id int32, status domain.RentalStatus) error {
	query := `UPDATE rentals SET status=$1, updated_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return classify(err)
	}
	return requireRow(res)
}

func (r *rentalRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rentals WHERE id = $1`, id)
	if err != nil {
		return classify(err)
	}
	return requireRow(res)
}

func (r *rentalRepository) queryRentals(ctx context.Context, query string, args ...interface{}) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := rows.Scan(&rt.ID, &rt.CarID, &rt.CustomerID, &rt.StartDate, &rt.EndDate, &rt.DailyRateCents, &rt.TotalDays, &rt.DiscountPercent, &rt.TotalValueCents, &rt.Status, &rt.CreatedOn, &rt.UpdatedOn); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, rows.Err()
}
