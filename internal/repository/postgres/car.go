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

type carRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) repository.CarRepository {
	return &carRepository{db: db}
}

const carColumns = `id, license_plate, brand, model, year, category, daily_rate_cents, available, created_on, updated_on`

func (r *carRepository) Create(ctx context.Context, c *domain.Car) error {
	query := `INSERT INTO cars (license_plate, brand, model, year, category, daily_rate_cents, available, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, c.LicensePlate, c.Brand, c.Model, c.Year, c.Category, c.DailyRateCents, c.Available, now, now).Scan(&c.ID)
	return classify(err)
}

func (r *carRepository) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	c := &domain.Car{}
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.LicensePlate, &c.Brand, &c.Model, &c.Year, &c.Category, &c.DailyRateCents, &c.Available, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, classify(err)
	}
	return c, nil
}

func (r *carRepository) GetByLicensePlate(ctx context.Context, plate string) (*domain.Car, error) {
	c := &domain.Car{}
	query := `SELECT ` + carColumns + ` FROM cars WHERE license_plate = $1`
	err := r.db.QueryRowContext(ctx, query, plate).Scan(&c.ID, &c.LicensePlate, &c.Brand, &c.Model, &c.Year, &c.Category, &c.DailyRateCents, &c.Available, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, classify(err)
	}
	return c, nil
}

func (r *carRepository) List(ctx context.Context) ([]domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars ORDER BY id`
	return r.queryCars(ctx, query)
}

func (r *carRepository) ListAvailable(ctx context.Context, filter domain.CarFilter) ([]domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE available = TRUE`
	args := []interface{}{}
	argIdx := 1

	if filter.Brand != "" {
		query += fmt.Sprintf(" AND brand ILIKE $%d", argIdx)
		args = append(args, filter.Brand)
		argIdx++
	}
	if filter.Model != "" {
		query += fmt.Sprintf(" AND model ILIKE $%d", argIdx)
		args = append(args, filter.Model)
		argIdx++
	}
	if filter.MaxDailyRateCents > 0 {
		query += fmt.Sprintf(" AND daily_rate_cents <= $%d", argIdx)
		args = append(args, filter.MaxDailyRateCents)
		argIdx++
	}
	if filter.MinYear > 0 {
		query += fmt.Sprintf(" AND year >= $%d", argIdx)
		args = append(args, filter.MinYear)
		argIdx++
	}
	if filter.MaxYear > 0 {
		query += fmt.Sprintf(" AND year <= $%d", argIdx)
		args = append(args, filter.MaxYear)
		argIdx++
	}

	query += " ORDER BY id"
	logger.DatabaseCall("SELECT", "cars", "filters", len(args))
	return r.queryCars(ctx, query, args...)
}

func (r *carRepository) Update(ctx context.Context, c *domain.Car) error {
	query := `UPDATE cars SET license_plate=$1, brand=$2, model=$3, year=$4, category=$5, daily_rate_cents=$6, available=$7, updated_on=$8 WHERE id=$9`
	res, err := r.db.ExecContext(ctx, query, c.LicensePlate, c.Brand, c.Model, c.Year, c.Category, c.DailyRateCents, c.Available, time.Now(), c.ID)
	if err != nil {
		return classify(err)
	}
	return requireRow(res)
}

func (r *carRepository) UpdateAvailability(ctx context.Context, id int32, available bool) error {
	query := `UPDATE cars SET available=$1, updated_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, available, time.Now(), id)
	if err != nil {
		return classify(err)
	}
	return requireRow(res)
}

func (r *carRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return classify(err)
	}
	return requireRow(res)
}

func (r *carRepository) queryCars(ctx context.Context, query string, args ...interface{}) ([]domain.Car, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		var c domain.Car
		if err := rows.Scan(&c.ID, &c.LicensePlate, &c.Brand, &c.Model, &c.Year, &c.Category, &c.DailyRateCents, &c.Available, &c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, err
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}

// requireRow turns an update/delete that matched nothing into ErrNotFound.
func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
