package postgres

import (
	"context"
	"database/sql"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type maintenanceRepository struct {
	db *sql.DB
}

func NewMaintenanceRepository(db *sql.DB) repository.MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

const maintenanceColumns = `id, car_id, description, scheduled_date, completion_date, cost_cents, status, created_on, updated_on`

func (r *maintenanceRepository) Create(ctx context.Context, m *domain.Maintenance) error {
	query := `INSERT INTO maintenances (car_id, description, scheduled_date, completion_date, cost_cents, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, m.CarID, m.Description, m.ScheduledDate, m.CompletionDate, m.CostCents, m.Status, now, now).Scan(&m.ID)
	return classify(err)
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id int32) (*domain.Maintenance, error) {
	m := &domain.Maintenance{}
	query := `SELECT ` + maintenanceColumns + ` FROM maintenances WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.CarID, &m.Description, &m.ScheduledDate, &m.CompletionDate, &m.CostCents, &m.Status, &m.CreatedOn, &m.UpdatedOn)
	if err != nil {
		return nil, classify(err)
	}
	return m, nil
}

func (r *maintenanceRepository) List(ctx context.Context) ([]domain.Maintenance, error) {
	return r.queryMaintenances(ctx, `SELECT `+maintenanceColumns+` FROM maintenances ORDER BY scheduled_date DESC`)
}

func (r *maintenanceRepository) ListByCar(ctx context.Context, carID int32, status domain.MaintenanceStatus) ([]domain.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenances WHERE car_id = $1`
	args := []interface{}{carID}
	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
	}
	query += " ORDER BY scheduled_date"
	return r.queryMaintenances(ctx, query, args...)
}

func (r *maintenanceRepository) ListBlockingByCar(ctx context.Context, carID int32) ([]domain.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenances WHERE car_id = $1 AND status <> $2 ORDER BY scheduled_date`
	return r.queryMaintenances(ctx, query, carID, domain.MaintenanceStatusCompleted)
}

func (r *maintenanceRepository) Update(ctx context.Context, m *domain.Maintenance) error {
	query := `UPDATE maintenances SET description=$1, scheduled_date=$2, completion_date=$3, cost_cents=$4, status=$5, updated_on=$6 WHERE id=$7`
	res, err := r.db.ExecContext(ctx, query, m.Description, m.ScheduledDate, m.CompletionDate, m.CostCents, m.Status, time.Now(), m.ID)
	if err != nil {
		return classify(err)
	}
	return requireRow(res)
}

func (r *maintenanceRepository) Complete(ctx context.Context, id int32, completionDate time.Time) error {
	query := `UPDATE maintenances SET status=$1, completion_date=$2, updated_on=$3 WHERE id=$4`
	res, err := r.db.ExecContext(ctx, query, domain.MaintenanceStatusCompleted, completionDate, time.Now(), id)
	if err != nil {
		return classify(err)
	}
	return requireRow(res)
}

func (r *maintenanceRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM maintenances WHERE id = $1`, id)
	if err != nil {
		return classify(err)
	}
	return requireRow(res)
}

func (r *maintenanceRepository) queryMaintenances(ctx context.Context, query string, args ...interface{}) ([]domain.Maintenance, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var maintenances []domain.Maintenance
	for rows.Next() {
		var m domain.Maintenance
		if err := rows.Scan(&m.ID, &m.CarID, &m.Description, &m.ScheduledDate, &m.CompletionDate, &m.CostCents, &m.Status, &m.CreatedOn, &m.UpdatedOn); err != nil {
			return nil, err
		}
		maintenances = append(maintenances, m)
	}
	return maintenances, rows.Err()
}
