package postgres

import (
	"context"
	"database/sql"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, rental_id, amount_cents, payment_date, payment_method, status, receipt_number, created_on, updated_on`

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (rental_id, amount_cents, payment_date, payment_method, status, receipt_number, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, p.RentalID, p.AmountCents, p.PaymentDate, p.PaymentMethod, p.Status, p.ReceiptNumber, now, now).Scan(&p.ID)
	return classify(err)
}

func (r *paymentRepository) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	p := &domain.Payment{}
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.RentalID, &p.AmountCents, &p.PaymentDate, &p.PaymentMethod, &p.Status, &p.ReceiptNumber, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, classify(err)
	}
	return p, nil
}

func (r *paymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	return r.queryPayments(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY created_on DESC`)
}

func (r *paymentRepository) ListByRental(ctx context.Context, rentalID int32) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE rental_id = $1 ORDER BY created_on`
	return r.queryPayments(ctx, query, rentalID)
}

func (r *paymentRepository) ListPendingByRental(ctx context.Context, rentalID int32) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE rental_id = $1 AND status = $2 ORDER BY created_on`
	return r.queryPayments(ctx, query, rentalID, domain.PaymentStatusPending)
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, id int32, status domain.PaymentStatus) error {
	query := `UPDATE payments SET status=$1, updated_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return classify(err)
	}
	return requireRow(res)
}

func (r *paymentRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return classify(err)
	}
	return requireRow(res)
}

func (r *paymentRepository) queryPayments(ctx context.Context, query string, args ...interface{}) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.RentalID, &p.AmountCents, &p.PaymentDate, &p.PaymentMethod, &p.Status, &p.ReceiptNumber, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
