package postgres

import (
	"context"
	"database/sql"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, name, cpf, email, phone, address, has_pending_payment, created_on, updated_on`

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (name, cpf, email, phone, address, has_pending_payment, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, c.Name, c.CPF, c.Email, c.Phone, c.Address, c.HasPendingPayment, now, now).Scan(&c.ID)
	return classify(err)
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *customerRepository) GetByCPF(ctx context.Context, cpf string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE cpf = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, cpf))
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	return r.queryCustomers(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY id`)
}

func (r *customerRepository) ListWithPendingPayments(ctx context.Context) ([]domain.Customer, error) {
	return r.queryCustomers(ctx, `SELECT `+customerColumns+` FROM customers WHERE has_pending_payment = TRUE ORDER BY id`)
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET name=$1, cpf=$2, email=$3, phone=$4, address=$5, has_pending_payment=$6, updated_on=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.CPF, c.Email, c.Phone, c.Address, c.HasPendingPayment, time.Now(), c.ID)
	if err != nil {
		return classify(err)
	}
	return requireRow(res)
}

func (r *customerRepository) UpdatePendingPayment(ctx context.Context, id int32, pending bool) error {
	query := `UPDATE customers SET has_pending_payment=$1, updated_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, pending, time.Now(), id)
	if err != nil {
		return classify(err)
	}
	return requireRow(res)
}

func (r *customerRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return classify(err)
	}
	return requireRow(res)
}

func (r *customerRepository) scanOne(row *sql.Row) (*domain.Customer, error) {
	c := &domain.Customer{}
	err := row.Scan(&c.ID, &c.Name, &c.CPF, &c.Email, &c.Phone, &c.Address, &c.HasPendingPayment, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, classify(err)
	}
	return c, nil
}

func (r *customerRepository) queryCustomers(ctx context.Context, query string, args ...interface{}) ([]domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.CPF, &c.Email, &c.Phone, &c.Address, &c.HasPendingPayment, &c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}
