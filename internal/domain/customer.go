package domain

import "time"

type Customer struct {
	ID      int32  `json:"id"`
	Name    string `json:"name"`
	CPF     string `json:"cpf"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	// HasPendingPayment is a cached view derived from pending payments on the
	// customer's rentals. The payment flow keeps it in sync; a set flag bars
	// new rentals.
	HasPendingPayment bool      `json:"has_pending_payment"`
	CreatedOn         time.Time `json:"created_on"`
	UpdatedOn         time.Time `json:"updated_on"`
}
