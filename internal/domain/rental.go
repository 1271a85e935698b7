package domain

import "time"

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCompleted RentalStatus = "completed"
	RentalStatusCancelled RentalStatus = "cancelled"
)

type Rental struct {
	ID         int32     `json:"id"`
	CarID      int32     `json:"car_id"`
	CustomerID int32     `json:"customer_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	// Price snapshot fields, captured from the car at rental creation time.
	// A later change to the car's daily rate never alters a stored rental.
	DailyRateCents  int64        `json:"daily_rate_cents"`
	TotalDays       int32        `json:"total_days"`
	DiscountPercent int32        `json:"discount_percent"`
	TotalValueCents int64        `json:"total_value_cents"`
	Status          RentalStatus `json:"status"`
	CreatedOn       time.Time    `json:"created_on"`
	UpdatedOn       time.Time    `json:"updated_on"`
}

// RentalFilter narrows rental listings.
type RentalFilter struct {
	CustomerID int32
	CarID      int32
	Status     RentalStatus
}
