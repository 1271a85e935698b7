package jobs

import (
	"context"
	"strconv"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
)

const jobTimeout = 5 * time.Minute

// ExportFleetReport writes the full fleet and rental lists to the export
// directory, JSON for rentals and CSV for cars.
func (jr *JobRunner) ExportFleetReport() {
	jr.runWithRecovery("ExportFleetReport", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		cars, err := jr.store.CarRepository.List(ctx)
		if err != nil {
			logger.Error("fleet report: failed to list cars", "error", err)
			return
		}

		header := []string{"id", "license_plate", "brand", "model", "year", "category", "daily_rate_cents", "available"}
		rows := make([][]string, 0, len(cars))
		for _, car := range cars {
			rows = append(rows, []string{
				strconv.FormatInt(int64(car.ID), 10),
				car.LicensePlate,
				car.Brand,
				car.Model,
				strconv.FormatInt(int64(car.Year), 10),
				car.Category,
				strconv.FormatInt(car.DailyRateCents, 10),
				strconv.FormatBool(car.Available),
			})
		}

		if len(rows) > 0 {
			path, err := jr.exporter.ExportCSV("fleet", header, rows)
			if err != nil {
				logger.Error("fleet report: csv export failed", "error", err)
			} else {
				logger.Info("fleet report written", "path", path, "cars", len(cars))
			}
		}

		rentals, err := jr.store.RentalRepository.List(ctx, domain.RentalFilter{})
		if err != nil {
			logger.Error("fleet report: failed to list rentals", "error", err)
			return
		}
		if len(rentals) == 0 {
			return
		}

		path, err := jr.exporter.ExportJSON("rentals", rentals)
		if err != nil {
			logger.Error("fleet report: json export failed", "error", err)
			return
		}
		logger.Info("rental report written", "path", path, "rentals", len(rentals))
	})
}

// SendPaymentReminders emails every customer flagged with pending payments
// the total amount still open on their rentals.
func (jr *JobRunner) SendPaymentReminders() {
	jr.runWithRecovery("SendPaymentReminders", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		customers, err := jr.store.CustomerRepository.ListWithPendingPayments(ctx)
		if err != nil {
			logger.Error("payment reminders: failed to list delinquent customers", "error", err)
			return
		}

		sent := 0
		for _, customer := range customers {
			total, err := jr.pendingTotal(ctx, customer.ID)
			if err != nil {
				logger.Error("payment reminders: failed to total pending payments", "customer_id", customer.ID, "error", err)
				continue
			}
			if total == 0 {
				continue
			}

			if err := jr.email.SendPaymentReminder(ctx, customer.Email, customer.Name, total); err != nil {
				logger.Error("payment reminders: send failed", "customer_id", customer.ID, "error", err)
				continue
			}
			sent++
		}

		logger.Info("payment reminders done", "customers", len(customers), "sent", sent)
	})
}

func (jr *JobRunner) pendingTotal(ctx context.Context, customerID int32) (int64, error) {
	rentals, err := jr.store.RentalRepository.ListByCustomer(ctx, customerID)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, rental := range rentals {
		pending, err := jr.store.PaymentRepository.ListPendingByRental(ctx, rental.ID)
		if err != nil {
			return 0, err
		}
		for _, payment := range pending {
			total += payment.AmountCents
		}
	}
	return total, nil
}
