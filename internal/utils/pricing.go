package utils

import (
	"time"

	"carrental-backend/internal/domain"
)

// RentalQuote is the priced breakdown for a rental period.
type RentalQuote struct {
	TotalDays       int32
	DiscountPercent int32
	TotalValueCents int64
}

// RentalDays returns the billable duration of a rental in whole days.
// The count is end - start on the calendar, so a rental spanning N calendar
// days yields N. Periods shorter than one day are rejected.
func RentalDays(startDate, endDate time.Time) (int32, error) {
	start := truncateToDay(startDate)
	end := truncateToDay(endDate)

	days := int32(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return 0, domain.ErrInvalidRange
	}
	return days, nil
}

// DiscountPercentFor returns the progressive discount tier for a duration:
//
//	 1-7  days: 0%
//	 8-14 days: 10%
//	15-30 days: 15%
//	  31+ days: 20%
func DiscountPercentFor(totalDays int32) int32 {
	switch {
	case totalDays > 30:
		return 20
	case totalDays >= 15:
		return 15
	case totalDays >= 8:
		return 10
	default:
		return 0
	}
}

// CalculateRentalQuote prices a rental period against a daily rate.
// total = days * rate * (1 - discount), rounded half-up to whole cents.
// Pure function: no side effects, deterministic.
func CalculateRentalQuote(dailyRateCents int64, startDate, endDate time.Time) (RentalQuote, error) {
	days, err := RentalDays(startDate, endDate)
	if err != nil {
		return RentalQuote{}, err
	}

	discount := DiscountPercentFor(days)
	gross := int64(days) * dailyRateCents

	// Integer half-up rounding: gross*(100-d) is in hundredths of a cent,
	// so adding 50 before dividing rounds 0.5 cents and above up.
	total := (gross*int64(100-discount) + 50) / 100

	return RentalQuote{
		TotalDays:       days,
		DiscountPercent: discount,
		TotalValueCents: total,
	}, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
