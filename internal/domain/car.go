package domain

import "time"

type Car struct {
	ID             int32  `json:"id"`
	LicensePlate   string `json:"license_plate"`
	Brand          string `json:"brand"`
	Model          string `json:"model"`
	Year           int32  `json:"year"`
	Category       string `json:"category"`
	DailyRateCents int64  `json:"daily_rate_cents"`
	// Available is a cached view derived from active rentals and open
	// maintenances. The rental and maintenance flows keep it in sync.
	Available bool      `json:"available"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// CarFilter narrows available-car listings. Zero values mean "no constraint".
type CarFilter struct {
	Brand             string
	Model             string
	MaxDailyRateCents int64
	MinYear           int32
	MaxYear           int32
}
