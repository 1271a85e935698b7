package domain

import "time"

type MaintenanceStatus string

const (
	MaintenanceStatusScheduled  MaintenanceStatus = "scheduled"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "completed"
)

type Maintenance struct {
	ID             int32             `json:"id"`
	CarID          int32             `json:"car_id"`
	Description    string            `json:"description"`
	ScheduledDate  time.Time         `json:"scheduled_date"`
	CompletionDate *time.Time        `json:"completion_date,omitempty"`
	CostCents      int64             `json:"cost_cents"`
	Status         MaintenanceStatus `json:"status"`
	CreatedOn      time.Time         `json:"created_on"`
	UpdatedOn      time.Time         `json:"updated_on"`
}

// Blocking reports whether this maintenance keeps its car off the fleet.
// Anything not completed blocks, scheduling alone included.
func (m *Maintenance) Blocking() bool {
	return m.Status != MaintenanceStatusCompleted
}
