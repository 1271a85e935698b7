package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"
)

type MaintenanceHandler struct {
	maintenanceService service.MaintenanceService
}

func NewMaintenanceHandler(maintenanceService service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

type scheduleMaintenanceRequest struct {
	CarID         int32  `json:"car_id"`
	Description   string `json:"description"`
	ScheduledDate string `json:"scheduled_date"`
	CostCents     int64  `json:"cost_cents"`
}

type completeMaintenanceRequest struct {
	CompletionDate string `json:"completion_date"`
}

func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req scheduleMaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: malformed request body", domain.ErrValidation))
		return
	}

	scheduledDate, err := parseDate("scheduled_date", req.ScheduledDate)
	if err != nil {
		writeError(w, err)
		return
	}
	if scheduledDate.IsZero() {
		writeError(w, fmt.Errorf("%w: scheduled_date is required", domain.ErrValidation))
		return
	}

	maintenance, err := h.maintenanceService.ScheduleMaintenance(r.Context(), req.CarID, req.Description, scheduledDate, req.CostCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, maintenance)
}

func (h *MaintenanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	maintenance, err := h.maintenanceService.GetMaintenance(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, maintenance)
}

func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if raw := q.Get("car_id"); raw != "" {
		carID, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || carID <= 0 {
			writeError(w, fmt.Errorf("%w: car_id must be a positive integer", domain.ErrValidation))
			return
		}

		status := domain.MaintenanceStatus(q.Get("status"))
		switch status {
		case "", domain.MaintenanceStatusScheduled, domain.MaintenanceStatusInProgress, domain.MaintenanceStatusCompleted:
		default:
			writeError(w, fmt.Errorf("%w: unknown maintenance status %q", domain.ErrValidation, status))
			return
		}

		maintenances, err := h.maintenanceService.ListMaintenancesByCar(r.Context(), int32(carID), status)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, maintenances)
		return
	}

	maintenances, err := h.maintenanceService.ListMaintenances(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, maintenances)
}

func (h *MaintenanceHandler) Start(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	maintenance, err := h.maintenanceService.StartMaintenance(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, maintenance)
}

func (h *MaintenanceHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req completeMaintenanceRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, fmt.Errorf("%w: malformed request body", domain.ErrValidation))
			return
		}
	}

	completionDate, err := parseDate("completion_date", req.CompletionDate)
	if err != nil {
		writeError(w, err)
		return
	}

	maintenance, err := h.maintenanceService.CompleteMaintenance(r.Context(), id, completionDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, maintenance)
}

func (h *MaintenanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.maintenanceService.DeleteMaintenance(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
