package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"
)

type RentalHandler struct {
	rentalService service.RentalService
}

func NewRentalHandler(rentalService service.RentalService) *RentalHandler {
	return &RentalHandler{rentalService: rentalService}
}

type createRentalRequest struct {
	CarID      int32  `json:"car_id"`
	CustomerID int32  `json:"customer_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

type updateRentalDatesRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: malformed request body", domain.ErrValidation))
		return
	}

	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		writeError(w, err)
		return
	}

	rental, err := h.rentalService.CreateRental(r.Context(), req.CarID, req.CustomerID, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	rental, err := h.rentalService.GetRental(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseRentalFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}

	rentals, err := h.rentalService.ListRentals(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) UpdateDates(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req updateRentalDatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: malformed request body", domain.ErrValidation))
		return
	}

	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		writeError(w, err)
		return
	}

	rental, err := h.rentalService.UpdateRentalDates(r.Context(), id, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	rental, err := h.rentalService.CompleteRental(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	rental, err := h.rentalService.CancelRental(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.rentalService.DeleteRental(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func parseRentalFilter(r *http.Request) (domain.RentalFilter, error) {
	q := r.URL.Query()
	var filter domain.RentalFilter

	if raw := q.Get("customer_id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || v <= 0 {
			return filter, fmt.Errorf("%w: customer_id must be a positive integer", domain.ErrValidation)
		}
		filter.CustomerID = int32(v)
	}
	if raw := q.Get("car_id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || v <= 0 {
			return filter, fmt.Errorf("%w: car_id must be a positive integer", domain.ErrValidation)
		}
		filter.CarID = int32(v)
	}
	if raw := q.Get("status"); raw != "" {
		switch domain.RentalStatus(raw) {
		case domain.RentalStatusActive, domain.RentalStatusCompleted, domain.RentalStatusCancelled:
			filter.Status = domain.RentalStatus(raw)
		default:
			return filter, fmt.Errorf("%w: unknown rental status %q", domain.ErrValidation, raw)
		}
	}
	return filter, nil
}
