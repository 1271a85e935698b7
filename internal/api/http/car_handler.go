package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"
)

type CarHandler struct {
	carService service.CarService
}

func NewCarHandler(carService service.CarService) *CarHandler {
	return &CarHandler{carService: carService}
}

type carRequest struct {
	LicensePlate   string `json:"license_plate"`
	Brand          string `json:"brand"`
	Model          string `json:"model"`
	Year           int32  `json:"year"`
	Category       string `json:"category"`
	DailyRateCents int64  `json:"daily_rate_cents"`
}

func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req carRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: malformed request body", domain.ErrValidation))
		return
	}

	car := &domain.Car{
		LicensePlate:   req.LicensePlate,
		Brand:          req.Brand,
		Model:          req.Model,
		Year:           req.Year,
		Category:       req.Category,
		DailyRateCents: req.DailyRateCents,
	}

	created, err := h.carService.CreateCar(r.Context(), car)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *CarHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	car, err := h.carService.GetCar(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	if plate := r.URL.Query().Get("license_plate"); plate != "" {
		car, err := h.carService.GetCarByLicensePlate(r.Context(), plate)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, []domain.Car{*car})
		return
	}

	cars, err := h.carService.ListCars(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

func (h *CarHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	filter, err := parseCarFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}

	cars, err := h.carService.ListAvailableCars(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req carRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: malformed request body", domain.ErrValidation))
		return
	}

	car := &domain.Car{
		ID:             id,
		LicensePlate:   req.LicensePlate,
		Brand:          req.Brand,
		Model:          req.Model,
		Year:           req.Year,
		Category:       req.Category,
		DailyRateCents: req.DailyRateCents,
	}

	updated, err := h.carService.UpdateCar(r.Context(), car)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.carService.DeleteCar(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func parseCarFilter(r *http.Request) (domain.CarFilter, error) {
	q := r.URL.Query()
	filter := domain.CarFilter{
		Brand: q.Get("brand"),
		Model: q.Get("model"),
	}

	if raw := q.Get("max_daily_rate_cents"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			return filter, fmt.Errorf("%w: max_daily_rate_cents must be a positive integer", domain.ErrValidation)
		}
		filter.MaxDailyRateCents = v
	}
	if raw := q.Get("min_year"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return filter, fmt.Errorf("%w: min_year must be an integer", domain.ErrValidation)
		}
		filter.MinYear = int32(v)
	}
	if raw := q.Get("max_year"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return filter, fmt.Errorf("%w: max_year must be an integer", domain.ErrValidation)
		}
		filter.MaxYear = int32(v)
	}
	return filter, nil
}
