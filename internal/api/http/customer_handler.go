package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"
)

type CustomerHandler struct {
	customerService service.CustomerService
}

func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

type customerRequest struct {
	Name    string `json:"name"`
	CPF     string `json:"cpf"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: malformed request body", domain.ErrValidation))
		return
	}

	customer := &domain.Customer{
		Name:    req.Name,
		CPF:     req.CPF,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}

	created, err := h.customerService.CreateCustomer(r.Context(), customer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	customer, err := h.customerService.GetCustomer(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	if cpf := r.URL.Query().Get("cpf"); cpf != "" {
		customer, err := h.customerService.GetCustomerByCPF(r.Context(), cpf)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, []domain.Customer{*customer})
		return
	}

	customers, err := h.customerService.ListCustomers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: malformed request body", domain.ErrValidation))
		return
	}

	customer := &domain.Customer{
		ID:      id,
		Name:    req.Name,
		CPF:     req.CPF,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}

	updated, err := h.customerService.UpdateCustomer(r.Context(), customer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.customerService.DeleteCustomer(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
