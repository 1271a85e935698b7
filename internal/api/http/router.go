// Package http exposes the REST surface of the rental service.
package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"carrental-backend/internal/security"
	"carrental-backend/internal/service"
)

// Services groups everything the router needs to wire handlers.
type Services struct {
	Auth        service.AuthService
	Car         service.CarService
	Customer    service.CustomerService
	Rental      service.RentalService
	Payment     service.PaymentService
	Maintenance service.MaintenanceService
	Tokens      security.TokenManager
}

// NewRouter builds the full route table. Login and health are open, every
// other /api/v1 route requires a valid bearer token.
func NewRouter(svcs Services) *mux.Router {
	router := mux.NewRouter()
	router.Use(LoggingMiddleware)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	authHandler := NewAuthHandler(svcs.Auth)
	router.HandleFunc("/api/v1/auth/login", authHandler.Login).Methods("POST")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(svcs.Tokens))

	carHandler := NewCarHandler(svcs.Car)
	api.HandleFunc("/cars", carHandler.Create).Methods("POST")
	api.HandleFunc("/cars", carHandler.List).Methods("GET")
	api.HandleFunc("/cars/available", carHandler.ListAvailable).Methods("GET")
	api.HandleFunc("/cars/{id:[0-9]+}", carHandler.Get).Methods("GET")
	api.HandleFunc("/cars/{id:[0-9]+}", carHandler.Update).Methods("PUT")
	api.HandleFunc("/cars/{id:[0-9]+}", carHandler.Delete).Methods("DELETE")

	customerHandler := NewCustomerHandler(svcs.Customer)
	api.HandleFunc("/customers", customerHandler.Create).Methods("POST")
	api.HandleFunc("/customers", customerHandler.List).Methods("GET")
	api.HandleFunc("/customers/{id:[0-9]+}", customerHandler.Get).Methods("GET")
	api.HandleFunc("/customers/{id:[0-9]+}", customerHandler.Update).Methods("PUT")
	api.HandleFunc("/customers/{id:[0-9]+}", customerHandler.Delete).Methods("DELETE")

	rentalHandler := NewRentalHandler(svcs.Rental)
	api.HandleFunc("/rentals", rentalHandler.Create).Methods("POST")
	api.HandleFunc("/rentals", rentalHandler.List).Methods("GET")
	api.HandleFunc("/rentals/{id:[0-9]+}", rentalHandler.Get).Methods("GET")
	api.HandleFunc("/rentals/{id:[0-9]+}", rentalHandler.UpdateDates).Methods("PUT")
	api.HandleFunc("/rentals/{id:[0-9]+}", rentalHandler.Delete).Methods("DELETE")
	api.HandleFunc("/rentals/{id:[0-9]+}/complete", rentalHandler.Complete).Methods("POST")
	api.HandleFunc("/rentals/{id:[0-9]+}/cancel", rentalHandler.Cancel).Methods("POST")

	paymentHandler := NewPaymentHandler(svcs.Payment)
	api.HandleFunc("/payments", paymentHandler.Create).Methods("POST")
	api.HandleFunc("/payments", paymentHandler.List).Methods("GET")
	api.HandleFunc("/payments/{id:[0-9]+}", paymentHandler.Get).Methods("GET")
	api.HandleFunc("/payments/{id:[0-9]+}", paymentHandler.Delete).Methods("DELETE")
	api.HandleFunc("/payments/{id:[0-9]+}/process", paymentHandler.Process).Methods("POST")
	api.HandleFunc("/payments/{id:[0-9]+}/cancel", paymentHandler.Cancel).Methods("POST")
	api.HandleFunc("/rentals/{id:[0-9]+}/payments", paymentHandler.ListByRental).Methods("GET")

	maintenanceHandler := NewMaintenanceHandler(svcs.Maintenance)
	api.HandleFunc("/maintenances", maintenanceHandler.Create).Methods("POST")
	api.HandleFunc("/maintenances", maintenanceHandler.List).Methods("GET")
	api.HandleFunc("/maintenances/{id:[0-9]+}", maintenanceHandler.Get).Methods("GET")
	api.HandleFunc("/maintenances/{id:[0-9]+}", maintenanceHandler.Delete).Methods("DELETE")
	api.HandleFunc("/maintenances/{id:[0-9]+}/start", maintenanceHandler.Start).Methods("POST")
	api.HandleFunc("/maintenances/{id:[0-9]+}/complete", maintenanceHandler.Complete).Methods("POST")

	return router
}
