package service

import (
	"context"
	"errors"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"
)

type customerService struct {
	customerRepo repository.CustomerRepository
	rentalRepo   repository.RentalRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository, rentalRepo repository.RentalRepository) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		rentalRepo:   rentalRepo,
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	log := logger.WithService("customer")
	log.Info("creating customer", "email", customer.Email)

	if err := s.validateCustomer(customer); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, customer, 0); err != nil {
		return nil, err
	}

	customer.HasPendingPayment = false
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	log.Info("customer created", "customer_id", customer.ID)
	return customer, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id int32) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewBusinessError(err, "customer", id, "")
	}
	return customer, nil
}

func (s *customerService) GetCustomerByCPF(ctx context.Context, cpf string) (*domain.Customer, error) {
	if err := utils.ValidateCPF(cpf); err != nil {
		return nil, err
	}
	return s.customerRepo.GetByCPF(ctx, cpf)
}

func (s *customerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.customerRepo.List(ctx)
}

func (s *customerService) UpdateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	current, err := s.customerRepo.GetByID(ctx, customer.ID)
	if err != nil {
		return nil, domain.NewBusinessError(err, "customer", customer.ID, "")
	}

	if err := s.validateCustomer(customer); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, customer, current.ID); err != nil {
		return nil, err
	}

	// The delinquency flag is derived from payments, edits never touch it.
	customer.HasPendingPayment = current.HasPendingPayment
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, id int32) error {
	if _, err := s.customerRepo.GetByID(ctx, id); err != nil {
		return domain.NewBusinessError(err, "customer", id, "")
	}

	rentals, err := s.rentalRepo.ListByCustomer(ctx, id)
	if err != nil {
		return err
	}
	for _, rental := range rentals {
		if rental.Status == domain.RentalStatusActive {
			return domain.NewBusinessError(domain.ErrInvalidState, "customer", id, "customer has an active rental")
		}
	}

	logger.Info("deleting customer", "customer_id", id)
	return s.customerRepo.Delete(ctx, id)
}

func (s *customerService) validateCustomer(customer *domain.Customer) error {
	if err := utils.ValidateCPF(customer.CPF); err != nil {
		return err
	}
	if err := utils.ValidateEmail(customer.Email); err != nil {
		return err
	}
	return utils.ValidatePhone(customer.Phone)
}

// checkUnique verifies CPF and email are not taken by another customer.
// selfID is the customer's own id on update, zero on create.
func (s *customerService) checkUnique(ctx context.Context, customer *domain.Customer, selfID int32) error {
	if existing, err := s.customerRepo.GetByCPF(ctx, customer.CPF); err == nil && existing != nil && existing.ID != selfID {
		return domain.NewBusinessError(domain.ErrDuplicateKey, "customer", existing.ID, "cpf already registered")
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	if existing, err := s.customerRepo.GetByEmail(ctx, customer.Email); err == nil && existing != nil && existing.ID != selfID {
		return domain.NewBusinessError(domain.ErrDuplicateKey, "customer", existing.ID, "email already registered")
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}
