package service

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"

	"github.com/google/uuid"
)

type paymentService struct {
	paymentRepo  repository.PaymentRepository
	rentalRepo   repository.RentalRepository
	customerRepo repository.CustomerRepository
	locks        *KeyedMutex
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	rentalRepo repository.RentalRepository,
	customerRepo repository.CustomerRepository,
	locks *KeyedMutex,
) PaymentService {
	return &paymentService{
		paymentRepo:  paymentRepo,
		rentalRepo:   rentalRepo,
		customerRepo: customerRepo,
		locks:        locks,
	}
}

func (s *paymentService) CreatePayment(ctx context.Context, rentalID int32, amountCents int64, method domain.PaymentMethod, paymentDate time.Time) (*domain.Payment, error) {
	log := logger.WithService("payment")
	log.Info("creating payment", "rental_id", rentalID, "method", method)

	if !domain.ValidPaymentMethod(method) {
		return nil, domain.NewBusinessError(domain.ErrInvalidPaymentMethod, "payment", 0,
			"options: credit_card, debit_card, pix, cash")
	}
	if err := utils.ValidatePositiveCents(amountCents, "payment amount"); err != nil {
		return nil, err
	}

	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, domain.NewBusinessError(err, "rental", rentalID, "")
	}

	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	payment := &domain.Payment{
		RentalID:      rentalID,
		AmountCents:   amountCents,
		PaymentDate:   paymentDate,
		PaymentMethod: method,
		Status:        domain.PaymentStatusPending,
		ReceiptNumber: uuid.NewString(),
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	// A fresh pending payment makes its owner delinquent immediately.
	s.locks.Lock(customerKey(rental.CustomerID))
	defer s.locks.Unlock(customerKey(rental.CustomerID))
	if err := s.customerRepo.UpdatePendingPayment(ctx, rental.CustomerID, true); err != nil {
		return nil, err
	}

	log.Info("payment created", "payment_id", payment.ID, "receipt", payment.ReceiptNumber)
	return payment, nil
}

func (s *paymentService) GetPayment(ctx context.Context, id int32) (*domain.Payment, error) {
	return s.paymentRepo.GetByID(ctx, id)
}

func (s *paymentService) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	return s.paymentRepo.List(ctx)
}

func (s *paymentService) ListPaymentsByRental(ctx context.Context, rentalID int32) ([]domain.Payment, error) {
	return s.paymentRepo.ListByRental(ctx, rentalID)
}

func (s *paymentService) ProcessPayment(ctx context.Context, id int32) (*domain.Payment, error) {
	return s.settlePayment(ctx, id, domain.PaymentStatusProcessed)
}

func (s *paymentService) CancelPayment(ctx context.Context, id int32) (*domain.Payment, error) {
	return s.settlePayment(ctx, id, domain.PaymentStatusCancelled)
}

func (s *paymentService) settlePayment(ctx context.Context, id int32, status domain.PaymentStatus) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewBusinessError(err, "payment", id, "")
	}
	rental, err := s.rentalRepo.GetByID(ctx, payment.RentalID)
	if err != nil {
		return nil, domain.NewBusinessError(err, "rental", payment.RentalID, "")
	}

	s.locks.Lock(customerKey(rental.CustomerID))
	defer s.locks.Unlock(customerKey(rental.CustomerID))

	// Re-read under the lock: two settlements racing on one payment must
	// not both observe pending.
	payment, err = s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewBusinessError(err, "payment", id, "")
	}
	if payment.Status != domain.PaymentStatusPending {
		return nil, domain.NewBusinessError(domain.ErrInvalidState, "payment", id, "only pending payments can be "+string(status))
	}

	if err := s.paymentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	// Not unconditionally false: the customer may hold other pending
	// payments across rentals.
	if err := s.recomputePendingFlag(ctx, rental.CustomerID); err != nil {
		return nil, err
	}

	logger.Info("payment settled", "payment_id", id, "status", status)
	payment.Status = status
	return payment, nil
}

func (s *paymentService) DeletePayment(ctx context.Context, id int32) error {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return domain.NewBusinessError(err, "payment", id, "")
	}
	rental, err := s.rentalRepo.GetByID(ctx, payment.RentalID)
	if err != nil {
		return err
	}

	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.locks.Lock(customerKey(rental.CustomerID))
	defer s.locks.Unlock(customerKey(rental.CustomerID))
	return s.recomputePendingFlag(ctx, rental.CustomerID)
}

// recomputePendingFlag re-derives has_pending_payment across every rental the
// customer owns. Caller holds the customer's lock.
func (s *paymentService) recomputePendingFlag(ctx context.Context, customerID int32) error {
	rentals, err := s.rentalRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return err
	}

	pending := false
	for _, rt := range rentals {
		pp, err := s.paymentRepo.ListPendingByRental(ctx, rt.ID)
		if err != nil {
			return err
		}
		if len(pp) > 0 {
			pending = true
			break
		}
	}
	return s.customerRepo.UpdatePendingPayment(ctx, customerID, pending)
}
