package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"carrental-backend/internal/domain"
)

const validCPF = "529.982.247-25"

func TestCustomerService_CreateCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		customerRepo := new(MockCustomerRepo)
		svc := NewCustomerService(customerRepo, new(MockRentalRepo))

		customerRepo.On("GetByCPF", ctx, validCPF).Return(nil, domain.ErrNotFound)
		customerRepo.On("GetByEmail", ctx, "joao@test.com").Return(nil, domain.ErrNotFound)
		customerRepo.On("Create", ctx, mock.MatchedBy(func(c *domain.Customer) bool {
			return !c.HasPendingPayment
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Customer).ID = 2
		}).Return(nil)

		customer, err := svc.CreateCustomer(ctx, &domain.Customer{
			Name:  "Joao",
			CPF:   validCPF,
			Email: "joao@test.com",
			Phone: "(11) 98765-4321",
		})
		assert.NoError(t, err)
		assert.Equal(t, int32(2), customer.ID)
		customerRepo.AssertExpectations(t)
	})

	t.Run("InvalidCPF", func(t *testing.T) {
		svc := NewCustomerService(new(MockCustomerRepo), new(MockRentalRepo))

		_, err := svc.CreateCustomer(ctx, &domain.Customer{
			CPF: "111.111.111-11", Email: "a@test.com", Phone: "11987654321",
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("DuplicateCPF", func(t *testing.T) {
		customerRepo := new(MockCustomerRepo)
		svc := NewCustomerService(customerRepo, new(MockRentalRepo))

		customerRepo.On("GetByCPF", ctx, validCPF).Return(&domain.Customer{ID: 5, CPF: validCPF}, nil)

		_, err := svc.CreateCustomer(ctx, &domain.Customer{
			CPF: validCPF, Email: "new@test.com", Phone: "11987654321",
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateKey)
		customerRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		customerRepo := new(MockCustomerRepo)
		svc := NewCustomerService(customerRepo, new(MockRentalRepo))

		customerRepo.On("GetByCPF", ctx, validCPF).Return(nil, domain.ErrNotFound)
		customerRepo.On("GetByEmail", ctx, "taken@test.com").Return(&domain.Customer{ID: 5}, nil)

		_, err := svc.CreateCustomer(ctx, &domain.Customer{
			CPF: validCPF, Email: "taken@test.com", Phone: "11987654321",
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateKey)
	})
}

func TestCustomerService_UpdateCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("KeepsOwnCPFWithoutConflict", func(t *testing.T) {
		customerRepo := new(MockCustomerRepo)
		svc := NewCustomerService(customerRepo, new(MockRentalRepo))

		current := &domain.Customer{ID: 2, CPF: validCPF, Email: "joao@test.com", HasPendingPayment: true}
		customerRepo.On("GetByID", ctx, int32(2)).Return(current, nil)
		customerRepo.On("GetByCPF", ctx, validCPF).Return(current, nil)
		customerRepo.On("GetByEmail", ctx, "joao@test.com").Return(current, nil)
		customerRepo.On("Update", ctx, mock.MatchedBy(func(c *domain.Customer) bool {
			// The delinquency flag survives edits untouched.
			return c.HasPendingPayment
		})).Return(nil)

		customer, err := svc.UpdateCustomer(ctx, &domain.Customer{
			ID: 2, Name: "Joao Silva", CPF: validCPF, Email: "joao@test.com", Phone: "11987654321",
		})
		assert.NoError(t, err)
		assert.True(t, customer.HasPendingPayment)
		customerRepo.AssertExpectations(t)
	})
}

func TestCustomerService_DeleteCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("RefusedWithActiveRental", func(t *testing.T) {
		customerRepo := new(MockCustomerRepo)
		rentalRepo := new(MockRentalRepo)
		svc := NewCustomerService(customerRepo, rentalRepo)

		customerRepo.On("GetByID", ctx, int32(2)).Return(&domain.Customer{ID: 2}, nil)
		rentalRepo.On("ListByCustomer", ctx, int32(2)).
			Return([]domain.Rental{{ID: 7, Status: domain.RentalStatusActive}}, nil)

		err := svc.DeleteCustomer(ctx, 2)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
		customerRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Success", func(t *testing.T) {
		customerRepo := new(MockCustomerRepo)
		rentalRepo := new(MockRentalRepo)
		svc := NewCustomerService(customerRepo, rentalRepo)

		customerRepo.On("GetByID", ctx, int32(2)).Return(&domain.Customer{ID: 2}, nil)
		rentalRepo.On("ListByCustomer", ctx, int32(2)).
			Return([]domain.Rental{{ID: 7, Status: domain.RentalStatusCompleted}}, nil)
		customerRepo.On("Delete", ctx, int32(2)).Return(nil)

		err := svc.DeleteCustomer(ctx, 2)
		assert.NoError(t, err)
		customerRepo.AssertExpectations(t)
	})
}
