package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"carrental-backend/internal/config"
	"carrental-backend/internal/security"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("error hashing test password: %v", err)
	}

	tokens := security.NewTokenManager("0123456789abcdef0123456789abcdef", 60)
	svc := NewAuthService(config.AdminConfig{
		Email:        "admin@test.com",
		PasswordHash: string(hash),
	}, tokens)

	t.Run("Success", func(t *testing.T) {
		token, err := svc.Login(ctx, "admin@test.com", "s3cret")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := tokens.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "admin@test.com", claims.Email)
	})

	t.Run("EmailCaseInsensitive", func(t *testing.T) {
		token, err := svc.Login(ctx, "Admin@Test.com", "s3cret")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := svc.Login(ctx, "admin@test.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		_, err := svc.Login(ctx, "intruder@test.com", "s3cret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
