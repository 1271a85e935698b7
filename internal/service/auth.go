package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"carrental-backend/internal/config"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/security"
)

// ErrInvalidCredentials is returned for any failed login attempt. The same
// error covers unknown emails and wrong passwords so callers can't probe
// which one it was.
var ErrInvalidCredentials = errors.New("invalid email or password")

type authService struct {
	adminCfg config.AdminConfig
	tokens   security.TokenManager
}

func NewAuthService(adminCfg config.AdminConfig, tokens security.TokenManager) AuthService {
	return &authService{
		adminCfg: adminCfg,
		tokens:   tokens,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	log := logger.WithService("auth")

	if !strings.EqualFold(email, s.adminCfg.Email) {
		log.Warn("login attempt with unknown email", "email", email)
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.adminCfg.PasswordHash), []byte(password)); err != nil {
		log.Warn("login attempt with wrong password", "email", email)
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(s.adminCfg.Email)
	if err != nil {
		log.Error("failed to generate access token", "error", err)
		return "", err
	}

	log.Info("operator logged in", "email", s.adminCfg.Email)
	return token, nil
}
