package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"carrental-backend/internal/config"
	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
)

type emailService struct {
	cfg config.EmailConfig
}

func NewEmailService(cfg config.EmailConfig) EmailService {
	return &emailService{cfg: cfg}
}

func (s *emailService) SendRentalConfirmation(ctx context.Context, email, name string, rental *domain.Rental) error {
	subject := "Rental confirmation"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour rental is confirmed.\n\nPeriod: %s to %s (%d days)\nTotal: %s\n\nThank you for renting with us.",
		name,
		rental.StartDate.Format("2006-01-02"),
		rental.EndDate.Format("2006-01-02"),
		rental.TotalDays,
		formatCents(rental.TotalValueCents),
	)
	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) SendPaymentReminder(ctx context.Context, email, name string, amountCents int64) error {
	subject := "Payment reminder"
	body := fmt.Sprintf(
		"Hello %s,\n\nYou have a pending payment of %s on your rental.\nPlease settle it at your earliest convenience.",
		name,
		formatCents(amountCents),
	)
	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) send(ctx context.Context, toEmail, toName, subject, body string) error {
	from := mail.NewEmail(s.cfg.FromName, s.cfg.From)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(s.cfg.APIKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err, "to", toEmail)
		return err
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid rejected message: status %d", response.StatusCode)
		logger.ExternalServiceResult("sendgrid", "send", err, "to", toEmail)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "send", nil, "to", toEmail, "status", response.StatusCode)
	return nil
}

// formatCents renders an integer cent amount as "R$ 1.234,56".
func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	reais := cents / 100
	rest := cents % 100

	whole := fmt.Sprintf("%d", reais)
	var grouped []byte
	for i, digit := range []byte(whole) {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, digit)
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, grouped, rest)
}
