package service

import (
	"context"
	"fmt"

	"rentall-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

// NewEmailService sends transactional email through SendGrid. An empty API
// key turns the service into a logging no-op for local development.
func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(ctx context.Context, toEmail, toName, subject, plainText string) error {
	if s.apiKey == "" {
		logger.Info("email suppressed (no sendgrid key)", "to", toEmail, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendBookingRequested(ctx context.Context, ownerEmail, ownerName, renterName, listingTitle string) error {
	subject := fmt.Sprintf("New booking request: %s", listingTitle)
	body := fmt.Sprintf("Hello %s,\n\n%s requested to rent %s. Review the request in your dashboard.\n\nThe RentAll Team", ownerName, renterName, listingTitle)
	return s.send(ctx, ownerEmail, ownerName, subject, body)
}

func (s *emailService) SendBookingStatusChanged(ctx context.Context, renterEmail, renterName, listingTitle, status string) error {
	subject := fmt.Sprintf("Booking update: %s", listingTitle)
	body := fmt.Sprintf("Hello %s,\n\nYour booking for %s is now %s.\n\nThe RentAll Team", renterName, listingTitle, status)
	return s.send(ctx, renterEmail, renterName, subject, body)
}

func (s *emailService) SendPaymentReceived(ctx context.Context, ownerEmail, ownerName, listingTitle string, amount float64) error {
	subject := fmt.Sprintf("Payment received: %s", listingTitle)
	body := fmt.Sprintf("Hello %s,\n\nA payment of $%.2f was received for %s. Funds are held in escrow until the renter confirms receipt.\n\nThe RentAll Team", ownerName, amount, listingTitle)
	return s.send(ctx, ownerEmail, ownerName, subject, body)
}

func (s *emailService) SendEscrowReleased(ctx context.Context, ownerEmail, ownerName, listingTitle string, amount float64) error {
	subject := fmt.Sprintf("Funds released: %s", listingTitle)
	body := fmt.Sprintf("Hello %s,\n\n$%.2f for %s has been released to your balance.\n\nThe RentAll Team", ownerName, amount, listingTitle)
	return s.send(ctx, ownerEmail, ownerName, subject, body)
}
