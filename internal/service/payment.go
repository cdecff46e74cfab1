package service

import (
	"context"
	"fmt"

	"rentall-backend/internal/domain"
	"rentall-backend/internal/logger"
	"rentall-backend/internal/payments"
	"rentall-backend/internal/repository"

	"github.com/google/uuid"
)

type paymentService struct {
	currency    string
	gateway     payments.Gateway
	paymentRepo repository.PaymentRepository
	bookingRepo repository.BookingRepository
	userRepo    repository.UserRepository
	noteRepo    repository.NotificationRepository
	emailSvc    EmailService
}

func NewPaymentService(
	currency string,
	gateway payments.Gateway,
	paymentRepo repository.PaymentRepository,
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) PaymentService {
	if currency == "" {
		currency = "usd"
	}
	return &paymentService{
		currency:    currency,
		gateway:     gateway,
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		noteRepo:    noteRepo,
		emailSvc:    emailSvc,
	}
}

func (s *paymentService) CreateCheckout(ctx context.Context, userID, bookingID, successURL, cancelURL string) (*CheckoutResult, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.RenterID != userID {
		return nil, domain.UnauthorizedError("only the renter can pay for a booking")
	}
	switch b.Status {
	case domain.BookingStatusPending, domain.BookingStatusConfirmed:
	case domain.BookingStatusPaid:
		return nil, domain.AlreadyProcessedError("booking is already paid")
	default:
		return nil, domain.ConflictError("booking in status %s cannot be paid", b.Status)
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, b.ID, b.TotalPrice, s.currency, successURL, cancelURL)
	if err != nil {
		return nil, domain.WrapInternal(err, "payment gateway rejected checkout")
	}

	tx := &domain.PaymentTransaction{
		ID:          uuid.NewString(),
		SessionID:   session.SessionID,
		BookingID:   b.ID,
		UserID:      userID,
		Amount:      b.TotalPrice,
		Currency:    s.currency,
		PlatformFee: b.PlatformFee,
		OwnerAmount: b.TotalPrice - b.PlatformFee,
		Status:      domain.TransactionStatusInitiated,
		PayStatus:   domain.PaymentStatusPending,
	}
	if err := s.paymentRepo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return &CheckoutResult{
		SessionID:   session.SessionID,
		CheckoutURL: session.CheckoutURL,
		Amount:      b.TotalPrice,
		Currency:    s.currency,
	}, nil
}

// CheckStatus reconciles one session with the gateway. The client polls this
// after returning from hosted checkout; the webhook usually wins the race and
// both paths funnel through ApplyPaid.
func (s *paymentService) CheckStatus(ctx context.Context, sessionID string) (*PaymentStatusResult, error) {
	tx, err := s.paymentRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if tx.PayStatus == domain.PaymentStatusPaid {
		return &PaymentStatusResult{SessionID: sessionID, PaymentStatus: tx.PayStatus, BookingID: tx.BookingID}, nil
	}

	status, err := s.gateway.GetSessionStatus(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch {
	case status.PaymentStatus == "paid":
		if err := s.ApplyPaid(ctx, sessionID); err != nil {
			return nil, err
		}
		tx.PayStatus = domain.PaymentStatusPaid
	case status.Status == "expired":
		if err := s.paymentRepo.MarkExpired(ctx, sessionID); err != nil {
			return nil, err
		}
		tx.PayStatus = domain.PaymentStatusExpired
	}

	return &PaymentStatusResult{SessionID: sessionID, PaymentStatus: tx.PayStatus, BookingID: tx.BookingID}, nil
}

func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.VerifyWebhook(payload, signature)
	if err != nil {
		return err
	}

	switch event.Type {
	case "checkout.session.completed":
		return s.ApplyPaid(ctx, event.SessionID)
	case "checkout.session.expired":
		return s.paymentRepo.MarkExpired(ctx, event.SessionID)
	default:
		logger.Debug("ignoring webhook event", "type", event.Type)
		return nil
	}
}

// ApplyPaid flips the transaction first; only the winner of that conditional
// update touches the booking and sends notifications, so duplicate webhook
// deliveries and status polls are harmless.
func (s *paymentService) ApplyPaid(ctx context.Context, sessionID string) error {
	tx, err := s.paymentRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return err
	}

	first, err := s.paymentRepo.MarkPaid(ctx, sessionID)
	if err != nil {
		return err
	}
	if !first {
		return nil
	}

	updated, err := s.bookingRepo.MarkPaid(ctx, tx.BookingID)
	if err != nil {
		return err
	}
	if !updated {
		logger.Warn("payment applied but booking was not payable", "booking_id", tx.BookingID, "session_id", sessionID)
		return nil
	}

	s.notifyPaid(ctx, tx)
	return nil
}

func (s *paymentService) notifyPaid(ctx context.Context, tx *domain.PaymentTransaction) {
	b, err := s.bookingRepo.GetByID(ctx, tx.BookingID)
	if err != nil {
		logger.Warn("could not load booking for payment notification", "booking_id", tx.BookingID, "error", err)
		return
	}
	owner, err := s.userRepo.GetByID(ctx, b.OwnerID)
	if err != nil {
		logger.Warn("could not load owner for payment notification", "booking_id", b.ID, "error", err)
		return
	}

	if err := s.emailSvc.SendPaymentReceived(ctx, owner.Email, owner.Name, b.ListingTitle, tx.Amount); err != nil {
		logger.Warn("payment received email failed", "booking_id", b.ID, "error", err)
	}
	note := &domain.Notification{
		ID:      uuid.NewString(),
		UserID:  owner.ID,
		Title:   "Payment Received",
		Message: fmt.Sprintf("Payment of $%.2f received for %s. Funds are held until the renter confirms receipt.", tx.Amount, b.ListingTitle),
		Attributes: map[string]string{
			"type":       "payment_received",
			"booking_id": b.ID,
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("payment notification failed", "booking_id", b.ID, "error", err)
	}
}
