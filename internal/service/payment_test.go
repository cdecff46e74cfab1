package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"rentall-backend/internal/domain"
	"rentall-backend/internal/payments"
	"rentall-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPaymentService() (service.PaymentService, *MockGateway, *MockPaymentRepo, *MockBookingRepo, *MockUserRepo, *MockNotificationRepo, *MockEmailService) {
	gateway := new(MockGateway)
	paymentRepo := new(MockPaymentRepo)
	bookingRepo := new(MockBookingRepo)
	userRepo := new(MockUserRepo)
	noteRepo := new(MockNotificationRepo)
	emailSvc := new(MockEmailService)

	svc := service.NewPaymentService("usd", gateway, paymentRepo, bookingRepo, userRepo, noteRepo, emailSvc)
	return svc, gateway, paymentRepo, bookingRepo, userRepo, noteRepo, emailSvc
}

func payableBooking() *domain.Booking {
	return &domain.Booking{
		ID:           "b-1",
		ListingTitle: "Pressure Washer",
		RenterID:     "renter-1",
		OwnerID:      "owner-1",
		TotalPrice:   300.00,
		PlatformFee:  15.00,
		Status:       domain.BookingStatusConfirmed,
		EscrowStatus: domain.EscrowStatusPending,
	}
}

func TestPaymentService_CreateCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, gateway, paymentRepo, bookingRepo, _, _, _ := newPaymentService()

		bookingRepo.On("GetByID", ctx, "b-1").Return(payableBooking(), nil)
		gateway.On("CreateCheckoutSession", ctx, "b-1", 300.00, "usd", "https://app/success", "https://app/cancel").
			Return(&payments.CheckoutSession{SessionID: "cs_1", CheckoutURL: "https://pay/cs_1"}, nil)
		paymentRepo.On("CreateTransaction", ctx, mock.MatchedBy(func(tx *domain.PaymentTransaction) bool {
			return tx.SessionID == "cs_1" &&
				tx.BookingID == "b-1" &&
				tx.Amount == 300.00 &&
				tx.PlatformFee == 15.00 &&
				tx.OwnerAmount == 285.00 &&
				tx.PayStatus == domain.PaymentStatusPending
		})).Return(nil)

		result, err := svc.CreateCheckout(ctx, "renter-1", "b-1", "https://app/success", "https://app/cancel")
		require.NoError(t, err)
		assert.Equal(t, "cs_1", result.SessionID)
		assert.Equal(t, "https://pay/cs_1", result.CheckoutURL)
		assert.InDelta(t, 300.00, result.Amount, 0.001)
		paymentRepo.AssertExpectations(t)
	})

	t.Run("AlreadyPaid", func(t *testing.T) {
		svc, _, _, bookingRepo, _, _, _ := newPaymentService()

		paid := payableBooking()
		paid.Status = domain.BookingStatusPaid
		bookingRepo.On("GetByID", ctx, "b-1").Return(paid, nil)

		_, err := svc.CreateCheckout(ctx, "renter-1", "b-1", "", "")
		require.Error(t, err)
		assert.Equal(t, domain.ErrKindAlreadyProcessed, domain.KindOf(err))
	})

	t.Run("OnlyRenterCanPay", func(t *testing.T) {
		svc, _, _, bookingRepo, _, _, _ := newPaymentService()

		bookingRepo.On("GetByID", ctx, "b-1").Return(payableBooking(), nil)

		_, err := svc.CreateCheckout(ctx, "owner-1", "b-1", "", "")
		require.Error(t, err)
		assert.Equal(t, domain.ErrKindUnauthorized, domain.KindOf(err))
	})

	t.Run("RejectedBookingCannotBePaid", func(t *testing.T) {
		svc, _, _, bookingRepo, _, _, _ := newPaymentService()

		rejected := payableBooking()
		rejected.Status = domain.BookingStatusRejected
		bookingRepo.On("GetByID", ctx, "b-1").Return(rejected, nil)

		_, err := svc.CreateCheckout(ctx, "renter-1", "b-1", "", "")
		require.Error(t, err)
		assert.Equal(t, domain.ErrKindConflict, domain.KindOf(err))
	})
}

func pendingTransaction() *domain.PaymentTransaction {
	return &domain.PaymentTransaction{
		ID:        "t-1",
		SessionID: "cs_1",
		BookingID: "b-1",
		UserID:    "renter-1",
		Amount:    300.00,
		Currency:  "usd",
		Status:    domain.TransactionStatusInitiated,
		PayStatus: domain.PaymentStatusPending,
	}
}

func TestPaymentService_ApplyPaid(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstApplicationWins", func(t *testing.T) {
		svc, _, paymentRepo, bookingRepo, userRepo, noteRepo, emailSvc := newPaymentService()

		paymentRepo.On("GetBySessionID", ctx, "cs_1").Return(pendingTransaction(), nil)
		paymentRepo.On("MarkPaid", ctx, "cs_1").Return(true, nil)
		bookingRepo.On("MarkPaid", ctx, "b-1").Return(true, nil)
		bookingRepo.On("GetByID", ctx, "b-1").Return(payableBooking(), nil)
		userRepo.On("GetByID", ctx, "owner-1").Return(&domain.User{ID: "owner-1", Name: "Olive", Email: "olive@test.com"}, nil)
		emailSvc.On("SendPaymentReceived", ctx, "olive@test.com", "Olive", "Pressure Washer", 300.00).Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		err := svc.ApplyPaid(ctx, "cs_1")
		require.NoError(t, err)
		bookingRepo.AssertCalled(t, "MarkPaid", ctx, "b-1")
	})

	t.Run("DuplicateDeliveryIsANoop", func(t *testing.T) {
		svc, _, paymentRepo, bookingRepo, _, _, _ := newPaymentService()

		paymentRepo.On("GetBySessionID", ctx, "cs_1").Return(pendingTransaction(), nil)
		paymentRepo.On("MarkPaid", ctx, "cs_1").Return(false, nil)

		err := svc.ApplyPaid(ctx, "cs_1")
		require.NoError(t, err)
		bookingRepo.AssertNotCalled(t, "MarkPaid", ctx, "b-1")
	})
}

func TestPaymentService_HandleWebhook(t *testing.T) {
	ctx := context.Background()

	t.Run("CompletedEventAppliesPayment", func(t *testing.T) {
		svc, gateway, paymentRepo, bookingRepo, userRepo, noteRepo, emailSvc := newPaymentService()

		payload, _ := json.Marshal(payments.WebhookEvent{Type: "checkout.session.completed", SessionID: "cs_1"})
		gateway.On("VerifyWebhook", payload, "sig").
			Return(&payments.WebhookEvent{Type: "checkout.session.completed", SessionID: "cs_1"}, nil)
		paymentRepo.On("GetBySessionID", ctx, "cs_1").Return(pendingTransaction(), nil)
		paymentRepo.On("MarkPaid", ctx, "cs_1").Return(true, nil)
		bookingRepo.On("MarkPaid", ctx, "b-1").Return(true, nil)
		bookingRepo.On("GetByID", ctx, "b-1").Return(payableBooking(), nil)
		userRepo.On("GetByID", ctx, "owner-1").Return(&domain.User{ID: "owner-1", Name: "Olive", Email: "olive@test.com"}, nil)
		emailSvc.On("SendPaymentReceived", ctx, "olive@test.com", "Olive", "Pressure Washer", 300.00).Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		err := svc.HandleWebhook(ctx, payload, "sig")
		assert.NoError(t, err)
	})

	t.Run("ExpiredEventExpiresTransaction", func(t *testing.T) {
		svc, gateway, paymentRepo, _, _, _, _ := newPaymentService()

		payload := []byte(`{"type":"checkout.session.expired","session_id":"cs_1"}`)
		gateway.On("VerifyWebhook", payload, "sig").
			Return(&payments.WebhookEvent{Type: "checkout.session.expired", SessionID: "cs_1"}, nil)
		paymentRepo.On("MarkExpired", ctx, "cs_1").Return(nil)

		err := svc.HandleWebhook(ctx, payload, "sig")
		assert.NoError(t, err)
		paymentRepo.AssertExpectations(t)
	})

	t.Run("BadSignature", func(t *testing.T) {
		svc, gateway, _, _, _, _, _ := newPaymentService()

		payload := []byte(`{}`)
		gateway.On("VerifyWebhook", payload, "bad").
			Return(nil, domain.UnauthorizedError("invalid webhook signature"))

		err := svc.HandleWebhook(ctx, payload, "bad")
		require.Error(t, err)
		assert.Equal(t, domain.ErrKindUnauthorized, domain.KindOf(err))
	})
}

func TestPaymentService_CheckStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("GatewaySaysPaid", func(t *testing.T) {
		svc, gateway, paymentRepo, bookingRepo, userRepo, noteRepo, emailSvc := newPaymentService()

		paymentRepo.On("GetBySessionID", ctx, "cs_1").Return(pendingTransaction(), nil)
		gateway.On("GetSessionStatus", ctx, "cs_1").
			Return(&payments.SessionStatus{SessionID: "cs_1", Status: "complete", PaymentStatus: "paid"}, nil)
		paymentRepo.On("MarkPaid", ctx, "cs_1").Return(true, nil)
		bookingRepo.On("MarkPaid", ctx, "b-1").Return(true, nil)
		bookingRepo.On("GetByID", ctx, "b-1").Return(payableBooking(), nil)
		userRepo.On("GetByID", ctx, "owner-1").Return(&domain.User{ID: "owner-1", Name: "Olive", Email: "olive@test.com"}, nil)
		emailSvc.On("SendPaymentReceived", ctx, "olive@test.com", "Olive", "Pressure Washer", 300.00).Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		result, err := svc.CheckStatus(ctx, "cs_1")
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPaid, result.PaymentStatus)
		assert.Equal(t, "b-1", result.BookingID)
	})

	t.Run("AlreadyPaidSkipsGateway", func(t *testing.T) {
		svc, gateway, paymentRepo, _, _, _, _ := newPaymentService()

		paid := pendingTransaction()
		paid.PayStatus = domain.PaymentStatusPaid
		paymentRepo.On("GetBySessionID", ctx, "cs_1").Return(paid, nil)

		result, err := svc.CheckStatus(ctx, "cs_1")
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPaid, result.PaymentStatus)
		gateway.AssertNotCalled(t, "GetSessionStatus", ctx, "cs_1")
	})

	t.Run("GatewaySaysExpired", func(t *testing.T) {
		svc, gateway, paymentRepo, _, _, _, _ := newPaymentService()

		paymentRepo.On("GetBySessionID", ctx, "cs_1").Return(pendingTransaction(), nil)
		gateway.On("GetSessionStatus", ctx, "cs_1").
			Return(&payments.SessionStatus{SessionID: "cs_1", Status: "expired", PaymentStatus: "unpaid"}, nil)
		paymentRepo.On("MarkExpired", ctx, "cs_1").Return(nil)

		result, err := svc.CheckStatus(ctx, "cs_1")
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusExpired, result.PaymentStatus)
	})
}
