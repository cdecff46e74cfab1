package service_test

import (
	"context"

	"rentall-backend/internal/domain"
	"rentall-backend/internal/payments"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

// MockListingRepo
type MockListingRepo struct {
	mock.Mock
}

func (m *MockListingRepo) Create(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}
func (m *MockListingRepo) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *MockListingRepo) Update(ctx context.Context, id string, update domain.ListingUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}
func (m *MockListingRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockListingRepo) List(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Listing), args.Error(1)
}
func (m *MockListingRepo) ListFeatured(ctx context.Context, limit int) ([]domain.Listing, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Listing), args.Error(1)
}
func (m *MockListingRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Listing, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Listing), args.Error(1)
}
func (m *MockListingRepo) UpdateRating(ctx context.Context, id string, avgRating float64, reviewCount int) error {
	args := m.Called(ctx, id, avgRating, reviewCount)
	return args.Error(0)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) CreateIfAvailable(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByRenter(ctx context.Context, renterID string) ([]domain.Booking, error) {
	args := m.Called(ctx, renterID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Booking, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListBookedDates(ctx context.Context, listingID string) ([]domain.DateRange, error) {
	args := m.Called(ctx, listingID)
	return args.Get(0).([]domain.DateRange), args.Error(1)
}
func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockBookingRepo) MarkPaid(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) MarkDisputed(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBookingRepo) ReleaseEscrow(ctx context.Context, bookingID string, confirmedAt string) (*domain.EscrowRelease, error) {
	args := m.Called(ctx, bookingID, confirmedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EscrowRelease), args.Error(1)
}
func (m *MockBookingRepo) ListAutoReleasable(ctx context.Context, asOf string) ([]domain.Booking, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ExpireStalePending(ctx context.Context, before string) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockBookingRepo) HasRentedListing(ctx context.Context, renterID, listingID string) (bool, error) {
	args := m.Called(ctx, renterID, listingID)
	return args.Bool(0), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) CreateTransaction(ctx context.Context, tx *domain.PaymentTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetBySessionID(ctx context.Context, sessionID string) (*domain.PaymentTransaction, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentTransaction), args.Error(1)
}
func (m *MockPaymentRepo) MarkPaid(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}
func (m *MockPaymentRepo) MarkExpired(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}
func (m *MockPaymentRepo) ListPending(ctx context.Context) ([]domain.PaymentTransaction, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.PaymentTransaction), args.Error(1)
}
func (m *MockPaymentRepo) UpdatePayout(ctx context.Context, payoutID string, status domain.PayoutStatus, transferRef *string) error {
	args := m.Called(ctx, payoutID, status, transferRef)
	return args.Error(0)
}

// MockReviewRepo
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}
func (m *MockReviewRepo) ListByListing(ctx context.Context, listingID string) ([]domain.Review, error) {
	args := m.Called(ctx, listingID)
	return args.Get(0).([]domain.Review), args.Error(1)
}
func (m *MockReviewRepo) Exists(ctx context.Context, listingID, reviewerID string) (bool, error) {
	args := m.Called(ctx, listingID, reviewerID)
	return args.Bool(0), args.Error(1)
}
func (m *MockReviewRepo) Stats(ctx context.Context, listingID string) (float64, int, error) {
	args := m.Called(ctx, listingID)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

// MockMessageRepo
type MockMessageRepo struct {
	mock.Mock
}

func (m *MockMessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
func (m *MockMessageRepo) ListBetween(ctx context.Context, userID, otherID string) ([]domain.Message, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Get(0).([]domain.Message), args.Error(1)
}
func (m *MockMessageRepo) ListInvolving(ctx context.Context, userID string, limit int) ([]domain.Message, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]domain.Message), args.Error(1)
}
func (m *MockMessageRepo) MarkReadFrom(ctx context.Context, senderID, recipientID string) error {
	args := m.Called(ctx, senderID, recipientID)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Int(1), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingRequested(ctx context.Context, ownerEmail, ownerName, renterName, listingTitle string) error {
	args := m.Called(ctx, ownerEmail, ownerName, renterName, listingTitle)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingStatusChanged(ctx context.Context, renterEmail, renterName, listingTitle, status string) error {
	args := m.Called(ctx, renterEmail, renterName, listingTitle, status)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentReceived(ctx context.Context, ownerEmail, ownerName, listingTitle string, amount float64) error {
	args := m.Called(ctx, ownerEmail, ownerName, listingTitle, amount)
	return args.Error(0)
}
func (m *MockEmailService) SendEscrowReleased(ctx context.Context, ownerEmail, ownerName, listingTitle string, amount float64) error {
	args := m.Called(ctx, ownerEmail, ownerName, listingTitle, amount)
	return args.Error(0)
}

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateCheckoutSession(ctx context.Context, bookingID string, amount float64, currency, successURL, cancelURL string) (*payments.CheckoutSession, error) {
	args := m.Called(ctx, bookingID, amount, currency, successURL, cancelURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.CheckoutSession), args.Error(1)
}
func (m *MockGateway) GetSessionStatus(ctx context.Context, sessionID string) (*payments.SessionStatus, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.SessionStatus), args.Error(1)
}
func (m *MockGateway) VerifyWebhook(payload []byte, signature string) (*payments.WebhookEvent, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.WebhookEvent), args.Error(1)
}

// MockPayoutProvider
type MockPayoutProvider struct {
	mock.Mock
}

func (m *MockPayoutProvider) Transfer(ctx context.Context, ownerAccount string, amount float64, currency string) (string, error) {
	args := m.Called(ctx, ownerAccount, amount, currency)
	return args.String(0), args.Error(1)
}
