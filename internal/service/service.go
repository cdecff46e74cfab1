package service

import (
	"context"

	"rentall-backend/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, name, password string) (*domain.User, string, error) // user, access token
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error)
}

type ListingService interface {
	CreateListing(ctx context.Context, ownerID string, listing *domain.Listing) (*domain.Listing, error)
	GetListing(ctx context.Context, id string) (*domain.Listing, error)
	UpdateListing(ctx context.Context, ownerID, id string, update domain.ListingUpdate) (*domain.Listing, error)
	DeleteListing(ctx context.Context, ownerID, id string) error
	SearchListings(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error)
	FeaturedListings(ctx context.Context, limit int) ([]domain.Listing, error)
	MyListings(ctx context.Context, ownerID string) ([]domain.Listing, error)
}

// CreateBookingRequest carries the renter's booking parameters. Hours is
// required for hourly bookings and ignored otherwise.
type CreateBookingRequest struct {
	ListingID    string              `json:"listing_id"`
	StartDate    string              `json:"start_date"`
	EndDate      string              `json:"end_date"`
	DurationType domain.DurationType `json:"duration_type"`
	Hours        int                 `json:"hours"`
}

type BookingService interface {
	CreateBooking(ctx context.Context, renterID string, req CreateBookingRequest) (*domain.Booking, error)
	GetBooking(ctx context.Context, userID, id string) (*domain.Booking, error)
	MyBookings(ctx context.Context, renterID string) ([]domain.Booking, error)
	BookingRequests(ctx context.Context, ownerID string) ([]domain.Booking, error)
	// UpdateStatus is the owner moderation path: confirm, reject, or cancel.
	UpdateStatus(ctx context.Context, ownerID, bookingID string, status domain.BookingStatus) (*domain.Booking, error)
	// ConfirmReceipt releases escrow to the owner. One-way; repeat calls
	// return an already-processed error.
	ConfirmReceipt(ctx context.Context, renterID, bookingID string) (*domain.Booking, error)
	Dispute(ctx context.Context, renterID, bookingID, reason string) (*domain.Booking, error)
	BookedDates(ctx context.Context, listingID string) ([]domain.DateRange, error)
	// ReleaseEscrowFor is the auto-release path used by the sweep job. It
	// shares the idempotent credit guard with ConfirmReceipt.
	ReleaseEscrowFor(ctx context.Context, bookingID, releasedAt string) error
}

// CheckoutResult is what the renter needs to finish paying.
type CheckoutResult struct {
	SessionID   string  `json:"session_id"`
	CheckoutURL string  `json:"checkout_url"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
}

// PaymentStatusResult reports a checkout session's state after polling the
// gateway and applying any transition it implies.
type PaymentStatusResult struct {
	SessionID     string               `json:"session_id"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	BookingID     string               `json:"booking_id"`
}

type PaymentService interface {
	CreateCheckout(ctx context.Context, userID, bookingID, successURL, cancelURL string) (*CheckoutResult, error)
	CheckStatus(ctx context.Context, sessionID string) (*PaymentStatusResult, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	// ApplyPaid transitions transaction and booking to paid exactly once,
	// no matter how many webhook deliveries and polls race.
	ApplyPaid(ctx context.Context, sessionID string) error
}

type ReviewService interface {
	CreateReview(ctx context.Context, reviewerID, listingID string, rating int, comment string) (*domain.Review, error)
	ListingReviews(ctx context.Context, listingID string) ([]domain.Review, error)
}

type MessageService interface {
	SendMessage(ctx context.Context, senderID, recipientID string, listingID *string, content string) (*domain.Message, error)
	Conversations(ctx context.Context, userID string) ([]domain.Conversation, error)
	Thread(ctx context.Context, userID, otherID string) ([]domain.Message, error)
}

type NotificationService interface {
	ListNotifications(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, int, error)
	MarkNotificationRead(ctx context.Context, userID, id string) error
}

type EmailService interface {
	SendBookingRequested(ctx context.Context, ownerEmail, ownerName, renterName, listingTitle string) error
	SendBookingStatusChanged(ctx context.Context, renterEmail, renterName, listingTitle, status string) error
	SendPaymentReceived(ctx context.Context, ownerEmail, ownerName, listingTitle string, amount float64) error
	SendEscrowReleased(ctx context.Context, ownerEmail, ownerName, listingTitle string, amount float64) error
}
