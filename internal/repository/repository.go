package repository

import (
	"context"

	"rentall-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) error
}

type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
	Update(ctx context.Context, id string, update domain.ListingUpdate) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error)
	ListFeatured(ctx context.Context, limit int) ([]domain.Listing, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Listing, error)
	UpdateRating(ctx context.Context, id string, avgRating float64, reviewCount int) error
}

type BookingRepository interface {
	// CreateIfAvailable inserts the booking only if no active booking
	// overlaps its date range, inside one per-listing critical section.
	// Returns a conflict error when the dates are taken.
	CreateIfAvailable(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByRenter(ctx context.Context, renterID string) ([]domain.Booking, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Booking, error)
	ListBookedDates(ctx context.Context, listingID string) ([]domain.DateRange, error)

	// UpdateStatus sets status unconditionally (owner moderation path).
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
	// MarkPaid transitions to paid/held only from a payable status.
	// Returns false when the booking was not in a payable state (already
	// paid or otherwise closed), which callers treat as "nothing to do".
	MarkPaid(ctx context.Context, id string) (bool, error)
	// MarkDisputed flags the booking disputed; escrow stays held.
	MarkDisputed(ctx context.Context, id string) error

	// ReleaseEscrow atomically confirms receipt, releases escrow, credits
	// the owner's balance and writes the payout row. All-or-nothing; a
	// second call returns an already-processed error.
	ReleaseEscrow(ctx context.Context, bookingID string, confirmedAt string) (*domain.EscrowRelease, error)

	// ListAutoReleasable returns paid, unconfirmed, undisputed bookings
	// whose auto-release deadline is on or before asOf (YYYY-MM-DD).
	ListAutoReleasable(ctx context.Context, asOf string) ([]domain.Booking, error)
	// ExpireStalePending cancels pending bookings whose start date has
	// passed, returning how many were touched.
	ExpireStalePending(ctx context.Context, before string) (int64, error)

	// HasRentedListing reports whether the renter has a paid or completed
	// booking for the listing (review eligibility).
	HasRentedListing(ctx context.Context, renterID, listingID string) (bool, error)
}

type PaymentRepository interface {
	CreateTransaction(ctx context.Context, tx *domain.PaymentTransaction) error
	GetBySessionID(ctx context.Context, sessionID string) (*domain.PaymentTransaction, error)
	// MarkPaid completes the transaction only if it is not already paid;
	// returns false when another caller got there first.
	MarkPaid(ctx context.Context, sessionID string) (bool, error)
	MarkExpired(ctx context.Context, sessionID string) error
	ListPending(ctx context.Context) ([]domain.PaymentTransaction, error)
	UpdatePayout(ctx context.Context, payoutID string, status domain.PayoutStatus, transferRef *string) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListByListing(ctx context.Context, listingID string) ([]domain.Review, error)
	Exists(ctx context.Context, listingID, reviewerID string) (bool, error)
	Stats(ctx context.Context, listingID string) (avg float64, count int, err error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	ListBetween(ctx context.Context, userID, otherID string) ([]domain.Message, error)
	ListInvolving(ctx context.Context, userID string, limit int) ([]domain.Message, error)
	MarkReadFrom(ctx context.Context, senderID, recipientID string) error
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, int, error)
	MarkAsRead(ctx context.Context, id, userID string) error
}
