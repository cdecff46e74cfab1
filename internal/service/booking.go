package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentall-backend/internal/domain"
	"rentall-backend/internal/logger"
	"rentall-backend/internal/payments"
	"rentall-backend/internal/pricing"
	"rentall-backend/internal/repository"

	"github.com/google/uuid"
)

// BookingConfig is the marketplace policy injected into the booking service.
type BookingConfig struct {
	PlatformFeePercent float64 // 5.0 means 5%
	AutoReleaseDays    int     // days after end_date before escrow auto-releases
	Currency           string
}

type bookingService struct {
	cfg         BookingConfig
	bookingRepo repository.BookingRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	paymentRepo repository.PaymentRepository
	noteRepo    repository.NotificationRepository
	emailSvc    EmailService
	payouts     payments.PayoutProvider
}

func NewBookingService(
	cfg BookingConfig,
	bookingRepo repository.BookingRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	paymentRepo repository.PaymentRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	payouts payments.PayoutProvider,
) BookingService {
	return &bookingService{
		cfg:         cfg,
		bookingRepo: bookingRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		noteRepo:    noteRepo,
		emailSvc:    emailSvc,
		payouts:     payouts,
	}
}

const dateLayout = "2006-01-02"

func (s *bookingService) CreateBooking(ctx context.Context, renterID string, req CreateBookingRequest) (*domain.Booking, error) {
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, domain.ValidationError("invalid start date %q", req.StartDate)
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, domain.ValidationError("invalid end date %q", req.EndDate)
	}
	if end.Before(start) {
		return nil, domain.ValidationError("end date must not be before start date")
	}
	if end.Equal(start) && req.DurationType != domain.DurationTypeHourly {
		return nil, domain.ValidationError("end date must be after start date")
	}

	listing, err := s.listingRepo.GetByID(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}
	if !listing.IsAvailable {
		return nil, domain.ConflictError("listing is not available")
	}
	if listing.OwnerID == renterID {
		return nil, domain.ValidationError("you cannot book your own listing")
	}

	quote, err := pricing.Compute(pricing.Config{
		PricePerHour:      listing.PricePerHour,
		PricePerDay:       listing.PricePerDay,
		PricePerWeek:      listing.PricePerWeek,
		MinRentalHours:    listing.MinRentalHours,
		MinRentalDays:     listing.MinRentalDays,
		MaxRentalDays:     listing.MaxRentalDays,
		SurgeEnabled:      listing.SurgeEnabled,
		SurgePercentage:   listing.SurgePercentage,
		SurgeWeekends:     listing.SurgeWeekends,
		SurgeDates:        listing.SurgeDates,
		DiscountWeekly:    listing.DiscountWeekly,
		DiscountMonthly:   listing.DiscountMonthly,
		DiscountQuarterly: listing.DiscountQuarterly,
	}, req.StartDate, req.EndDate, req.DurationType, req.Hours)
	if err != nil {
		var pe *pricing.Error
		if errors.As(err, &pe) {
			return nil, domain.ValidationError("%s", pe.Reason)
		}
		return nil, err
	}

	renter, err := s.userRepo.GetByID(ctx, renterID)
	if err != nil {
		return nil, err
	}

	durationType := req.DurationType
	if durationType == "" {
		durationType = domain.DurationTypeDaily
	}

	var image *string
	if len(listing.Images) > 0 {
		image = &listing.Images[0]
	}

	booking := &domain.Booking{
		ID:              uuid.NewString(),
		ListingID:       listing.ID,
		ListingTitle:    listing.Title,
		ListingImage:    image,
		RenterID:        renter.ID,
		RenterName:      renter.Name,
		OwnerID:         listing.OwnerID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		DurationType:    durationType,
		Hours:           req.Hours,
		TotalPrice:      quote.TotalPrice,
		PlatformFee:     pricing.PlatformFee(quote.TotalPrice, s.cfg.PlatformFeePercent),
		SurgeDays:       quote.SurgeDays,
		SurgePercentage: quote.SurgePercentage,
		DiscountApplied: quote.DiscountApplied,
		DiscountLabel:   quote.DiscountLabel,
		Status:          domain.BookingStatusPending,
		EscrowStatus:    domain.EscrowStatusPending,
		AutoReleaseDate: end.AddDate(0, 0, s.cfg.AutoReleaseDays).Format(dateLayout),
	}

	if err := s.bookingRepo.CreateIfAvailable(ctx, booking); err != nil {
		return nil, err
	}

	s.notifyOwnerOfRequest(ctx, booking)
	return booking, nil
}

func (s *bookingService) notifyOwnerOfRequest(ctx context.Context, b *domain.Booking) {
	owner, err := s.userRepo.GetByID(ctx, b.OwnerID)
	if err != nil {
		logger.Warn("could not load owner for booking notification", "booking_id", b.ID, "error", err)
		return
	}
	if err := s.emailSvc.SendBookingRequested(ctx, owner.Email, owner.Name, b.RenterName, b.ListingTitle); err != nil {
		logger.Warn("booking request email failed", "booking_id", b.ID, "error", err)
	}
	note := &domain.Notification{
		ID:      uuid.NewString(),
		UserID:  owner.ID,
		Title:   "New Booking Request",
		Message: fmt.Sprintf("%s requested to rent %s", b.RenterName, b.ListingTitle),
		Attributes: map[string]string{
			"type":       "booking_request",
			"booking_id": b.ID,
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("booking request notification failed", "booking_id", b.ID, "error", err)
	}
}

func (s *bookingService) GetBooking(ctx context.Context, userID, id string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.RenterID != userID && b.OwnerID != userID {
		return nil, domain.UnauthorizedError("not a party to this booking")
	}
	return b, nil
}

func (s *bookingService) MyBookings(ctx context.Context, renterID string) ([]domain.Booking, error) {
	return s.bookingRepo.ListByRenter(ctx, renterID)
}

func (s *bookingService) BookingRequests(ctx context.Context, ownerID string) ([]domain.Booking, error) {
	return s.bookingRepo.ListByOwner(ctx, ownerID)
}

// ownerTransitions are the status changes the owner moderation endpoint may
// perform, keyed by target status.
var ownerTransitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.BookingStatusConfirmed: {domain.BookingStatusPending},
	domain.BookingStatusRejected:  {domain.BookingStatusPending},
	domain.BookingStatusCancelled: {domain.BookingStatusPending, domain.BookingStatusConfirmed},
}

func (s *bookingService) UpdateStatus(ctx context.Context, ownerID, bookingID string, status domain.BookingStatus) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != ownerID {
		return nil, domain.UnauthorizedError("only the owner can change booking status")
	}

	allowed, ok := ownerTransitions[status]
	if !ok {
		return nil, domain.ValidationError("status %q is not an owner transition", status)
	}
	permitted := false
	for _, from := range allowed {
		if b.Status == from {
			permitted = true
			break
		}
	}
	if !permitted {
		return nil, domain.ConflictError("cannot move booking from %s to %s", b.Status, status)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	b.Status = status

	s.notifyRenterOfStatus(ctx, b)
	return b, nil
}

func (s *bookingService) notifyRenterOfStatus(ctx context.Context, b *domain.Booking) {
	renter, err := s.userRepo.GetByID(ctx, b.RenterID)
	if err != nil {
		logger.Warn("could not load renter for status notification", "booking_id", b.ID, "error", err)
		return
	}
	if err := s.emailSvc.SendBookingStatusChanged(ctx, renter.Email, renter.Name, b.ListingTitle, string(b.Status)); err != nil {
		logger.Warn("booking status email failed", "booking_id", b.ID, "error", err)
	}
	note := &domain.Notification{
		ID:      uuid.NewString(),
		UserID:  renter.ID,
		Title:   "Booking Update",
		Message: fmt.Sprintf("Your booking for %s is now %s", b.ListingTitle, b.Status),
		Attributes: map[string]string{
			"type":       "booking_status",
			"booking_id": b.ID,
			"status":     string(b.Status),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("booking status notification failed", "booking_id", b.ID, "error", err)
	}
}

func (s *bookingService) ConfirmReceipt(ctx context.Context, renterID, bookingID string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.RenterID != renterID {
		return nil, domain.UnauthorizedError("only the renter can confirm receipt")
	}

	release, err := s.bookingRepo.ReleaseEscrow(ctx, bookingID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}

	s.settlePayout(ctx, release)
	return release.Booking, nil
}

// ReleaseEscrowFor is the sweep-job path. The conditional update inside
// ReleaseEscrow makes concurrent confirmation and auto-release safe.
func (s *bookingService) ReleaseEscrowFor(ctx context.Context, bookingID, releasedAt string) error {
	release, err := s.bookingRepo.ReleaseEscrow(ctx, bookingID, releasedAt)
	if err != nil {
		if domain.KindOf(err) == domain.ErrKindAlreadyProcessed {
			return nil
		}
		return err
	}
	s.settlePayout(ctx, release)
	return nil
}

// settlePayout credits are already committed by ReleaseEscrow; this step
// attempts the external transfer and sends the owner-facing notifications.
// Transfer failure is recorded on the payout row, never rolled back.
func (s *bookingService) settlePayout(ctx context.Context, release *domain.EscrowRelease) {
	b := release.Booking
	owner, err := s.userRepo.GetByID(ctx, release.OwnerID)
	if err != nil {
		logger.Warn("could not load owner for payout settlement", "booking_id", b.ID, "error", err)
		return
	}

	if owner.PayoutAccount != nil {
		ref, err := s.payouts.Transfer(ctx, *owner.PayoutAccount, release.OwnerAmount, s.cfg.Currency)
		if err != nil {
			logger.Error("payout transfer failed", "booking_id", b.ID, "payout_id", release.PayoutID, "error", err)
			if uerr := s.paymentRepo.UpdatePayout(ctx, release.PayoutID, domain.PayoutStatusFailed, nil); uerr != nil {
				logger.Error("payout status update failed", "payout_id", release.PayoutID, "error", uerr)
			}
		} else if uerr := s.paymentRepo.UpdatePayout(ctx, release.PayoutID, domain.PayoutStatusTransferred, &ref); uerr != nil {
			logger.Error("payout status update failed", "payout_id", release.PayoutID, "error", uerr)
		}
	}

	if err := s.emailSvc.SendEscrowReleased(ctx, owner.Email, owner.Name, b.ListingTitle, release.OwnerAmount); err != nil {
		logger.Warn("escrow release email failed", "booking_id", b.ID, "error", err)
	}
	note := &domain.Notification{
		ID:      uuid.NewString(),
		UserID:  owner.ID,
		Title:   "Funds Released",
		Message: fmt.Sprintf("$%.2f for %s has been released to your balance", release.OwnerAmount, b.ListingTitle),
		Attributes: map[string]string{
			"type":       "escrow_released",
			"booking_id": b.ID,
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("escrow release notification failed", "booking_id", b.ID, "error", err)
	}
}

// Dispute deliberately has no paid-status guard: a renter can flag any of
// their bookings and support sorts it out. Held escrow stays held.
func (s *bookingService) Dispute(ctx context.Context, renterID, bookingID, reason string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.RenterID != renterID {
		return nil, domain.UnauthorizedError("only the renter can open a dispute")
	}

	if err := s.bookingRepo.MarkDisputed(ctx, bookingID); err != nil {
		return nil, err
	}
	b.Status = domain.BookingStatusDisputed

	note := &domain.Notification{
		ID:      uuid.NewString(),
		UserID:  b.OwnerID,
		Title:   "Booking Disputed",
		Message: fmt.Sprintf("%s opened a dispute on %s: %s", b.RenterName, b.ListingTitle, reason),
		Attributes: map[string]string{
			"type":       "booking_disputed",
			"booking_id": b.ID,
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("dispute notification failed", "booking_id", b.ID, "error", err)
	}
	return b, nil
}

func (s *bookingService) BookedDates(ctx context.Context, listingID string) ([]domain.DateRange, error) {
	if _, err := s.listingRepo.GetByID(ctx, listingID); err != nil {
		return nil, err
	}
	return s.bookingRepo.ListBookedDates(ctx, listingID)
}
