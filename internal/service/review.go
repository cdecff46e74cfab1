package service

import (
	"context"
	"strings"

	"rentall-backend/internal/domain"
	"rentall-backend/internal/repository"

	"github.com/google/uuid"
)

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	bookingRepo repository.BookingRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	bookingRepo repository.BookingRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
	}
}

func (s *reviewService) CreateReview(ctx context.Context, reviewerID, listingID string, rating int, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.ValidationError("rating must be between 1 and 5")
	}
	if _, err := s.listingRepo.GetByID(ctx, listingID); err != nil {
		return nil, err
	}

	rented, err := s.bookingRepo.HasRentedListing(ctx, reviewerID, listingID)
	if err != nil {
		return nil, err
	}
	if !rented {
		return nil, domain.UnauthorizedError("you can only review listings you have rented")
	}

	exists, err := s.reviewRepo.Exists(ctx, listingID, reviewerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ConflictError("you have already reviewed this listing")
	}

	reviewer, err := s.userRepo.GetByID(ctx, reviewerID)
	if err != nil {
		return nil, err
	}

	review := &domain.Review{
		ID:             uuid.NewString(),
		ListingID:      listingID,
		ReviewerID:     reviewer.ID,
		ReviewerName:   reviewer.Name,
		ReviewerAvatar: reviewer.AvatarURL,
		Rating:         rating,
		Comment:        strings.TrimSpace(comment),
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	avg, count, err := s.reviewRepo.Stats(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if err := s.listingRepo.UpdateRating(ctx, listingID, avg, count); err != nil {
		return nil, err
	}

	return review, nil
}

func (s *reviewService) ListingReviews(ctx context.Context, listingID string) ([]domain.Review, error) {
	return s.reviewRepo.ListByListing(ctx, listingID)
}
