package service

import (
	"context"
	"strings"

	"rentall-backend/internal/domain"
	"rentall-backend/internal/pricing"
	"rentall-backend/internal/repository"

	"github.com/google/uuid"
)

type listingService struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
}

func NewListingService(listingRepo repository.ListingRepository, userRepo repository.UserRepository) ListingService {
	return &listingService{
		listingRepo: listingRepo,
		userRepo:    userRepo,
	}
}

func (s *listingService) CreateListing(ctx context.Context, ownerID string, l *domain.Listing) (*domain.Listing, error) {
	if strings.TrimSpace(l.Title) == "" {
		return nil, domain.ValidationError("title is required")
	}
	if l.Category == "" {
		return nil, domain.ValidationError("category is required")
	}
	if !domain.ValidCategory(l.Category) {
		return nil, domain.ValidationError("unknown category %q", l.Category)
	}
	if l.PricePerHour == nil && l.PricePerDay == nil && l.PricePerWeek == nil {
		return nil, domain.ValidationError("at least one price is required")
	}
	for _, p := range []*float64{l.PricePerHour, l.PricePerDay, l.PricePerWeek} {
		if p != nil && *p <= 0 {
			return nil, domain.ValidationError("prices must be positive")
		}
	}

	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	l.ID = uuid.NewString()
	l.OwnerID = owner.ID
	l.OwnerName = owner.Name
	l.OwnerAvatar = owner.AvatarURL
	if l.SurgeEnabled && l.SurgePercentage == 0 {
		l.SurgePercentage = pricing.DefaultSurgePercentage
	}
	if l.Images == nil {
		l.Images = []string{}
	}
	if l.SurgeDates == nil {
		l.SurgeDates = []string{}
	}

	if err := s.listingRepo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *listingService) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	return s.listingRepo.GetByID(ctx, id)
}

func (s *listingService) UpdateListing(ctx context.Context, ownerID, id string, update domain.ListingUpdate) (*domain.Listing, error) {
	existing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != ownerID {
		return nil, domain.UnauthorizedError("only the owner can update a listing")
	}
	if update.Category != nil && !domain.ValidCategory(*update.Category) {
		return nil, domain.ValidationError("unknown category %q", *update.Category)
	}
	if err := s.listingRepo.Update(ctx, id, update); err != nil {
		return nil, err
	}
	return s.listingRepo.GetByID(ctx, id)
}

func (s *listingService) DeleteListing(ctx context.Context, ownerID, id string) error {
	existing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return domain.UnauthorizedError("only the owner can delete a listing")
	}
	return s.listingRepo.Delete(ctx, id)
}

func (s *listingService) SearchListings(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	return s.listingRepo.List(ctx, filter)
}

func (s *listingService) FeaturedListings(ctx context.Context, limit int) ([]domain.Listing, error) {
	return s.listingRepo.ListFeatured(ctx, limit)
}

func (s *listingService) MyListings(ctx context.Context, ownerID string) ([]domain.Listing, error) {
	return s.listingRepo.ListByOwner(ctx, ownerID)
}
