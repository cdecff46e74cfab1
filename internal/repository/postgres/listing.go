package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentall-backend/internal/domain"
	"rentall-backend/internal/repository"

	"github.com/lib/pq"
)

type listingRepository struct {
	db *sql.DB
}

func NewListingRepository(db *sql.DB) repository.ListingRepository {
	return &listingRepository{db: db}
}

const listingColumns = `id, owner_id, owner_name, owner_avatar, title, description, category, location,
	latitude, longitude, images, price_per_hour, price_per_day, price_per_week,
	min_rental_hours, min_rental_days, max_rental_days,
	surge_enabled, surge_percentage, surge_weekends, surge_dates,
	discount_weekly, discount_monthly, discount_quarterly,
	avg_rating, review_count, is_available, created_on`

func (r *listingRepository) Create(ctx context.Context, l *domain.Listing) error {
	query := `INSERT INTO listings (id, owner_id, owner_name, owner_avatar, title, description, category, location,
	            latitude, longitude, images, price_per_hour, price_per_day, price_per_week,
	            min_rental_hours, min_rental_days, max_rental_days,
	            surge_enabled, surge_percentage, surge_weekends, surge_dates,
	            discount_weekly, discount_monthly, discount_quarterly,
	            avg_rating, review_count, is_available, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
	            $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, 0, 0, true, $25)`
	now := time.Now().UTC()
	l.CreatedOn = now.Format(time.RFC3339)
	l.IsAvailable = true
	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.OwnerID, l.OwnerName, l.OwnerAvatar, l.Title, l.Description, l.Category, l.Location,
		l.Latitude, l.Longitude, pq.Array(l.Images), l.PricePerHour, l.PricePerDay, l.PricePerWeek,
		l.MinRentalHours, l.MinRentalDays, l.MaxRentalDays,
		l.SurgeEnabled, l.SurgePercentage, l.SurgeWeekends, pq.Array(l.SurgeDates),
		l.DiscountWeekly, l.DiscountMonthly, l.DiscountQuarterly, now,
	)
	return err
}

func scanListing(row interface{ Scan(...any) error }) (*domain.Listing, error) {
	l := &domain.Listing{}
	var createdOn time.Time
	err := row.Scan(
		&l.ID, &l.OwnerID, &l.OwnerName, &l.OwnerAvatar, &l.Title, &l.Description, &l.Category, &l.Location,
		&l.Latitude, &l.Longitude, pq.Array(&l.Images), &l.PricePerHour, &l.PricePerDay, &l.PricePerWeek,
		&l.MinRentalHours, &l.MinRentalDays, &l.MaxRentalDays,
		&l.SurgeEnabled, &l.SurgePercentage, &l.SurgeWeekends, pq.Array(&l.SurgeDates),
		&l.DiscountWeekly, &l.DiscountMonthly, &l.DiscountQuarterly,
		&l.AvgRating, &l.ReviewCount, &l.IsAvailable, &createdOn,
	)
	if err != nil {
		return nil, err
	}
	l.CreatedOn = createdOn.Format(time.RFC3339)
	return l, nil
}

func (r *listingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, id)
	l, err := scanListing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("listing not found")
	}
	return l, err
}

func (r *listingRepository) Update(ctx context.Context, id string, up domain.ListingUpdate) error {
	var images, surgeDates any
	if up.Images != nil {
		images = pq.Array(*up.Images)
	}
	if up.SurgeDates != nil {
		surgeDates = pq.Array(*up.SurgeDates)
	}
	query := `UPDATE listings SET
	            title = COALESCE($1, title),
	            description = COALESCE($2, description),
	            category = COALESCE($3, category),
	            location = COALESCE($4, location),
	            latitude = COALESCE($5, latitude),
	            longitude = COALESCE($6, longitude),
	            images = COALESCE($7, images),
	            price_per_hour = COALESCE($8, price_per_hour),
	            price_per_day = COALESCE($9, price_per_day),
	            price_per_week = COALESCE($10, price_per_week),
	            min_rental_hours = COALESCE($11, min_rental_hours),
	            min_rental_days = COALESCE($12, min_rental_days),
	            max_rental_days = COALESCE($13, max_rental_days),
	            surge_enabled = COALESCE($14, surge_enabled),
	            surge_percentage = COALESCE($15, surge_percentage),
	            surge_weekends = COALESCE($16, surge_weekends),
	            surge_dates = COALESCE($17, surge_dates),
	            discount_weekly = COALESCE($18, discount_weekly),
	            discount_monthly = COALESCE($19, discount_monthly),
	            discount_quarterly = COALESCE($20, discount_quarterly),
	            is_available = COALESCE($21, is_available)
	          WHERE id = $22`
	res, err := r.db.ExecContext(ctx, query,
		up.Title, up.Description, up.Category, up.Location, up.Latitude, up.Longitude,
		images, up.PricePerHour, up.PricePerDay, up.PricePerWeek,
		up.MinRentalHours, up.MinRentalDays, up.MaxRentalDays,
		up.SurgeEnabled, up.SurgePercentage, up.SurgeWeekends, surgeDates,
		up.DiscountWeekly, up.DiscountMonthly, up.DiscountQuarterly, up.IsAvailable, id,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError("listing not found")
	}
	return nil
}

func (r *listingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError("listing not found")
	}
	return nil
}

func (r *listingRepository) List(ctx context.Context, f domain.ListingFilter) ([]domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE 1=1`
	args := []any{}
	idx := 1

	if f.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", idx)
		args = append(args, f.Category)
		idx++
	}
	if f.Query != "" {
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", idx, idx)
		args = append(args, "%"+f.Query+"%")
		idx++
	}
	if f.MinPrice != nil {
		query += fmt.Sprintf(" AND price_per_day >= $%d", idx)
		args = append(args, *f.MinPrice)
		idx++
	}
	if f.MaxPrice != nil {
		query += fmt.Sprintf(" AND price_per_day <= $%d", idx)
		args = append(args, *f.MaxPrice)
		idx++
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d", idx)
	args = append(args, limit)

	return r.queryListings(ctx, query, args...)
}

func (r *listingRepository) ListFeatured(ctx context.Context, limit int) ([]domain.Listing, error) {
	if limit <= 0 {
		limit = 8
	}
	query := `SELECT ` + listingColumns + ` FROM listings WHERE is_available = true ORDER BY avg_rating DESC LIMIT $1`
	return r.queryListings(ctx, query, limit)
}

func (r *listingRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE owner_id = $1 ORDER BY created_on DESC`
	return r.queryListings(ctx, query, ownerID)
}

func (r *listingRepository) queryListings(ctx context.Context, query string, args ...any) ([]domain.Listing, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, *l)
	}
	return listings, rows.Err()
}

func (r *listingRepository) UpdateRating(ctx context.Context, id string, avgRating float64, reviewCount int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE listings SET avg_rating = $1, review_count = $2 WHERE id = $3`,
		avgRating, reviewCount, id)
	return err
}
