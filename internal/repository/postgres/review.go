package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentall-backend/internal/domain"
	"rentall-backend/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

const reviewColumns = `id, listing_id, reviewer_id, reviewer_name, reviewer_avatar, rating, comment, created_on`

func (r *reviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	now := time.Now().UTC()
	rv.CreatedOn = now.Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx, `INSERT INTO reviews (`+reviewColumns+`)
	        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rv.ID, rv.ListingID, rv.ReviewerID, rv.ReviewerName, rv.ReviewerAvatar, rv.Rating, rv.Comment, now)
	return err
}

func (r *reviewRepository) ListByListing(ctx context.Context, listingID string) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE listing_id = $1 ORDER BY created_on DESC`, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		var createdOn time.Time
		if err := rows.Scan(&rv.ID, &rv.ListingID, &rv.ReviewerID, &rv.ReviewerName,
			&rv.ReviewerAvatar, &rv.Rating, &rv.Comment, &createdOn); err != nil {
			return nil, err
		}
		rv.CreatedOn = createdOn.Format(time.RFC3339)
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *reviewRepository) Exists(ctx context.Context, listingID, reviewerID string) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM reviews WHERE listing_id = $1 AND reviewer_id = $2)`,
		listingID, reviewerID).Scan(&ok)
	return ok, err
}

func (r *reviewRepository) Stats(ctx context.Context, listingID string) (float64, int, error) {
	var avg float64
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(ROUND(AVG(rating)::numeric, 1), 0), COUNT(*) FROM reviews WHERE listing_id = $1`,
		listingID).Scan(&avg, &count)
	return avg, count, err
}
