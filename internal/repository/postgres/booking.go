package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentall-backend/internal/domain"
	"rentall-backend/internal/repository"

	"github.com/google/uuid"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, listing_id, listing_title, listing_image, renter_id, renter_name, owner_id,
	start_date, end_date, duration_type, hours,
	total_price, platform_fee, surge_days, surge_percentage, discount_applied, discount_label,
	status, escrow_status, receipt_confirmed, receipt_confirmed_at, auto_release_date,
	created_on, updated_on`

// CreateIfAvailable closes the check-then-insert race by locking the listing
// row for the duration of the conflict check and insert. Overlap is inclusive
// on both ends: touching ranges conflict.
func (r *bookingRepository) CreateIfAvailable(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Per-listing critical section.
	var locked string
	err = tx.QueryRowContext(ctx, `SELECT id FROM listings WHERE id = $1 FOR UPDATE`, b.ListingID).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError("listing not found")
	}
	if err != nil {
		return err
	}

	var conflict bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS (
	        SELECT 1 FROM bookings
	        WHERE listing_id = $1
	          AND status IN ('pending', 'confirmed', 'paid')
	          AND start_date <= $2 AND end_date >= $3
	    )`, b.ListingID, b.EndDate, b.StartDate).Scan(&conflict)
	if err != nil {
		return err
	}
	if conflict {
		return domain.ConflictError("dates not available")
	}

	now := time.Now().UTC()
	b.CreatedOn = now.Format(time.RFC3339)
	_, err = tx.ExecContext(ctx, `INSERT INTO bookings (`+bookingColumns+`)
	        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $23)`,
		b.ID, b.ListingID, b.ListingTitle, b.ListingImage, b.RenterID, b.RenterName, b.OwnerID,
		b.StartDate, b.EndDate, b.DurationType, b.Hours,
		b.TotalPrice, b.PlatformFee, b.SurgeDays, b.SurgePercentage, b.DiscountApplied, b.DiscountLabel,
		b.Status, b.EscrowStatus, b.ReceiptConfirmed, b.ReceiptConfirmedAt, b.AutoReleaseDate, now)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	b := &domain.Booking{}
	var createdOn, updatedOn time.Time
	err := row.Scan(
		&b.ID, &b.ListingID, &b.ListingTitle, &b.ListingImage, &b.RenterID, &b.RenterName, &b.OwnerID,
		&b.StartDate, &b.EndDate, &b.DurationType, &b.Hours,
		&b.TotalPrice, &b.PlatformFee, &b.SurgeDays, &b.SurgePercentage, &b.DiscountApplied, &b.DiscountLabel,
		&b.Status, &b.EscrowStatus, &b.ReceiptConfirmed, &b.ReceiptConfirmedAt, &b.AutoReleaseDate,
		&createdOn, &updatedOn,
	)
	if err != nil {
		return nil, err
	}
	b.CreatedOn = createdOn.Format(time.RFC3339)
	b.UpdatedOn = updatedOn.Format(time.RFC3339)
	return b, nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("booking not found")
	}
	return b, err
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID string) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE renter_id = $1 ORDER BY created_on DESC`
	return r.queryBookings(ctx, query, renterID)
}

func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE owner_id = $1 ORDER BY created_on DESC`
	return r.queryBookings(ctx, query, ownerID)
}

func (r *bookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) ListBookedDates(ctx context.Context, listingID string) ([]domain.DateRange, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT start_date, end_date FROM bookings
	        WHERE listing_id = $1 AND status IN ('pending', 'confirmed', 'paid')
	        ORDER BY start_date`, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ranges []domain.DateRange
	for rows.Next() {
		var dr domain.DateRange
		if err := rows.Scan(&dr.Start, &dr.End); err != nil {
			return nil, err
		}
		ranges = append(ranges, dr)
	}
	return ranges, rows.Err()
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = $1, updated_on = $2 WHERE id = $3`,
		status, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError("booking not found")
	}
	return nil
}

func (r *bookingRepository) MarkPaid(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = 'paid', escrow_status = 'held', updated_on = $1
	     WHERE id = $2 AND status IN ('pending', 'confirmed')`,
		time.Now().UTC(), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *bookingRepository) MarkDisputed(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = 'disputed', updated_on = $1 WHERE id = $2`,
		time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError("booking not found")
	}
	return nil
}

// ReleaseEscrow performs the one-way receipt latch and both monetary
// mutations in a single transaction: the booking flips to
// completed/released, the owner balance is credited and the payout row is
// written, or nothing happens at all.
func (r *bookingRepository) ReleaseEscrow(ctx context.Context, bookingID string, confirmedAt string) (*domain.EscrowRelease, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `UPDATE bookings
	        SET status = 'completed', escrow_status = 'released',
	            receipt_confirmed = true, receipt_confirmed_at = $1, updated_on = $2
	        WHERE id = $3 AND status = 'paid' AND receipt_confirmed = false
	        RETURNING `+bookingColumns, confirmedAt, time.Now().UTC(), bookingID)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.AlreadyProcessedError("booking is not awaiting receipt confirmation")
	}
	if err != nil {
		return nil, err
	}

	ownerAmount := b.TotalPrice - b.PlatformFee
	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET balance = balance + $1, updated_on = $2 WHERE id = $3`,
		ownerAmount, time.Now().UTC(), b.OwnerID); err != nil {
		return nil, err
	}

	payoutID := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO payouts (id, booking_id, owner_id, amount, status, created_on)
	     VALUES ($1, $2, $3, $4, 'credited', $5)`,
		payoutID, b.ID, b.OwnerID, ownerAmount, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &domain.EscrowRelease{
		Booking:     b,
		OwnerID:     b.OwnerID,
		OwnerAmount: ownerAmount,
		PayoutID:    payoutID,
	}, nil
}

func (r *bookingRepository) ListAutoReleasable(ctx context.Context, asOf string) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
	        WHERE status = 'paid' AND receipt_confirmed = false AND auto_release_date <= $1
	        ORDER BY auto_release_date`
	return r.queryBookings(ctx, query, asOf)
}

func (r *bookingRepository) ExpireStalePending(ctx context.Context, before string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = 'cancelled', updated_on = $1
	     WHERE status = 'pending' AND start_date < $2`,
		time.Now().UTC(), before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *bookingRepository) HasRentedListing(ctx context.Context, renterID, listingID string) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (
	        SELECT 1 FROM bookings
	        WHERE listing_id = $1 AND renter_id = $2 AND status IN ('paid', 'completed')
	    )`, listingID, renterID).Scan(&ok)
	return ok, err
}
