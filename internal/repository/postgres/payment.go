package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentall-backend/internal/domain"
	"rentall-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const transactionColumns = `id, session_id, booking_id, user_id, amount, currency,
	platform_fee, owner_amount, status, payment_status, created_on, updated_on`

func (r *paymentRepository) CreateTransaction(ctx context.Context, t *domain.PaymentTransaction) error {
	now := time.Now().UTC()
	t.CreatedOn = now.Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx, `INSERT INTO payment_transactions (`+transactionColumns+`)
	        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`,
		t.ID, t.SessionID, t.BookingID, t.UserID, t.Amount, t.Currency,
		t.PlatformFee, t.OwnerAmount, t.Status, t.PayStatus, now)
	return err
}

func scanTransaction(row interface{ Scan(...any) error }) (*domain.PaymentTransaction, error) {
	t := &domain.PaymentTransaction{}
	var createdOn, updatedOn time.Time
	err := row.Scan(
		&t.ID, &t.SessionID, &t.BookingID, &t.UserID, &t.Amount, &t.Currency,
		&t.PlatformFee, &t.OwnerAmount, &t.Status, &t.PayStatus, &createdOn, &updatedOn,
	)
	if err != nil {
		return nil, err
	}
	t.CreatedOn = createdOn.Format(time.RFC3339)
	t.UpdatedOn = updatedOn.Format(time.RFC3339)
	return t, nil
}

func (r *paymentRepository) GetBySessionID(ctx context.Context, sessionID string) (*domain.PaymentTransaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM payment_transactions WHERE session_id = $1`, sessionID)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("payment transaction not found")
	}
	return t, err
}

// MarkPaid is the idempotency gate for webhook and polling races: only the
// first caller flips the row, everyone else sees false.
func (r *paymentRepository) MarkPaid(ctx context.Context, sessionID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE payment_transactions
	     SET status = 'completed', payment_status = 'paid', updated_on = $1
	     WHERE session_id = $2 AND payment_status != 'paid'`,
		time.Now().UTC(), sessionID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *paymentRepository) MarkExpired(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE payment_transactions
	     SET status = 'expired', payment_status = 'expired', updated_on = $1
	     WHERE session_id = $2 AND payment_status = 'pending'`,
		time.Now().UTC(), sessionID)
	return err
}

func (r *paymentRepository) ListPending(ctx context.Context) ([]domain.PaymentTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM payment_transactions
	     WHERE payment_status = 'pending' ORDER BY created_on`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.PaymentTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *t)
	}
	return txs, rows.Err()
}

func (r *paymentRepository) UpdatePayout(ctx context.Context, payoutID string, status domain.PayoutStatus, transferRef *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE payouts SET status = $1, transfer_ref = COALESCE($2, transfer_ref) WHERE id = $3`,
		status, transferRef, payoutID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError("payout not found")
	}
	return nil
}
