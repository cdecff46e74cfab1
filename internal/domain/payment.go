package domain

type TransactionStatus string

const (
	TransactionStatusInitiated TransactionStatus = "initiated"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusExpired   TransactionStatus = "expired"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusExpired PaymentStatus = "expired"
)

// PaymentTransaction records one checkout attempt against the gateway,
// correlated by the gateway's opaque session id.
type PaymentTransaction struct {
	ID          string            `json:"id"`
	SessionID   string            `json:"session_id"`
	BookingID   string            `json:"booking_id"`
	UserID      string            `json:"user_id"`
	Amount      float64           `json:"amount"`
	Currency    string            `json:"currency"`
	PlatformFee float64           `json:"platform_fee"`
	OwnerAmount float64           `json:"owner_amount"`
	Status      TransactionStatus `json:"status"`
	PayStatus   PaymentStatus     `json:"payment_status"`
	CreatedOn   string            `json:"created_at"`
	UpdatedOn   string            `json:"-"`
}

type PayoutStatus string

const (
	PayoutStatusCredited    PayoutStatus = "credited"    // balance credited, no external transfer
	PayoutStatusTransferred PayoutStatus = "transferred" // external transfer initiated
	PayoutStatusFailed      PayoutStatus = "transfer_failed"
)

// Payout is the audit record of one escrow release to an owner.
type Payout struct {
	ID          string       `json:"id"`
	BookingID   string       `json:"booking_id"`
	OwnerID     string       `json:"owner_id"`
	Amount      float64      `json:"amount"`
	TransferRef *string      `json:"transfer_ref,omitempty"`
	Status      PayoutStatus `json:"status"`
	CreatedOn   string       `json:"created_at"`
}
