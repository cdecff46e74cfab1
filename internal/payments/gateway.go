package payments

import "context"

// CheckoutSession is the gateway's hosted payment page for one booking.
type CheckoutSession struct {
	SessionID   string
	CheckoutURL string
}

// SessionStatus is the gateway-side state of a checkout session.
type SessionStatus struct {
	SessionID     string
	Status        string // "open", "complete", "expired"
	PaymentStatus string // "unpaid", "paid"
}

// WebhookEvent is a verified gateway callback.
type WebhookEvent struct {
	Type      string // "checkout.session.completed", "checkout.session.expired"
	SessionID string
}

// Gateway abstracts the hosted-checkout payment provider. The service layer
// never talks to the provider SDK directly so tests and local development run
// against the mock.
type Gateway interface {
	// CreateCheckoutSession opens a session for the amount (in dollars) and
	// returns the URL the renter is redirected to.
	CreateCheckoutSession(ctx context.Context, bookingID string, amount float64, currency, successURL, cancelURL string) (*CheckoutSession, error)

	// GetSessionStatus polls the gateway for the session's current state.
	GetSessionStatus(ctx context.Context, sessionID string) (*SessionStatus, error)

	// VerifyWebhook authenticates a raw webhook payload and returns the
	// parsed event. Invalid signatures return an error.
	VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

// PayoutProvider moves released escrow funds to the owner's external
// account. The ledger credit happens regardless; the transfer is best effort
// and retried out of band when it fails.
type PayoutProvider interface {
	Transfer(ctx context.Context, ownerAccount string, amount float64, currency string) (transferRef string, err error)
}
