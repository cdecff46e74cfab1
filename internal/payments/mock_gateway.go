package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"rentall-backend/internal/domain"

	"github.com/google/uuid"
)

// MockGateway implements hosted checkout in memory. This is for local
// development and tests without a Stripe account: sessions start unpaid and
// are flipped by CompleteSession.
type MockGateway struct {
	mu       sync.Mutex
	sessions map[string]*SessionStatus
	baseURL  string
}

func NewMockGateway(baseURL string) *MockGateway {
	return &MockGateway{
		sessions: make(map[string]*SessionStatus),
		baseURL:  baseURL,
	}
}

func (g *MockGateway) CreateCheckoutSession(ctx context.Context, bookingID string, amount float64, currency, successURL, cancelURL string) (*CheckoutSession, error) {
	if amount <= 0 {
		return nil, domain.ValidationError("checkout amount must be positive")
	}

	sessionID := "cs_mock_" + uuid.NewString()
	g.mu.Lock()
	g.sessions[sessionID] = &SessionStatus{
		SessionID:     sessionID,
		Status:        "open",
		PaymentStatus: "unpaid",
	}
	g.mu.Unlock()

	return &CheckoutSession{
		SessionID:   sessionID,
		CheckoutURL: fmt.Sprintf("%s/mock-checkout/%s", g.baseURL, sessionID),
	}, nil
}

func (g *MockGateway) GetSessionStatus(ctx context.Context, sessionID string) (*SessionStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, ok := g.sessions[sessionID]
	if !ok {
		return nil, domain.NotFoundError("checkout session not found")
	}
	copied := *s
	return &copied, nil
}

// CompleteSession marks a session paid, simulating the renter finishing
// checkout on the gateway's hosted page.
func (g *MockGateway) CompleteSession(sessionID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, ok := g.sessions[sessionID]
	if !ok {
		return domain.NotFoundError("checkout session not found")
	}
	s.Status = "complete"
	s.PaymentStatus = "paid"
	return nil
}

// ExpireSession abandons a session, simulating a checkout timeout.
func (g *MockGateway) ExpireSession(sessionID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, ok := g.sessions[sessionID]
	if !ok {
		return domain.NotFoundError("checkout session not found")
	}
	s.Status = "expired"
	s.PaymentStatus = "unpaid"
	return nil
}

// VerifyWebhook accepts any payload signed with the literal mock signature.
// The payload is the JSON encoding of WebhookEvent.
func (g *MockGateway) VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	if signature != MockWebhookSignature {
		return nil, domain.UnauthorizedError("invalid webhook signature")
	}
	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, domain.ValidationError("malformed webhook payload")
	}
	if event.SessionID == "" {
		return nil, domain.ValidationError("webhook event missing session id")
	}
	return &event, nil
}

const MockWebhookSignature = "mock-signature"

// MockPayoutProvider records transfers in memory.
type MockPayoutProvider struct {
	mu        sync.Mutex
	Transfers []MockTransfer
	FailNext  bool
}

type MockTransfer struct {
	OwnerAccount string
	Amount       float64
	Currency     string
	Ref          string
}

func NewMockPayoutProvider() *MockPayoutProvider {
	return &MockPayoutProvider{}
}

func (p *MockPayoutProvider) Transfer(ctx context.Context, ownerAccount string, amount float64, currency string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailNext {
		p.FailNext = false
		return "", fmt.Errorf("transfer to %s declined", ownerAccount)
	}
	ref := "tr_mock_" + uuid.NewString()
	p.Transfers = append(p.Transfers, MockTransfer{
		OwnerAccount: ownerAccount,
		Amount:       amount,
		Currency:     currency,
		Ref:          ref,
	})
	return ref, nil
}
