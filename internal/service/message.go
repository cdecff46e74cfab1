package service

import (
	"context"
	"regexp"
	"strings"

	"rentall-backend/internal/domain"
	"rentall-backend/internal/repository"

	"github.com/google/uuid"
)

type messageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	listingRepo repository.ListingRepository
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	listingRepo repository.ListingRepository,
) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		listingRepo: listingRepo,
	}
}

// Counterparties must transact on platform, so contact details are redacted
// from message content before it is stored.
var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\d[\d\s().\-]{7,}\d`)
)

func redactContactDetails(content string) string {
	content = emailPattern.ReplaceAllString(content, "[removed]")
	content = phonePattern.ReplaceAllString(content, "[removed]")
	return content
}

func (s *messageService) SendMessage(ctx context.Context, senderID, recipientID string, listingID *string, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ValidationError("message content is required")
	}
	if senderID == recipientID {
		return nil, domain.ValidationError("cannot message yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, recipientID); err != nil {
		return nil, err
	}
	sender, err := s.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ID:           uuid.NewString(),
		SenderID:     sender.ID,
		SenderName:   sender.Name,
		SenderAvatar: sender.AvatarURL,
		RecipientID:  recipientID,
		ListingID:    listingID,
		Content:      redactContactDetails(content),
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Conversations rolls the user's messages up into one entry per partner,
// newest message first, counting unread incoming messages.
func (s *messageService) Conversations(ctx context.Context, userID string) ([]domain.Conversation, error) {
	messages, err := s.messageRepo.ListInvolving(ctx, userID, 1000)
	if err != nil {
		return nil, err
	}

	byPartner := make(map[string]*domain.Conversation)
	var order []string
	for i := range messages {
		msg := &messages[i]
		partnerID := msg.RecipientID
		if msg.SenderID != userID {
			partnerID = msg.SenderID
		}

		conv, ok := byPartner[partnerID]
		if !ok {
			conv = &domain.Conversation{
				UserID:          partnerID,
				UserName:        "Unknown",
				LastMessage:     msg.Content,
				LastMessageTime: msg.CreatedOn,
				ListingID:       msg.ListingID,
			}
			if partner, err := s.userRepo.GetByID(ctx, partnerID); err == nil {
				conv.UserName = partner.Name
				conv.UserAvatar = partner.AvatarURL
			}
			if msg.ListingID != nil {
				if listing, err := s.listingRepo.GetByID(ctx, *msg.ListingID); err == nil {
					conv.ListingTitle = &listing.Title
				}
			}
			byPartner[partnerID] = conv
			order = append(order, partnerID)
		}

		if msg.RecipientID == userID && !msg.IsRead {
			conv.UnreadCount++
		}
	}

	conversations := make([]domain.Conversation, 0, len(order))
	for _, id := range order {
		conversations = append(conversations, *byPartner[id])
	}
	return conversations, nil
}

func (s *messageService) Thread(ctx context.Context, userID, otherID string) ([]domain.Message, error) {
	messages, err := s.messageRepo.ListBetween(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}
	if err := s.messageRepo.MarkReadFrom(ctx, otherID, userID); err != nil {
		return nil, err
	}
	return messages, nil
}
