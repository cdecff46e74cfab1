package domain

// Message is one direct message between counterparties, optionally tied to a
// listing. Content is stored after contact-detail filtering.
type Message struct {
	ID           string  `json:"id"`
	SenderID     string  `json:"sender_id"`
	SenderName   string  `json:"sender_name"`
	SenderAvatar *string `json:"sender_avatar,omitempty"`
	RecipientID  string  `json:"recipient_id"`
	ListingID    *string `json:"listing_id,omitempty"`
	Content      string  `json:"content"`
	IsRead       bool    `json:"is_read"`
	CreatedOn    string  `json:"created_at"`
}

// Conversation is the per-partner rollup shown in the inbox.
type Conversation struct {
	UserID          string  `json:"user_id"`
	UserName        string  `json:"user_name"`
	UserAvatar      *string `json:"user_avatar,omitempty"`
	LastMessage     string  `json:"last_message"`
	LastMessageTime string  `json:"last_message_time"`
	UnreadCount     int     `json:"unread_count"`
	ListingID       *string `json:"listing_id,omitempty"`
	ListingTitle    *string `json:"listing_title,omitempty"`
}
