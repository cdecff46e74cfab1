package domain

// Review is a renter's rating of a listing after a paid or completed booking.
type Review struct {
	ID             string  `json:"id"`
	ListingID      string  `json:"listing_id"`
	ReviewerID     string  `json:"reviewer_id"`
	ReviewerName   string  `json:"reviewer_name"`
	ReviewerAvatar *string `json:"reviewer_avatar,omitempty"`
	Rating         int     `json:"rating"` // 1..5
	Comment        string  `json:"comment"`
	CreatedOn      string  `json:"created_at"`
}
