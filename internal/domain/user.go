package domain

// User is a marketplace account. The same account can act as owner on its
// own listings and renter on everyone else's.
type User struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	PasswordHash string  `json:"-"`
	AvatarURL    *string `json:"avatar_url,omitempty"`
	Location     *string `json:"location,omitempty"`
	Bio          *string `json:"bio,omitempty"`
	// Balance is the owner's running earnings balance in dollars,
	// credited when escrow is released.
	Balance float64 `json:"balance"`
	// PayoutAccount references an external transfer destination. Nil means
	// earnings accumulate on the balance only.
	PayoutAccount *string `json:"payout_account,omitempty"`
	CreatedOn     string  `json:"created_at"`
	UpdatedOn     string  `json:"-"`
}

// ProfileUpdate lists exactly the mutable profile fields. Nil means
// "leave unchanged".
type ProfileUpdate struct {
	Name          *string
	AvatarURL     *string
	Location      *string
	Bio           *string
	PayoutAccount *string
}
