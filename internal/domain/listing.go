package domain

// Listing is an item or service offered for rent. Price fields are optional;
// an absent price means that duration type is not offered for this listing.
type Listing struct {
	ID          string   `json:"id"`
	OwnerID     string   `json:"owner_id"`
	OwnerName   string   `json:"owner_name"`
	OwnerAvatar *string  `json:"owner_avatar,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Images      []string `json:"images"`

	PricePerHour *float64 `json:"price_per_hour"`
	PricePerDay  *float64 `json:"price_per_day"`
	PricePerWeek *float64 `json:"price_per_week"`

	MinRentalHours int `json:"min_rental_hours"`
	MinRentalDays  int `json:"min_rental_days"`
	MaxRentalDays  int `json:"max_rental_days"`

	SurgeEnabled    bool     `json:"surge_enabled"`
	SurgePercentage float64  `json:"surge_percentage"`
	SurgeWeekends   bool     `json:"surge_weekends"`
	SurgeDates      []string `json:"surge_dates"`

	DiscountWeekly    float64 `json:"discount_weekly"`
	DiscountMonthly   float64 `json:"discount_monthly"`
	DiscountQuarterly float64 `json:"discount_quarterly"`

	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int     `json:"review_count"`
	IsAvailable bool    `json:"is_available"`
	CreatedOn   string  `json:"created_at"`
}

// ListingUpdate lists exactly the mutable listing fields. Nil means
// "leave unchanged".
type ListingUpdate struct {
	Title             *string
	Description       *string
	Category          *string
	Location          *string
	Latitude          *float64
	Longitude         *float64
	Images            *[]string
	PricePerHour      *float64
	PricePerDay       *float64
	PricePerWeek      *float64
	MinRentalHours    *int
	MinRentalDays     *int
	MaxRentalDays     *int
	SurgeEnabled      *bool
	SurgePercentage   *float64
	SurgeWeekends     *bool
	SurgeDates        *[]string
	DiscountWeekly    *float64
	DiscountMonthly   *float64
	DiscountQuarterly *float64
	IsAvailable       *bool
}

// ListingFilter narrows listing searches.
type ListingFilter struct {
	Category string
	Query    string
	MinPrice *float64
	MaxPrice *float64
	Limit    int
}
