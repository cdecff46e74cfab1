package domain

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusPaid      BookingStatus = "paid"
	BookingStatusDisputed  BookingStatus = "disputed"
)

type EscrowStatus string

const (
	EscrowStatusPending  EscrowStatus = "pending"
	EscrowStatusHeld     EscrowStatus = "held"
	EscrowStatusReleased EscrowStatus = "released"
	EscrowStatusRefunded EscrowStatus = "refunded"
)

type DurationType string

const (
	DurationTypeHourly DurationType = "hourly"
	DurationTypeDaily  DurationType = "daily"
	DurationTypeWeekly DurationType = "weekly"
)

// ActiveBookingStatuses are the statuses that block a listing's dates.
// Rejected, cancelled, completed and disputed bookings do not.
var ActiveBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusPaid,
}

// Booking is a reservation of a listing for a date range. Rows are never
// deleted; terminal statuses keep the audit trail.
type Booking struct {
	ID           string  `json:"id"`
	ListingID    string  `json:"listing_id"`
	ListingTitle string  `json:"listing_title,omitempty"`
	ListingImage *string `json:"listing_image,omitempty"`
	RenterID     string  `json:"renter_id"`
	RenterName   string  `json:"renter_name"`
	OwnerID      string  `json:"owner_id"`

	StartDate    string       `json:"start_date"` // YYYY-MM-DD
	EndDate      string       `json:"end_date"`   // YYYY-MM-DD
	DurationType DurationType `json:"duration_type"`
	Hours        int          `json:"hours,omitempty"`

	// Pricing snapshot computed at creation time.
	TotalPrice      float64 `json:"total_price"`
	PlatformFee     float64 `json:"platform_fee"`
	SurgeDays       int     `json:"surge_days"`
	SurgePercentage float64 `json:"surge_percentage"`
	DiscountApplied float64 `json:"discount_applied"`
	DiscountLabel   string  `json:"discount_label,omitempty"`

	Status             BookingStatus `json:"status"`
	EscrowStatus       EscrowStatus  `json:"escrow_status"`
	ReceiptConfirmed   bool          `json:"receipt_confirmed"`
	ReceiptConfirmedAt *string       `json:"receipt_confirmed_at,omitempty"`
	// AutoReleaseDate is end_date + 3 days: the deadline for the sweep to
	// release held funds when the renter neither confirms nor disputes.
	AutoReleaseDate string `json:"auto_release_date"`

	CreatedOn string `json:"created_at"`
	UpdatedOn string `json:"-"`
}

// DateRange is a booked window returned by the public availability endpoint.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// EscrowRelease is the monetary outcome of a receipt confirmation or
// auto-release: the owner credit and the payout row written with it.
type EscrowRelease struct {
	Booking     *Booking
	OwnerID     string
	OwnerAmount float64
	PayoutID    string
}
