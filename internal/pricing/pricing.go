// Package pricing computes booking totals from a listing's pricing
// configuration. It is pure: no clocks, no stores, no side effects.
package pricing

import (
	"fmt"
	"math"
	"time"

	"rentall-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// DefaultSurgePercentage applies when a listing enables surge without
// setting an explicit percentage.
const DefaultSurgePercentage = 20.0

// Config is the pricing subset of a listing. Nil price fields mean the
// duration type is not offered.
type Config struct {
	PricePerHour *float64
	PricePerDay  *float64
	PricePerWeek *float64

	MinRentalHours int
	MinRentalDays  int
	MaxRentalDays  int

	SurgeEnabled    bool
	SurgePercentage float64
	SurgeWeekends   bool
	SurgeDates      []string

	DiscountWeekly    float64
	DiscountMonthly   float64
	DiscountQuarterly float64
}

// Quote is the result of a price computation.
type Quote struct {
	TotalPrice      float64
	Days            int
	SurgeDays       int
	SurgePercentage float64 // percentage actually applied, 0 when no surge days
	DiscountApplied float64 // percentage, 0 when no tier matched
	DiscountLabel   string  // "weekly", "monthly", "quarterly" or ""
}

// Error reports which pricing constraint a request violated.
type Error struct {
	Reason string
}

func (e *Error) Error() string { return e.Reason }

func errf(format string, args ...any) *Error {
	return &Error{Reason: fmt.Sprintf(format, args...)}
}

// Compute prices a booking request against cfg. start and end are
// YYYY-MM-DD; hours is only meaningful for hourly bookings. The caller is
// responsible for rejecting end < start (and end == start for non-hourly
// bookings) before calling.
func Compute(cfg Config, startDate, endDate string, durationType domain.DurationType, hours int) (*Quote, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, errf("invalid start date %q", startDate)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, errf("invalid end date %q", endDate)
	}
	if end.Before(start) {
		return nil, errf("end date must not be before start date")
	}

	switch durationType {
	case domain.DurationTypeHourly:
		return computeHourly(cfg, start, hours)
	case domain.DurationTypeWeekly:
		return computeWeekly(cfg, start, end)
	case domain.DurationTypeDaily, "":
		return computeDaily(cfg, start, end)
	default:
		return nil, errf("unknown duration type %q", durationType)
	}
}

func computeHourly(cfg Config, start time.Time, hours int) (*Quote, error) {
	if cfg.PricePerHour == nil {
		return nil, errf("hourly pricing not available for this listing")
	}
	if hours <= 0 {
		return nil, errf("hours is required for hourly bookings")
	}
	if hours < cfg.MinRentalHours {
		return nil, errf("minimum rental is %d hours", cfg.MinRentalHours)
	}

	base := *cfg.PricePerHour * float64(hours)
	surgeDays := 0
	surgePct := 0.0
	// Hourly bookings surge on the start date only, never per hour.
	if isSurgeDay(cfg, start) {
		surgeDays = 1
		surgePct = surgePercentage(cfg)
		base += base * surgePct / 100
	}

	return &Quote{
		TotalPrice:      round2(base),
		Days:            1,
		SurgeDays:       surgeDays,
		SurgePercentage: surgePct,
	}, nil
}

func computeDaily(cfg Config, start, end time.Time) (*Quote, error) {
	if cfg.PricePerDay == nil {
		return nil, errf("daily pricing not available for this listing")
	}

	days := wholeDays(start, end)
	if cfg.MinRentalDays > 0 && days < cfg.MinRentalDays {
		return nil, errf("minimum rental is %d days", cfg.MinRentalDays)
	}
	if cfg.MaxRentalDays > 0 && days > cfg.MaxRentalDays {
		return nil, errf("maximum rental is %d days", cfg.MaxRentalDays)
	}

	rate := *cfg.PricePerDay
	surgeDays := countSurgeDays(cfg, start, days)
	surgePct := 0.0
	normalDays := days - surgeDays
	subtotal := rate * float64(normalDays)
	if surgeDays > 0 {
		surgePct = surgePercentage(cfg)
		subtotal += rate * float64(surgeDays) * (1 + surgePct/100)
	}
	subtotal = round2(subtotal)

	q := &Quote{
		TotalPrice:      subtotal,
		Days:            days,
		SurgeDays:       surgeDays,
		SurgePercentage: surgePct,
	}
	applyDiscount(cfg, q)
	return q, nil
}

func computeWeekly(cfg Config, start, end time.Time) (*Quote, error) {
	if cfg.PricePerWeek == nil {
		return nil, errf("weekly pricing not available for this listing")
	}

	days := wholeDays(start, end)
	if cfg.MaxRentalDays > 0 && days > cfg.MaxRentalDays {
		return nil, errf("maximum rental is %d days", cfg.MaxRentalDays)
	}
	weeks := days / 7
	remaining := days % 7

	// Remaining days bill at the daily rate, falling back to a pro-rated
	// week when no daily price is set.
	perDay := *cfg.PricePerWeek / 7
	if cfg.PricePerDay != nil {
		perDay = *cfg.PricePerDay
	}

	subtotal := *cfg.PricePerWeek*float64(weeks) + perDay*float64(remaining)
	surgeDays := countSurgeDays(cfg, start, days)
	surgePct := 0.0
	if surgeDays > 0 {
		surgePct = surgePercentage(cfg)
		subtotal += perDay * float64(surgeDays) * surgePct / 100
	}
	subtotal = round2(subtotal)

	q := &Quote{
		TotalPrice:      subtotal,
		Days:            days,
		SurgeDays:       surgeDays,
		SurgePercentage: surgePct,
	}
	applyDiscount(cfg, q)
	return q, nil
}

// applyDiscount selects the long-term tier by total day count,
// highest threshold first so overlapping tiers never stack, and reduces
// the surge-inclusive subtotal by that straight percentage.
func applyDiscount(cfg Config, q *Quote) {
	var pct float64
	var label string
	switch {
	case q.Days >= 90 && cfg.DiscountQuarterly > 0:
		pct, label = cfg.DiscountQuarterly, "quarterly"
	case q.Days >= 30 && cfg.DiscountMonthly > 0:
		pct, label = cfg.DiscountMonthly, "monthly"
	case q.Days >= 7 && cfg.DiscountWeekly > 0:
		pct, label = cfg.DiscountWeekly, "weekly"
	default:
		return
	}
	q.DiscountApplied = pct
	q.DiscountLabel = label
	q.TotalPrice = round2(q.TotalPrice * (1 - pct/100))
}

// PlatformFee is the marketplace cut, rounded to cents, computed on the
// post-discount total.
func PlatformFee(total, percent float64) float64 {
	return round2(total * percent / 100)
}

// wholeDays is the day difference floored at one: a same-day booking still
// costs at least one day.
func wholeDays(start, end time.Time) int {
	days := int(end.Sub(start).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return days
}

// countSurgeDays counts qualifying calendar days in [start, start+days).
func countSurgeDays(cfg Config, start time.Time, days int) int {
	if !cfg.SurgeEnabled {
		return 0
	}
	count := 0
	for i := 0; i < days; i++ {
		if isSurgeDay(cfg, start.AddDate(0, 0, i)) {
			count++
		}
	}
	return count
}

// isSurgeDay tests one calendar day: weekend when weekend surging is on,
// or an explicit surge date.
func isSurgeDay(cfg Config, day time.Time) bool {
	if !cfg.SurgeEnabled {
		return false
	}
	if cfg.SurgeWeekends {
		wd := day.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			return true
		}
	}
	if len(cfg.SurgeDates) > 0 {
		str := day.Format(dateLayout)
		for _, d := range cfg.SurgeDates {
			if d == str {
				return true
			}
		}
	}
	return false
}

func surgePercentage(cfg Config) float64 {
	if cfg.SurgePercentage > 0 {
		return cfg.SurgePercentage
	}
	return DefaultSurgePercentage
}

// round2 rounds half away from zero to 2 decimals. Rounding happens once at
// the subtotal, once after discount and once for the fee; never per day.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
