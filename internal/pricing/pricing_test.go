package pricing

import (
	"testing"

	"rentall-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func fp(v float64) *float64 { return &v }

// 2026-01-02 is a Friday; 2026-01-03/04 are the weekend.

func TestComputeDaily(t *testing.T) {
	t.Run("No surge no discount", func(t *testing.T) {
		cfg := Config{PricePerDay: fp(50)}
		q, err := Compute(cfg, "2026-01-05", "2026-01-07", domain.DurationTypeDaily, 0)
		assert.NoError(t, err)
		assert.Equal(t, 2, q.Days)
		assert.Equal(t, 100.00, q.TotalPrice)
		assert.Equal(t, 0, q.SurgeDays)
	})

	t.Run("Same day floors at one day", func(t *testing.T) {
		cfg := Config{PricePerDay: fp(50)}
		q, err := Compute(cfg, "2026-01-05", "2026-01-05", domain.DurationTypeDaily, 0)
		assert.NoError(t, err)
		assert.Equal(t, 1, q.Days)
		assert.Equal(t, 50.00, q.TotalPrice)
	})

	t.Run("Weekend surge Friday to Monday", func(t *testing.T) {
		cfg := Config{
			PricePerDay:     fp(100),
			SurgeEnabled:    true,
			SurgeWeekends:   true,
			SurgePercentage: 20,
		}
		q, err := Compute(cfg, "2026-01-02", "2026-01-05", domain.DurationTypeDaily, 0)
		assert.NoError(t, err)
		assert.Equal(t, 3, q.Days)
		assert.Equal(t, 2, q.SurgeDays)
		// 100*1 + 100*2*1.20
		assert.Equal(t, 340.00, q.TotalPrice)
		assert.Equal(t, 20.0, q.SurgePercentage)
	})

	t.Run("Weekend booked but surge disabled", func(t *testing.T) {
		cfg := Config{PricePerDay: fp(100), SurgeWeekends: true}
		q, err := Compute(cfg, "2026-01-02", "2026-01-04", domain.DurationTypeDaily, 0)
		assert.NoError(t, err)
		assert.Equal(t, 0, q.SurgeDays)
		assert.Equal(t, 200.00, q.TotalPrice)
	})

	t.Run("Explicit surge dates", func(t *testing.T) {
		cfg := Config{
			PricePerDay:     fp(100),
			SurgeEnabled:    true,
			SurgePercentage: 50,
			SurgeDates:      []string{"2026-01-06"},
		}
		q, err := Compute(cfg, "2026-01-05", "2026-01-08", domain.DurationTypeDaily, 0)
		assert.NoError(t, err)
		assert.Equal(t, 1, q.SurgeDays)
		// 100*2 + 100*1*1.50
		assert.Equal(t, 350.00, q.TotalPrice)
	})

	t.Run("Surge percentage defaults to 20", func(t *testing.T) {
		cfg := Config{
			PricePerDay:   fp(100),
			SurgeEnabled:  true,
			SurgeWeekends: true,
		}
		q, err := Compute(cfg, "2026-01-03", "2026-01-04", domain.DurationTypeDaily, 0)
		assert.NoError(t, err)
		assert.Equal(t, 1, q.SurgeDays)
		assert.Equal(t, 120.00, q.TotalPrice)
	})

	t.Run("End day excluded from surge count", func(t *testing.T) {
		// Monday..Saturday: the Saturday end date is not a rented day.
		cfg := Config{
			PricePerDay:   fp(100),
			SurgeEnabled:  true,
			SurgeWeekends: true,
		}
		q, err := Compute(cfg, "2026-01-05", "2026-01-10", domain.DurationTypeDaily, 0)
		assert.NoError(t, err)
		assert.Equal(t, 5, q.Days)
		assert.Equal(t, 0, q.SurgeDays)
		assert.Equal(t, 500.00, q.TotalPrice)
	})

	t.Run("Daily not offered", func(t *testing.T) {
		cfg := Config{PricePerHour: fp(15)}
		_, err := Compute(cfg, "2026-01-05", "2026-01-07", domain.DurationTypeDaily, 0)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not available")
	})

	t.Run("Below minimum days", func(t *testing.T) {
		cfg := Config{PricePerDay: fp(50), MinRentalDays: 3}
		_, err := Compute(cfg, "2026-01-05", "2026-01-07", domain.DurationTypeDaily, 0)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "minimum rental is 3 days")
	})

	t.Run("Above maximum days", func(t *testing.T) {
		cfg := Config{PricePerDay: fp(50), MaxRentalDays: 5}
		_, err := Compute(cfg, "2026-01-05", "2026-01-15", domain.DurationTypeDaily, 0)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "maximum rental is 5 days")
	})

	t.Run("Empty duration type defaults to daily", func(t *testing.T) {
		cfg := Config{PricePerDay: fp(50)}
		q, err := Compute(cfg, "2026-01-05", "2026-01-07", "", 0)
		assert.NoError(t, err)
		assert.Equal(t, 100.00, q.TotalPrice)
	})
}

func TestComputeHourly(t *testing.T) {
	t.Run("Base hourly", func(t *testing.T) {
		cfg := Config{PricePerHour: fp(25), MinRentalHours: 2}
		q, err := Compute(cfg, "2026-01-06", "2026-01-06", domain.DurationTypeHourly, 4)
		assert.NoError(t, err)
		assert.Equal(t, 100.00, q.TotalPrice)
		assert.Equal(t, 0, q.SurgeDays)
	})

	t.Run("Below minimum hours", func(t *testing.T) {
		cfg := Config{PricePerHour: fp(25), MinRentalHours: 2}
		_, err := Compute(cfg, "2026-01-06", "2026-01-06", domain.DurationTypeHourly, 1)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "minimum rental is 2 hours")
	})

	t.Run("Missing hours", func(t *testing.T) {
		cfg := Config{PricePerHour: fp(25)}
		_, err := Compute(cfg, "2026-01-06", "2026-01-06", domain.DurationTypeHourly, 0)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "hours is required")
	})

	t.Run("Hourly not offered", func(t *testing.T) {
		cfg := Config{PricePerDay: fp(50)}
		_, err := Compute(cfg, "2026-01-06", "2026-01-06", domain.DurationTypeHourly, 4)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not available")
	})

	t.Run("Surge tests start date only", func(t *testing.T) {
		cfg := Config{
			PricePerHour:    fp(20),
			SurgeEnabled:    true,
			SurgeWeekends:   true,
			SurgePercentage: 20,
		}
		// Saturday
		q, err := Compute(cfg, "2026-01-03", "2026-01-03", domain.DurationTypeHourly, 5)
		assert.NoError(t, err)
		assert.Equal(t, 1, q.SurgeDays)
		assert.Equal(t, 120.00, q.TotalPrice)

		// Tuesday
		q, err = Compute(cfg, "2026-01-06", "2026-01-06", domain.DurationTypeHourly, 5)
		assert.NoError(t, err)
		assert.Equal(t, 0, q.SurgeDays)
		assert.Equal(t, 100.00, q.TotalPrice)
	})
}

func TestComputeWeekly(t *testing.T) {
	t.Run("Exact week", func(t *testing.T) {
		cfg := Config{PricePerWeek: fp(500), PricePerDay: fp(100)}
		q, err := Compute(cfg, "2026-01-05", "2026-01-12", domain.DurationTypeWeekly, 0)
		assert.NoError(t, err)
		assert.Equal(t, 7, q.Days)
		assert.Equal(t, 500.00, q.TotalPrice)
	})

	t.Run("Week plus extra days at daily rate", func(t *testing.T) {
		cfg := Config{PricePerWeek: fp(500), PricePerDay: fp(100)}
		q, err := Compute(cfg, "2026-01-05", "2026-01-15", domain.DurationTypeWeekly, 0)
		assert.NoError(t, err)
		assert.Equal(t, 10, q.Days)
		// 500*1 + 100*3
		assert.Equal(t, 800.00, q.TotalPrice)
	})

	t.Run("Extra days fall back to pro-rated week", func(t *testing.T) {
		cfg := Config{PricePerWeek: fp(700)}
		q, err := Compute(cfg, "2026-01-05", "2026-01-15", domain.DurationTypeWeekly, 0)
		assert.NoError(t, err)
		// 700 + (700/7)*3
		assert.Equal(t, 1000.00, q.TotalPrice)
	})

	t.Run("Weekly not offered", func(t *testing.T) {
		cfg := Config{PricePerDay: fp(50)}
		_, err := Compute(cfg, "2026-01-05", "2026-01-12", domain.DurationTypeWeekly, 0)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not available")
	})

	t.Run("Surge adds per-day rate share", func(t *testing.T) {
		cfg := Config{
			PricePerWeek:    fp(700),
			PricePerDay:     fp(100),
			SurgeEnabled:    true,
			SurgeWeekends:   true,
			SurgePercentage: 20,
		}
		// Friday to Friday: 7 days, 2 weekend days.
		q, err := Compute(cfg, "2026-01-02", "2026-01-09", domain.DurationTypeWeekly, 0)
		assert.NoError(t, err)
		assert.Equal(t, 2, q.SurgeDays)
		// 700 + 100*2*0.20
		assert.Equal(t, 740.00, q.TotalPrice)
	})
}

func TestDiscounts(t *testing.T) {
	t.Run("Weekly tier at 7 days", func(t *testing.T) {
		cfg := Config{PricePerDay: fp(50), DiscountWeekly: 5}
		q, err := Compute(cfg, "2026-01-05", "2026-01-12", domain.DurationTypeDaily, 0)
		assert.NoError(t, err)
		assert.Equal(t, 332.50, q.TotalPrice) // 350 * 0.95
		assert.Equal(t, 5.0, q.DiscountApplied)
		assert.Equal(t, "weekly", q.DiscountLabel)
	})

	t.Run("No tier below 7 days", func(t *testing.T) {
		cfg := Config{PricePerDay: fp(50), DiscountWeekly: 5}
		q, err := Compute(cfg, "2026-01-05", "2026-01-10", domain.DurationTypeDaily, 0)
		assert.NoError(t, err)
		assert.Equal(t, 250.00, q.TotalPrice)
		assert.Equal(t, "", q.DiscountLabel)
	})

	t.Run("Monthly tier at 30 days", func(t *testing.T) {
		cfg := Config{PricePerDay: fp(50), DiscountWeekly: 5, DiscountMonthly: 15}
		q, err := Compute(cfg, "2026-01-05", "2026-02-04", domain.DurationTypeDaily, 0)
		assert.NoError(t, err)
		assert.Equal(t, 30, q.Days)
		assert.Equal(t, 1275.00, q.TotalPrice) // 1500 * 0.85
		assert.Equal(t, "monthly", q.DiscountLabel)
	})

	t.Run("Quarterly wins, never stacks", func(t *testing.T) {
		cfg := Config{
			PricePerDay:       fp(50),
			DiscountWeekly:    5,
			DiscountMonthly:   15,
			DiscountQuarterly: 25,
		}
		q, err := Compute(cfg, "2026-01-05", "2026-04-05", domain.DurationTypeDaily, 0)
		assert.NoError(t, err)
		assert.Equal(t, 90, q.Days)
		assert.Equal(t, 3375.00, q.TotalPrice) // 4500 * 0.75
		assert.Equal(t, 25.0, q.DiscountApplied)
		assert.Equal(t, "quarterly", q.DiscountLabel)
	})

	t.Run("Zero-rate tier falls through to lower tier", func(t *testing.T) {
		cfg := Config{PricePerDay: fp(50), DiscountWeekly: 5, DiscountMonthly: 0}
		q, err := Compute(cfg, "2026-01-05", "2026-02-04", domain.DurationTypeDaily, 0)
		assert.NoError(t, err)
		assert.Equal(t, "weekly", q.DiscountLabel)
		assert.Equal(t, 1425.00, q.TotalPrice) // 1500 * 0.95
	})

	t.Run("Discount applies to surge-inclusive subtotal", func(t *testing.T) {
		cfg := Config{
			PricePerDay:     fp(75),
			SurgeEnabled:    true,
			SurgeWeekends:   true,
			SurgePercentage: 25,
			DiscountWeekly:  10,
		}
		// Friday to Friday: 7 days, 2 weekend days.
		q, err := Compute(cfg, "2026-01-02", "2026-01-09", domain.DurationTypeDaily, 0)
		assert.NoError(t, err)
		// (75*5 + 75*2*1.25) * 0.90 = 562.50 * 0.90
		assert.Equal(t, 506.25, q.TotalPrice)
	})
}

func TestPlatformFee(t *testing.T) {
	assert.Equal(t, 5.00, PlatformFee(100, 5))
	assert.Equal(t, 15.00, PlatformFee(300, 5))
	assert.Equal(t, 16.63, PlatformFee(332.50, 5)) // 16.625 rounds up
	assert.Equal(t, 0.00, PlatformFee(0, 5))
}

func TestComputeRejectsBadDates(t *testing.T) {
	cfg := Config{PricePerDay: fp(50)}

	_, err := Compute(cfg, "2026-01-10", "2026-01-05", domain.DurationTypeDaily, 0)
	assert.Error(t, err)

	_, err = Compute(cfg, "2026/01/05", "2026-01-07", domain.DurationTypeDaily, 0)
	assert.Error(t, err)

	var perr *Error
	_, err = Compute(cfg, "2026-01-05", "2026-01-07", "fortnightly", 0)
	assert.ErrorAs(t, err, &perr)
}
