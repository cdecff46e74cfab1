package jobs

import (
	"context"
	"time"

	"rentall-backend/internal/logger"
)

// ReleaseExpiredEscrows releases held funds for paid bookings whose renter
// neither confirmed receipt nor disputed before the auto-release deadline.
func (jr *JobRunner) ReleaseExpiredEscrows() {
	jr.runWithRecovery("ReleaseExpiredEscrows", func() {
		ctx := context.Background()
		today := time.Now().UTC().Format("2006-01-02")

		bookings, err := jr.store.ListAutoReleasable(ctx, today)
		if err != nil {
			logger.Error("Failed to list auto-releasable bookings", "error", err)
			return
		}

		released := 0
		releasedAt := time.Now().UTC().Format(time.RFC3339)
		for _, b := range bookings {
			if err := jr.services.Bookings.ReleaseEscrowFor(ctx, b.ID, releasedAt); err != nil {
				logger.Error("Failed to auto-release escrow", "booking_id", b.ID, "error", err)
				continue
			}
			released++
		}

		logger.Info("Auto-released escrows", "candidates", len(bookings), "released", released)
	})
}

// ExpireStalePendingBookings cancels pending bookings whose start date has
// already passed, freeing the listing's dates.
func (jr *JobRunner) ExpireStalePendingBookings() {
	jr.runWithRecovery("ExpireStalePendingBookings", func() {
		ctx := context.Background()
		today := time.Now().UTC().Format("2006-01-02")

		n, err := jr.store.ExpireStalePending(ctx, today)
		if err != nil {
			logger.Error("Failed to expire stale pending bookings", "error", err)
			return
		}
		logger.Info("Expired stale pending bookings", "count", n)
	})
}
