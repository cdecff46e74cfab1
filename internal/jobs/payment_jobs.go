package jobs

import (
	"context"

	"rentall-backend/internal/logger"
)

// PollPendingPayments reconciles initiated transactions against the gateway,
// catching payments whose webhook delivery was lost.
func (jr *JobRunner) PollPendingPayments() {
	jr.runWithRecovery("PollPendingPayments", func() {
		ctx := context.Background()

		pending, err := jr.store.ListPending(ctx)
		if err != nil {
			logger.Error("Failed to list pending payment transactions", "error", err)
			return
		}

		for _, tx := range pending {
			if _, err := jr.services.Payments.CheckStatus(ctx, tx.SessionID); err != nil {
				logger.Error("Failed to reconcile payment", "session_id", tx.SessionID, "error", err)
			}
		}

		logger.Info("Polled pending payments", "count", len(pending))
	})
}
