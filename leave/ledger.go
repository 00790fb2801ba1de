/*
ledger.go - The availableDays mutation primitive

PURPOSE:
  Ledger.Apply is the ONLY way any code in this repository mutates a
  user's availableDays. Lifecycles compute signed deltas and push them
  through here; nothing else touches the stored counter.

WHY CENTRALIZE?
  The balance is denormalized state: it is maintained incrementally
  rather than recomputed from contracts and requests. Every mutation
  path must therefore apply exactly the right signed delta, and deltas
  must cancel across an entity's lifecycle (create -> update -> delete).
  One primitive keeps that auditable.

ATOMICITY:
  The underlying store executes "available_days = available_days + ?"
  as a single relative update. Two concurrent Apply calls for the same
  user both land regardless of interleaving; there is no read-modify-
  write window to lose.

NO CLAMPING:
  Negative balances are permitted and meaningful (over-approval).

ORPHANED DELTAS:
  If the target user vanished mid-operation (concurrent delete), the
  delta is dropped and logged. The surrounding entity mutation still
  succeeds; a missing balance target is never a request error.
*/
package leave

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Ledger is the authoritative mutator of users' availableDays.
type Ledger struct {
	users UserStore
	log   *logrus.Logger
}

// NewLedger creates a ledger over the given user store.
func NewLedger(users UserStore, log *logrus.Logger) *Ledger {
	return &Ledger{users: users, log: log}
}

// Apply atomically adds delta to the user's availableDays. A zero delta
// is skipped; a missing user is a logged no-op.
func (l *Ledger) Apply(ctx context.Context, userID int64, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}

	applied, err := l.users.AdjustAvailableDays(ctx, userID, delta)
	if err != nil {
		return fmt.Errorf("apply balance delta: %w", err)
	}
	if !applied {
		l.log.WithFields(logrus.Fields{
			"user_id": userID,
			"delta":   delta.String(),
		}).Warn("balance target missing, delta dropped")
	}
	return nil
}
