// Package txn implements the five TPC-C-like business transactions.
// Each routine owns its own Begin/Commit/Rollback and returns the
// elapsed microseconds of its own critical section, following the
// delivery/new_order/payment/order_status/stock_level control flow
// and a per-routine client/session split.
package txn

import (
	"context"
	"math/rand"
	"time"

	"github.com/julmon/pgmtr/internal/pgsession"
)

// Outcome mirrors the original's TXMessage committed/error split: a
// routine returns either a non-negative duration and a nil error, or a
// zero duration and a non-nil, routine-labeled error. A rollback is
// always reported through the error path, never silently folded into
// a commit.
type Outcome struct {
	DurationUS int64
	Err        error
}

// Run dispatches by transaction id to the matching routine. The
// warehouse for this call is drawn uniformly from [minID, maxID];
// minID/maxID are also passed on for the cross-warehouse draws in
// New-Order and Payment.
func Run(ctx context.Context, rng *rand.Rand, sess *pgsession.Session, txID, minID, maxID int) Outcome {
	switch txID {
	case 1:
		return Delivery(ctx, rng, sess, pick(rng, minID, maxID))
	case 2:
		return NewOrder(ctx, rng, sess, pick(rng, minID, maxID), minID, maxID)
	case 3:
		return Payment(ctx, rng, sess, pick(rng, minID, maxID), minID, maxID)
	case 4:
		return OrderStatus(ctx, rng, sess, pick(rng, minID, maxID))
	case 5:
		return StockLevel(ctx, rng, sess, pick(rng, minID, maxID))
	default:
		panic("txn: unknown transaction id")
	}
}

func pick(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}

func elapsedUS(start time.Time) int64 {
	return time.Since(start).Microseconds()
}
