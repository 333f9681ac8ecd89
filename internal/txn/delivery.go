package txn

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/julmon/pgmtr/internal/pgsession"
)

// Delivery processes the oldest undelivered order for each of the ten
// districts of warehouseID, assigning a random carrier and updating
// the customer's balance and delivery count.
func Delivery(ctx context.Context, rng *rand.Rand, sess *pgsession.Session, warehouseID int) Outcome {
	carrierID := 1 + rng.Intn(10)

	start := time.Now()
	tx, err := sess.Begin(ctx)
	if err != nil {
		return Outcome{Err: fmt.Errorf("delivery: begin: %w", err)}
	}

	for districtID := 1; districtID <= 10; districtID++ {
		var orderID int
		err := tx.QueryRow(ctx, `
			SELECT no_o_id FROM new_order
			WHERE no_w_id = $1 AND no_d_id = $2
			ORDER BY no_o_id ASC LIMIT 1`,
			warehouseID, districtID).Scan(&orderID)
		if err != nil {
			_ = tx.Rollback(ctx)
			return Outcome{Err: fmt.Errorf("delivery: no undelivered order for district %d: %w", districtID, err)}
		}

		if _, err := tx.Exec(ctx, `
			DELETE FROM new_order WHERE no_o_id = $1 AND no_w_id = $2 AND no_d_id = $3`,
			orderID, warehouseID, districtID); err != nil {
			_ = tx.Rollback(ctx)
			return Outcome{Err: fmt.Errorf("delivery: %w", err)}
		}

		var customerID int
		err = tx.QueryRow(ctx, `
			UPDATE orders SET o_carrier_id = $1
			WHERE o_id = $2 AND o_w_id = $3 AND o_d_id = $4
			RETURNING o_c_id`,
			carrierID, orderID, warehouseID, districtID).Scan(&customerID)
		if err != nil {
			_ = tx.Rollback(ctx)
			return Outcome{Err: fmt.Errorf("delivery: %w", err)}
		}

		if _, err := tx.Exec(ctx, `
			UPDATE order_line SET ol_delivery_d = current_timestamp
			WHERE ol_o_id = $1 AND ol_w_id = $2 AND ol_d_id = $3`,
			orderID, warehouseID, districtID); err != nil {
			_ = tx.Rollback(ctx)
			return Outcome{Err: fmt.Errorf("delivery: %w", err)}
		}

		var totalAmount float64
		err = tx.QueryRow(ctx, `
			SELECT SUM(ol_amount * ol_quantity) FROM order_line
			WHERE ol_o_id = $1 AND ol_w_id = $2 AND ol_d_id = $3`,
			orderID, warehouseID, districtID).Scan(&totalAmount)
		if err != nil {
			_ = tx.Rollback(ctx)
			return Outcome{Err: fmt.Errorf("delivery: %w", err)}
		}

		if _, err := tx.Exec(ctx, `
			UPDATE customer SET c_delivery_cnt = c_delivery_cnt + 1, c_balance = c_balance + $1
			WHERE c_id = $2 AND c_w_id = $3 AND c_d_id = $4`,
			totalAmount, customerID, warehouseID, districtID); err != nil {
			_ = tx.Rollback(ctx)
			return Outcome{Err: fmt.Errorf("delivery: %w", err)}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Outcome{Err: fmt.Errorf("delivery: commit: %w", err)}
	}
	return Outcome{DurationUS: elapsedUS(start)}
}
