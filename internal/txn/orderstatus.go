package txn

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/julmon/pgmtr/internal/pgsession"
)

// OrderStatus reports the status of a customer's most recent order.
// The customer is resolved by last name 60% of the time, taking the
// middle-of-the-ordered-result row exactly as Payment does.
//
// Every error here is labeled "order-status:" — the original driver
// mislabeled this abort path as a Payment rollback even though it is
// Order-Status's own code running. That mislabeling is not reproduced.
func OrderStatus(ctx context.Context, rng *rand.Rand, sess *pgsession.Session, warehouseID int) Outcome {
	y := 1 + rng.Intn(100)
	districtID := 1 + rng.Intn(10)

	var lastName string
	customerID := 1 + rng.Intn(3000)
	if y <= 60 {
		lastName = newRowGenForNames(rng).genLast(1 + rng.Intn(999))
	}

	start := time.Now()
	tx, err := sess.Begin(ctx)
	if err != nil {
		return Outcome{Err: fmt.Errorf("order-status: begin: %w", err)}
	}

	if y <= 60 {
		rows, err := tx.Query(ctx, `
			SELECT c_id FROM customer WHERE c_w_id = $1 AND c_d_id = $2 AND c_last = $3
			ORDER BY c_first ASC`,
			warehouseID, districtID, lastName)
		if err != nil {
			_ = tx.Rollback(ctx)
			return Outcome{Err: fmt.Errorf("order-status: %w", err)}
		}
		var ids []int
		for rows.Next() {
			var id int
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				_ = tx.Rollback(ctx)
				return Outcome{Err: fmt.Errorf("order-status: %w", err)}
			}
			ids = append(ids, id)
		}
		rows.Close()
		if len(ids) == 0 {
			_ = tx.Rollback(ctx)
			return Outcome{Err: fmt.Errorf("order-status: no customer found (c_last=%q)", lastName)}
		}
		customerID = ids[len(ids)/2]
	}

	if _, err := tx.Exec(ctx, `
		SELECT c_balance, c_first, c_middle, c_last FROM customer
		WHERE c_w_id = $1 AND c_d_id = $2 AND c_id = $3`,
		warehouseID, districtID, customerID); err != nil {
		_ = tx.Rollback(ctx)
		return Outcome{Err: fmt.Errorf("order-status: %w", err)}
	}

	var orderID int
	err = tx.QueryRow(ctx, `
		SELECT o_id FROM orders WHERE o_w_id = $1 AND o_d_id = $2 AND o_c_id = $3
		ORDER BY o_entry_d DESC LIMIT 1`,
		warehouseID, districtID, customerID).Scan(&orderID)
	if err != nil {
		_ = tx.Rollback(ctx)
		return Outcome{Err: fmt.Errorf("order-status: no order found for customer: %w", err)}
	}

	if _, err := tx.Exec(ctx, `
		SELECT ol_i_id, ol_supply_w_id, ol_quantity, ol_amount, ol_delivery_d
		FROM order_line WHERE ol_w_id = $1 AND ol_d_id = $2 AND ol_o_id = $3`,
		warehouseID, districtID, orderID); err != nil {
		_ = tx.Rollback(ctx)
		return Outcome{Err: fmt.Errorf("order-status: %w", err)}
	}

	if err := tx.Commit(ctx); err != nil {
		return Outcome{Err: fmt.Errorf("order-status: commit: %w", err)}
	}
	return Outcome{DurationUS: elapsedUS(start)}
}
