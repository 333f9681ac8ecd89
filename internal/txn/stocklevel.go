package txn

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/julmon/pgmtr/internal/pgsession"
)

// StockLevel counts distinct items among the last 20 orders of a
// district whose stock quantity is below a random threshold.
func StockLevel(ctx context.Context, rng *rand.Rand, sess *pgsession.Session, warehouseID int) Outcome {
	districtID := 1 + rng.Intn(10)
	threshold := 10 + rng.Intn(11)

	start := time.Now()
	tx, err := sess.Begin(ctx)
	if err != nil {
		return Outcome{Err: fmt.Errorf("stock-level: begin: %w", err)}
	}

	var nextOrderID int
	err = tx.QueryRow(ctx, `
		SELECT d_next_o_id FROM district WHERE d_w_id = $1 AND d_id = $2`,
		warehouseID, districtID).Scan(&nextOrderID)
	if err != nil {
		_ = tx.Rollback(ctx)
		return Outcome{Err: fmt.Errorf("stock-level: %w", err)}
	}

	rows, err := tx.Query(ctx, `
		SELECT DISTINCT ol_i_id FROM order_line
		WHERE ol_w_id = $1 AND ol_d_id = $2 AND ol_o_id < $3 AND ol_o_id >= ($3 - 20)`,
		warehouseID, districtID, nextOrderID)
	if err != nil {
		_ = tx.Rollback(ctx)
		return Outcome{Err: fmt.Errorf("stock-level: %w", err)}
	}
	var itemIDs []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			_ = tx.Rollback(ctx)
			return Outcome{Err: fmt.Errorf("stock-level: %w", err)}
		}
		itemIDs = append(itemIDs, id)
	}
	rows.Close()

	for _, itemID := range itemIDs {
		if _, err := tx.Exec(ctx, `
			SELECT s_quantity FROM stock WHERE s_w_id = $1 AND s_i_id = $2 AND s_quantity < $3`,
			warehouseID, itemID, threshold); err != nil {
			_ = tx.Rollback(ctx)
			return Outcome{Err: fmt.Errorf("stock-level: %w", err)}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Outcome{Err: fmt.Errorf("stock-level: commit: %w", err)}
	}
	return Outcome{DurationUS: elapsedUS(start)}
}
