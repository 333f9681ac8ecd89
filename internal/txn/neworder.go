package txn

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	set "github.com/deckarep/golang-set"

	"github.com/julmon/pgmtr/internal/pgsession"
)

type orderLineDraw struct {
	number    int
	supplyWID int
	quantity  int
	itemID    int
}

// NewOrder enters a new order of 5-15 lines. 1% of invocations inject
// an unknown item id (999999) to force the Postgres-mandated rollback
// the original driver uses to exercise the abort path.
func NewOrder(ctx context.Context, rng *rand.Rand, sess *pgsession.Session, warehouseID, minID, maxID int) Outcome {
	districtID := 1 + rng.Intn(10)
	customerID := 1 + rng.Intn(3000)
	olCnt := 5 + rng.Intn(11)
	olAllLocal := 1

	itemIDs := set.NewSet()
	lines := make([]orderLineDraw, 0, olCnt)
	rbk := 1 + rng.Intn(100)

	for n := 1; n <= olCnt; n++ {
		supplyWID := warehouseID
		quantity := 1 + rng.Intn(10)

		var itemID int
		for {
			itemID = 1 + rng.Intn(100_000)
			if !itemIDs.Contains(itemID) {
				itemIDs.Add(itemID)
				break
			}
		}
		if rbk == 1 {
			itemID = 999_999
			rbk = 0
		}

		if maxID-minID > 0 {
			if rng.Intn(100)+1 == 1 {
				olAllLocal = 0
				for supplyWID == warehouseID {
					supplyWID = minID + rng.Intn(maxID-minID+1)
				}
			}
		}
		lines = append(lines, orderLineDraw{number: n, supplyWID: supplyWID, quantity: quantity, itemID: itemID})
	}

	start := time.Now()
	tx, err := sess.Begin(ctx)
	if err != nil {
		return Outcome{Err: fmt.Errorf("new-order: begin: %w", err)}
	}

	if _, err := tx.Exec(ctx, `SELECT w_tax FROM warehouse WHERE w_id = $1`, warehouseID); err != nil {
		_ = tx.Rollback(ctx)
		return Outcome{Err: fmt.Errorf("new-order: %w", err)}
	}

	var districtTax float64
	var nextOrderID int
	err = tx.QueryRow(ctx, `
		UPDATE district SET d_next_o_id = d_next_o_id + 1
		WHERE d_w_id = $1 AND d_id = $2
		RETURNING d_tax, d_next_o_id`,
		warehouseID, districtID).Scan(&districtTax, &nextOrderID)
	if err != nil {
		_ = tx.Rollback(ctx)
		return Outcome{Err: fmt.Errorf("new-order: %w", err)}
	}
	orderID := nextOrderID - 1

	if _, err := tx.Exec(ctx, `
		SELECT c_discount, c_last, c_credit FROM customer
		WHERE c_w_id = $1 AND c_d_id = $2 AND c_id = $3`,
		warehouseID, districtID, customerID); err != nil {
		_ = tx.Rollback(ctx)
		return Outcome{Err: fmt.Errorf("new-order: %w", err)}
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO orders (o_id, o_d_id, o_w_id, o_c_id, o_entry_d, o_ol_cnt, o_all_local)
		VALUES ($1, $2, $3, $4, NOW(), $5, $6)`,
		orderID, districtID, warehouseID, customerID, olCnt, olAllLocal); err != nil {
		_ = tx.Rollback(ctx)
		return Outcome{Err: fmt.Errorf("new-order: %w", err)}
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO new_order (no_o_id, no_d_id, no_w_id) VALUES ($1, $2, $3)`,
		orderID, districtID, warehouseID); err != nil {
		_ = tx.Rollback(ctx)
		return Outcome{Err: fmt.Errorf("new-order: %w", err)}
	}

	stockDistCol := fmt.Sprintf("s_dist_%02d", districtID)
	stockQuery := fmt.Sprintf(`SELECT s_quantity, %s FROM stock WHERE s_i_id = $1 AND s_w_id = $2`, stockDistCol)

	for _, line := range lines {
		var price float64
		var name, data string
		err := tx.QueryRow(ctx, `SELECT i_price, i_name, i_data FROM item WHERE i_id = $1`, line.itemID).
			Scan(&price, &name, &data)
		if err != nil {
			_ = tx.Rollback(ctx)
			return Outcome{Err: fmt.Errorf("new-order: item not found: %w", err)}
		}
		amount := price * float64(line.quantity)

		var quantity int
		var sDist string
		err = tx.QueryRow(ctx, stockQuery, line.itemID, line.supplyWID).Scan(&quantity, &sDist)
		if err != nil {
			_ = tx.Rollback(ctx)
			return Outcome{Err: fmt.Errorf("new-order: stock lookup: %w", err)}
		}

		if quantity-line.quantity > 10 {
			quantity -= line.quantity
		} else {
			quantity = quantity - line.quantity + 91
		}
		var remoteCntInc float64
		if line.supplyWID != warehouseID {
			remoteCntInc = 1.0
		}

		if _, err := tx.Exec(ctx, `
			UPDATE stock SET s_quantity = $3, s_ytd = s_ytd + $4, s_order_cnt = s_order_cnt + 1,
				s_remote_cnt = s_remote_cnt + $5
			WHERE s_i_id = $1 AND s_w_id = $2`,
			line.itemID, line.supplyWID, quantity, float64(line.quantity), remoteCntInc); err != nil {
			_ = tx.Rollback(ctx)
			return Outcome{Err: fmt.Errorf("new-order: %w", err)}
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO order_line (ol_o_id, ol_d_id, ol_w_id, ol_number, ol_i_id, ol_supply_w_id,
				ol_quantity, ol_amount, ol_dist_info)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			orderID, districtID, warehouseID, line.number, line.itemID, line.supplyWID,
			line.quantity, amount, sDist); err != nil {
			_ = tx.Rollback(ctx)
			return Outcome{Err: fmt.Errorf("new-order: %w", err)}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Outcome{Err: fmt.Errorf("new-order: commit: %w", err)}
	}
	return Outcome{DurationUS: elapsedUS(start)}
}
