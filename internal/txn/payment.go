package txn

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/julmon/pgmtr/internal/pgsession"
)

// Payment posts a payment against a customer. 85% of the time the
// customer belongs to the paying warehouse/district, otherwise to a
// random district of another warehouse (when more than one exists).
// Independently, the customer is looked up by last name 60% of the
// time, taking the middle-of-the-ordered-result row, and by id
// otherwise.
func Payment(ctx context.Context, rng *rand.Rand, sess *pgsession.Session, warehouseID, minID, maxID int) Outcome {
	x := 1 + rng.Intn(100)
	y := 1 + rng.Intn(100)
	districtID := 1 + rng.Intn(10)

	custDistrictID := districtID
	custWarehouseID := warehouseID
	if x > 85 {
		custDistrictID = 1 + rng.Intn(10)
		if maxID-minID > 0 {
			for {
				custWarehouseID = minID + rng.Intn(maxID-minID+1)
				if custWarehouseID != warehouseID {
					break
				}
			}
		}
	}

	var lastName string
	customerID := 1 + rng.Intn(3000)
	if y <= 60 {
		lastName = newRowGenForNames(rng).genLast(1 + rng.Intn(1000))
	}
	amount := 1.00 + rng.Float64()*4999.00

	start := time.Now()
	tx, err := sess.Begin(ctx)
	if err != nil {
		return Outcome{Err: fmt.Errorf("payment: begin: %w", err)}
	}

	var warehouseName string
	err = tx.QueryRow(ctx, `
		UPDATE warehouse SET w_ytd = w_ytd + $1 WHERE w_id = $2 RETURNING w_name`,
		amount, warehouseID).Scan(&warehouseName)
	if err != nil {
		_ = tx.Rollback(ctx)
		return Outcome{Err: fmt.Errorf("payment: %w", err)}
	}

	var districtName string
	err = tx.QueryRow(ctx, `
		UPDATE district SET d_ytd = d_ytd + $1 WHERE d_w_id = $2 AND d_id = $3 RETURNING d_name`,
		amount, warehouseID, districtID).Scan(&districtName)
	if err != nil {
		_ = tx.Rollback(ctx)
		return Outcome{Err: fmt.Errorf("payment: %w", err)}
	}

	if y <= 60 {
		rows, err := tx.Query(ctx, `
			SELECT c_id FROM customer WHERE c_w_id = $1 AND c_d_id = $2 AND c_last = $3
			ORDER BY c_first ASC`,
			custWarehouseID, custDistrictID, lastName)
		if err != nil {
			_ = tx.Rollback(ctx)
			return Outcome{Err: fmt.Errorf("payment: %w", err)}
		}
		var ids []int
		for rows.Next() {
			var id int
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				_ = tx.Rollback(ctx)
				return Outcome{Err: fmt.Errorf("payment: %w", err)}
			}
			ids = append(ids, id)
		}
		rows.Close()
		if len(ids) == 0 {
			_ = tx.Rollback(ctx)
			return Outcome{Err: fmt.Errorf("payment: customer not found (c_last=%q)", lastName)}
		}
		customerID = ids[len(ids)/2]
	}

	var credit string
	err = tx.QueryRow(ctx, `
		SELECT c_credit FROM customer WHERE c_w_id = $1 AND c_d_id = $2 AND c_id = $3`,
		custWarehouseID, custDistrictID, customerID).Scan(&credit)
	if err != nil {
		_ = tx.Rollback(ctx)
		return Outcome{Err: fmt.Errorf("payment: %w", err)}
	}

	if credit == "BC" {
		debugData := fmt.Sprintf("%d %d %d %d %d %.2f", customerID, custDistrictID, custWarehouseID, districtID, warehouseID, amount)
		if _, err := tx.Exec(ctx, `
			UPDATE customer SET c_balance = c_balance - $1, c_ytd_payment = c_ytd_payment + 1,
				c_data = substring($5 || ' ' || c_data, 1, 500)
			WHERE c_id = $2 AND c_d_id = $3 AND c_w_id = $4`,
			amount, customerID, custDistrictID, custWarehouseID, debugData); err != nil {
			_ = tx.Rollback(ctx)
			return Outcome{Err: fmt.Errorf("payment: %w", err)}
		}
	} else {
		if _, err := tx.Exec(ctx, `
			UPDATE customer SET c_balance = c_balance - $1, c_ytd_payment = c_ytd_payment + 1
			WHERE c_id = $2 AND c_d_id = $3 AND c_w_id = $4`,
			amount, customerID, custDistrictID, custWarehouseID); err != nil {
			_ = tx.Rollback(ctx)
			return Outcome{Err: fmt.Errorf("payment: %w", err)}
		}
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO history (h_c_id, h_c_d_id, h_c_w_id, h_d_id, h_w_id, h_date, h_amount, h_data)
		VALUES ($1, $2, $3, $4, $5, NOW(), $6, substring($7 || '    ' || $8, 1, 24))`,
		customerID, custDistrictID, custWarehouseID, districtID, warehouseID, amount, warehouseName, districtName); err != nil {
		_ = tx.Rollback(ctx)
		return Outcome{Err: fmt.Errorf("payment: %w", err)}
	}

	if err := tx.Commit(ctx); err != nil {
		return Outcome{Err: fmt.Errorf("payment: commit: %w", err)}
	}
	return Outcome{DurationUS: elapsedUS(start)}
}

// newRowGenForNames builds a tiny genLast-capable generator sharing
// the caller's rand source, so Payment/Order-Status don't need to
// import the loader package just for one formula.
func newRowGenForNames(rng *rand.Rand) nameGen {
	return nameGen{rng: rng}
}

type nameGen struct{ rng *rand.Rand }

var lastSyllables = [10]string{"BAR", "OUGHT", "ABLE", "PRIS", "PRES", "ESE", "ANTI", "CALLY", "ATION", "EING"}

func (g nameGen) genLast(id int) string {
	s := fmt.Sprintf("%03d", id%1000)
	var last string
	for _, c := range s {
		last += lastSyllables[c-'0']
	}
	return last
}
