// Package loader populates a freshly-created schema with TPC-C-like
// data using the Postgres COPY protocol, and executes the DDL/index/
// vacuum maintenance steps that bracket it. Grounded on
// original_source/src/executor/tpcc.rs's populate_* functions for the
// exact row-generation formulas, and on the other_examples pgxstore
// CopyFrom idiom for the streaming mechanics.
package loader

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/julmon/pgmtr/internal/catalog"
	"github.com/julmon/pgmtr/internal/pgsession"
)

const (
	batchSize      = 500
	orderLineBatch = 50

	nItems             = 100_000
	nCustomerPerDist   = 3_000
	nOrdersPerDist     = 3_000
	nRowsPerWarehouse  = 10 * nCustomerPerDist // customer/history/orders: 10 districts per warehouse
	nNewOrderPerWH     = 9_000
	newOrderStartOrder = 2_101
	newOrderEndOrder   = 3_000
)

// PreLoadData populates the warehouse-independent item table with
// 100,000 rows. Must run once, before LoadData.
func PreLoadData(ctx context.Context, sess *pgsession.Session) error {
	g := newRowGen(time.Now().UnixNano())
	return copyInBatches(ctx, sess, "item",
		[]string{"i_id", "i_im_id", "i_name", "i_price", "i_data"},
		1, nItems, batchSize,
		func(iID int) []interface{} {
			iName := g.randomAlphaString(14, 24)
			iPrice := 1.00 + g.rng.Float64()*99.00
			iImID := int(g.uniformInt(1, 10_000))
			iData := g.maybeEmbedOriginal(g.randomAlphaString(26, 50))
			return []interface{}{iID, iImID, iName, iPrice, iData}
		},
	)
}

// LoadData populates every warehouse-scoped table for each id in
// warehouseIDs, in the fixed dependency order the original loader
// uses: warehouse, district, stock, customer, history, orders,
// new_order, order_line.
func LoadData(ctx context.Context, sess *pgsession.Session, warehouseIDs []int) error {
	entryDate := time.Now().UTC().Format("2006-01-02 15:04:05")
	for _, whID := range warehouseIDs {
		steps := []func() error{
			func() error { return populateWarehouse(ctx, sess, whID) },
			func() error { return populateDistrict(ctx, sess, whID) },
			func() error { return populateStock(ctx, sess, whID) },
			func() error { return populateCustomer(ctx, sess, whID) },
			func() error { return populateHistory(ctx, sess, whID) },
			func() error { return populateOrders(ctx, sess, whID, entryDate) },
			func() error { return populateNewOrder(ctx, sess, whID) },
			func() error { return populateOrderLine(ctx, sess, whID, entryDate) },
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return err
			}
		}
	}
	return nil
}

// LoadDataParallel shards warehouseIDs round-robin across nJobs
// workers, each with its own session, and loads them concurrently.
func LoadDataParallel(ctx context.Context, dsn string, nJobs int, warehouseIDs []int) error {
	shards := make([][]int, nJobs)
	for i, id := range warehouseIDs {
		shards[i%nJobs] = append(shards[i%nJobs], id)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, shard := range shards {
		shard := shard
		if len(shard) == 0 {
			continue
		}
		g.Go(func() error {
			sess, err := pgsession.Connect(gctx, dsn, 1)
			if err != nil {
				return err
			}
			defer sess.Close()
			return LoadData(gctx, sess, shard)
		})
	}
	return g.Wait()
}

func populateWarehouse(ctx context.Context, sess *pgsession.Session, whID int) error {
	g := newRowGen(time.Now().UnixNano() + int64(whID))
	name := g.randomAlphaString(6, 10)
	street1 := g.randomAlphaString(10, 20)
	street2 := g.randomAlphaString(10, 20)
	city := g.randomAlphaString(10, 20)
	state := g.randomState()
	zip := g.randomZip()
	tax := 0.10 + g.rng.Float64()*0.10
	_, err := sess.CopyFrom(ctx, "warehouse",
		[]string{"w_id", "w_name", "w_street_1", "w_street_2", "w_city", "w_state", "w_zip", "w_tax", "w_ytd"},
		[][]interface{}{{whID, name, street1, street2, city, state, zip, tax, 300000.00}})
	return err
}

func populateDistrict(ctx context.Context, sess *pgsession.Session, whID int) error {
	g := newRowGen(time.Now().UnixNano() + int64(whID))
	rows := make([][]interface{}, 0, 10)
	for dID := 1; dID <= 10; dID++ {
		name := g.randomAlphaString(6, 10)
		street1 := g.randomAlphaString(10, 20)
		street2 := g.randomAlphaString(10, 20)
		city := g.randomAlphaString(10, 20)
		state := g.randomState()
		zip := g.randomZip()
		tax := 0.10 + g.rng.Float64()*0.10
		rows = append(rows, []interface{}{dID, whID, name, street1, street2, city, state, zip, tax, 30000.00, 3001})
	}
	_, err := sess.CopyFrom(ctx, "district",
		[]string{"d_id", "d_w_id", "d_name", "d_street_1", "d_street_2", "d_city", "d_state", "d_zip", "d_tax", "d_ytd", "d_next_o_id"},
		rows)
	return err
}

func populateCustomer(ctx context.Context, sess *pgsession.Session, whID int) error {
	g := newRowGen(time.Now().UnixNano() + int64(whID))
	since := time.Now().UTC().Format("2006-01-02 15:04:05")
	customerID, districtID := 1, 1
	return copyInBatches(ctx, sess, "customer",
		[]string{"c_id", "c_d_id", "c_w_id", "c_first", "c_middle", "c_last", "c_street_1", "c_street_2",
			"c_city", "c_state", "c_zip", "c_phone", "c_since", "c_credit", "c_credit_lim", "c_discount",
			"c_balance", "c_ytd_payment", "c_payment_cnt", "c_delivery_cnt", "c_data"},
		1, nRowsPerWarehouse, batchSize,
		func(_ int) []interface{} {
			first := g.randomAlphaString(8, 16)
			last := g.genLast(customerID)
			street1 := g.randomAlphaString(10, 20)
			street2 := g.randomAlphaString(10, 20)
			city := g.randomAlphaString(10, 20)
			state := g.randomState()
			zip := g.randomZip()
			phone := g.uniformInt(1_000_000_000_000_000, 9_999_999_999_999_999)
			discount := g.rng.Float64() * 0.50
			data := g.randomAlphaString(300, 500)
			credit := "GC"
			if g.uniformInt(1, 10) == 1 {
				credit = "BC"
			}
			row := []interface{}{
				customerID, districtID, whID, first, "OE", last, street1, street2, city, state, zip,
				phone, since, credit, 50000.00, discount, -10.00, 10.00, 1, 0, data,
			}
			customerID++
			if customerID > nCustomerPerDist {
				districtID++
				customerID = 1
			}
			return row
		},
	)
}

func populateHistory(ctx context.Context, sess *pgsession.Session, whID int) error {
	g := newRowGen(time.Now().UnixNano() + int64(whID))
	date := time.Now().UTC().Format("2006-01-02 15:04:05")
	customerID, districtID := 1, 1
	return copyInBatches(ctx, sess, "history",
		[]string{"h_c_id", "h_c_d_id", "h_c_w_id", "h_d_id", "h_w_id", "h_date", "h_amount", "h_data"},
		1, nRowsPerWarehouse, batchSize,
		func(_ int) []interface{} {
			data := g.randomAlphaString(12, 24)
			row := []interface{}{customerID, districtID, whID, districtID, whID, date, 10.0, data}
			customerID++
			if customerID > nCustomerPerDist {
				districtID++
				customerID = 1
			}
			return row
		},
	)
}

func populateOrders(ctx context.Context, sess *pgsession.Session, whID int, entryDate string) error {
	g := newRowGen(time.Now().UnixNano() + int64(whID))
	ordersID, customerID, districtID := 1, 1, 1
	return copyInBatches(ctx, sess, "orders",
		[]string{"o_id", "o_d_id", "o_w_id", "o_c_id", "o_entry_d", "o_carrier_id", "o_ol_cnt", "o_all_local"},
		1, nRowsPerWarehouse, batchSize,
		func(_ int) []interface{} {
			var carrierID interface{}
			if ordersID < newOrderStartOrder {
				carrierID = int(g.uniformInt(1, 10))
			}
			olCnt := (ordersID*(ordersID+districtID+whID))%11 + 5
			row := []interface{}{ordersID, districtID, whID, customerID, entryDate, carrierID, olCnt, 1}
			ordersID++
			customerID++
			if ordersID > nOrdersPerDist {
				districtID++
				ordersID = 1
				customerID = 1
			}
			return row
		},
	)
}

func populateNewOrder(ctx context.Context, sess *pgsession.Session, whID int) error {
	ordersID, districtID := newOrderStartOrder, 1
	return copyInBatches(ctx, sess, "new_order",
		[]string{"no_o_id", "no_d_id", "no_w_id"},
		1, nNewOrderPerWH, batchSize,
		func(_ int) []interface{} {
			row := []interface{}{ordersID, districtID, whID}
			ordersID++
			if ordersID > newOrderEndOrder {
				ordersID = newOrderStartOrder
				districtID++
			}
			return row
		},
	)
}

func populateOrderLine(ctx context.Context, sess *pgsession.Session, whID int, entryDate string) error {
	g := newRowGen(time.Now().UnixNano() + int64(whID))
	ordersID, districtID := 1, 1
	columns := []string{"ol_o_id", "ol_d_id", "ol_w_id", "ol_number", "ol_i_id", "ol_supply_w_id",
		"ol_delivery_d", "ol_quantity", "ol_amount", "ol_dist_info"}

	const nOrders = 30_000
	nBatch := (nOrders + orderLineBatch - 1) / orderLineBatch
	for b := 0; b < nBatch; b++ {
		start := b*orderLineBatch + 1
		end := start + orderLineBatch - 1
		if end > nOrders {
			end = nOrders
		}
		rows := make([][]interface{}, 0, (end-start+1)*11)
		for o := start; o <= end; o++ {
			olCnt := (ordersID*(ordersID+districtID+whID))%11 + 5
			itemIDs := samplePerm(g.rng, nItems, olCnt)
			for i := 1; i <= olCnt; i++ {
				itemID := itemIDs[i-1] + 1
				var amount float64
				var deliveryD interface{}
				if ordersID >= newOrderStartOrder {
					amount = 0.01 + g.rng.Float64()*9999.98
				} else {
					amount = 0.00
					deliveryD = entryDate
				}
				distInfo := g.randomAlphaString(24, 24)
				rows = append(rows, []interface{}{
					ordersID, districtID, whID, i, itemID, whID, deliveryD, 5, amount, distInfo,
				})
			}
			ordersID++
			if ordersID > nOrdersPerDist {
				districtID++
				ordersID = 1
			}
		}
		if _, err := sess.CopyFrom(ctx, "order_line", columns, rows); err != nil {
			return err
		}
	}
	return nil
}

func populateStock(ctx context.Context, sess *pgsession.Session, whID int) error {
	g := newRowGen(time.Now().UnixNano() + int64(whID))
	itemID := 1
	columns := []string{"s_i_id", "s_w_id", "s_quantity",
		"s_dist_01", "s_dist_02", "s_dist_03", "s_dist_04", "s_dist_05",
		"s_dist_06", "s_dist_07", "s_dist_08", "s_dist_09", "s_dist_10",
		"s_ytd", "s_order_cnt", "s_remote_cnt", "s_data"}
	return copyInBatches(ctx, sess, "stock", columns, 1, nItems, batchSize,
		func(_ int) []interface{} {
			dists := make([]interface{}, 10)
			for i := range dists {
				dists[i] = g.randomAlphaString(24, 24)
			}
			qty := int(g.uniformInt(10, 100))
			data := g.maybeEmbedOriginal(g.randomAlphaString(26, 50))
			row := []interface{}{itemID, whID, qty}
			row = append(row, dists...)
			row = append(row, 0, 0, 0, data)
			itemID++
			return row
		},
	)
}

// copyInBatches drives a ranged loop from start to end (inclusive),
// collecting up to batchSz rows produced by makeRow before flushing
// one CopyFrom per batch, the Go replacement for the teacher's
// per-batch writer.finish()/copy_in cycle.
func copyInBatches(ctx context.Context, sess *pgsession.Session, table string, columns []string,
	start, end, batchSz int, makeRow func(i int) []interface{}) error {
	rows := make([][]interface{}, 0, batchSz)
	for i := start; i <= end; i++ {
		rows = append(rows, makeRow(i))
		if len(rows) == batchSz || i == end {
			if _, err := sess.CopyFrom(ctx, table, columns, rows); err != nil {
				return fmt.Errorf("loader: populating %s: %w", table, err)
			}
			rows = rows[:0]
		}
	}
	return nil
}

// samplePerm draws k distinct values from [0,n) without replacement,
// the Go equivalent of rand::seq::index::sample used by the order_line
// item-id draw.
func samplePerm(rng interface{ Intn(int) int }, n, k int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rng.Intn(n-i)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm[:k]
}
