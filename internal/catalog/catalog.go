// Package catalog is the static description of the TPC-C-like workload:
// the five weighted transactions and the DDL/vacuum statement lists
// used by init. Nothing here touches the network; it is a pure data
// provider with no runtime logic.
package catalog

// Transaction describes one of the five weighted business transactions.
type Transaction struct {
	ID          int
	Name        string
	Weight      int
	Description string
}

// Stmt is a single SQL statement, batch-executed as a unit.
type Stmt struct {
	SQL string
}

// TransactionsRW returns the weighted transaction mix in a fixed,
// stable order. Weights sum to 100 and must never be renormalized by
// a caller.
func TransactionsRW() []Transaction {
	return []Transaction{
		{ID: 1, Name: "Delivery", Weight: 4, Description: "The Delivery transaction"},
		{ID: 2, Name: "New-Order", Weight: 45, Description: "The New-Order transaction"},
		{ID: 3, Name: "Payment", Weight: 43, Description: "The Payment transaction"},
		{ID: 4, Name: "Order-Status", Weight: 4, Description: "The Order-Status transaction"},
		{ID: 5, Name: "Stock-Level", Weight: 4, Description: "The Stock-Level transaction"},
	}
}

// TableDDLs returns an alternating DROP-IF-EXISTS/CREATE pair per
// table, in dependency order, for all nine TPC-C-like tables.
func TableDDLs() []Stmt {
	return []Stmt{
		{SQL: `DROP TABLE IF EXISTS warehouse CASCADE`},
		{SQL: `CREATE TABLE warehouse (
			w_id INTEGER,
			w_name VARCHAR(10),
			w_street_1 VARCHAR(20),
			w_street_2 VARCHAR(20),
			w_city VARCHAR(20),
			w_state CHAR(2),
			w_zip CHAR(9),
			w_tax REAL,
			w_ytd NUMERIC(24, 12)
		)`},
		{SQL: `DROP TABLE IF EXISTS district CASCADE`},
		{SQL: `CREATE TABLE district (
			d_id INTEGER,
			d_w_id INTEGER,
			d_name VARCHAR(10),
			d_street_1 VARCHAR(20),
			d_street_2 VARCHAR(20),
			d_city VARCHAR(20),
			d_state CHAR(2),
			d_zip CHAR(9),
			d_tax REAL,
			d_ytd NUMERIC(24, 12),
			d_next_o_id INTEGER
		)`},
		{SQL: `DROP TABLE IF EXISTS customer CASCADE`},
		{SQL: `CREATE TABLE customer (
			c_id INTEGER,
			c_d_id INTEGER,
			c_w_id INTEGER,
			c_first VARCHAR(16),
			c_middle CHAR(2),
			c_last VARCHAR(16),
			c_street_1 VARCHAR(20),
			c_street_2 VARCHAR(20),
			c_city VARCHAR(20),
			c_state CHAR(2),
			c_zip CHAR(9),
			c_phone CHAR(16),
			c_since TIMESTAMP,
			c_credit CHAR(2),
			c_credit_lim NUMERIC(24, 12),
			c_discount REAL,
			c_balance NUMERIC(24, 12),
			c_ytd_payment NUMERIC(24, 12),
			c_payment_cnt REAL,
			c_delivery_cnt REAL,
			c_data VARCHAR(500)
		)`},
		{SQL: `DROP TABLE IF EXISTS history CASCADE`},
		{SQL: `CREATE TABLE history (
			h_c_id INTEGER,
			h_c_d_id INTEGER,
			h_c_w_id INTEGER,
			h_d_id INTEGER,
			h_w_id INTEGER,
			h_date TIMESTAMP,
			h_amount REAL,
			h_data VARCHAR(24)
		)`},
		{SQL: `DROP TABLE IF EXISTS new_order CASCADE`},
		{SQL: `CREATE TABLE new_order (
			no_o_id INTEGER,
			no_d_id INTEGER,
			no_w_id INTEGER
		)`},
		{SQL: `DROP TABLE IF EXISTS orders CASCADE`},
		{SQL: `CREATE TABLE orders (
			o_id INTEGER,
			o_d_id INTEGER,
			o_w_id INTEGER,
			o_c_id INTEGER,
			o_entry_d TIMESTAMP,
			o_carrier_id INTEGER,
			o_ol_cnt INTEGER,
			o_all_local INTEGER
		)`},
		{SQL: `DROP TABLE IF EXISTS order_line CASCADE`},
		{SQL: `CREATE TABLE order_line (
			ol_o_id INTEGER,
			ol_d_id INTEGER,
			ol_w_id INTEGER,
			ol_number INTEGER,
			ol_i_id INTEGER,
			ol_supply_w_id INTEGER,
			ol_delivery_d TIMESTAMP,
			ol_quantity INTEGER,
			ol_amount REAL,
			ol_dist_info VARCHAR(24)
		)`},
		{SQL: `DROP TABLE IF EXISTS item CASCADE`},
		{SQL: `CREATE TABLE item (
			i_id INTEGER,
			i_im_id INTEGER,
			i_name VARCHAR(24),
			i_price REAL,
			i_data VARCHAR(50)
		)`},
		{SQL: `DROP TABLE IF EXISTS stock CASCADE`},
		{SQL: `CREATE TABLE stock (
			s_i_id INTEGER,
			s_w_id INTEGER,
			s_quantity INTEGER,
			s_dist_01 VARCHAR(24),
			s_dist_02 VARCHAR(24),
			s_dist_03 VARCHAR(24),
			s_dist_04 VARCHAR(24),
			s_dist_05 VARCHAR(24),
			s_dist_06 VARCHAR(24),
			s_dist_07 VARCHAR(24),
			s_dist_08 VARCHAR(24),
			s_dist_09 VARCHAR(24),
			s_dist_10 VARCHAR(24),
			s_ytd NUMERIC(16, 8),
			s_order_cnt REAL,
			s_remote_cnt REAL,
			s_data VARCHAR(50)
		)`},
	}
}

// PKeyDDLs adds the primary key for every table.
func PKeyDDLs() []Stmt {
	return []Stmt{
		{SQL: `ALTER TABLE warehouse ADD PRIMARY KEY (w_id)`},
		{SQL: `ALTER TABLE district ADD PRIMARY KEY (d_w_id, d_id)`},
		{SQL: `ALTER TABLE customer ADD PRIMARY KEY (c_w_id, c_d_id, c_id)`},
		{SQL: `ALTER TABLE new_order ADD PRIMARY KEY (no_w_id, no_d_id, no_o_id)`},
		{SQL: `ALTER TABLE orders ADD PRIMARY KEY (o_w_id, o_d_id, o_id)`},
		{SQL: `ALTER TABLE order_line ADD PRIMARY KEY (ol_w_id, ol_d_id, ol_o_id, ol_number)`},
		{SQL: `ALTER TABLE stock ADD PRIMARY KEY (s_w_id, s_i_id)`},
		{SQL: `ALTER TABLE item ADD PRIMARY KEY (i_id)`},
	}
}

// FKeyDDLs adds the cross-table foreign keys. Skipped entirely by the
// executor when run with -no-fkey.
func FKeyDDLs() []Stmt {
	return []Stmt{
		{SQL: `ALTER TABLE district ADD CONSTRAINT fk_district_warehouse FOREIGN KEY (d_w_id) REFERENCES warehouse (w_id)`},
		{SQL: `ALTER TABLE customer ADD CONSTRAINT fk_customer_district FOREIGN KEY (c_w_id, c_d_id) REFERENCES district (d_w_id, d_id)`},
		{SQL: `ALTER TABLE history ADD CONSTRAINT fk_history_customer FOREIGN KEY (h_c_w_id, h_c_d_id, h_c_id) REFERENCES customer (c_w_id, c_d_id, c_id)`},
		{SQL: `ALTER TABLE history ADD CONSTRAINT fk_history_district FOREIGN KEY (h_w_id, h_d_id) REFERENCES district (d_w_id, d_id)`},
		{SQL: `ALTER TABLE new_order ADD CONSTRAINT fk_new_order_orders FOREIGN KEY (no_w_id, no_d_id, no_o_id) REFERENCES orders (o_w_id, o_d_id, o_id)`},
		{SQL: `ALTER TABLE orders ADD CONSTRAINT fk_orders_customer FOREIGN KEY (o_w_id, o_d_id, o_c_id) REFERENCES customer (c_w_id, c_d_id, c_id)`},
		{SQL: `ALTER TABLE order_line ADD CONSTRAINT fk_order_line_orders FOREIGN KEY (ol_w_id, ol_d_id, ol_o_id) REFERENCES orders (o_w_id, o_d_id, o_id)`},
		{SQL: `ALTER TABLE order_line ADD CONSTRAINT fk_order_line_stock FOREIGN KEY (ol_supply_w_id, ol_i_id) REFERENCES stock (s_w_id, s_i_id)`},
		{SQL: `ALTER TABLE stock ADD CONSTRAINT fk_stock_warehouse FOREIGN KEY (s_w_id) REFERENCES warehouse (w_id)`},
		{SQL: `ALTER TABLE stock ADD CONSTRAINT fk_stock_item FOREIGN KEY (s_i_id) REFERENCES item (i_id)`},
	}
}

// IndexDDLs adds the supporting secondary indexes. Distinct from
// FKeyDDLs: the executor must never substitute one for the other.
func IndexDDLs() []Stmt {
	return []Stmt{
		{SQL: `CREATE UNIQUE INDEX i_customer_last_first ON customer (c_w_id, c_d_id, c_last, c_first, c_id)`},
		{SQL: `CREATE UNIQUE INDEX i_orders ON orders USING BTREE (o_w_id, o_d_id, o_c_id, o_id)`},
		{SQL: `CREATE INDEX i_stock_quantity ON stock (s_w_id, s_i_id, s_quantity)`},
	}
}

// VacuumStmts freezes and analyzes every table. Must run outside a
// transaction block (VACUUM cannot be batch_execute'd inside one).
func VacuumStmts() []Stmt {
	tables := []string{"warehouse", "district", "customer", "history",
		"new_order", "orders", "order_line", "item", "stock"}
	stmts := make([]Stmt, 0, len(tables))
	for _, t := range tables {
		stmts = append(stmts, Stmt{SQL: "VACUUM FREEZE ANALYZE " + t})
	}
	return stmts
}
