package catalog

import "testing"

func TestTransactionsRWWeightsSumToHundred(t *testing.T) {
	total := 0
	seen := map[int]bool{}
	for _, tx := range TransactionsRW() {
		if seen[tx.ID] {
			t.Fatalf("duplicate transaction id %d", tx.ID)
		}
		seen[tx.ID] = true
		total += tx.Weight
	}
	if total != 100 {
		t.Fatalf("weights sum to %d, want 100", total)
	}
}

func TestIndexDDLsDistinctFromFKeyDDLs(t *testing.T) {
	idx := IndexDDLs()
	fk := FKeyDDLs()
	if len(idx) == 0 {
		t.Fatal("IndexDDLs returned nothing")
	}
	for _, i := range idx {
		for _, f := range fk {
			if i.SQL == f.SQL {
				t.Fatalf("index statement duplicated in FKeyDDLs: %q", i.SQL)
			}
		}
	}
}

func TestVacuumStmtsCoverAllTables(t *testing.T) {
	stmts := VacuumStmts()
	if len(stmts) != 9 {
		t.Fatalf("got %d vacuum statements, want 9", len(stmts))
	}
	for _, s := range stmts {
		if len(s.SQL) < len("VACUUM FREEZE ANALYZE ") {
			t.Fatalf("malformed vacuum statement: %q", s.SQL)
		}
	}
}
