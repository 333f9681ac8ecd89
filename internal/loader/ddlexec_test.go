package loader

import (
	"testing"

	"github.com/julmon/pgmtr/internal/catalog"
)

// TestIndexDDLsAndFKeyDDLsNeverCollide checks that the index statement
// list and the foreign key statement list share no statement. It does
// not run Init, so it does not observe which list Init's index step
// passes to ExecStmts.
func TestIndexDDLsAndFKeyDDLsNeverCollide(t *testing.T) {
	idx := catalog.IndexDDLs()
	fk := catalog.FKeyDDLs()
	if len(idx) == 0 || len(fk) == 0 {
		t.Fatal("expected both IndexDDLs and FKeyDDLs to be non-empty")
	}
	fkSet := make(map[string]bool, len(fk))
	for _, s := range fk {
		fkSet[s.SQL] = true
	}
	for _, s := range idx {
		if fkSet[s.SQL] {
			t.Fatalf("index statement also present in FKeyDDLs: %q", s.SQL)
		}
	}
}

func TestRoundRobinBucketingSpreadsEvenly(t *testing.T) {
	stmts := make([]catalog.Stmt, 10)
	for i := range stmts {
		stmts[i] = catalog.Stmt{SQL: string(rune('a' + i))}
	}
	const nJobs = 3
	buckets := make([][]catalog.Stmt, nJobs)
	for i, s := range stmts {
		buckets[i%nJobs] = append(buckets[i%nJobs], s)
	}
	total := 0
	for _, b := range buckets {
		total += len(b)
		if len(b) == 0 {
			t.Fatal("a bucket ended up empty with more statements than jobs")
		}
	}
	if total != len(stmts) {
		t.Fatalf("bucketing dropped statements: got %d, want %d", total, len(stmts))
	}
}
