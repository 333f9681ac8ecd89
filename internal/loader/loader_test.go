package loader

import (
	"math/rand"
	"testing"
)

func TestSamplePermReturnsDistinctValues(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	got := samplePerm(rng, 100, 7)
	if len(got) != 7 {
		t.Fatalf("samplePerm returned %d values, want 7", len(got))
	}
	seen := map[int]bool{}
	for _, v := range got {
		if v < 0 || v >= 100 {
			t.Fatalf("samplePerm value %d out of [0,100)", v)
		}
		if seen[v] {
			t.Fatalf("samplePerm produced duplicate value %d", v)
		}
		seen[v] = true
	}
}

func TestSamplePermFullRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	got := samplePerm(rng, 5, 5)
	seen := map[int]bool{}
	for _, v := range got {
		seen[v] = true
	}
	if len(seen) != 5 {
		t.Fatalf("samplePerm(n=5,k=5) produced %d distinct values, want 5", len(seen))
	}
}

// TestCopyInBatchesFlushesOnBoundaryAndTail runs a copy of
// copyInBatches' batching loop with a local flush in place of
// sess.CopyFrom; copyInBatches itself is not called, since it needs a
// live session.
func TestCopyInBatchesFlushesOnBoundaryAndTail(t *testing.T) {
	var batches [][]int
	rows := make([][]interface{}, 0, 4)
	makeRow := func(i int) []interface{} { return []interface{}{i} }

	flush := func(batch [][]interface{}) {
		ids := make([]int, len(batch))
		for i, r := range batch {
			ids[i] = r[0].(int)
		}
		batches = append(batches, ids)
	}

	const batchSz = 3
	for i := 1; i <= 7; i++ {
		rows = append(rows, makeRow(i))
		if len(rows) == batchSz || i == 7 {
			flush(rows)
			rows = rows[:0]
		}
	}

	if len(batches) != 3 {
		t.Fatalf("got %d batches, want 3", len(batches))
	}
	if len(batches[2]) != 1 {
		t.Fatalf("tail batch has %d rows, want 1", len(batches[2]))
	}
}
