package engine

import (
	"math/rand"
	"testing"

	"github.com/julmon/pgmtr/internal/catalog"
)

func TestPickWeightedStaysWithinCatalog(t *testing.T) {
	transactions := catalog.TransactionsRW()
	totalWeight := 0
	for _, t := range transactions {
		totalWeight += t.Weight
	}

	rng := rand.New(rand.NewSource(7))
	counts := make(map[int]int)
	const n = 20000
	for i := 0; i < n; i++ {
		tx := pickWeighted(rng, transactions, totalWeight)
		counts[tx.ID]++
	}

	if len(counts) != len(transactions) {
		t.Fatalf("pickWeighted only ever returned %d of %d transactions", len(counts), len(transactions))
	}

	// New-Order carries the heaviest weight (45/100): it should clearly
	// dominate the sample.
	if counts[2] < counts[1] || counts[2] < counts[4] || counts[2] < counts[5] {
		t.Fatalf("New-Order (weight 45) did not dominate lighter transactions: counts=%v", counts)
	}
}

func TestPickWeightedNeverExceedsTotalWeight(t *testing.T) {
	transactions := []catalog.Transaction{
		{ID: 1, Name: "A", Weight: 1},
		{ID: 2, Name: "B", Weight: 2},
	}
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		tx := pickWeighted(rng, transactions, 3)
		if tx.ID != 1 && tx.ID != 2 {
			t.Fatalf("pickWeighted returned unexpected id %d", tx.ID)
		}
	}
}
