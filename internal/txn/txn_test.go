package txn

import (
	"math/rand"
	"testing"
)

func TestPickWithinRange(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 500; i++ {
		v := pick(rng, 3, 9)
		if v < 3 || v > 9 {
			t.Fatalf("pick(3,9) = %d, out of range", v)
		}
	}
}

func TestPickSingleWarehouse(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	if v := pick(rng, 5, 5); v != 5 {
		t.Fatalf("pick(5,5) = %d, want 5", v)
	}
	if v := pick(rng, 5, 4); v != 5 {
		t.Fatalf("pick with max<min = %d, want min (5)", v)
	}
}

func TestRunPanicsOnUnknownTransactionID(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected Run to panic on an unknown transaction id")
		}
	}()
	rng := rand.New(rand.NewSource(1))
	Run(nil, rng, nil, 99, 1, 1)
}
