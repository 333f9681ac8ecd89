package aggregate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/julmon/pgmtr/internal/catalog"
)

func TestParseLogSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transaction.log")
	content := "100 1 2 5.5\nnot-a-line\n101 2 3 7.25\n102 1 2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	lines, err := ParseLog(path)
	if err != nil {
		t.Fatalf("ParseLog returned error: %v", err)
	}
	want := []LogLine{
		{TimestampSec: 100, NClients: 1, TxID: 2, DurationMS: 5.5},
		{TimestampSec: 101, NClients: 2, TxID: 3, DurationMS: 7.25},
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("ParseLog mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeStatsPercentiles(t *testing.T) {
	durations := make([]float64, 100)
	for i := range durations {
		durations[i] = float64(i + 1)
	}
	s := computeStats("New-Order", durations)
	if s.Min != 1 || s.Max != 100 {
		t.Fatalf("got min=%v max=%v, want 1 and 100", s.Min, s.Max)
	}
	if s.Mean != 50.5 {
		t.Fatalf("got mean=%v, want 50.5", s.Mean)
	}
	if s.Percentile95 < 90 || s.Percentile95 > 100 {
		t.Fatalf("got p95=%v, expected it near the top of the range", s.Percentile95)
	}
	if s.Percentile99 < s.Percentile95 {
		t.Fatalf("p99 (%v) should be >= p95 (%v)", s.Percentile99, s.Percentile95)
	}
}

func TestAggregateGroupsByTransactionAndSecond(t *testing.T) {
	lines := []LogLine{
		{TimestampSec: 1000, NClients: 1, TxID: 2, DurationMS: 10},
		{TimestampSec: 1000, NClients: 1, TxID: 2, DurationMS: 20},
		{TimestampSec: 1001, NClients: 1, TxID: 2, DurationMS: 30},
		{TimestampSec: 1000, NClients: 1, TxID: 3, DurationMS: 5},
	}
	transactions := catalog.TransactionsRW()
	perTx, allTPM := Aggregate(lines, transactions)

	if len(perTx) != len(transactions) {
		t.Fatalf("got %d per-transaction groups, want %d (one per catalog transaction)", len(perTx), len(transactions))
	}

	var newOrder PerTransaction
	for _, pt := range perTx {
		if pt.Transaction.Name == "New-Order" {
			newOrder = pt
		}
	}
	if len(newOrder.TPM) != 2 {
		t.Fatalf("New-Order TPM series has %d points, want 2 (seconds 0 and 1)", len(newOrder.TPM))
	}
	if newOrder.TPM[0].TPM != 120 {
		t.Fatalf("second 0 TPM = %d, want 2*60=120", newOrder.TPM[0].TPM)
	}

	totalAll := int64(0)
	for _, p := range allTPM {
		totalAll += p.TPM / 60
	}
	if totalAll != int64(len(lines)) {
		t.Fatalf("allTPM accounts for %d messages, want %d", totalAll, len(lines))
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	perTx, allTPM := Aggregate(nil, catalog.TransactionsRW())
	if perTx != nil || allTPM != nil {
		t.Fatalf("expected nil/nil for empty input, got %v / %v", perTx, allTPM)
	}
}
