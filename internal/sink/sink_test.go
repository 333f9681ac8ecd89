package sink

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunGatesCountersOnRampup(t *testing.T) {
	dir := t.TempDir()
	msgs := make(chan Message, 16)

	msgs <- Message{Kind: Committed, TxID: 2, ClientID: 1, Timestamp: 100, DurationUS: 5000}
	msgs <- Message{Kind: Error, TxID: 2, ClientID: 1, Timestamp: 101, Err: "boom"}
	msgs <- Message{Kind: EndOfRampup}
	msgs <- Message{Kind: Committed, TxID: 2, ClientID: 1, Timestamp: 102, DurationUS: 7000}
	msgs <- Message{Kind: Committed, TxID: 3, ClientID: 2, Timestamp: 103, DurationUS: 3000}
	msgs <- Message{Kind: Error, TxID: 3, ClientID: 2, Timestamp: 104, Err: "nope"}
	msgs <- Message{Kind: Terminate}
	close(msgs)

	counters, err := Run(dir, msgs)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if got := counters[2]; got == nil || got.NCommits != 1 || got.NTotal != 1 {
		t.Fatalf("tx 2 counters = %+v, want one post-rampup commit only", got)
	}
	if got := counters[3]; got == nil || got.NCommits != 1 || got.NTotal != 2 {
		t.Fatalf("tx 3 counters = %+v, want 1 commit and 2 total", got)
	}

	logBytes, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if len(logBytes) == 0 {
		t.Fatal("transaction.log is empty, want a line per committed message")
	}

	errBytes, err := os.ReadFile(filepath.Join(dir, ErrorFileName))
	if err != nil {
		t.Fatalf("reading error file: %v", err)
	}
	if len(errBytes) == 0 {
		t.Fatal("error.log is empty, want a line per error message")
	}
}
