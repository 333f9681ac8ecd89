// Package sink is the single goroutine that owns the transaction and
// error log files plus the live counters, consuming an outcome
// channel fed by every client goroutine. Grounded on
// original_source/src/executor.rs's start_data_collector thread and
// its txmessage.rs message shape.
package sink

// Kind discriminates an outcome Message.
type Kind int

const (
	Committed Kind = iota
	Error
	EndOfRampup
	Terminate
)

// Message is one client's report of a single transaction attempt, or
// a control signal (EndOfRampup, Terminate) sent once by the engine.
type Message struct {
	Kind       Kind
	TxID       int
	ClientID   int
	DurationUS int64
	Timestamp  int64
	Err        string
}
