// Package engine drives the closed-loop workload: a ramp-up spawn of
// client goroutines, each running the weighted transaction mix until
// its own deadline, feeding outcome messages to the sink. Grounded on
// original_source/src/executor.rs's run_benchmark and the
// elchinoo-stormdb ctx-driven workload Run loop from other_examples.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/julmon/pgmtr/internal/catalog"
	"github.com/julmon/pgmtr/internal/pgsession"
	"github.com/julmon/pgmtr/internal/sink"
	"github.com/julmon/pgmtr/internal/txn"
	"github.com/julmon/pgmtr/internal/xlog"
)

// RunArgs configures one benchmark run.
type RunArgs struct {
	DSN         string
	TargetDir   string
	NClients    int
	TimeSec     int
	RampupSec   int
	MinID       int
	MaxID       int // 0 means "resolve via SELECT MAX(w_id)"
}

// Result is what the caller gets back once every client has stopped
// and the sink has drained.
type Result struct {
	Counters    map[int]*sink.Counter
	RampupMS    int64
	TotalMS     int64
}

// Run executes one full closed-loop benchmark run against args.DSN and
// returns the aggregated per-transaction counters.
func Run(ctx context.Context, args RunArgs) (Result, error) {
	rampupMS := int64(args.RampupSec) * 1000
	timeMS := int64(args.TimeSec) * 1000
	sleepMS := time.Duration(0)
	if args.NClients > 0 {
		sleepMS = time.Duration(rampupMS/int64(args.NClients)) * time.Millisecond
	}

	msgs := make(chan sink.Message, 4096)
	sinkDone := make(chan sinkResult, 1)
	go func() {
		counters, err := sink.Run(args.TargetDir, msgs)
		sinkDone <- sinkResult{counters: counters, err: err}
	}()

	start := time.Now()

	maxID := args.MaxID
	if maxID == 0 {
		sess, err := pgsession.Connect(ctx, args.DSN, 1)
		if err != nil {
			return Result{}, fmt.Errorf("engine: connecting to resolve max id: %w", err)
		}
		var resolved int
		err = sess.QueryRow(ctx, `SELECT MAX(w_id) FROM warehouse`).Scan(&resolved)
		sess.Close()
		if err != nil {
			return Result{}, fmt.Errorf("engine: resolving max warehouse id: %w", err)
		}
		maxID = resolved
	}

	var wg sync.WaitGroup
	for clientID := 1; clientID <= args.NClients; clientID++ {
		durationMS := timeMS + rampupMS - int64(clientID)*int64(sleepMS/time.Millisecond)
		time.Sleep(sleepMS)

		wg.Add(1)
		go func(clientID int, durationMS int64) {
			defer wg.Done()
			runClient(ctx, args, clientID, maxID, durationMS, msgs)
		}(clientID, durationMS)
	}

	rampupMSActual := time.Since(start).Milliseconds()
	msgs <- sink.Message{Kind: sink.EndOfRampup}

	wg.Wait()
	totalMS := time.Since(start).Milliseconds()
	msgs <- sink.Message{Kind: sink.Terminate}
	close(msgs)

	res := <-sinkDone
	if res.err != nil {
		return Result{}, res.err
	}
	return Result{Counters: res.counters, RampupMS: rampupMSActual, TotalMS: totalMS}, nil
}

type sinkResult struct {
	counters map[int]*sink.Counter
	err      error
}

// runClient owns a private *rand.Rand and a private session for its
// whole lifetime, runs the weighted transaction mix until durationMS
// has elapsed, and reports every attempt on msgs.
func runClient(ctx context.Context, args RunArgs, clientID, maxID int, durationMS int64, msgs chan<- sink.Message) {
	sess, err := pgsession.Connect(ctx, args.DSN, 1)
	if err != nil {
		// A connection failure is a fatal, not a business-transaction,
		// error: retrying would falsify the run's timing, so the whole
		// process exits non-zero rather than quietly shrinking the
		// active client count.
		xlog.Warnf("client %d: fatal: connecting: %v", clientID, err)
		os.Exit(1)
	}
	defer sess.Close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(clientID)))
	transactions := catalog.TransactionsRW()
	totalWeight := 0
	for _, t := range transactions {
		totalWeight += t.Weight
	}

	deadline := time.Now().Add(time.Duration(durationMS) * time.Millisecond)
	for time.Now().Before(deadline) {
		tx := pickWeighted(rng, transactions, totalWeight)
		outcome := txn.Run(ctx, rng, sess, tx.ID, args.MinID, maxID)
		now := time.Now().Unix()
		if outcome.Err != nil {
			msgs <- sink.Message{Kind: sink.Error, TxID: tx.ID, ClientID: clientID, Timestamp: now, Err: outcome.Err.Error()}
		} else {
			msgs <- sink.Message{Kind: sink.Committed, TxID: tx.ID, ClientID: clientID, Timestamp: now, DurationUS: outcome.DurationUS}
		}
	}
}

func pickWeighted(rng *rand.Rand, transactions []catalog.Transaction, totalWeight int) catalog.Transaction {
	r := rng.Intn(totalWeight)
	for _, t := range transactions {
		if r < t.Weight {
			return t
		}
		r -= t.Weight
	}
	return transactions[len(transactions)-1]
}
