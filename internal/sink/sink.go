package sink

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
)

const (
	LogFileName   = "transaction.log"
	ErrorFileName = "error.log"
)

// Counter accumulates the committed/total count and total latency for
// one transaction id, valid only once the ramp-up window has closed.
type Counter struct {
	NCommits        int64
	NTotal          int64
	TotalDurationMS float64
}

// Run consumes msgs until a Terminate message arrives, writing every
// Committed/Error message to its log file and tallying Counters once
// ramp-up has ended. It returns the final per-transaction counters.
// Run is meant to be started in its own goroutine; it is the sole
// writer of both log files and the counters map, so nothing else may
// touch them concurrently.
func Run(targetDir string, msgs <-chan Message) (map[int]*Counter, error) {
	logFile, err := os.Create(filepath.Join(targetDir, LogFileName))
	if err != nil {
		return nil, err
	}
	defer logFile.Close()
	logW := bufio.NewWriter(logFile)
	defer logW.Flush()

	errFile, err := os.Create(filepath.Join(targetDir, ErrorFileName))
	if err != nil {
		return nil, err
	}
	defer errFile.Close()
	errW := bufio.NewWriter(errFile)
	defer errW.Flush()

	counters := make(map[int]*Counter)
	ordinals := make(map[int]int)
	rampingUp := true
	nClients := 0

	for msg := range msgs {
		switch msg.Kind {
		case Terminate:
			logW.Flush()
			errW.Flush()
			return counters, nil

		case EndOfRampup:
			rampingUp = false

		case Committed:
			ordinal, ok := ordinals[msg.ClientID]
			if !ok {
				nClients++
				ordinal = nClients
				ordinals[msg.ClientID] = ordinal
			}
			durationMS := float64(msg.DurationUS) / 1000.0
			if !rampingUp {
				c := counters[msg.TxID]
				if c == nil {
					c = &Counter{}
					counters[msg.TxID] = c
				}
				c.NCommits++
				c.NTotal++
				c.TotalDurationMS += durationMS
			}
			writeLogLine(logW, msg.Timestamp, ordinal, msg.TxID, durationMS)

		case Error:
			ordinal, ok := ordinals[msg.ClientID]
			if !ok {
				nClients++
				ordinal = nClients
				ordinals[msg.ClientID] = ordinal
			}
			if !rampingUp {
				c := counters[msg.TxID]
				if c == nil {
					c = &Counter{}
					counters[msg.TxID] = c
				}
				c.NTotal++
			}
			writeErrorLine(errW, msg.Timestamp, ordinal, msg.TxID, msg.Err)
		}
	}
	return counters, nil
}

func writeLogLine(w *bufio.Writer, ts int64, nClients, txID int, durationMS float64) {
	w.WriteString(strconv.FormatInt(ts, 10))
	w.WriteByte(' ')
	w.WriteString(strconv.Itoa(nClients))
	w.WriteByte(' ')
	w.WriteString(strconv.Itoa(txID))
	w.WriteByte(' ')
	w.WriteString(strconv.FormatFloat(durationMS, 'f', -1, 64))
	w.WriteByte('\n')
}

func writeErrorLine(w *bufio.Writer, ts int64, nClients, txID int, errMsg string) {
	w.WriteString(strconv.FormatInt(ts, 10))
	w.WriteByte(' ')
	w.WriteString(strconv.Itoa(nClients))
	w.WriteByte(' ')
	w.WriteString(strconv.Itoa(txID))
	w.WriteByte(' ')
	w.WriteString(errMsg)
	w.WriteByte('\n')
}
