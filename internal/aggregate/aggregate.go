// Package aggregate turns transaction.log into the per-transaction
// CSV families and console tables: TPM time series, response-time
// time series, and descriptive statistics. Grounded on
// original_source/src/executor/data_agg.rs, with the statistics
// technique (sort + index lookup for percentiles) taken from the
// teacher's utils/stat_knobs.go Stat.Log.
package aggregate

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/julmon/pgmtr/internal/catalog"
)

// LogLine is one parsed row of transaction.log: timestamp_sec
// client_ordinal txID durationMS. NClients holds the client ordinal
// the sink assigned to the reporting client.
type LogLine struct {
	TimestampSec int64
	NClients     int
	TxID         int
	DurationMS   float64
}

// ParseLog reads the space-separated transaction log written by
// internal/sink.
func ParseLog(path string) ([]LogLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("aggregate: opening %s: %w", path, err)
	}
	defer f.Close()

	var lines []LogLine
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 4 {
			continue
		}
		ts, err1 := strconv.ParseInt(fields[0], 10, 64)
		nClients, err2 := strconv.Atoi(fields[1])
		txID, err3 := strconv.Atoi(fields[2])
		durMS, err4 := strconv.ParseFloat(fields[3], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}
		lines = append(lines, LogLine{TimestampSec: ts, NClients: nClients, TxID: txID, DurationMS: durMS})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("aggregate: reading %s: %w", path, err)
	}
	return lines, nil
}

// Stats holds descriptive statistics of a transaction's response
// times, in milliseconds.
type Stats struct {
	Name         string
	Mean         float64
	StdDev       float64
	Min          float64
	Max          float64
	Percentile95 float64
	Percentile99 float64
}

// computeStats returns the descriptive statistics of durations, which
// must be non-empty.
func computeStats(name string, durations []float64) Stats {
	sorted := append([]float64(nil), durations...)
	sort.Float64s(sorted)

	var sum float64
	for _, d := range sorted {
		sum += d
	}
	mean := sum / float64(len(sorted))

	var sqSum float64
	for _, d := range sorted {
		diff := d - mean
		sqSum += diff * diff
	}
	stddev := 0.0
	if len(sorted) > 1 {
		stddev = math.Sqrt(sqSum / float64(len(sorted)-1))
	}

	percentile := func(p float64) float64 {
		idx := int(p * float64(len(sorted)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sorted) {
			idx = len(sorted) - 1
		}
		return sorted[idx]
	}

	return Stats{
		Name:         name,
		Mean:         mean,
		StdDev:       stddev,
		Min:          sorted[0],
		Max:          sorted[len(sorted)-1],
		Percentile95: percentile(0.95),
		Percentile99: percentile(0.99),
	}
}

// TPMPoint is one (time_s, tpm) sample of the transactions-per-minute
// time series.
type TPMPoint struct {
	TimeS int64
	TPM   int64
}

// ResponseTimePoint is one (time_s, response_time_ms) sample.
type ResponseTimePoint struct {
	TimeS          int64
	ResponseTimeMS float64
}

// PerTransaction groups the raw log lines, and derives the TPM and
// response-time series plus the stats, for one transaction id.
type PerTransaction struct {
	Transaction   catalog.Transaction
	TPM           []TPMPoint
	ResponseTimes []ResponseTimePoint
	Stats         Stats
}

// Aggregate groups lines by (timestamp second, tx id) for every
// catalog transaction plus an all-transactions TPM series.
func Aggregate(lines []LogLine, transactions []catalog.Transaction) (perTx []PerTransaction, allTPM []TPMPoint) {
	if len(lines) == 0 {
		return nil, nil
	}
	minTS := lines[0].TimestampSec
	for _, l := range lines {
		if l.TimestampSec < minTS {
			minTS = l.TimestampSec
		}
	}

	allBySecond := make(map[int64]int64)
	for _, l := range lines {
		allBySecond[l.TimestampSec-minTS]++
	}
	allTPM = sortedTPM(allBySecond)

	for _, t := range transactions {
		bySecondCount := make(map[int64]int64)
		bySecondSum := make(map[int64]float64)
		bySecondN := make(map[int64]int64)
		var durations []float64

		for _, l := range lines {
			if l.TxID != t.ID {
				continue
			}
			rel := l.TimestampSec - minTS
			bySecondCount[rel]++
			bySecondSum[rel] += l.DurationMS
			bySecondN[rel]++
			durations = append(durations, l.DurationMS)
		}

		if len(durations) == 0 {
			perTx = append(perTx, PerTransaction{Transaction: t})
			continue
		}

		tpm := make([]TPMPoint, 0, len(bySecondCount))
		for sec, cnt := range bySecondCount {
			tpm = append(tpm, TPMPoint{TimeS: sec, TPM: cnt * 60})
		}
		sort.Slice(tpm, func(i, j int) bool { return tpm[i].TimeS < tpm[j].TimeS })

		respTimes := make([]ResponseTimePoint, 0, len(bySecondSum))
		for sec, sum := range bySecondSum {
			respTimes = append(respTimes, ResponseTimePoint{TimeS: sec, ResponseTimeMS: sum / float64(bySecondN[sec])})
		}
		sort.Slice(respTimes, func(i, j int) bool { return respTimes[i].TimeS < respTimes[j].TimeS })

		perTx = append(perTx, PerTransaction{
			Transaction:   t,
			TPM:           tpm,
			ResponseTimes: respTimes,
			Stats:         computeStats(t.Name, durations),
		})
	}
	return perTx, allTPM
}

func sortedTPM(bySecond map[int64]int64) []TPMPoint {
	tpm := make([]TPMPoint, 0, len(bySecond))
	for sec, cnt := range bySecond {
		tpm = append(tpm, TPMPoint{TimeS: sec, TPM: cnt * 60})
	}
	sort.Slice(tpm, func(i, j int) bool { return tpm[i].TimeS < tpm[j].TimeS })
	return tpm
}

// WriteCSVFiles writes the four CSV families into targetDir:
// pgmtr-tpm-<name>.csv, pgmtr-response-time-<name>.csv,
// pgmtr-stats-<name>.csv per transaction, plus pgmtr-tpm-all.csv.
func WriteCSVFiles(targetDir string, perTx []PerTransaction, allTPM []TPMPoint) error {
	for _, pt := range perTx {
		if err := writeTPMCSV(filepath.Join(targetDir, fmt.Sprintf("pgmtr-tpm-%s.csv", pt.Transaction.Name)), pt.TPM); err != nil {
			return err
		}
		if err := writeResponseTimeCSV(filepath.Join(targetDir, fmt.Sprintf("pgmtr-response-time-%s.csv", pt.Transaction.Name)), pt.ResponseTimes); err != nil {
			return err
		}
		if err := writeStatsCSV(filepath.Join(targetDir, fmt.Sprintf("pgmtr-stats-%s.csv", pt.Transaction.Name)), pt.Stats); err != nil {
			return err
		}
	}
	return writeTPMCSV(filepath.Join(targetDir, "pgmtr-tpm-all.csv"), allTPM)
}
