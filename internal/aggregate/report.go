package aggregate

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"
)

// Summary is one row of the transactions summary table.
type Summary struct {
	Name       string
	NCommits   int64
	NErrors    int64
	ErrorRate  float64
	TPM        int64
	TPS        int64
}

// BuildSummaries turns the sink's per-transaction counters into the
// report rows, in catalog order.
func BuildSummaries(perTx []PerTransaction, commits, totals map[int]int64, totalSec float64) []Summary {
	summaries := make([]Summary, 0, len(perTx))
	for _, pt := range perTx {
		id := pt.Transaction.ID
		nCommits := commits[id]
		nTotal := totals[id]
		nErrors := nTotal - nCommits
		var errRate float64
		if nTotal > 0 {
			errRate = float64(nErrors) / float64(nTotal) * 100.0
		}
		var tpm, tps int64
		if totalSec > 0 {
			tpm = int64(float64(nCommits) / totalSec * 60.0)
			tps = int64(float64(nCommits) / totalSec)
		}
		summaries = append(summaries, Summary{
			Name: pt.Transaction.Name, NCommits: nCommits, NErrors: nErrors,
			ErrorRate: errRate, TPM: tpm, TPS: tps,
		})
	}
	return summaries
}

// PrintSummary renders the transactions summary as a console table,
// right-aligned columns inside a hand-drawn rounded border.
func PrintSummary(w io.Writer, summaries []Summary) {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 2, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Transaction\tCommits\tErrors\tError %\tTPM\tTPS")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.3f\t%d\t%d\n", s.Name, s.NCommits, s.NErrors, s.ErrorRate, s.TPM, s.TPS)
	}
	tw.Flush()
	writeRoundedBox(w, buf.String())
}

// PrintStats renders the response-time statistics as a console table,
// right-aligned columns inside a hand-drawn rounded border.
func PrintStats(w io.Writer, perTx []PerTransaction) {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 2, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Transaction\tMean\tStdDev\tMin\t95%\t99%\tMax")
	for _, pt := range perTx {
		s := pt.Stats
		fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
			s.Name, s.Mean, s.StdDev, s.Min, s.Percentile95, s.Percentile99, s.Max)
	}
	tw.Flush()
	writeRoundedBox(w, buf.String())
}

// writeRoundedBox wraps already-tabwriter-aligned body text in a
// rounded-corner border sized to its widest line.
func writeRoundedBox(w io.Writer, body string) {
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	width := 0
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > width {
			width = n
		}
	}
	fmt.Fprintf(w, "╭%s╮\n", strings.Repeat("─", width+2))
	for _, l := range lines {
		pad := width - utf8.RuneCountInString(l)
		fmt.Fprintf(w, "│ %s%s │\n", l, strings.Repeat(" ", pad))
	}
	fmt.Fprintf(w, "╰%s╯\n", strings.Repeat("─", width+2))
}
