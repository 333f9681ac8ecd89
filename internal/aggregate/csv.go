package aggregate

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

func writeTPMCSV(path string, points []TPMPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("aggregate: creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{"time_s", "tpm"}); err != nil {
		return err
	}
	for _, p := range points {
		if err := w.Write([]string{strconv.FormatInt(p.TimeS, 10), strconv.FormatInt(p.TPM, 10)}); err != nil {
			return err
		}
	}
	return w.Error()
}

func writeResponseTimeCSV(path string, points []ResponseTimePoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("aggregate: creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{"time_s", "response_time_ms"}); err != nil {
		return err
	}
	for _, p := range points {
		if err := w.Write([]string{strconv.FormatInt(p.TimeS, 10), strconv.FormatFloat(p.ResponseTimeMS, 'f', -1, 64)}); err != nil {
			return err
		}
	}
	return w.Error()
}

func writeStatsCSV(path string, s Stats) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("aggregate: creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{"describe", "response_time_ms"}); err != nil {
		return err
	}
	rows := []struct {
		label string
		value float64
	}{
		{"mean", s.Mean},
		{"std", s.StdDev},
		{"min", s.Min},
		{"95%", s.Percentile95},
		{"99%", s.Percentile99},
		{"max", s.Max},
	}
	for _, r := range rows {
		if err := w.Write([]string{r.label, strconv.FormatFloat(r.value, 'f', -1, 64)}); err != nil {
			return err
		}
	}
	return w.Error()
}
