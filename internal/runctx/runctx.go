// Package runctx creates the per-run target directory and writes the
// manifest describing how the run was configured, a habit carried
// over from original_source/src/main.rs. Manifest encoding uses
// goccy/go-json pretty-printed with tidwall/pretty.
package runctx

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/tidwall/pretty"
)

// Manifest captures the non-secret configuration of one run, written
// as pgmtr-run.json alongside the transaction/error logs.
type Manifest struct {
	BenchmarkType string `json:"benchmark_type"`
	Host          string `json:"host"`
	Port          string `json:"port"`
	DBName        string `json:"dbname"`
	NClients      int    `json:"clients"`
	TimeSec       int    `json:"time_sec"`
	RampupSec     int    `json:"rampup_sec"`
	MinID         int    `json:"min_id"`
	MaxID         int    `json:"max_id"`
	StartedAtUTC  string `json:"started_at_utc"`
}

// New creates targetDir (fatal-on-failure territory belongs to the
// caller; New just returns the error) and writes the manifest inside
// it.
func New(targetDir string, m Manifest) error {
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return fmt.Errorf("runctx: creating target dir: %w", err)
	}
	if m.StartedAtUTC == "" {
		m.StartedAtUTC = time.Now().UTC().Format(time.RFC3339)
	}

	raw, err := gojson.Marshal(m)
	if err != nil {
		return fmt.Errorf("runctx: encoding manifest: %w", err)
	}
	prettyRaw := pretty.Pretty(raw)

	path := filepath.Join(targetDir, "pgmtr-run.json")
	if err := os.WriteFile(path, prettyRaw, 0o644); err != nil {
		return fmt.Errorf("runctx: writing manifest: %w", err)
	}
	return nil
}

// TargetDirName builds the "pgmtr-<RFC3339-ish timestamp>" directory
// name the original driver uses, rooted at cwd.
func TargetDirName(now time.Time) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, fmt.Sprintf("pgmtr-%s", now.UTC().Format("2006-01-02T15:04:05"))), nil
}
