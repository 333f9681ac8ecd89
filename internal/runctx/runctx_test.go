package runctx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewWritesManifestJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pgmtr-run")
	m := Manifest{
		BenchmarkType: "tpcc",
		Host:          "db.internal",
		Port:          "5432",
		DBName:        "bench",
		NClients:      8,
		TimeSec:       60,
		RampupSec:     10,
		MinID:         1,
		MaxID:         20,
	}

	if err := New(dir, m); err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "pgmtr-run.json"))
	if err != nil {
		t.Fatalf("reading manifest: %v", err)
	}
	text := string(raw)
	for _, want := range []string{`"benchmark_type"`, `"tpcc"`, `"clients"`, `"8"`, `"db.internal"`} {
		if !strings.Contains(text, strings.Trim(want, `"`)) {
			t.Fatalf("manifest missing expected content %q; got:\n%s", want, text)
		}
	}
}

func TestTargetDirNameIsRootedAtCwd(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	got, err := TargetDirName(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, cwd) {
		t.Fatalf("TargetDirName() = %q, want prefix %q", got, cwd)
	}
	if !strings.Contains(got, "pgmtr-") {
		t.Fatalf("TargetDirName() = %q, want pgmtr- prefix in basename", got)
	}
}
