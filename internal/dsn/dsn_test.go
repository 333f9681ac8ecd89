package dsn

import (
	"os"
	"strings"
	"testing"
)

func TestFromEnvUsesLibpqVars(t *testing.T) {
	t.Setenv("PGHOST", "db.example.org")
	t.Setenv("PGPORT", "6543")
	t.Setenv("PGUSER", "bench")
	t.Setenv("PGDATABASE", "tpcc")
	t.Setenv("PGPASSWORD", "secret")

	cfg := FromEnv()
	if cfg.Host != "db.example.org" || cfg.Port != "6543" || cfg.User != "bench" ||
		cfg.DBName != "tpcc" || cfg.Password != "secret" {
		t.Fatalf("FromEnv() = %+v, want values from environment", cfg)
	}
}

func TestFromEnvDefaultsDBNameToUser(t *testing.T) {
	t.Setenv("PGHOST", "")
	t.Setenv("PGPORT", "")
	t.Setenv("PGUSER", "alice")
	t.Setenv("PGDATABASE", "")
	t.Setenv("PGPASSWORD", "")

	cfg := FromEnv()
	if cfg.DBName != "alice" {
		t.Fatalf("DBName = %q, want to default to user %q", cfg.DBName, "alice")
	}
	if cfg.Host != "localhost" || cfg.Port != "5432" {
		t.Fatalf("host/port defaults = %q/%q, want localhost/5432", cfg.Host, cfg.Port)
	}
}

func TestStringQuotesPassword(t *testing.T) {
	cfg := Config{Host: "h", Port: "5432", User: "u", Password: "p", DBName: "d"}
	s := cfg.String()
	if !strings.HasPrefix(s, "postgresql://") {
		t.Fatalf("String() = %q, want postgresql:// scheme", s)
	}
	if !strings.Contains(s, "%22") {
		t.Fatalf("String() = %q, want the password wrapped in percent-encoded quotes", s)
	}
}

func TestStringOmitsQuotesWithNoPassword(t *testing.T) {
	cfg := Config{Host: "h", Port: "5432", User: "u", DBName: "d"}
	s := cfg.String()
	if strings.Contains(s, "%22") {
		t.Fatalf("String() = %q, want no quoted password section when password is empty", s)
	}
}

func TestPgxDSNIsParseableURL(t *testing.T) {
	cfg := Config{Host: "h", Port: "5432", User: "u", Password: "p", DBName: "d"}
	s := cfg.PgxDSN()
	if !strings.HasPrefix(s, "postgresql://u:p@h:5432/d") {
		t.Fatalf("PgxDSN() = %q, want a plain pgx-parseable URL", s)
	}
}

func TestLoadPropertiesEmptyPathIsNoOp(t *testing.T) {
	cfg := Config{Host: "orig"}
	got, err := LoadProperties(cfg, "")
	if err != nil {
		t.Fatalf("LoadProperties with empty path returned error: %v", err)
	}
	if got.Host != "orig" {
		t.Fatalf("LoadProperties with empty path mutated cfg: %+v", got)
	}
}

func TestLoadPropertiesOverlaysFields(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/pgmtr.properties"
	if err := os.WriteFile(path, []byte("host=dbhost\nport=7000\nusername=svc\ndbname=bench\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Config{Host: "orig", Port: "5432", User: "orig", DBName: "orig"}
	got, err := LoadProperties(cfg, path)
	if err != nil {
		t.Fatalf("LoadProperties returned error: %v", err)
	}
	if got.Host != "dbhost" || got.Port != "7000" || got.User != "svc" || got.DBName != "bench" {
		t.Fatalf("LoadProperties() = %+v, want overlay from file", got)
	}
}
