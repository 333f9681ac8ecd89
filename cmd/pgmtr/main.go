// Command pgmtr is the CLI entrypoint: "pgmtr init tpcc" populates a
// database at a given scale factor, "pgmtr run tpcc" drives the
// closed-loop workload against it and reports the results. Flag
// layout follows the teacher's fc-server/main.go var-block +
// flag.XVar style.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/julmon/pgmtr/internal/aggregate"
	"github.com/julmon/pgmtr/internal/catalog"
	"github.com/julmon/pgmtr/internal/dsn"
	"github.com/julmon/pgmtr/internal/engine"
	"github.com/julmon/pgmtr/internal/loader"
	"github.com/julmon/pgmtr/internal/runctx"
	"github.com/julmon/pgmtr/internal/term"
	"github.com/julmon/pgmtr/internal/xlog"
)

var (
	host        string
	port        string
	username    string
	password    string
	dbname      string
	configFile  string
	debug       bool

	scalefactor int
	jobs        int
	noFKey      bool

	clients   int
	timeSec   int
	rampupSec int
	minID     int
	maxID     int
)

func init() {
	flag.StringVar(&host, "host", "", "database server host (defaults to PGHOST/localhost)")
	flag.StringVar(&port, "port", "", "database server port (defaults to PGPORT/5432)")
	flag.StringVar(&username, "username", "", "database user (defaults to PGUSER/current OS user)")
	flag.StringVar(&password, "password", "", "database password (defaults to PGPASSWORD)")
	flag.StringVar(&dbname, "dbname", "", "database name (defaults to PGDATABASE/username)")
	flag.StringVar(&configFile, "config", "", "optional .properties file layering host/port/username/dbname")
	flag.BoolVar(&debug, "debug", false, "enable verbose debug logging")

	flag.IntVar(&scalefactor, "scalefactor", 1, "init: number of warehouses to create")
	flag.IntVar(&jobs, "jobs", 1, "init: number of concurrent jobs used to populate/maintain the database")
	flag.BoolVar(&noFKey, "no-fkey", false, "init: skip foreign key creation")

	flag.IntVar(&clients, "client", 1, "run: number of concurrent client sessions")
	flag.IntVar(&timeSec, "time", 60, "run: steady-state duration in seconds")
	flag.IntVar(&rampupSec, "rampup", 10, "run: ramp-up duration in seconds")
	flag.IntVar(&minID, "min-id", 1, "run: minimum warehouse id to target")
	flag.IntVar(&maxID, "max-id", 0, "run: maximum warehouse id to target (0 resolves via SELECT MAX(w_id))")
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] <init|run> tpcc\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	xlog.Verbose = debug

	args := flag.Args()
	if len(args) < 2 || args[1] != "tpcc" {
		usage()
		os.Exit(2)
	}

	cfg := dsn.FromEnv()
	if host != "" {
		cfg.Host = host
	}
	if port != "" {
		cfg.Port = port
	}
	if username != "" {
		cfg.User = username
	}
	if password != "" {
		cfg.Password = password
	}
	if dbname != "" {
		cfg.DBName = dbname
	}
	cfg, err := dsn.LoadProperties(cfg, configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pgmtr:", err)
		os.Exit(1)
	}

	ctx := context.Background()

	switch args[0] {
	case "init":
		runInit(ctx, cfg)
	case "run":
		runBench(ctx, cfg)
	default:
		usage()
		os.Exit(2)
	}
}

func runInit(ctx context.Context, cfg dsn.Config) {
	p := term.StartMsg("INIT", "Executing database DDLs and loading data")
	err := loader.Init(ctx, loader.InitArgs{
		DSN:         cfg.PgxDSN(),
		ScaleFactor: scalefactor,
		NJobs:       jobs,
		NoFKey:      noFKey,
	})
	if err != nil {
		p.ErrMsg(err)
		os.Exit(1)
	}
	p.DoneMsg()
}

func runBench(ctx context.Context, cfg dsn.Config) {
	targetDir, err := runctx.TargetDirName(time.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, "pgmtr:", err)
		os.Exit(1)
	}

	p := term.StartMsg("RUN", fmt.Sprintf("creating target dir %s", targetDir))
	if err := runctx.New(targetDir, runctx.Manifest{
		BenchmarkType: "tpcc",
		Host:          cfg.Host,
		Port:          cfg.Port,
		DBName:        cfg.DBName,
		NClients:      clients,
		TimeSec:       timeSec,
		RampupSec:     rampupSec,
		MinID:         minID,
		MaxID:         maxID,
	}); err != nil {
		p.ErrMsg(err)
		os.Exit(1)
	}
	p.DoneMsg()

	p = term.StartMsg("RUN", fmt.Sprintf("running %d client(s) for %ds (rampup %ds)", clients, timeSec, rampupSec))
	result, err := engine.Run(ctx, engine.RunArgs{
		DSN:       cfg.PgxDSN(),
		TargetDir: targetDir,
		NClients:  clients,
		TimeSec:   timeSec,
		RampupSec: rampupSec,
		MinID:     minID,
		MaxID:     maxID,
	})
	if err != nil {
		p.ErrMsg(err)
		os.Exit(1)
	}
	p.DoneMsg()

	p = term.StartMsg("RUN", "aggregating data")
	lines, err := aggregate.ParseLog(targetDir + "/" + "transaction.log")
	if err != nil {
		p.ErrMsg(err)
		os.Exit(1)
	}
	transactions := catalog.TransactionsRW()
	perTx, allTPM := aggregate.Aggregate(lines, transactions)
	if err := aggregate.WriteCSVFiles(targetDir, perTx, allTPM); err != nil {
		p.ErrMsg(err)
		os.Exit(1)
	}
	p.DoneMsg()

	commits := make(map[int]int64)
	totals := make(map[int]int64)
	for id, c := range result.Counters {
		commits[id] = c.NCommits
		totals[id] = c.NTotal
	}
	totalSec := float64(result.TotalMS) / 1000.0
	summaries := aggregate.BuildSummaries(perTx, commits, totals, totalSec)

	fmt.Println()
	fmt.Println("Results:")
	aggregate.PrintSummary(os.Stdout, summaries)
	fmt.Println("Response times:")
	aggregate.PrintStats(os.Stdout, perTx)
}
