// Command satdag is the command-line front end for the splitting,
// memoizing SAT solver: it reads a CNF problem, drives a solve, and
// prints the result in the conventional SAT/UNSAT format, or runs one of
// the factorization/multiplication adapters instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/cespare/satdag"
	"github.com/cespare/satdag/adapter/factor"
	"github.com/cespare/satdag/adapter/multiply"
	"github.com/cespare/satdag/cnf"
	"github.com/cespare/satdag/dag"
	"github.com/cespare/satdag/input"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

func main() {
	log.SetFlags(0)

	cfg, err := loadConfig(prescanConfigFlag(os.Args[1:]))
	if err != nil {
		log.Fatalf("loading config: %s", err)
	}

	var (
		mode          = flag.String("m", cfg.Mode, "normal form: normal, lou, lo, flo, flop")
		startMode     = flag.String("start-mode", cfg.StartMode, "normal form for children (defaults to -m)")
		threads       = flag.Int("t", cfg.Threads, "worker pool size (0 = all CPUs, 1 = no parallelism)")
		exitUponSolve = flag.Bool("e", false, "stop at the first satisfying leaf instead of completing the DAG")
		verify        = flag.Bool("verify", cfg.Verify, "run the independent verifier after extraction")
		thief         = flag.Bool("thief", cfg.ThiefMethod, "use the longest-clause-pattern split policy")
		useGlobalDB   = flag.Bool("gdb", cfg.UseGlobalDB, "enable the persistent fingerprint store")
		globalDBPath  = flag.String("gdb-path", cfg.GlobalDBDir, "path to the persistent fingerprint store")
		gdbNoMem      = flag.Bool("gdb-no-mem", cfg.GDBNoMem, "do not mirror the persistent store's keys into memory")
		lineFormat    = flag.Bool("l", false, "read input in the single-line format instead of DIMACS")
		factorize     = flag.Int64("fact", 0, "factorize N instead of reading a CNF problem")
		multiplyArgs  = flag.String("mult", "", "multiply two operands, given as \"A,B\", instead of reading a CNF problem")
		verbosity     = flag.Int("v", 0, "log verbosity: 0=warn, 1=info, 2=debug")
		quiet         = flag.Bool("q", false, "suppress all logging")
		noBanner      = flag.Bool("no-banner", false, "opt out of the closing banner")
		graphFile     = flag.String("output-graph-file", "", "write the solved DAG as Graphviz DOT to this path")
		_             = flag.String("config", "", "path to a config file (yaml/toml/json) providing defaults for the options above")
	)
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `satdag: a parallel, memoizing SAT solver.

Usage:

  satdag [options] [input.cnf]
  satdag -fact N
  satdag -mult A,B

Reads a single CNF problem, in DIMACS format by default, and reports
SAT (with a satisfying assignment) or UNSAT. If no input file is given,
satdag reads from standard input.

`)
		flag.PrintDefaults()
	}
	flag.Parse()

	level := hclog.Warn
	switch {
	case *quiet:
		level = hclog.Off
	case *verbosity >= 2:
		level = hclog.Debug
	case *verbosity == 1:
		level = hclog.Info
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "satdag",
		Level: level,
	})

	problemID := uuid.New()
	logger.Info("starting solve", "problem_id", problemID.String())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	opts := satdag.Options{
		Threads:         *threads,
		ExitUponSolving: *exitUponSolve,
		Verify:          *verify,
		ThiefMethod:     *thief,
		UseGlobalDB:     *useGlobalDB,
		GlobalDBDir:     *globalDBPath,
		GDBNoMem:        *gdbNoMem,
		Logger:          logger,
	}
	opts.Mode, err = cnf.ParseNormalForm(*mode)
	if err != nil {
		log.Fatalf("invalid -m: %s", err)
	}
	opts.StartMode = opts.Mode
	if *startMode != "" {
		opts.StartMode, err = cnf.ParseNormalForm(*startMode)
		if err != nil {
			log.Fatalf("invalid -start-mode: %s", err)
		}
	}

	switch {
	case *factorize != 0:
		runFactorize(ctx, *factorize, opts)
	case *multiplyArgs != "":
		runMultiply(ctx, *multiplyArgs, opts)
	default:
		runSolve(ctx, *lineFormat, *graphFile, opts)
	}

	if !*noBanner {
		fmt.Println("satdag done.")
	}
}

// prescanConfigFlag finds the value of -config/--config in args without
// disturbing the main flag.FlagSet, so a config file's settings can be
// used as flag defaults before flag.Parse runs.
func prescanConfigFlag(args []string) string {
	for i, a := range args {
		switch {
		case a == "-config" || a == "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(a, "-config=") || strings.HasPrefix(a, "--config="):
			return a[strings.Index(a, "=")+1:]
		}
	}
	return ""
}

func runSolve(ctx context.Context, lineFormat bool, graphFile string, opts satdag.Options) {
	var r io.Reader = os.Stdin
	if flag.NArg() >= 1 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		r = f
	}

	var clauses [][]int
	var err error
	if lineFormat {
		text, rerr := io.ReadAll(r)
		if rerr != nil {
			log.Fatal(rerr)
		}
		clauses, err = input.ParseLineFormat(string(text))
	} else {
		clauses, err = input.ParseDIMACS(r)
	}
	if err != nil {
		log.Fatalln("error reading input:", err)
	}

	vars := cnf.NewSet(clauses).Vars()
	outcome := satdag.Solve(ctx, clauses, vars, opts)
	if graphFile != "" && outcome.Root != nil {
		if err := writeGraphFile(graphFile, outcome.Root); err != nil {
			log.Printf("writing graph file: %s", err)
		}
	}
	printOutcome(outcome)
}

func writeGraphFile(path string, root *dag.Node) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeGraph(f, root)
}

func runFactorize(ctx context.Context, n int64, opts satdag.Options) {
	if n <= 0 {
		log.Fatalf("-fact must be a positive integer, got %d", n)
	}
	result, ok, err := factor.Factorize(ctx, uint64(n), opts)
	if err != nil {
		log.Fatal(err)
	}
	if !ok {
		fmt.Printf("%d has no nontrivial factorization\n", n)
		os.Exit(0)
	}
	fmt.Printf("%d = %d * %d\n", n, result.A, result.B)
}

func runMultiply(ctx context.Context, arg string, opts satdag.Options) {
	var a, b int64
	if _, err := fmt.Sscanf(arg, "%d,%d", &a, &b); err != nil || a <= 1 || b <= 1 {
		log.Fatal("-mult must be used with two integers > 1, given as \"A,B\"")
	}
	product, ok, contradiction, err := multiply.Multiply(ctx, uint64(a), uint64(b), opts)
	if err != nil {
		log.Fatal(err)
	}
	if contradiction {
		fmt.Println("input not satisfiable with given operands")
		os.Exit(0)
	}
	if !ok {
		fmt.Println("UNSAT")
		os.Exit(0)
	}
	fmt.Printf("%d * %d = %d (confirmed satisfiable)\n", a, b, product)
}

func printOutcome(outcome satdag.Outcome) {
	if outcome.Warnings != nil && len(outcome.Warnings.Errors) > 0 {
		fmt.Fprintln(os.Stderr, outcome.Warnings)
	}
	if outcome.Err != nil {
		log.Fatal(outcome.Err)
	}
	if outcome.Unsat {
		fmt.Println("UNSATISFIABLE")
		return
	}
	var vars []int
	for v := range outcome.Assignment {
		vars = append(vars, v)
	}
	sort.Ints(vars)
	for _, v := range vars {
		val := 0
		if outcome.Assignment[v] {
			val = 1
		}
		fmt.Printf("v%d=%d\n", v, val)
	}
	fmt.Println("SATISFIABLE")
}
