// Package satdag ties the normalization, splitting, shared-subformula
// DAG, persistent store and verifier packages together into the single
// Solve entry point the CLI and adapters call.
package satdag

import (
	"context"
	"fmt"

	"github.com/cespare/satdag/cnf"
	"github.com/cespare/satdag/dag"
	"github.com/cespare/satdag/fpstore"
	"github.com/cespare/satdag/split"
	"github.com/cespare/satdag/verify"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
)

// Outcome is the tagged result of a solve: exactly one of Sat, Unsat or
// Error holds. Warnings accumulates non-fatal conditions (such as a
// persistent store demotion) that did not stop the solve from
// completing.
type Outcome struct {
	Sat        bool
	Assignment map[int]bool // valid only when Sat
	Unsat      bool
	Err        *Error // valid only when neither Sat nor Unsat
	Warnings   *multierror.Error

	// Root is the solved DAG's root node, present whenever a root was
	// reached (even on UserAbort/InternalError it may be non-nil if the
	// scheduler returned a partially-expanded root). Callers that only
	// want SAT/UNSAT can ignore it; the CLI's graph export uses it.
	Root *dag.Node
}

// Options configures a solve. It mirrors dag.Options but adds the
// input-level knobs (global store, verification) spec'd at this layer.
type Options struct {
	Mode            cnf.NormalForm
	StartMode       cnf.NormalForm
	Threads         int
	ExitUponSolving bool
	ThiefMethod     bool // use split.Thief{} instead of split.First{}

	UseGlobalDB bool   // enable the persistent fingerprint store
	GlobalDBDir string // path to the bbolt database file
	GDBNoMem    bool   // skip the in-memory LRU index over the global store

	Verify bool // run the independent Verifier after extraction

	Logger hclog.Logger
}

// Solve decides satisfiability of clauses (the raw signed-literal
// representation used throughout the external interfaces) and, if
// satisfiable, returns a complete assignment over vars.
func Solve(ctx context.Context, clauses [][]int, vars []int, opts Options) Outcome {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	policy := split.Policy(split.First{})
	if opts.ThiefMethod {
		policy = split.Thief{}
	}

	dagOpts := dag.Options{
		Mode:            opts.Mode,
		StartMode:       opts.StartMode,
		Threads:         opts.Threads,
		ExitUponSolving: opts.ExitUponSolving,
		Policy:          policy,
		Logger:          logger,
	}

	var warnings *multierror.Error
	if opts.UseGlobalDB {
		store, err := openGlobalStore(opts)
		if err != nil {
			// Advisory: log and continue memory-only, per the
			// StoreUnavailable error kind's semantics.
			logger.Error("could not open persistent fingerprint store; continuing memory-only", "error", err)
			warnings = multierror.Append(warnings, wrapErr(StoreUnavailable, err))
		} else {
			ns := dag.NewNodeStore(logger).WithStore(store)
			dagOpts.Store = ns
			defer store.Close()
		}
	}

	sched := dag.NewScheduler(dagOpts)
	root, err := sched.Solve(ctx, cnf.NewSet(clauses))
	if err != nil {
		if ctx.Err() != nil {
			return Outcome{Err: wrapErr(UserAbort, ctx.Err()), Warnings: warnings, Root: root}
		}
		return Outcome{Err: wrapErr(InternalError, err), Warnings: warnings, Root: root}
	}

	switch root.Status {
	case dag.ResolvedFalse:
		return Outcome{Unsat: true, Warnings: warnings, Root: root}
	case dag.ResolvedTrue:
		assignment := dag.Extract(root, vars)
		if opts.Verify && !verify.Verify(clauses, assignment) {
			return Outcome{Err: wrapErr(InternalError, fmt.Errorf("extracted assignment failed verification")), Warnings: warnings, Root: root}
		}
		return Outcome{Sat: true, Assignment: assignment, Warnings: warnings, Root: root}
	default:
		return Outcome{Err: wrapErr(InternalError, fmt.Errorf("root left unresolved: %s", root.Status)), Warnings: warnings, Root: root}
	}
}

func openGlobalStore(opts Options) (fpstore.Store, error) {
	bolt, err := fpstore.OpenBoltStore(opts.GlobalDBDir)
	if err != nil {
		return nil, err
	}
	if opts.GDBNoMem {
		return bolt, nil
	}
	return fpstore.NewCached(bolt, 0)
}
