package dag

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/cespare/satdag/cnf"
	"github.com/cespare/satdag/split"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"
)

// maxNodeRetries bounds how many times a crashed worker's Node is
// re-queued for another worker before the solve is given up as failed.
const maxNodeRetries = 3

// ErrWorkerRetriesExhausted is returned when a Node fails more than
// maxNodeRetries times across worker crashes.
type ErrWorkerRetriesExhausted struct {
	Fingerprint [32]byte
	LastErr     error
}

func (e *ErrWorkerRetriesExhausted) Error() string {
	return fmt.Sprintf("dag: node %x failed %d times, last error: %v", e.Fingerprint, maxNodeRetries+1, e.LastErr)
}

func (e *ErrWorkerRetriesExhausted) Unwrap() error { return e.LastErr }

// Options configures a Scheduler.
type Options struct {
	Mode            cnf.NormalForm // normal form applied to the root
	StartMode       cnf.NormalForm // normal form applied when preparing children; defaults to Mode
	Threads         int            // 0 = runtime.NumCPU(), 1 = no parallelism
	ExitUponSolving bool
	Policy          split.Policy // defaults to split.First{}
	Store           *NodeStore   // optional; a fresh memory-only store is made if nil
	Logger          hclog.Logger
}

func (o Options) withDefaults() Options {
	if o.StartMode == cnf.NORMAL {
		o.StartMode = o.Mode
	}
	if o.Policy == nil {
		o.Policy = split.First{}
	}
	if o.Logger == nil {
		o.Logger = hclog.NewNullLogger()
	}
	if o.Store == nil {
		o.Store = NewNodeStore(o.Logger)
	}
	if o.Threads == 0 {
		o.Threads = runtime.NumCPU()
	}
	if o.Threads < 1 {
		o.Threads = 1
	}
	return o
}

// Scheduler drives the splitting search with a pool of worker goroutines
// that pull pending Nodes off an unbounded queue. There is no separate
// master goroutine: each worker does the CPU-bound split+normalize+intern
// work for its Node, then links the results in (Node status, Left/Right
// links, Parent back-references) and propagates resolution itself, making
// every such mutation under ns's lock.
type Scheduler struct {
	opts Options
	ns   *NodeStore
}

func NewScheduler(opts Options) *Scheduler {
	opts = opts.withDefaults()
	return &Scheduler{opts: opts, ns: opts.Store}
}

func (s *Scheduler) NodeStore() *NodeStore { return s.ns }

// Solve normalizes input to s.opts.Mode, interns it as the root, and
// drives expansion until the root resolves (or ctx is cancelled). It
// returns the root Node; its Status is ResolvedTrue or ResolvedFalse on a
// normal return.
func (s *Scheduler) Solve(ctx context.Context, input cnf.Set) (*Node, error) {
	normalized, _ := cnf.Normalize(input, s.opts.Mode)
	root, _ := s.ns.Intern(normalized)

	if root.Status.Resolved() {
		return root, nil
	}

	q := newQueue()
	q.push(root)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	retries := make(map[[32]byte]int)
	var retriesMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < s.opts.Threads; i++ {
		g.Go(func() error {
			for {
				n, ok := q.pop(gctx)
				if !ok {
					return nil
				}
				err := s.expandOne(gctx, n, q, &retriesMu, retries)
				q.done()
				if err != nil {
					return err
				}
				if s.ns.statusOf(root) == ResolvedTrue && s.opts.ExitUponSolving {
					// Early termination: cancel in-flight workers and
					// drop any outstanding results. Without this flag,
					// expansion continues until every reachable pending
					// Node is resolved.
					cancel()
					return nil
				}
			}
		})
	}
	if err := g.Wait(); err != nil {
		return root, err
	}
	return root, nil
}

// expandOne processes one pending Node: splits it, normalizes and interns
// both daughters, links them in, and propagates any resulting resolution
// up through Parents. Panics from the split/normalize path (WorkerCrash)
// are recovered and the Node is re-queued up to maxNodeRetries times.
func (s *Scheduler) expandOne(ctx context.Context, n *Node, q *queue, retriesMu *sync.Mutex, retries map[[32]byte]int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			retriesMu.Lock()
			retries[n.Fingerprint]++
			count := retries[n.Fingerprint]
			retriesMu.Unlock()
			if count > maxNodeRetries {
				err = &ErrWorkerRetriesExhausted{Fingerprint: n.Fingerprint, LastErr: fmt.Errorf("panic: %v", r)}
				return
			}
			s.opts.Logger.Warn("worker crashed expanding node; re-queued", "fingerprint", fmt.Sprintf("%x", n.Fingerprint), "attempt", count)
			s.ns.withLock(func() {
				if n.Status == Expanding {
					n.Status = Pending
				}
			})
			q.push(n)
		}
	}()

	var claimed bool
	s.ns.withLock(func() {
		if n.Status == Pending {
			n.Status = Expanding
			claimed = true
		}
	})
	if !claimed {
		return nil
	}

	res := split.Split(n.Set, s.opts.Policy)

	leftSet, _ := cnf.Normalize(res.Positive, s.opts.StartMode)
	rightSet, _ := cnf.Normalize(res.Negative, s.opts.StartMode)

	left, leftNew := s.ns.Intern(leftSet)
	right, rightNew := s.ns.Intern(rightSet)

	s.ns.withLock(func() {
		n.SplitVar = res.Var
		n.Left = left
		n.Right = right
		n.LeftUnits = res.PositiveUnits
		n.RightUnits = res.NegativeUnits
		left.Parents = append(left.Parents, n)
		right.Parents = append(right.Parents, n)
	})

	if leftNew && !left.Status.Resolved() {
		q.push(left)
	}
	if rightNew && !right.Status.Resolved() {
		q.push(right)
	}

	s.propagateFrom(left)
	s.propagateFrom(right)

	return nil
}

// propagateFrom walks n's parents, recomputing each one's status from its
// children (OR semantics for SAT, AND for UNSAT), and recurses upward for
// every parent whose status actually changes. This is how a single leaf
// resolution can cascade all the way up to the root.
func (s *Scheduler) propagateFrom(n *Node) {
	if !n.Status.Resolved() {
		return
	}
	s.ns.Record(n)

	var parents []*Node
	s.ns.withLock(func() {
		parents = append(parents, n.Parents...)
	})
	for _, p := range parents {
		var changed bool
		var resolved *Node
		s.ns.withLock(func() {
			if p.Status.Resolved() {
				return
			}
			if p.Left == nil || p.Right == nil {
				return
			}
			switch {
			case p.Left.Status == ResolvedTrue || p.Right.Status == ResolvedTrue:
				p.Status = ResolvedTrue
				changed = true
			case p.Left.Status == ResolvedFalse && p.Right.Status == ResolvedFalse:
				p.Status = ResolvedFalse
				changed = true
			}
			if changed {
				resolved = p
			}
		})
		if changed {
			s.propagateFrom(resolved)
		}
	}
}
