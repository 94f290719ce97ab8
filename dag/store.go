package dag

import (
	"sync"

	"github.com/cespare/satdag/cnf"
	"github.com/cespare/satdag/fpstore"
	"github.com/hashicorp/go-hclog"
)

// NodeStore maps fingerprints to Nodes, providing at-most-once
// construction and structural sharing for equivalent Sets across the
// whole DAG. It is the sole owner of every Node it returns.
type NodeStore struct {
	mu    sync.Mutex
	nodes map[[32]byte]*Node

	store       fpstore.Store // optional, advisory
	storeFailed bool          // latched once, demotes to memory-only
	logger      hclog.Logger
}

// NewNodeStore builds an empty, memory-only NodeStore. Use WithStore to
// add an optional persistent backing.
func NewNodeStore(logger hclog.Logger) *NodeStore {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &NodeStore{nodes: make(map[[32]byte]*Node), logger: logger}
}

// WithStore attaches a persistent fingerprint store. It is advisory:
// correctness never depends on it, and any I/O failure demotes the
// NodeStore to memory-only for the remainder of the solve.
func (ns *NodeStore) WithStore(s fpstore.Store) *NodeStore {
	ns.store = s
	return ns
}

// Intern returns the Node for s's normalized canonical fingerprint,
// constructing and registering a new pending Node if none exists yet.
// wasNew reports whether this call created the Node; concurrent Intern
// calls for equivalent Sets are guaranteed to return the same Node with
// exactly one wasNew == true among them (linearizable at-most-once
// construction).
func (ns *NodeStore) Intern(s cnf.Set) (n *Node, wasNew bool) {
	fp := s.CanonicalHash()

	ns.mu.Lock()
	if existing, ok := ns.nodes[fp]; ok {
		ns.mu.Unlock()
		return existing, false
	}
	n = &Node{Fingerprint: fp, Set: s, Status: Pending}
	if s.Value == cnf.True {
		n.Status = ResolvedTrue
	} else if s.Value == cnf.False {
		n.Status = ResolvedFalse
	}
	ns.nodes[fp] = n
	store := ns.store
	storeFailed := ns.storeFailed
	ns.mu.Unlock()

	// Hydrate from the persistent store outside the critical section --
	// this is the only blocking I/O the NodeStore performs and it must
	// never happen while holding the lock.
	if store != nil && !storeFailed && n.Status == Pending {
		sat, found, err := store.Lookup(fp)
		if err != nil {
			ns.demoteStore(err)
		} else if found {
			ns.mu.Lock()
			if sat {
				n.Status = ResolvedTrue
			} else {
				n.Status = ResolvedFalse
			}
			ns.mu.Unlock()
		}
	}
	return n, true
}

// Get returns the Node for fp, if any is registered.
func (ns *NodeStore) Get(fp [32]byte) (*Node, bool) {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	n, ok := ns.nodes[fp]
	return n, ok
}

// Len reports the number of distinct Nodes registered so far.
func (ns *NodeStore) Len() int {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	return len(ns.nodes)
}

// Record persists a Node's resolution to the backing store, if any and if
// it hasn't already failed. Failures are logged once and demote the store
// to memory-only; they are never fatal.
func (ns *NodeStore) Record(n *Node) {
	ns.mu.Lock()
	store := ns.store
	storeFailed := ns.storeFailed
	ns.mu.Unlock()
	if store == nil || storeFailed || !n.Status.Resolved() {
		return
	}
	if err := store.Record(n.Fingerprint, n.Status == ResolvedTrue); err != nil {
		ns.demoteStore(err)
	}
}

func (ns *NodeStore) demoteStore(err error) {
	ns.mu.Lock()
	already := ns.storeFailed
	ns.storeFailed = true
	ns.mu.Unlock()
	if !already {
		ns.logger.Error("persistent fingerprint store failed; continuing memory-only", "error", err)
	}
}

// statusOf reads n's Status under ns's lock.
func (ns *NodeStore) statusOf(n *Node) Status {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	return n.Status
}

// withLock runs fn while holding ns's mutex. It exists so the Scheduler
// (the master) can perform status/link mutations and propagation under
// the same lock that guards Intern, without exposing the mutex itself.
func (ns *NodeStore) withLock(fn func()) {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	fn()
}
