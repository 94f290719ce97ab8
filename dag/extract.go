package dag

import (
	"github.com/cespare/satdag/cnf"
	"github.com/cespare/satdag/split"
)

// Extract walks a resolved-true DAG from root to a satisfying leaf,
// recording the split decision and any unit-propagated variables at every
// Node along the way, then translates those decisions back through each
// Node's rename chain into the original (root-input) variable space. Any
// original variable never touched by the path is free and is reported
// true, the deterministic default.
//
// Extract panics if root.Status != ResolvedTrue; callers must check the
// Scheduler's result first.
func Extract(root *Node, originalVars []int) map[int]bool {
	if root.Status != ResolvedTrue {
		panic("dag: Extract called on a Node that is not resolved_true")
	}

	assignment := make(map[int]bool, len(originalVars))

	// accumInv maps the current Node's own variable space directly back
	// to the original input variable space; it starts as the identity
	// and picks up one more inversion per level as we descend.
	accumInv := cnf.RenameMap{}
	n := root
	for {
		inv := n.Set.Rename.Inverse()
		accumInv = composeInverse(inv, accumInv)

		if n.Status != ResolvedTrue || n.Left == nil || n.Right == nil {
			// A genuine leaf (trivially-true empty set) has no vars
			// left to decide. But a Node hydrated resolved_true from
			// the persistent store never got its own subtree built in
			// this run's DAG, so there is no decision path to read off
			// it here; fall back to a local, unshared split search just
			// to recover a witness for its remaining variables.
			if n.Status == ResolvedTrue && n.Set.Value == cnf.Unknown {
				sub, ok := localWitness(n.Set)
				if !ok {
					panic("dag: persistent store claimed resolved_true but no local witness exists (store corruption)")
				}
				for v, val := range sub {
					if origVar, ok := accumInv[v]; ok {
						assignment[origVar] = val
					}
				}
			}
			break
		}

		var next *Node
		var value bool
		var units map[int]bool
		if n.Left.Status == ResolvedTrue {
			next, value, units = n.Left, true, n.LeftUnits
		} else {
			next, value, units = n.Right, false, n.RightUnits
		}
		if origVar, ok := accumInv[n.SplitVar]; ok {
			assignment[origVar] = value
		}
		for v, val := range units {
			if origVar, ok := accumInv[v]; ok {
				assignment[origVar] = val
			}
		}
		n = next
	}

	for _, v := range originalVars {
		if _, ok := assignment[v]; !ok {
			assignment[v] = true
		}
	}
	return assignment
}

// localWitness runs an unshared, unmemoized split search over s purely to
// recover a satisfying assignment in s's own variable space. It is only
// ever invoked as a fallback beneath a NodeStore entry hydrated from the
// persistent store, whose own subtree was never built in this run.
func localWitness(s cnf.Set) (map[int]bool, bool) {
	switch s.Value {
	case cnf.True:
		return map[int]bool{}, true
	case cnf.False:
		return nil, false
	}
	res := split.Split(s, split.First{})
	if sub, ok := localWitness(res.Positive); ok {
		sub[res.Var] = true
		for v, val := range res.PositiveUnits {
			sub[v] = val
		}
		return sub, true
	}
	if sub, ok := localWitness(res.Negative); ok {
		sub[res.Var] = false
		for v, val := range res.NegativeUnits {
			sub[v] = val
		}
		return sub, true
	}
	return nil, false
}

// composeInverse builds the map x -> base[inv[x]] for every x in inv's
// domain, falling back to inv[x] itself when base has no entry yet (the
// first level, where base is the identity-by-absence).
func composeInverse(inv, base cnf.RenameMap) cnf.RenameMap {
	out := make(cnf.RenameMap, len(inv))
	for k, v := range inv {
		if mapped, ok := base[v]; ok {
			out[k] = mapped
		} else {
			out[k] = v
		}
	}
	return out
}
