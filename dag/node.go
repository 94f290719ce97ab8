// Package dag implements the shared-subformula DAG: fingerprint-indexed
// NodeStore with at-most-once expansion, the Scheduler that drives
// splitting and resolution propagation across worker goroutines, and the
// SolutionExtractor that walks a resolved DAG back into an assignment.
package dag

import "github.com/cespare/satdag/cnf"

// Status is a Node's position in the pending -> expanding ->
// resolved_{true,false} state machine. Transitions are monotonic; there
// are no reverse edges.
type Status uint8

const (
	Pending Status = iota
	Expanding
	ResolvedTrue
	ResolvedFalse
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Expanding:
		return "expanding"
	case ResolvedTrue:
		return "resolved_true"
	case ResolvedFalse:
		return "resolved_false"
	default:
		return "unknown"
	}
}

func (s Status) Resolved() bool { return s == ResolvedTrue || s == ResolvedFalse }

// A Node is a registered, normalized Set plus DAG bookkeeping. Nodes are
// uniquely keyed by Fingerprint: the NodeStore guarantees that registering
// an equivalent Set returns the existing Node. Left/Right are the
// positive/negative daughter branches (nil until expansion); Parents are
// non-owning back-references used only to propagate resolution. The
// NodeStore is the sole owner of every Node; a Node never owns its
// parents.
type Node struct {
	Fingerprint [32]byte
	Set         cnf.Set
	SplitVar    int // 0 until expanded

	Status Status
	Left   *Node
	Right  *Node

	// LeftUnits/RightUnits record every variable (in this Node's own
	// variable space) that unit propagation forced beyond SplitVar while
	// reaching Left/Right respectively. Split folds that propagation
	// into the daughter Set itself, so without these maps the forced
	// values would never surface in an extracted assignment.
	LeftUnits  map[int]bool
	RightUnits map[int]bool

	Parents []*Node
}
