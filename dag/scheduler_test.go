package dag

import (
	"context"
	"testing"

	"github.com/cespare/satdag/cnf"
)

func solve(t *testing.T, raw [][]int, opts Options) *Node {
	t.Helper()
	sched := NewScheduler(opts)
	root, err := sched.Solve(context.Background(), cnf.NewSet(raw))
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}
	return root
}

func TestScheduleUnsat(t *testing.T) {
	// (x1 v x2) & (-x1 v x2) & (-x2)
	root := solve(t, [][]int{{1, 2}, {-1, 2}, {-2}}, Options{Mode: cnf.FLO})
	if root.Status != ResolvedFalse {
		t.Fatalf("got %s, want resolved_false", root.Status)
	}
}

func TestScheduleSat(t *testing.T) {
	// (x1 v -x2) & (x2)
	root := solve(t, [][]int{{1, -2}, {2}}, Options{Mode: cnf.FLO})
	if root.Status != ResolvedTrue {
		t.Fatalf("got %s, want resolved_true", root.Status)
	}
	assignment := Extract(root, []int{1, 2})
	if !assignment[1] || !assignment[2] {
		t.Fatalf("got %v, want x1=true x2=true", assignment)
	}
}

func TestScheduleEmptySetIsSat(t *testing.T) {
	root := solve(t, nil, Options{Mode: cnf.FLO})
	if root.Status != ResolvedTrue {
		t.Fatalf("got %s, want resolved_true", root.Status)
	}
}

func TestScheduleEmptyClauseIsUnsat(t *testing.T) {
	root := solve(t, [][]int{{}}, Options{Mode: cnf.FLO})
	if root.Status != ResolvedFalse {
		t.Fatalf("got %s, want resolved_false", root.Status)
	}
}

// pigeonhole3 encodes 3 pigeons into 2 holes: unsatisfiable.
// Variables: p(i,h) = pigeon i in hole h, i in {1,2,3}, h in {1,2}.
// var(i,h) = (i-1)*2 + h
func pigeonhole3() [][]int {
	v := func(i, h int) int { return (i-1)*2 + h }
	var clauses [][]int
	for i := 1; i <= 3; i++ {
		clauses = append(clauses, []int{v(i, 1), v(i, 2)}) // each pigeon in some hole
	}
	for h := 1; h <= 2; h++ {
		for i := 1; i <= 3; i++ {
			for j := i + 1; j <= 3; j++ {
				clauses = append(clauses, []int{-v(i, h), -v(j, h)}) // no two pigeons share a hole
			}
		}
	}
	return clauses
}

func TestPigeonholeUnsatThreadIndependent(t *testing.T) {
	problem := pigeonhole3()
	for _, threads := range []int{1, 4} {
		root := solve(t, problem, Options{Mode: cnf.FLO, Threads: threads})
		if root.Status != ResolvedFalse {
			t.Errorf("threads=%d: got %s, want resolved_false", threads, root.Status)
		}
	}
}

func TestScheduleForcedFalseSurvivesExtraction(t *testing.T) {
	// x1 must be true; [-1,-2] then collapses to the forced unit x2=false.
	raw := [][]int{{1}, {-1, -2}}
	root := solve(t, raw, Options{Mode: cnf.FLO})
	if root.Status != ResolvedTrue {
		t.Fatalf("got %s, want resolved_true", root.Status)
	}
	assignment := Extract(root, []int{1, 2})
	if !assignment[1] || assignment[2] {
		t.Fatalf("got %v, want x1=true x2=false", assignment)
	}
}

func TestExitUponSolvingStopsAtFirstSolution(t *testing.T) {
	root := solve(t, [][]int{{1, 2}, {3, 4}}, Options{Mode: cnf.FLO, ExitUponSolving: true})
	if root.Status != ResolvedTrue {
		t.Fatalf("got %s, want resolved_true", root.Status)
	}
}
