package dag

import (
	"context"
	"testing"

	"github.com/cespare/satdag/cnf"
)

func TestExtractSatisfiesOriginalClauses(t *testing.T) {
	raw := [][]int{
		{-1, 2},
		{-2, 3},
		{1, -3, 2},
		{2},
	}
	sched := NewScheduler(Options{Mode: cnf.FLOP})
	root, err := sched.Solve(context.Background(), cnf.NewSet(raw))
	if err != nil {
		t.Fatal(err)
	}
	if root.Status != ResolvedTrue {
		t.Fatalf("got %s, want resolved_true", root.Status)
	}
	assignment := Extract(root, []int{1, 2, 3})
	if !evaluates(raw, assignment) {
		t.Fatalf("extracted assignment %v does not satisfy the original clauses", assignment)
	}
}

func evaluates(raw [][]int, assignment map[int]bool) bool {
clauseLoop:
	for _, clause := range raw {
		for _, lit := range clause {
			v := lit
			want := true
			if v < 0 {
				v, want = -v, false
			}
			if assignment[v] == want {
				continue clauseLoop
			}
		}
		return false
	}
	return true
}

func TestExtractFreeVariableDefaultsTrue(t *testing.T) {
	// Variable 2 never appears, so it is free.
	raw := [][]int{{1}}
	sched := NewScheduler(Options{Mode: cnf.FLO})
	root, err := sched.Solve(context.Background(), cnf.NewSet(raw))
	if err != nil {
		t.Fatal(err)
	}
	assignment := Extract(root, []int{1, 2})
	if !assignment[2] {
		t.Error("free variable should default to true")
	}
}

// TestExtractRecordsUnitPropagatedFalse covers a unique witness that
// forces a variable false via unit propagation on the x1=true branch:
// [-1,-2] collapses to the unit [-2], so x2 must come out false, not the
// free-variable default of true.
func TestExtractRecordsUnitPropagatedFalse(t *testing.T) {
	raw := [][]int{{1}, {-1, -2}}
	for _, form := range []cnf.NormalForm{cnf.NORMAL, cnf.FLO, cnf.FLOP} {
		sched := NewScheduler(Options{Mode: form})
		root, err := sched.Solve(context.Background(), cnf.NewSet(raw))
		if err != nil {
			t.Fatalf("mode=%s: %v", form, err)
		}
		if root.Status != ResolvedTrue {
			t.Fatalf("mode=%s: got %s, want resolved_true", form, root.Status)
		}
		assignment := Extract(root, []int{1, 2})
		if !evaluates(raw, assignment) {
			t.Fatalf("mode=%s: extracted assignment %v does not satisfy the original clauses", form, assignment)
		}
		if assignment[2] {
			t.Errorf("mode=%s: got x2=true, want x2=false (forced by unit propagation)", form)
		}
	}
}

// TestExtractMultiIterationFLORenameComposition covers a FLO normalization
// that takes more than one fixed-point iteration, so the composed rename
// map differs from the last step's map alone: (x1 v x2) & (-x2) has the
// unique witness x1=true, x2=false, which requires translating the split
// decision back through every iteration's rename, not just the final one.
func TestExtractMultiIterationFLORenameComposition(t *testing.T) {
	raw := [][]int{{1, 2}, {-2}}
	sched := NewScheduler(Options{Mode: cnf.FLO})
	root, err := sched.Solve(context.Background(), cnf.NewSet(raw))
	if err != nil {
		t.Fatal(err)
	}
	if root.Status != ResolvedTrue {
		t.Fatalf("got %s, want resolved_true", root.Status)
	}
	assignment := Extract(root, []int{1, 2})
	if !evaluates(raw, assignment) {
		t.Fatalf("extracted assignment %v does not satisfy the original clauses", assignment)
	}
	if !assignment[1] || assignment[2] {
		t.Fatalf("got %v, want x1=true x2=false", assignment)
	}
}
