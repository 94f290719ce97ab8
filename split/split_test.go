package split

import (
	"testing"

	"github.com/cespare/satdag/cnf"
)

func TestFirstPicksSmallestVar(t *testing.T) {
	s := cnf.NewSet([][]int{{5, 3}, {1, 2}})
	if got := (First{}).Choose(s); got != 1 {
		t.Errorf("got %d, want 1", got)
	}
}

func TestThiefPicksMostFrequentVar(t *testing.T) {
	s := cnf.NewSet([][]int{{1, 2}, {1, 3}, {1, -4}, {2, 3}})
	if got := (Thief{}).Choose(s); got != 1 {
		t.Errorf("got %d, want 1 (appears in 3 clauses)", got)
	}
}

func TestSplitUnitPropagationCollapse(t *testing.T) {
	// (x1 v x2) & (-x1 v x3) & (-x3)
	// Splitting on x1=true should force x3=true via (-x1 v x3) -> unit
	// x3, which contradicts (-x3) and makes the set false.
	s := cnf.NewSet([][]int{{1, 2}, {-1, 3}, {-3}})
	res := Split(s, First{})
	if res.Var != 1 {
		t.Fatalf("got split var %d, want 1", res.Var)
	}
	if res.Positive.Value != cnf.False {
		t.Errorf("positive branch: got %s, want false", res.Positive.Value)
	}
}

func TestSplitResolvesToTrue(t *testing.T) {
	s := cnf.NewSet([][]int{{1, 2}})
	res := Split(s, First{})
	if res.Positive.Value != cnf.True {
		t.Errorf("positive: got %s, want true", res.Positive.Value)
	}
	// x1=false leaves the unit (x2), which propagation resolves to true.
	if res.Negative.Value != cnf.True {
		t.Errorf("negative: got %s, want true", res.Negative.Value)
	}
}

func TestSplitReportsForcedUnits(t *testing.T) {
	// Splitting x1=true collapses (-1 v -2) to the unit -2, forcing x2=false.
	s := cnf.NewSet([][]int{{1}, {-1, -2}})
	res := Split(s, First{})
	if res.Positive.Value != cnf.True {
		t.Fatalf("positive: got %s, want true", res.Positive.Value)
	}
	if val, ok := res.PositiveUnits[2]; !ok || val {
		t.Errorf("got PositiveUnits[2]=%v,%v, want false,true", val, ok)
	}
	if res.Negative.Value != cnf.False {
		t.Fatalf("negative: got %s, want false", res.Negative.Value)
	}
	if len(res.NegativeUnits) != 0 {
		t.Errorf("got NegativeUnits %v, want empty (contradiction found before any unit)", res.NegativeUnits)
	}
}
