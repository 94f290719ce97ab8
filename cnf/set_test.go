package cnf

import (
	"testing"

	"github.com/kr/pretty"
)

func TestNewSetEmptyIsTrue(t *testing.T) {
	s := NewSet(nil)
	if s.Value != True {
		t.Fatalf("got %s, want true", s.Value)
	}
}

func TestNewSetEmptyClauseIsFalse(t *testing.T) {
	s := NewSet([][]int{{}})
	if s.Value != False {
		t.Fatalf("got %s, want false", s.Value)
	}
}

func TestNewSetDropsTautologyAndDuplicateClauses(t *testing.T) {
	s := NewSet([][]int{
		{1, -1, 2}, // tautology, dropped
		{1, 2},
		{2, 1}, // same clause, different input order -> duplicate
	})
	if len(s.Clauses) != 1 {
		t.Fatalf("got %d clauses, want 1:\n%s", len(s.Clauses), pretty.Sprint(s))
	}
}

func TestSetSubstituteResolvesTrue(t *testing.T) {
	s := NewSet([][]int{{1, 2}})
	got := s.Substitute(1, true)
	if got.Value != True {
		t.Fatalf("got %s, want true", got.Value)
	}
}

func TestSetSubstituteResolvesFalse(t *testing.T) {
	s := NewSet([][]int{{1}})
	got := s.Substitute(1, false)
	if got.Value != False {
		t.Fatalf("got %s, want false", got.Value)
	}
}

func TestSetSubstituteUnknown(t *testing.T) {
	s := NewSet([][]int{{1, 2}, {-1, 3}})
	got := s.Substitute(1, true)
	if got.Value != Unknown {
		t.Fatalf("got %s, want unknown", got.Value)
	}
	if len(got.Clauses) != 1 {
		t.Fatalf("got %d clauses, want 1", len(got.Clauses))
	}
}

func TestCanonicalHashIndependentOfClauseOrder(t *testing.T) {
	a := NewSet([][]int{{1, 2}, {-1, 3}})
	b := NewSet([][]int{{-1, 3}, {1, 2}})
	if a.CanonicalHash() != b.CanonicalHash() {
		t.Error("hashes differ for reordered clauses")
	}
}

func TestFirstVariable(t *testing.T) {
	s := NewSet([][]int{{3, -5}, {1, 2}})
	if got := s.FirstVariable(); got != 1 {
		t.Errorf("got %d, want 1", got)
	}
}

func TestRenameRoundTrip(t *testing.T) {
	s := NewSet([][]int{{5, -3}, {3, 7}})
	m := RenameMap{5: 1, 3: 2, 7: 3}
	renamed := s.RenameVars(m)
	inv := m.Inverse()
	back := renamed.RenameVars(inv)
	if a, b := s.CanonicalHash(), back.CanonicalHash(); a != b {
		t.Errorf("rename round trip changed the set: %v vs %v", a, b)
	}
}
