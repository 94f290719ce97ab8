package verify

import "testing"

func TestVerifyAccepts(t *testing.T) {
	clauses := [][]int{{1, -2}, {2}}
	if !Verify(clauses, map[int]bool{1: true, 2: true}) {
		t.Fatal("expected satisfying assignment to verify")
	}
}

func TestVerifyRejects(t *testing.T) {
	clauses := [][]int{{1, -2}, {2}}
	if Verify(clauses, map[int]bool{1: false, 2: false}) {
		t.Fatal("expected unsatisfying assignment to fail verification")
	}
}

func TestVerifyMissingVariableFails(t *testing.T) {
	clauses := [][]int{{1}}
	if Verify(clauses, map[int]bool{}) {
		t.Fatal("expected missing-variable assignment to fail verification")
	}
}
