// Package split implements the Splitter: given a Set with an unknown
// value, it picks a variable to branch on and produces the positive and
// negative daughter Sets, with unit-propagation collapse folded into the
// substitution path.
package split

import "github.com/cespare/satdag/cnf"

// Policy chooses the next variable to split on. Implementations must be
// deterministic: the same Set must always yield the same choice, since
// reproducibility is required for the thread-count-independent verdict
// property.
type Policy interface {
	Choose(s cnf.Set) int
}

// First picks the smallest variable id appearing in the set. After
// normalization to any of the LOU/LO/FLO/FLOP forms this is variable 1.
type First struct{}

func (First) Choose(s cnf.Set) int { return s.FirstVariable() }

// Thief picks the variable with the longest clause-occurrence pattern
// (the most clauses it appears in, positively or negatively), tie-broken
// by smallest variable id. It is intended for Purdom-Sabry factorization
// encodings, where this heuristic collapses the multiplier circuit much
// faster than always splitting on the lowest id.
type Thief struct{}

func (Thief) Choose(s cnf.Set) int {
	counts := make(map[int]int)
	for _, c := range s.Clauses {
		for _, l := range c.Literals() {
			counts[l.Var()]++
		}
	}
	best, bestCount := 0, -1
	for _, v := range s.Vars() {
		if c := counts[v]; c > bestCount {
			best, bestCount = v, c
		}
	}
	return best
}

// Result is the outcome of splitting a Set on a variable: the positive
// and negative daughter Sets, already unit-propagated to a fixed point or
// resolved. PositiveUnits/NegativeUnits record every variable (in s's own
// variable space, the same space Var is drawn from) that propagation
// additionally forced while reaching the corresponding daughter, since
// those decisions are collapsed into the daughter Set and would otherwise
// be lost to extraction.
type Result struct {
	Var           int
	Positive      cnf.Set
	Negative      cnf.Set
	PositiveUnits map[int]bool
	NegativeUnits map[int]bool
}

// Split chooses a variable via policy and returns both daughters, each
// carried through unit propagation until no unit clause remains or the
// daughter resolves.
func Split(s cnf.Set, policy Policy) Result {
	v := policy.Choose(s)
	pos, posUnits := propagate(s.Substitute(v, true))
	neg, negUnits := propagate(s.Substitute(v, false))
	return Result{
		Var:           v,
		Positive:      pos,
		Negative:      neg,
		PositiveUnits: posUnits,
		NegativeUnits: negUnits,
	}
}

// propagate repeatedly substitutes any unit clause's literal until no
// unit clause remains or the Set resolves. This is the "unit-propagation
// collapse" folded into the substitution path so children handed to the
// scheduler are already unit-free or resolved; the forced variables are
// returned alongside so callers can still recover them for a witness.
func propagate(s cnf.Set) (cnf.Set, map[int]bool) {
	var forced map[int]bool
	for s.Value == cnf.Unknown {
		unitVar, unitVal, ok := findUnit(s)
		if !ok {
			return s, forced
		}
		if forced == nil {
			forced = make(map[int]bool)
		}
		forced[unitVar] = unitVal
		s = s.Substitute(unitVar, unitVal)
	}
	return s, forced
}

func findUnit(s cnf.Set) (v int, value bool, ok bool) {
	for _, c := range s.Clauses {
		if c.Size() == 1 {
			l := c.Literals()[0]
			return l.Var(), l.Sign(), true
		}
	}
	return 0, false, false
}
