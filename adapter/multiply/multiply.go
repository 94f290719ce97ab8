// Package multiply implements the multiplication adapter: substitute two
// concrete operands into a multiplier circuit and ask the core to confirm
// the circuit is consistent, i.e. that A*B is satisfiable as the
// circuit's product.
package multiply

import (
	"context"
	"math/bits"

	"github.com/cespare/satdag"
	"github.com/cespare/satdag/circuit"
	"github.com/cespare/satdag/cnf"
)

// Multiply substitutes a and b into a fresh multiplier circuit and
// solves. A contradiction discovered while folding the fixed operand bits
// into the circuit's clauses (before the core ever runs) is reported via
// ok=false, contradiction=true, matching the ContradictionOnSubstitute
// error kind's "input not satisfiable with given operands" semantics.
func Multiply(ctx context.Context, a, b uint64, opts satdag.Options) (product uint64, ok bool, contradiction bool, err error) {
	aBits := widthFor(a)
	bBits := widthFor(b)
	m := circuit.NewMultiplier(aBits, bBits)

	clauses := append([][]int{}, m.Clauses...)
	clauses = append(clauses, circuit.FixBits(m.A, a)...)
	clauses = append(clauses, circuit.FixBits(m.B, b)...)

	if hasEmptyClauseAfterUnitPropagation(clauses) {
		return 0, false, true, nil
	}

	vars := append(append([]int{}, m.A...), m.B...)
	vars = append(vars, m.Product...)

	outcome := satdag.Solve(ctx, clauses, vars, opts)
	switch {
	case outcome.Err != nil:
		return 0, false, false, outcome.Err
	case outcome.Unsat:
		return 0, false, false, nil
	}

	return circuit.BitsToUint(m.Product, outcome.Assignment), true, false, nil
}

func widthFor(n uint64) int {
	if n == 0 {
		return 1
	}
	return bits.Len64(n)
}

// hasEmptyClauseAfterUnitPropagation runs the same preprocessing the
// factorization/multiplication adapters are specified to do before
// handing a problem to the core: fold in the substitution's unit clauses
// to a fixed point and see whether any clause collapses to empty.
func hasEmptyClauseAfterUnitPropagation(clauses [][]int) bool {
	s := cnf.NewSet(clauses)
	for s.Value == cnf.Unknown {
		v, value, found := findUnit(s)
		if !found {
			return false
		}
		s = s.Substitute(v, value)
	}
	return s.Value == cnf.False
}

func findUnit(s cnf.Set) (v int, value bool, found bool) {
	for _, c := range s.Clauses {
		if c.Size() == 1 {
			lit := c.Literals()[0]
			return lit.Var(), lit.Sign(), true
		}
	}
	return 0, false, false
}
