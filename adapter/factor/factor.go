// Package factor implements the factorization adapter: given an integer
// N, build a CNF whose satisfying assignment exhibits two nontrivial
// factors of N, via a multiplier circuit with the product fixed to N.
package factor

import (
	"context"
	"fmt"
	"math/bits"

	"github.com/cespare/satdag"
	"github.com/cespare/satdag/circuit"
)

// Result holds a factorization found for N: N = A * B, with 1 < A <= B.
type Result struct {
	A, B uint64
}

// Factorize searches for a nontrivial factorization of n using a
// multiplier circuit asserting product = n, with both operands
// constrained to be greater than 1. If n is prime (or 0 or 1), the search
// is unsatisfiable and ok is false.
func Factorize(ctx context.Context, n uint64, opts satdag.Options) (result Result, ok bool, err error) {
	if n < 4 {
		// 0, 1, 2 and 3 have no nontrivial factorization; asking the
		// solver would only waste an expansion on a circuit forced
		// unsatisfiable by the >1 constraints below.
		return Result{}, false, nil
	}

	bitWidth := bits.Len64(n)
	m := circuit.NewMultiplier(bitWidth, bitWidth)

	clauses := append([][]int{}, m.Clauses...)
	clauses = append(clauses, circuit.FixBits(m.Product, n)...)
	clauses = append(clauses, nontrivial(m.A)...)
	clauses = append(clauses, nontrivial(m.B)...)

	vars := make([]int, 0, len(m.A)+len(m.B))
	vars = append(vars, m.A...)
	vars = append(vars, m.B...)

	// A Purdom-Sabry factorization encoding has a very lopsided
	// clause-occurrence pattern (the carry chain dominates); the thief
	// policy is specifically meant for this shape.
	opts.ThiefMethod = true

	outcome := satdag.Solve(ctx, clauses, vars, opts)
	switch {
	case outcome.Err != nil:
		return Result{}, false, outcome.Err
	case outcome.Unsat:
		return Result{}, false, nil
	}

	a := circuit.BitsToUint(m.A, outcome.Assignment)
	b := circuit.BitsToUint(m.B, outcome.Assignment)
	if a > b {
		a, b = b, a
	}
	if a*b != n {
		return Result{}, false, fmt.Errorf("factor: extracted operands %d*%d != %d", a, b, n)
	}
	return Result{A: a, B: b}, true, nil
}

// nontrivial returns clauses asserting that the bit vector bits encodes a
// value strictly greater than 1, i.e. that some bit above bit 0 is set.
func nontrivial(bitVec []int) [][]int {
	if len(bitVec) <= 1 {
		// A single-bit operand can only be 0 or 1; it is never a
		// nontrivial factor, so force the whole search unsatisfiable
		// for this operand by asserting an unsatisfiable unit pair.
		v := bitVec[0]
		return [][]int{{v}, {-v}}
	}
	clause := make([]int, len(bitVec)-1)
	copy(clause, bitVec[1:])
	return [][]int{clause}
}
