// Package cnf implements the data model for conjunctive normal form
// formulas: literals, clauses, sets of clauses, and the normal-form
// pipeline ("L.O.") that canonicalizes a set so isomorphic sets hash
// identically.
package cnf

// A Literal is a signed nonzero integer. Its absolute value names a
// variable; its sign encodes polarity (positive = the variable, negative =
// its negation).
type Literal int

// Var returns the variable named by l, always positive.
func (l Literal) Var() int {
	if l < 0 {
		return int(-l)
	}
	return int(l)
}

// Neg returns the negation of l.
func (l Literal) Neg() Literal { return -l }

// Sign reports whether l is a positive occurrence of its variable.
func (l Literal) Sign() bool { return l > 0 }
