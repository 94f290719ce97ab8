// Package circuit builds the multiplier-circuit CNF encodings that back
// the factorization and multiplication adapters. It is treated by the
// solver core as an external collaborator: callers hand it bit widths and
// get back a CNF plus the variable layout needed to read bits back out of
// a satisfying assignment.
//
// The encoding is schoolbook binary multiplication (a Purdom-Sabry-style
// circuit): A and B are bit vectors of fresh variables, partial products
// are formed with AND gates, and the partial products are summed with a
// chain of ripple-carry adders. Every gate is Tseitin-encoded: the gate's
// output variable is made equivalent to the gate's function of its
// inputs via a small fixed set of clauses.
package circuit

// Multiplier describes a CNF encoding of Product = A * B, where A, B and
// Product are each represented as little-endian bit vectors of CNF
// variables.
type Multiplier struct {
	A, B, Product []int
	Clauses       [][]int

	nextVar int
}

// NewMultiplier builds a multiplier circuit with A given aBits bits and B
// given bBits bits. The product vector has aBits+bBits bits, enough to
// hold the largest possible product without overflow.
func NewMultiplier(aBits, bBits int) *Multiplier {
	m := &Multiplier{nextVar: 1}
	m.A = m.freshVars(aBits)
	m.B = m.freshVars(bBits)
	m.Product = m.buildProduct()
	return m
}

func (m *Multiplier) freshVars(n int) []int {
	vars := make([]int, n)
	for i := range vars {
		vars[i] = m.nextVar
		m.nextVar++
	}
	return vars
}

func (m *Multiplier) fresh() int {
	v := m.nextVar
	m.nextVar++
	return v
}

// buildProduct lays down the partial-product AND gates and sums them
// with a chain of ripple-carry adders, returning the final sum's bits.
func (m *Multiplier) buildProduct() []int {
	width := len(m.A) + len(m.B)
	// acc holds the running sum, shifted so that acc[i] aligns with bit i
	// of the final product.
	acc := make([]int, width)
	for i := range acc {
		acc[i] = m.constZero()
	}
	for j, bBit := range m.B {
		row := make([]int, width)
		for i := range row {
			row[i] = m.constZero()
		}
		for i, aBit := range m.A {
			row[i+j] = m.andGate(aBit, bBit)
		}
		acc = m.addVectors(acc, row)
	}
	return acc
}

// constZero returns a variable forced false by a unit clause, used to pad
// bit vectors to a common width.
func (m *Multiplier) constZero() int {
	v := m.fresh()
	m.Clauses = append(m.Clauses, []int{-v})
	return v
}

// andGate returns a fresh variable g Tseitin-equivalent to a && b:
// clauses enforce (g -> a), (g -> b), (a && b -> g).
func (m *Multiplier) andGate(a, b int) int {
	g := m.fresh()
	m.Clauses = append(m.Clauses,
		[]int{-g, a},
		[]int{-g, b},
		[]int{g, -a, -b},
	)
	return g
}

// xorGate returns a fresh variable g Tseitin-equivalent to a != b.
func (m *Multiplier) xorGate(a, b int) int {
	g := m.fresh()
	m.Clauses = append(m.Clauses,
		[]int{-g, a, b},
		[]int{-g, -a, -b},
		[]int{g, -a, b},
		[]int{g, a, -b},
	)
	return g
}

// orGate returns a fresh variable g Tseitin-equivalent to a || b.
func (m *Multiplier) orGate(a, b int) int {
	g := m.fresh()
	m.Clauses = append(m.Clauses,
		[]int{-g, a, b},
		[]int{g, -a},
		[]int{g, -b},
	)
	return g
}

// fullAdder returns (sum, carryOut) for a + b + carryIn.
func (m *Multiplier) fullAdder(a, b, carryIn int) (sum, carryOut int) {
	axb := m.xorGate(a, b)
	sum = m.xorGate(axb, carryIn)
	carryOut = m.orGate(m.andGate(a, b), m.andGate(axb, carryIn))
	return sum, carryOut
}

// addVectors adds two equal-length little-endian bit vectors, returning a
// result of the same width (the final carry is discarded; callers size
// vectors wide enough that it is always zero).
func (m *Multiplier) addVectors(x, y []int) []int {
	result := make([]int, len(x))
	carry := m.constZero()
	for i := range x {
		result[i], carry = m.fullAdder(x[i], y[i], carry)
	}
	return result
}

// FixBits returns unit clauses forcing bits to the little-endian binary
// representation of n, truncated or zero-padded to len(bits).
func FixBits(bits []int, n uint64) [][]int {
	clauses := make([][]int, len(bits))
	for i, v := range bits {
		if n&(1<<uint(i)) != 0 {
			clauses[i] = []int{v}
		} else {
			clauses[i] = []int{-v}
		}
	}
	return clauses
}

// BitsToUint decodes a little-endian bit vector from a satisfying
// assignment.
func BitsToUint(bits []int, assignment map[int]bool) uint64 {
	var n uint64
	for i, v := range bits {
		if assignment[v] {
			n |= 1 << uint(i)
		}
	}
	return n
}
