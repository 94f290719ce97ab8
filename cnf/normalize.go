package cnf

import "fmt"

// NormalForm is one of the five canonicalization targets a Set can be
// brought to. The zero value is NORMAL.
type NormalForm uint8

const (
	// NORMAL: literals sorted within each clause (the floor every Clause
	// already satisfies); no clause sort; no variable renaming.
	NORMAL NormalForm = iota
	// LOU: variables renamed to first-occurrence order 1,2,3,...;
	// clauses left in their incoming order.
	LOU
	// LO: LOU plus clauses sorted lexicographically by literal sequence.
	LO
	// FLO: LO applied repeatedly to a fixed point.
	FLO
	// FLOP: FLO with an additional size-ascending clause sort
	// (unit clauses first).
	FLOP
)

func (f NormalForm) String() string {
	switch f {
	case NORMAL:
		return "normal"
	case LOU:
		return "lou"
	case LO:
		return "lo"
	case FLO:
		return "flo"
	case FLOP:
		return "flop"
	default:
		return fmt.Sprintf("NormalForm(%d)", uint8(f))
	}
}

// ParseNormalForm parses the CLI/config spelling of a normal form.
func ParseNormalForm(s string) (NormalForm, error) {
	switch s {
	case "normal":
		return NORMAL, nil
	case "lou":
		return LOU, nil
	case "lo":
		return LO, nil
	case "flo":
		return FLO, nil
	case "flop":
		return FLOP, nil
	default:
		return 0, fmt.Errorf("cnf: unknown normal form %q", s)
	}
}

// ErrNormalizeDivergence is the panic value raised when fixed-point
// normalization fails to converge within the safety cap. It should never
// be seen in practice; it is an internal assertion, not a user-facing
// error condition.
type ErrNormalizeDivergence struct {
	Form       NormalForm
	Iterations int
}

func (e *ErrNormalizeDivergence) Error() string {
	return fmt.Sprintf("cnf: normalize(%s) did not converge after %d iterations", e.Form, e.Iterations)
}

// Normalize brings s to the target NormalForm, returning the normalized
// Set and the composed rename map (original variable -> renamed
// variable) applied to reach it. For NORMAL and on any already-resolved
// Set, the map is the identity over s's variables.
//
// Normalize is idempotent within its form: Normalize(Normalize(s,F),F)
// yields a Set structurally identical to Normalize(s,F) (the composed map
// differs only by the trivial extra identity step).
func Normalize(s Set, form NormalForm) (Set, RenameMap) {
	if s.Value != Unknown {
		return s, RenameMap{}
	}
	switch form {
	case NORMAL:
		m := identityMap(s)
		s.Rename = m
		return s, m
	case LOU:
		renamed, m := firstOccurrenceRename(s)
		return renamed, m
	case LO:
		renamed, m := firstOccurrenceRename(s)
		renamed = renamed.SortClauses()
		return renamed, m
	case FLO:
		return fixedPoint(s, false)
	case FLOP:
		return fixedPoint(s, true)
	default:
		panic(fmt.Sprintf("cnf: unknown normal form %d", form))
	}
}

func identityMap(s Set) RenameMap {
	m := make(RenameMap)
	for _, v := range s.Vars() {
		m[v] = v
	}
	return m
}

// firstOccurrenceRename walks s's clauses in their current order,
// literal by literal, assigning each newly-seen variable the next unused
// id starting at 1.
func firstOccurrenceRename(s Set) (Set, RenameMap) {
	m := make(RenameMap)
	next := 1
	for _, c := range s.Clauses {
		for _, l := range c.lits {
			v := l.Var()
			if _, ok := m[v]; !ok {
				m[v] = next
				next++
			}
		}
	}
	return s.RenameVars(m), m
}

func fixedPoint(s Set, flop bool) (Set, RenameMap) {
	safetyCap := len(s.Vars())*len(s.Clauses) + 1
	if safetyCap < 1 {
		safetyCap = 1
	}
	composed := identityMap(s)
	cur := s
	for i := 0; i < safetyCap; i++ {
		next := cur
		if flop {
			next = next.SortBySize()
		}
		renamed, stepMap := firstOccurrenceRename(next)
		if flop {
			renamed = renamed.sortBySizeThenLex()
		} else {
			renamed = renamed.SortClauses()
		}
		composed = composeRename(composed, stepMap)
		if setStructurallyEqual(renamed, cur) {
			renamed.Rename = composed
			return renamed, composed
		}
		cur = renamed
	}
	panic(&ErrNormalizeDivergence{Form: formOf(flop), Iterations: safetyCap})
}

func formOf(flop bool) NormalForm {
	if flop {
		return FLOP
	}
	return FLO
}

func composeRename(prev, next RenameMap) RenameMap {
	out := make(RenameMap, len(prev))
	for orig, mid := range prev {
		out[orig] = next[mid]
	}
	return out
}

func setStructurallyEqual(a, b Set) bool {
	if len(a.Clauses) != len(b.Clauses) {
		return false
	}
	for i := range a.Clauses {
		if !a.Clauses[i].Equals(b.Clauses[i]) {
			return false
		}
	}
	return true
}
