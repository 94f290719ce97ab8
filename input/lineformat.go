package input

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseLineFormat parses the compact single-line CNF notation: clauses
// separated by '&', literals within a clause separated by '|', negation
// written as a leading '-'. For example "1|-2|3&-1|2" encodes
// (x1 v -x2 v x3) & (-x1 v x2).
//
// An input consisting only of whitespace encodes the empty clause set.
func ParseLineFormat(text string) ([][]int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	clauseTexts := strings.Split(text, "&")
	clauses := make([][]int, 0, len(clauseTexts))
	for _, ct := range clauseTexts {
		ct = strings.TrimSpace(ct)
		if ct == "" {
			return nil, fmt.Errorf("empty clause in %q", text)
		}
		litTexts := strings.Split(ct, "|")
		clause := make([]int, 0, len(litTexts))
		for _, lt := range litTexts {
			lt = strings.TrimSpace(lt)
			n, err := strconv.Atoi(lt)
			if err != nil {
				return nil, fmt.Errorf("invalid literal %q: %s", lt, err)
			}
			if n == 0 {
				return nil, fmt.Errorf("literal 0 is not a valid variable reference")
			}
			clause = append(clause, n)
		}
		clauses = append(clauses, clause)
	}
	return clauses, nil
}

// WriteLineFormat renders clauses in the compact single-line notation
// that ParseLineFormat reads.
func WriteLineFormat(clauses [][]int) string {
	clauseStrs := make([]string, len(clauses))
	for i, clause := range clauses {
		litStrs := make([]string, len(clause))
		for j, lit := range clause {
			litStrs[j] = strconv.Itoa(lit)
		}
		clauseStrs[i] = strings.Join(litStrs, "|")
	}
	return strings.Join(clauseStrs, "&")
}
