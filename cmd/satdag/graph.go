package main

import (
	"fmt"
	"io"

	"github.com/cespare/satdag/dag"
)

// writeGraph renders the DAG reachable from root as Graphviz DOT, one node
// per distinct fingerprint, labeled with its resolution status and split
// variable.
func writeGraph(w io.Writer, root *dag.Node) error {
	if _, err := fmt.Fprintln(w, "digraph satdag {"); err != nil {
		return err
	}
	seen := make(map[[32]byte]bool)
	var walk func(n *dag.Node) error
	walk = func(n *dag.Node) error {
		if n == nil || seen[n.Fingerprint] {
			return nil
		}
		seen[n.Fingerprint] = true
		label := n.Status.String()
		if n.SplitVar != 0 {
			label = fmt.Sprintf("%s\\nsplit=%d", label, n.SplitVar)
		}
		if _, err := fmt.Fprintf(w, "  \"%x\" [label=\"%s\"];\n", n.Fingerprint, label); err != nil {
			return err
		}
		for _, child := range []*dag.Node{n.Left, n.Right} {
			if child == nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "  \"%x\" -> \"%x\";\n", n.Fingerprint, child.Fingerprint); err != nil {
				return err
			}
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}
