package qmood

import (
	"fmt"
	"strconv"
	"strings"
)

// GenerateDOTFormat renders input columns and metrics as a DOT digraph.
// Input columns are drawn as boxes; edges carry the coefficient.
func (r *Recalculator) GenerateDOTFormat() string {
	var sb strings.Builder
	sb.WriteString("digraph metrics {\n")
	sb.WriteString("  rankdir=LR;\n")

	inputs := make(map[string]bool)
	for _, m := range r.metrics {
		for _, col := range m.Formula.Columns() {
			if _, isMetric := r.byName[col]; isMetric || inputs[col] {
				continue
			}
			inputs[col] = true
			fmt.Fprintf(&sb, "  \"%s\" [shape=box, style=filled, fillcolor=lightblue];\n", col)
		}
	}

	for _, m := range r.metrics {
		fmt.Fprintf(&sb, "  \"%s\";\n", m.Name)
		for _, term := range m.Formula.Terms {
			fmt.Fprintf(&sb, "  \"%s\" -> \"%s\" [label=\"%s\"];\n",
				term.Column, m.Name, strconv.FormatFloat(term.Coefficient, 'g', -1, 64))
		}
	}

	sb.WriteString("}")

	return sb.String()
}
