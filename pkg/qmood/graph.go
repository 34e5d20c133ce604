package qmood

import (
	"fmt"
	"sort"

	"github.com/heimdalr/dag"
)

// Graph orders metrics whose formulas read other metric columns
type Graph struct {
	dag   *dag.DAG
	names []string
	deps  map[string][]string
}

// NewGraph creates an empty metric graph
func NewGraph() *Graph {
	return &Graph{
		dag:  dag.NewDAG(),
		deps: make(map[string][]string),
	}
}

// Build adds one vertex per metric and an edge dependency -> dependent for
// every formula column naming another metric. A formula reading its own
// metric column reads the values present before recalculation and adds no
// edge.
func (g *Graph) Build(metrics []*CompiledMetric) error {
	g.dag = dag.NewDAG()
	g.names = make([]string, 0, len(metrics))
	g.deps = make(map[string][]string, len(metrics))

	known := make(map[string]bool, len(metrics))
	for _, m := range metrics {
		if err := g.dag.AddVertexByID(m.Name, m.Name); err != nil {
			return fmt.Errorf("failed to add vertex %s: %w", m.Name, err)
		}
		g.names = append(g.names, m.Name)
		known[m.Name] = true
	}

	for _, m := range metrics {
		for _, col := range m.Formula.Columns() {
			if col == m.Name || !known[col] {
				continue
			}

			// AddEdge returns error if it would create a cycle
			if err := g.dag.AddEdge(col, m.Name); err != nil {
				return fmt.Errorf("invalid dependency %s → %s: %w", col, m.Name, err)
			}
			g.deps[m.Name] = append(g.deps[m.Name], col)
		}
	}

	if g.dag.GetOrder() != len(g.names) {
		return ErrInconsistentGraph
	}

	return nil
}

// Order returns metric names so that every metric follows the metrics it
// reads; independent metrics keep their configured order.
func (g *Graph) Order() []string {
	done := make(map[string]bool, len(g.names))
	order := make([]string, 0, len(g.names))

	for len(order) < len(g.names) {
		progressed := false

		for _, name := range g.names {
			if done[name] || !g.ready(name, done) {
				continue
			}
			done[name] = true
			order = append(order, name)
			progressed = true

			break
		}

		// unreachable for an acyclic graph
		if !progressed {
			break
		}
	}

	return order
}

func (g *Graph) ready(name string, done map[string]bool) bool {
	for _, dep := range g.deps[name] {
		if !done[dep] {
			return false
		}
	}

	return true
}

// GetDependencies returns the metrics a metric reads, sorted
func (g *Graph) GetDependencies(name string) []string {
	parents, err := g.dag.GetParents(name)
	if err != nil {
		return nil
	}

	return sortedKeys(parents)
}

// GetDependents returns the metrics that read a metric, sorted
func (g *Graph) GetDependents(name string) []string {
	children, err := g.dag.GetChildren(name)
	if err != nil {
		return nil
	}

	return sortedKeys(children)
}

// GetAllDependents returns all metrics (recursive) affected by a metric, sorted
func (g *Graph) GetAllDependents(name string) []string {
	descendants, err := g.dag.GetDescendants(name)
	if err != nil {
		return nil
	}

	return sortedKeys(descendants)
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	sort.Strings(keys)

	return keys
}
