package order

import "github.com/matzehuels/depgraph/pkg/dag"

// BackEdges returns the edges that close a cycle in a depth-first search of
// g. Removing all of them makes g acyclic, so they are a useful hint for
// which dependency to cut when [Resolve] reports a cycle.
//
// The search starts from packages nothing depends on, then from any package
// not yet reached, each in node order, and follows dependencies in declared
// order. The result is deterministic for a given graph. A self-dependency is
// reported as an edge from the package to itself.
func BackEdges(g *dag.Graph) []dag.Edge {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, g.NodeCount())
	var back []dag.Edge

	var visit func(name string)
	visit = func(name string) {
		color[name] = gray
		for _, dep := range g.Neighbors(name) {
			switch color[dep] {
			case white:
				visit(dep)
			case gray:
				back = append(back, dag.Edge{From: name, To: dep})
			}
		}
		color[name] = black
	}

	for _, n := range g.Sources() {
		if color[n] == white {
			visit(n)
		}
	}
	for _, n := range g.Nodes() {
		if color[n] == white {
			visit(n)
		}
	}
	return back
}
